package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mzielinska/timetable-change-backend/internal/domain"
	"go.uber.org/zap"
)

const (
	selectCourseEventQuery = `
SELECT id, course_name, room_id, lecturer_id, group_leader_id, day, time_slot_id, canceled, created_at
FROM course_events
WHERE id = $1;`

	listCourseEventsByRangeQuery = `
SELECT id, course_name, room_id, lecturer_id, group_leader_id, day, time_slot_id, canceled, created_at
FROM course_events
WHERE day BETWEEN $1 AND $2
ORDER BY day ASC, time_slot_id ASC;`
)

type CourseEventRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewCourseEventRepository(db *pgxpool.Pool, log *zap.Logger) *CourseEventRepository {
	return &CourseEventRepository{
		db:  db,
		log: log,
	}
}

func scanCourseEvent(row rowScanner) (*domain.CourseEvent, error) {
	e := &domain.CourseEvent{}
	err := row.Scan(
		&e.Id,
		&e.CourseName,
		&e.RoomId,
		&e.LecturerId,
		&e.GroupLeaderId,
		&e.Day,
		&e.TimeSlotId,
		&e.Canceled,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *CourseEventRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.CourseEvent, error) {
	e, err := scanCourseEvent(r.db.QueryRow(ctx, selectCourseEventQuery, id))
	if err != nil {
		return nil, handleDBError(err)
	}
	return e, nil
}

// ListByRange returns every course event of the period, canceled ones
// included; the calendar renders them struck through instead of hiding them.
func (r *CourseEventRepository) ListByRange(ctx context.Context, from, to time.Time) ([]*domain.CourseEvent, error) {
	rows, err := r.db.Query(ctx, listCourseEventsByRangeQuery, from, to)
	if err != nil {
		r.log.Error("list course events failed",
			zap.Time("from", from),
			zap.Time("to", to),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}
	defer rows.Close()

	var events []*domain.CourseEvent
	for rows.Next() {
		e, err := scanCourseEvent(rows)
		if err != nil {
			return nil, handleDBError(err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
