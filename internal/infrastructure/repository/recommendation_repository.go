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
	insertRecommendationQuery = `
INSERT INTO recommendations (id, change_request_id, day, time_slot_id, room_id)
VALUES ($1, $2, $3, $4, $5);`

	listRecommendationsQuery = `
SELECT id, change_request_id, day, time_slot_id, room_id, created_at
FROM recommendations
WHERE change_request_id = $1
ORDER BY day ASC, time_slot_id ASC;`

	deleteRecommendationsQuery = `
DELETE FROM recommendations
WHERE change_request_id = $1;`

	// Rooms are available for (day, slot) unless blocked for that day or
	// already occupied by a live course event in the same window.
	availableRoomsQuery = `
SELECT r.id, r.name, r.capacity, r.equipment, r.created_at
FROM rooms r
WHERE r.id NOT IN (
        SELECT ru.room_id FROM room_unavailability ru
        WHERE ru.start_date <= $1 AND ru.end_date >= $1
    )
  AND r.id NOT IN (
        SELECT ce.room_id FROM course_events ce
        WHERE ce.day = $1 AND ce.time_slot_id = $2 AND ce.canceled = FALSE
    )
ORDER BY r.name ASC;`
)

type RecommendationRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRecommendationRepository(db *pgxpool.Pool, log *zap.Logger) *RecommendationRepository {
	return &RecommendationRepository{
		db:  db,
		log: log,
	}
}

func scanRecommendation(row rowScanner) (*domain.Recommendation, error) {
	rec := &domain.Recommendation{}
	err := row.Scan(
		&rec.Id,
		&rec.ChangeRequestId,
		&rec.Day,
		&rec.TimeSlotId,
		&rec.RoomId,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ListAvailableRooms returns rooms free in the given (day, slot) window.
func (r *RecommendationRepository) ListAvailableRooms(ctx context.Context, day time.Time, timeSlotId int) ([]*domain.Room, error) {
	rows, err := r.db.Query(ctx, availableRoomsQuery, day, timeSlotId)
	if err != nil {
		r.log.Error("list available rooms failed",
			zap.Time("day", day),
			zap.Int("time_slot_id", timeSlotId),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}
	defer rows.Close()

	var rooms []*domain.Room
	for rows.Next() {
		room := &domain.Room{}
		err := rows.Scan(
			&room.Id,
			&room.Name,
			&room.Capacity,
			&room.Equipment,
			&room.CreatedAt,
		)
		if err != nil {
			return nil, handleDBError(err)
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

// Replace swaps the request's recommendation set atomically, so regeneration
// never piles duplicates onto earlier runs.
func (r *RecommendationRepository) Replace(ctx context.Context, changeRequestId uuid.UUID, recs []*domain.Recommendation) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return handleDBError(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, deleteRecommendationsQuery, changeRequestId); err != nil {
		return handleDBError(err)
	}

	for _, rec := range recs {
		_, err := tx.Exec(ctx, insertRecommendationQuery,
			rec.Id,
			rec.ChangeRequestId,
			rec.Day,
			rec.TimeSlotId,
			rec.RoomId,
		)
		if err != nil {
			r.log.Error("insert recommendation failed",
				zap.String("change_request_id", changeRequestId.String()),
				zap.Error(err),
			)
			return handleDBError(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return handleDBError(err)
	}

	r.log.Info("recommendations replaced",
		zap.String("change_request_id", changeRequestId.String()),
		zap.Int("count", len(recs)),
	)
	return nil
}

func (r *RecommendationRepository) ListByChangeRequest(ctx context.Context, changeRequestId uuid.UUID) ([]*domain.Recommendation, error) {
	rows, err := r.db.Query(ctx, listRecommendationsQuery, changeRequestId)
	if err != nil {
		r.log.Error("list recommendations failed",
			zap.String("change_request_id", changeRequestId.String()),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}
	defer rows.Close()

	var recs []*domain.Recommendation
	for rows.Next() {
		rec, err := scanRecommendation(rows)
		if err != nil {
			return nil, handleDBError(err)
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

func (r *RecommendationRepository) DeleteByChangeRequest(ctx context.Context, changeRequestId uuid.UUID) error {
	if _, err := r.db.Exec(ctx, deleteRecommendationsQuery, changeRequestId); err != nil {
		r.log.Error("delete recommendations failed",
			zap.String("change_request_id", changeRequestId.String()),
			zap.Error(err),
		)
		return handleDBError(err)
	}
	return nil
}
