package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mzielinska/timetable-change-backend/internal/domain"
	"github.com/mzielinska/timetable-change-backend/internal/infrastructure/models/dto"
	"github.com/mzielinska/timetable-change-backend/internal/infrastructure/models/result"
	"go.uber.org/zap"
)

const (
	insertChangeRequestQuery = `
INSERT INTO change_requests (id, course_event_id, initiator_id, recipient_id, status, reason, room_requirements)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, course_event_id, initiator_id, recipient_id, status, reason, room_requirements, created_at;`

	selectChangeRequestQuery = `
SELECT id, course_event_id, initiator_id, recipient_id, status, reason, room_requirements, created_at
FROM change_requests
WHERE id = $1;`

	listByParticipantQuery = `
SELECT id, course_event_id, initiator_id, recipient_id, status, reason, room_requirements, created_at
FROM change_requests
WHERE initiator_id = $1 OR recipient_id = $1
ORDER BY created_at ASC;`

	updateStatusQuery = `
UPDATE change_requests
SET status = $3
WHERE id = $1 AND status = $2
RETURNING id, course_event_id, initiator_id, recipient_id, status, reason, room_requirements, created_at;`

	selectAcceptedProposalQuery = `
SELECT day, time_slot_id
FROM proposals
WHERE id = $1 AND change_request_id = $2;`

	moveCourseEventQuery = `
UPDATE course_events
SET day = $2, time_slot_id = $3
WHERE id = $1;`
)

type ChangeRequestRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewChangeRequestRepository(db *pgxpool.Pool, log *zap.Logger) *ChangeRequestRepository {
	return &ChangeRequestRepository{
		db:  db,
		log: log,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChangeRequest(row rowScanner) (*domain.ChangeRequest, error) {
	cr := &domain.ChangeRequest{}
	err := row.Scan(
		&cr.Id,
		&cr.CourseEventId,
		&cr.InitiatorId,
		&cr.RecipientId,
		&cr.Status,
		&cr.Reason,
		&cr.RoomRequirements,
		&cr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return cr, nil
}

func (r *ChangeRequestRepository) Create(ctx context.Context, d *dto.CreateChangeRequestDTO) (*domain.ChangeRequest, error) {
	r.log.Info("create change request",
		zap.String("change_request_id", d.Id.String()),
		zap.String("course_event_id", d.CourseEventId.String()),
	)

	row := r.db.QueryRow(ctx, insertChangeRequestQuery,
		d.Id,
		d.CourseEventId,
		d.InitiatorId,
		d.RecipientId,
		domain.StatusPending,
		d.Reason,
		d.RoomRequirements,
	)
	cr, err := scanChangeRequest(row)
	if err != nil {
		r.log.Error("create change request failed",
			zap.String("change_request_id", d.Id.String()),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}

	return cr, nil
}

func (r *ChangeRequestRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.ChangeRequest, error) {
	cr, err := scanChangeRequest(r.db.QueryRow(ctx, selectChangeRequestQuery, id))
	if err != nil {
		return nil, handleDBError(err)
	}
	return cr, nil
}

func (r *ChangeRequestRepository) ListByParticipant(ctx context.Context, userId uuid.UUID) ([]*domain.ChangeRequest, error) {
	rows, err := r.db.Query(ctx, listByParticipantQuery, userId)
	if err != nil {
		r.log.Error("list change requests failed",
			zap.String("user_id", userId.String()),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}
	defer rows.Close()

	var requests []*domain.ChangeRequest
	for rows.Next() {
		cr, err := scanChangeRequest(rows)
		if err != nil {
			return nil, handleDBError(err)
		}
		requests = append(requests, cr)
	}

	return requests, rows.Err()
}

// UpdateStatus performs the compare-and-swap status transition. Concurrent
// attempts race on the WHERE clause, so exactly one of them wins.
func (r *ChangeRequestRepository) UpdateStatus(ctx context.Context, d *dto.UpdateStatusDTO) (*domain.ChangeRequest, error) {
	r.log.Info("update change request status",
		zap.String("change_request_id", d.ChangeRequestId.String()),
		zap.String("expected", string(d.Expected)),
		zap.String("next", string(d.Next)),
	)

	cr, err := scanChangeRequest(r.db.QueryRow(ctx, updateStatusQuery, d.ChangeRequestId, d.Expected, d.Next))
	if err == nil {
		return cr, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, handleDBError(err)
	}

	// CAS missed: request absent or already past the expected status
	if _, err := scanChangeRequest(r.db.QueryRow(ctx, selectChangeRequestQuery, d.ChangeRequestId)); err != nil {
		return nil, handleDBError(err)
	}
	return nil, ErrInvalidTransition
}

// Accept resolves a change request in one transaction: the accepted proposal
// is read, the status moves PENDING -> RESOLVED under compare-and-swap, and
// the underlying course event is rescheduled to the proposal's (day, slot).
func (r *ChangeRequestRepository) Accept(ctx context.Context, d *dto.AcceptMatchDTO) (*result.AcceptMatchResult, error) {
	r.log.Info("accept match",
		zap.String("change_request_id", d.ChangeRequestId.String()),
		zap.String("proposal_id", d.ProposalId.String()),
	)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, handleDBError(err)
	}
	defer tx.Rollback(ctx)

	var (
		day        time.Time
		timeSlotId int
	)
	err = tx.QueryRow(ctx, selectAcceptedProposalQuery, d.ProposalId, d.ChangeRequestId).Scan(&day, &timeSlotId)
	if err != nil {
		r.log.Warn("accepted proposal not found",
			zap.String("proposal_id", d.ProposalId.String()),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}

	cr, err := scanChangeRequest(tx.QueryRow(ctx, updateStatusQuery,
		d.ChangeRequestId, domain.StatusPending, domain.StatusResolved))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// proposal exists, so the request exists: it is already closed
			return nil, ErrInvalidTransition
		}
		return nil, handleDBError(err)
	}

	if _, err := tx.Exec(ctx, moveCourseEventQuery, cr.CourseEventId, day, timeSlotId); err != nil {
		r.log.Error("course event reschedule failed",
			zap.String("course_event_id", cr.CourseEventId.String()),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, handleDBError(err)
	}

	r.log.Info("change request resolved",
		zap.String("change_request_id", cr.Id.String()),
		zap.Time("day", day),
		zap.Int("time_slot_id", timeSlotId),
	)

	return &result.AcceptMatchResult{
		Request:    cr,
		Day:        day,
		TimeSlotId: timeSlotId,
	}, nil
}
