package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mzielinska/timetable-change-backend/internal/domain"
	"github.com/mzielinska/timetable-change-backend/internal/infrastructure/models/dto"
	"go.uber.org/zap"
)

const (
	insertProposalQuery = `
INSERT INTO proposals (id, change_request_id, user_id, day, time_slot_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, change_request_id, user_id, day, time_slot_id, created_at;`

	listProposalsQuery = `
SELECT id, change_request_id, user_id, day, time_slot_id, created_at
FROM proposals
WHERE change_request_id = $1
ORDER BY created_at ASC;`

	listProposalsForRequestsQuery = `
SELECT id, change_request_id, user_id, day, time_slot_id, created_at
FROM proposals
WHERE change_request_id = ANY($1)
ORDER BY created_at ASC;`

	deleteProposalQuery = `
DELETE FROM proposals
WHERE id = $1 AND user_id = $2;`
)

type ProposalRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewProposalRepository(db *pgxpool.Pool, log *zap.Logger) *ProposalRepository {
	return &ProposalRepository{
		db:  db,
		log: log,
	}
}

func scanProposal(row rowScanner) (*domain.Proposal, error) {
	p := &domain.Proposal{}
	err := row.Scan(
		&p.Id,
		&p.ChangeRequestId,
		&p.UserId,
		&p.Day,
		&p.TimeSlotId,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create appends a proposal. The table's uniqueness constraint on
// (change_request_id, user_id, day, time_slot_id) turns a duplicate
// submission into ErrAlreadyExists.
func (r *ProposalRepository) Create(ctx context.Context, d *dto.CreateProposalDTO) (*domain.Proposal, error) {
	r.log.Info("create proposal",
		zap.String("change_request_id", d.ChangeRequestId.String()),
		zap.String("user_id", d.UserId.String()),
		zap.Time("day", d.Day),
		zap.Int("time_slot_id", d.TimeSlotId),
	)

	p, err := scanProposal(r.db.QueryRow(ctx, insertProposalQuery,
		d.Id,
		d.ChangeRequestId,
		d.UserId,
		d.Day,
		d.TimeSlotId,
	))
	if err != nil {
		r.log.Error("create proposal failed",
			zap.String("change_request_id", d.ChangeRequestId.String()),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}

	return p, nil
}

func (r *ProposalRepository) ListByChangeRequest(ctx context.Context, changeRequestId uuid.UUID) ([]*domain.Proposal, error) {
	rows, err := r.db.Query(ctx, listProposalsQuery, changeRequestId)
	if err != nil {
		r.log.Error("list proposals failed",
			zap.String("change_request_id", changeRequestId.String()),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}
	defer rows.Close()

	var proposals []*domain.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, handleDBError(err)
		}
		proposals = append(proposals, p)
	}

	return proposals, rows.Err()
}

// ListForRequests loads the proposals of many change requests at once,
// for the task projection.
func (r *ProposalRepository) ListForRequests(ctx context.Context, changeRequestIds []uuid.UUID) ([]*domain.Proposal, error) {
	if len(changeRequestIds) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, listProposalsForRequestsQuery, changeRequestIds)
	if err != nil {
		r.log.Error("list proposals for requests failed",
			zap.Int("request_count", len(changeRequestIds)),
			zap.Error(err),
		)
		return nil, handleDBError(err)
	}
	defer rows.Close()

	var proposals []*domain.Proposal
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, handleDBError(err)
		}
		proposals = append(proposals, p)
	}

	return proposals, rows.Err()
}

// Delete removes the participant's own proposal only.
func (r *ProposalRepository) Delete(ctx context.Context, d *dto.DeleteProposalDTO) error {
	cmdTag, err := r.db.Exec(ctx, deleteProposalQuery, d.ProposalId, d.UserId)
	if err != nil {
		r.log.Error("delete proposal failed",
			zap.String("proposal_id", d.ProposalId.String()),
			zap.Error(err),
		)
		return handleDBError(err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.log.Warn("proposal not found while deleting",
			zap.String("proposal_id", d.ProposalId.String()),
			zap.String("user_id", d.UserId.String()),
		)
		return ErrNotFound
	}

	return nil
}
