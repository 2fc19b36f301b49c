package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mzielinska/timetable-change-backend/internal/domain"
	"github.com/mzielinska/timetable-change-backend/internal/infrastructure/models/dto"
	"github.com/mzielinska/timetable-change-backend/internal/infrastructure/repository"
	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/request"
	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/response"
	"go.uber.org/zap"
)

var (
	submitProposalError   = errors.New("submit proposal error")
	listProposalsError    = errors.New("list proposals error")
	commonProposalsError  = errors.New("common proposals error")
	withdrawProposalError = errors.New("withdraw proposal error")
)

type ProposalRepository interface {
	Create(ctx context.Context, d *dto.CreateProposalDTO) (*domain.Proposal, error)
	ListByChangeRequest(ctx context.Context, changeRequestId uuid.UUID) ([]*domain.Proposal, error)
	Delete(ctx context.Context, d *dto.DeleteProposalDTO) error
}

type ChangeRequestReader interface {
	GetById(ctx context.Context, id uuid.UUID) (*domain.ChangeRequest, error)
}

type ProposalService struct {
	repo     ProposalRepository
	requests ChangeRequestReader
	slots    *domain.SlotTable
	log      *zap.Logger
}

func NewProposalService(repo ProposalRepository, requests ChangeRequestReader, slots *domain.SlotTable, log *zap.Logger) *ProposalService {
	return &ProposalService{
		repo:     repo,
		requests: requests,
		slots:    slots,
		log:      log,
	}
}

func toProposalResponse(p *domain.Proposal) *response.ProposalResponse {
	return &response.ProposalResponse{
		Id:              p.Id.String(),
		ChangeRequestId: p.ChangeRequestId.String(),
		UserId:          p.UserId.String(),
		Day:             formatDay(p.Day),
		TimeSlotId:      p.TimeSlotId,
	}
}

func (s *ProposalService) Submit(ctx context.Context, req *request.CreateProposalRequest) (*response.ProposalResponse, error) {
	s.log.Info("submit proposal accepted",
		zap.String("change_request_id", req.ChangeRequestId),
		zap.String("user_id", req.UserId),
		zap.String("day", req.Day),
		zap.Int("time_slot_id", req.TimeSlotId),
	)

	changeRequestId, err := normalizeID(req.ChangeRequestId, "change_request_id")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}
	userId, err := normalizeID(req.UserId, "user_id")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}
	day, err := parseDay(req.Day, "day")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}

	// Submission-time range check; the calendar's render-time fallback is a
	// separate concern and never rejects.
	if !s.slots.Contains(req.TimeSlotId) {
		return nil, WrapError(ErrInvalidInput,
			fmt.Errorf("time_slot_id %d outside 1..%d", req.TimeSlotId, s.slots.Len()))
	}

	if _, err := s.requests.GetById(ctx, changeRequestId); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrChangeRequestNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", submitProposalError, err)
	}

	d := &dto.CreateProposalDTO{
		Id:              uuid.New(),
		ChangeRequestId: changeRequestId,
		UserId:          userId,
		Day:             day,
		TimeSlotId:      req.TimeSlotId,
	}

	p, err := s.repo.Create(ctx, d)
	if err != nil {
		s.log.Error("failed to submit proposal",
			zap.String("change_request_id", req.ChangeRequestId),
			zap.String("user_id", req.UserId),
			zap.Error(err),
		)
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, WrapError(ErrProposalExists, err)
		}
		if errors.Is(err, repository.ErrInvalidInput) {
			return nil, WrapError(ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %w", submitProposalError, err)
	}

	s.log.Info("proposal submitted",
		zap.String("proposal_id", p.Id.String()),
		zap.String("change_request_id", p.ChangeRequestId.String()),
	)

	return toProposalResponse(p), nil
}

func (s *ProposalService) List(ctx context.Context, req *request.ListProposalsRequest) (*response.ListProposalsResponse, error) {
	changeRequestId, err := normalizeID(req.ChangeRequestId, "change_request_id")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}

	if _, err := s.requests.GetById(ctx, changeRequestId); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrChangeRequestNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", listProposalsError, err)
	}

	proposals, err := s.repo.ListByChangeRequest(ctx, changeRequestId)
	if err != nil {
		s.log.Error("failed to list proposals",
			zap.String("change_request_id", req.ChangeRequestId),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", listProposalsError, err)
	}

	items := make([]*response.ProposalResponse, 0, len(proposals))
	for _, p := range proposals {
		items = append(items, toProposalResponse(p))
	}

	return &response.ListProposalsResponse{
		ChangeRequestId: req.ChangeRequestId,
		Proposals:       items,
	}, nil
}

// Common recomputes the slot intersection for one participant on demand.
// An empty result is a valid answer, not an error.
func (s *ProposalService) Common(ctx context.Context, req *request.CommonProposalsRequest) (*response.CommonProposalsResponse, error) {
	changeRequestId, err := normalizeID(req.ChangeRequestId, "change_request_id")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}
	userId, err := normalizeID(req.UserId, "user_id")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}

	if _, err := s.requests.GetById(ctx, changeRequestId); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrChangeRequestNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", commonProposalsError, err)
	}

	proposals, err := s.repo.ListByChangeRequest(ctx, changeRequestId)
	if err != nil {
		s.log.Error("failed to load proposals for matching",
			zap.String("change_request_id", req.ChangeRequestId),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", commonProposalsError, err)
	}

	common := domain.CommonProposals(proposals, userId)

	s.log.Info("common proposals computed",
		zap.String("change_request_id", req.ChangeRequestId),
		zap.String("user_id", req.UserId),
		zap.Int("common_count", len(common)),
	)

	items := make([]*response.ProposalResponse, 0, len(common))
	for _, p := range common {
		items = append(items, toProposalResponse(p))
	}

	return &response.CommonProposalsResponse{
		ChangeRequestId: req.ChangeRequestId,
		UserId:          req.UserId,
		Common:          items,
	}, nil
}

func (s *ProposalService) Withdraw(ctx context.Context, req *request.WithdrawProposalRequest) error {
	proposalId, err := normalizeID(req.ProposalId, "proposal_id")
	if err != nil {
		return WrapError(ErrInvalidInput, err)
	}
	userId, err := normalizeID(req.UserId, "user_id")
	if err != nil {
		return WrapError(ErrInvalidInput, err)
	}

	d := &dto.DeleteProposalDTO{
		ProposalId: proposalId,
		UserId:     userId,
	}

	if err := s.repo.Delete(ctx, d); err != nil {
		s.log.Error("failed to withdraw proposal",
			zap.String("proposal_id", req.ProposalId),
			zap.Error(err),
		)
		if errors.Is(err, repository.ErrNotFound) {
			return WrapError(ErrProposalNotFound, err)
		}
		return fmt.Errorf("%w: %w", withdrawProposalError, err)
	}

	s.log.Info("proposal withdrawn", zap.String("proposal_id", req.ProposalId))
	return nil
}
