package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mzielinska/timetable-change-backend/internal/domain"
	"github.com/mzielinska/timetable-change-backend/internal/infrastructure/repository"
	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/request"
	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/response"
	"go.uber.org/zap"
)

var (
	generateRecommendationsError = errors.New("generate recommendations error")
	listRecommendationsError     = errors.New("list recommendations error")
	clearRecommendationsError    = errors.New("clear recommendations error")
)

type RecommendationRepository interface {
	ListAvailableRooms(ctx context.Context, day time.Time, timeSlotId int) ([]*domain.Room, error)
	Replace(ctx context.Context, changeRequestId uuid.UUID, recs []*domain.Recommendation) error
	ListByChangeRequest(ctx context.Context, changeRequestId uuid.UUID) ([]*domain.Recommendation, error)
	DeleteByChangeRequest(ctx context.Context, changeRequestId uuid.UUID) error
}

type ProposalLister interface {
	ListByChangeRequest(ctx context.Context, changeRequestId uuid.UUID) ([]*domain.Proposal, error)
}

type RecommendationService struct {
	repo      RecommendationRepository
	requests  ChangeRequestReader
	proposals ProposalLister
	log       *zap.Logger
}

func NewRecommendationService(repo RecommendationRepository, requests ChangeRequestReader, proposals ProposalLister, log *zap.Logger) *RecommendationService {
	return &RecommendationService{
		repo:      repo,
		requests:  requests,
		proposals: proposals,
		log:       log,
	}
}

func toRecommendationResponse(rec *domain.Recommendation) *response.RecommendationResponse {
	return &response.RecommendationResponse{
		Id:              rec.Id.String(),
		ChangeRequestId: rec.ChangeRequestId.String(),
		Day:             formatDay(rec.Day),
		TimeSlotId:      rec.TimeSlotId,
		RoomId:          rec.RoomId.String(),
	}
}

// Generate turns the request's common slots into concrete room suggestions:
// for every slot both sides agreed on, every free room satisfying the
// request's room requirements becomes one recommendation. The previous set
// for the request is replaced.
func (s *RecommendationService) Generate(ctx context.Context, req *request.GenerateRecommendationsRequest) (*response.GenerateRecommendationsResponse, error) {
	s.log.Info("generate recommendations accepted",
		zap.String("change_request_id", req.ChangeRequestId),
	)

	changeRequestId, err := normalizeID(req.ChangeRequestId, "change_request_id")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}

	cr, err := s.requests.GetById(ctx, changeRequestId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrChangeRequestNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", generateRecommendationsError, err)
	}

	proposals, err := s.proposals.ListByChangeRequest(ctx, changeRequestId)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", generateRecommendationsError, err)
	}

	common := domain.CommonProposals(proposals, cr.InitiatorId)
	if len(common) == 0 {
		return nil, WrapError(ErrNoCommonSlot, nil)
	}

	requirements := domain.ParseRoomRequirements(cr.RoomRequirements)

	var recs []*domain.Recommendation
	for _, slot := range common {
		rooms, err := s.repo.ListAvailableRooms(ctx, slot.Day, slot.TimeSlotId)
		if err != nil {
			s.log.Error("failed to load available rooms",
				zap.String("change_request_id", req.ChangeRequestId),
				zap.Time("day", slot.Day),
				zap.Int("time_slot_id", slot.TimeSlotId),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: %w", generateRecommendationsError, err)
		}

		for _, room := range rooms {
			if !requirements.Matches(room) {
				continue
			}
			recs = append(recs, &domain.Recommendation{
				Id:              uuid.New(),
				ChangeRequestId: changeRequestId,
				Day:             slot.Day,
				TimeSlotId:      slot.TimeSlotId,
				RoomId:          room.Id,
			})
		}
	}

	if len(recs) == 0 {
		return nil, WrapError(ErrNoRoomAvailable, nil)
	}

	if err := s.repo.Replace(ctx, changeRequestId, recs); err != nil {
		return nil, fmt.Errorf("%w: %w", generateRecommendationsError, err)
	}

	s.log.Info("recommendations generated",
		zap.String("change_request_id", req.ChangeRequestId),
		zap.Int("common_slots", len(common)),
		zap.Int("recommendations", len(recs)),
	)

	return &response.GenerateRecommendationsResponse{
		ChangeRequestId: req.ChangeRequestId,
		Count:           len(recs),
	}, nil
}

func (s *RecommendationService) List(ctx context.Context, req *request.ListRecommendationsRequest) (*response.ListRecommendationsResponse, error) {
	changeRequestId, err := normalizeID(req.ChangeRequestId, "change_request_id")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}

	if _, err := s.requests.GetById(ctx, changeRequestId); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrChangeRequestNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", listRecommendationsError, err)
	}

	recs, err := s.repo.ListByChangeRequest(ctx, changeRequestId)
	if err != nil {
		s.log.Error("failed to list recommendations",
			zap.String("change_request_id", req.ChangeRequestId),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", listRecommendationsError, err)
	}

	items := make([]*response.RecommendationResponse, 0, len(recs))
	for _, rec := range recs {
		items = append(items, toRecommendationResponse(rec))
	}

	return &response.ListRecommendationsResponse{
		ChangeRequestId: req.ChangeRequestId,
		Recommendations: items,
	}, nil
}

func (s *RecommendationService) Clear(ctx context.Context, req *request.ClearRecommendationsRequest) error {
	changeRequestId, err := normalizeID(req.ChangeRequestId, "change_request_id")
	if err != nil {
		return WrapError(ErrInvalidInput, err)
	}

	if _, err := s.requests.GetById(ctx, changeRequestId); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return WrapError(ErrChangeRequestNotFound, err)
		}
		return fmt.Errorf("%w: %w", clearRecommendationsError, err)
	}

	if err := s.repo.DeleteByChangeRequest(ctx, changeRequestId); err != nil {
		s.log.Error("failed to clear recommendations",
			zap.String("change_request_id", req.ChangeRequestId),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", clearRecommendationsError, err)
	}

	s.log.Info("recommendations cleared",
		zap.String("change_request_id", req.ChangeRequestId),
	)
	return nil
}
