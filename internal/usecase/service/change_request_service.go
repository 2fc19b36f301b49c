package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mzielinska/timetable-change-backend/internal/domain"
	"github.com/mzielinska/timetable-change-backend/internal/infrastructure/models/dto"
	"github.com/mzielinska/timetable-change-backend/internal/infrastructure/models/result"
	"github.com/mzielinska/timetable-change-backend/internal/infrastructure/repository"
	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/request"
	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/response"
	"go.uber.org/zap"
)

var (
	createChangeRequestError = errors.New("create change request error")
	getChangeRequestError    = errors.New("get change request error")
	listChangeRequestsError  = errors.New("list change requests error")
	acceptMatchError         = errors.New("accept match error")
	cancelChangeRequestError = errors.New("cancel change request error")
)

type ChangeRequestRepository interface {
	Create(ctx context.Context, d *dto.CreateChangeRequestDTO) (*domain.ChangeRequest, error)
	GetById(ctx context.Context, id uuid.UUID) (*domain.ChangeRequest, error)
	ListByParticipant(ctx context.Context, userId uuid.UUID) ([]*domain.ChangeRequest, error)
	UpdateStatus(ctx context.Context, d *dto.UpdateStatusDTO) (*domain.ChangeRequest, error)
	Accept(ctx context.Context, d *dto.AcceptMatchDTO) (*result.AcceptMatchResult, error)
}

type CourseEventReader interface {
	GetById(ctx context.Context, id uuid.UUID) (*domain.CourseEvent, error)
}

type ChangeRequestService struct {
	repo   ChangeRequestRepository
	events CourseEventReader
	log    *zap.Logger
}

func NewChangeRequestService(repo ChangeRequestRepository, events CourseEventReader, log *zap.Logger) *ChangeRequestService {
	return &ChangeRequestService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

func toChangeRequestResponse(cr *domain.ChangeRequest) *response.ChangeRequestResponse {
	return &response.ChangeRequestResponse{
		Id:               cr.Id.String(),
		CourseEventId:    cr.CourseEventId.String(),
		InitiatorId:      cr.InitiatorId.String(),
		RecipientId:      cr.RecipientId.String(),
		Status:           string(cr.Status),
		Reason:           cr.Reason,
		RoomRequirements: cr.RoomRequirements,
		CreatedAt:        cr.CreatedAt,
	}
}

func (s *ChangeRequestService) Create(ctx context.Context, req *request.CreateChangeRequestRequest) (*response.ChangeRequestResponse, error) {
	s.log.Info("create change request accepted",
		zap.String("course_event_id", req.CourseEventId),
		zap.String("initiator_id", req.InitiatorId),
	)

	courseEventId, err := normalizeID(req.CourseEventId, "course_event_id")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}
	initiatorId, err := normalizeID(req.InitiatorId, "initiator_id")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}

	// The course event names both sides of the negotiation; the counterparty
	// is whichever of them did not open the request.
	event, err := s.events.GetById(ctx, courseEventId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrCourseEventNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", createChangeRequestError, err)
	}

	recipientId := event.LecturerId
	if initiatorId == event.LecturerId {
		recipientId = event.GroupLeaderId
	}

	d := &dto.CreateChangeRequestDTO{
		Id:               uuid.New(),
		CourseEventId:    courseEventId,
		InitiatorId:      initiatorId,
		RecipientId:      recipientId,
		Reason:           req.Reason,
		RoomRequirements: req.RoomRequirements,
	}

	cr, err := s.repo.Create(ctx, d)
	if err != nil {
		s.log.Error("failed to create change request",
			zap.String("course_event_id", req.CourseEventId),
			zap.Error(err),
		)
		if errors.Is(err, repository.ErrInvalidInput) {
			return nil, WrapError(ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %w", createChangeRequestError, err)
	}

	s.log.Info("change request created",
		zap.String("change_request_id", cr.Id.String()),
		zap.String("recipient_id", cr.RecipientId.String()),
	)

	return toChangeRequestResponse(cr), nil
}

func (s *ChangeRequestService) Get(ctx context.Context, req *request.GetChangeRequestRequest) (*response.ChangeRequestResponse, error) {
	changeRequestId, err := normalizeID(req.ChangeRequestId, "change_request_id")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}

	cr, err := s.repo.GetById(ctx, changeRequestId)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrChangeRequestNotFound, err)
		}
		return nil, fmt.Errorf("%w: %w", getChangeRequestError, err)
	}

	return toChangeRequestResponse(cr), nil
}

func (s *ChangeRequestService) ListByParticipant(ctx context.Context, req *request.ListChangeRequestsRequest) (*response.ListChangeRequestsResponse, error) {
	userId, err := normalizeID(req.UserId, "user_id")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}

	requests, err := s.repo.ListByParticipant(ctx, userId)
	if err != nil {
		s.log.Error("failed to list change requests",
			zap.String("user_id", req.UserId),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", listChangeRequestsError, err)
	}

	items := make([]*response.ChangeRequestResponse, 0, len(requests))
	for _, cr := range requests {
		items = append(items, toChangeRequestResponse(cr))
	}

	return &response.ListChangeRequestsResponse{
		UserId:   req.UserId,
		Requests: items,
	}, nil
}

func (s *ChangeRequestService) Accept(ctx context.Context, req *request.AcceptMatchRequest) (*response.AcceptMatchResponse, error) {
	s.log.Info("accept match accepted",
		zap.String("change_request_id", req.ChangeRequestId),
		zap.String("proposal_id", req.ProposalId),
	)

	changeRequestId, err := normalizeID(req.ChangeRequestId, "change_request_id")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}
	proposalId, err := normalizeID(req.ProposalId, "proposal_id")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}

	d := &dto.AcceptMatchDTO{
		ChangeRequestId: changeRequestId,
		ProposalId:      proposalId,
	}

	res, err := s.repo.Accept(ctx, d)
	if err != nil {
		s.log.Error("failed to accept match",
			zap.String("change_request_id", req.ChangeRequestId),
			zap.String("proposal_id", req.ProposalId),
			zap.Error(err),
		)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrProposalNotFound, err)
		}
		if errors.Is(err, repository.ErrInvalidTransition) {
			return nil, WrapError(ErrInvalidTransition, err)
		}
		return nil, fmt.Errorf("%w: %w", acceptMatchError, err)
	}

	s.log.Info("match accepted",
		zap.String("change_request_id", res.Request.Id.String()),
		zap.String("status", string(res.Request.Status)),
	)

	return &response.AcceptMatchResponse{
		ChangeRequestId: res.Request.Id.String(),
		Status:          string(res.Request.Status),
		Day:             formatDay(res.Day),
		TimeSlotId:      res.TimeSlotId,
	}, nil
}

func (s *ChangeRequestService) Cancel(ctx context.Context, req *request.CancelChangeRequestRequest) (*response.ChangeRequestResponse, error) {
	s.log.Info("cancel change request accepted",
		zap.String("change_request_id", req.ChangeRequestId),
	)

	changeRequestId, err := normalizeID(req.ChangeRequestId, "change_request_id")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}

	d := &dto.UpdateStatusDTO{
		ChangeRequestId: changeRequestId,
		Expected:        domain.StatusPending,
		Next:            domain.StatusCancelled,
	}

	cr, err := s.repo.UpdateStatus(ctx, d)
	if err != nil {
		s.log.Error("failed to cancel change request",
			zap.String("change_request_id", req.ChangeRequestId),
			zap.Error(err),
		)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, WrapError(ErrChangeRequestNotFound, err)
		}
		if errors.Is(err, repository.ErrInvalidTransition) {
			return nil, WrapError(ErrInvalidTransition, err)
		}
		return nil, fmt.Errorf("%w: %w", cancelChangeRequestError, err)
	}

	return toChangeRequestResponse(cr), nil
}
