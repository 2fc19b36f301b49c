package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/mzielinska/timetable-change-backend/internal/domain"
	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/request"
	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/response"
	"go.uber.org/zap"
)

var listTasksError = errors.New("list tasks error")

type ChangeRequestLister interface {
	ListByParticipant(ctx context.Context, userId uuid.UUID) ([]*domain.ChangeRequest, error)
}

type ProposalBulkReader interface {
	ListForRequests(ctx context.Context, changeRequestIds []uuid.UUID) ([]*domain.Proposal, error)
}

type TaskService struct {
	requests  ChangeRequestLister
	proposals ProposalBulkReader
	log       *zap.Logger
}

func NewTaskService(requests ChangeRequestLister, proposals ProposalBulkReader, log *zap.Logger) *TaskService {
	return &TaskService{
		requests:  requests,
		proposals: proposals,
		log:       log,
	}
}

// ListTasks answers "what do I still have to do": one task per pending
// change request the user participates in, classified by the domain rules.
func (s *TaskService) ListTasks(ctx context.Context, req *request.ListTasksRequest) (*response.ListTasksResponse, error) {
	userId, err := normalizeID(req.UserId, "user_id")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}

	requests, err := s.requests.ListByParticipant(ctx, userId)
	if err != nil {
		s.log.Error("failed to load change requests for tasks",
			zap.String("user_id", req.UserId),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", listTasksError, err)
	}

	ids := make([]uuid.UUID, 0, len(requests))
	for _, cr := range requests {
		ids = append(ids, cr.Id)
	}

	proposals, err := s.proposals.ListForRequests(ctx, ids)
	if err != nil {
		s.log.Error("failed to load proposals for tasks",
			zap.String("user_id", req.UserId),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", listTasksError, err)
	}

	byRequest := make(map[uuid.UUID][]*domain.Proposal, len(requests))
	for _, p := range proposals {
		byRequest[p.ChangeRequestId] = append(byRequest[p.ChangeRequestId], p)
	}

	tasks := domain.DeriveTasks(userId, requests, byRequest)

	s.log.Info("tasks derived",
		zap.String("user_id", req.UserId),
		zap.Int("request_count", len(requests)),
		zap.Int("task_count", len(tasks)),
	)

	items := make([]*response.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, &response.TaskResponse{
			ChangeRequestId: t.ChangeRequestId.String(),
			CourseEventId:   t.CourseEventId.String(),
			Kind:            string(t.Kind),
		})
	}

	return &response.ListTasksResponse{
		UserId: req.UserId,
		Tasks:  items,
	}, nil
}
