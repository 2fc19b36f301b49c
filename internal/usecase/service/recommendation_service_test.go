package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mzielinska/timetable-change-backend/internal/domain"
	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockRecommendationRepository mocks the recommendation repository for tests
type MockRecommendationRepository struct {
	mock.Mock
}

func (m *MockRecommendationRepository) ListAvailableRooms(ctx context.Context, day time.Time, timeSlotId int) ([]*domain.Room, error) {
	args := m.Called(ctx, day, timeSlotId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Room), args.Error(1)
}

func (m *MockRecommendationRepository) Replace(ctx context.Context, changeRequestId uuid.UUID, recs []*domain.Recommendation) error {
	args := m.Called(ctx, changeRequestId, recs)
	return args.Error(0)
}

func (m *MockRecommendationRepository) ListByChangeRequest(ctx context.Context, changeRequestId uuid.UUID) ([]*domain.Recommendation, error) {
	args := m.Called(ctx, changeRequestId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Recommendation), args.Error(1)
}

func (m *MockRecommendationRepository) DeleteByChangeRequest(ctx context.Context, changeRequestId uuid.UUID) error {
	args := m.Called(ctx, changeRequestId)
	return args.Error(0)
}

func TestRecommendationService_Generate_FiltersByRequirements(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockRecommendationRepository)
	mockRequests := new(MockChangeRequestRepository)
	mockProposals := new(MockProposalRepository)
	svc := NewRecommendationService(mockRepo, mockRequests, mockProposals, logger)

	changeRequestId := uuid.New()
	initiatorId := uuid.New()
	recipientId := uuid.New()
	day := time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC)

	cr := pendingChangeRequest(changeRequestId)
	cr.InitiatorId = initiatorId
	cr.RecipientId = recipientId
	cr.RoomRequirements = "capacity > 60, projector"

	bigWithProjector := &domain.Room{Id: uuid.New(), Capacity: 120, Equipment: "projector, whiteboard"}
	bigNoProjector := &domain.Room{Id: uuid.New(), Capacity: 120, Equipment: "whiteboard"}
	smallWithProjector := &domain.Room{Id: uuid.New(), Capacity: 30, Equipment: "projector"}

	mockRequests.On("GetById", mock.Anything, changeRequestId).Return(cr, nil)
	mockProposals.On("ListByChangeRequest", mock.Anything, changeRequestId).Return([]*domain.Proposal{
		{Id: uuid.New(), ChangeRequestId: changeRequestId, UserId: initiatorId, Day: day, TimeSlotId: 2},
		{Id: uuid.New(), ChangeRequestId: changeRequestId, UserId: recipientId, Day: day, TimeSlotId: 2},
	}, nil)
	mockRepo.On("ListAvailableRooms", mock.Anything, mock.Anything, 2).Return([]*domain.Room{
		bigWithProjector, bigNoProjector, smallWithProjector,
	}, nil)
	mockRepo.On("Replace", mock.Anything, changeRequestId, mock.MatchedBy(func(recs []*domain.Recommendation) bool {
		return len(recs) == 1 && recs[0].RoomId == bigWithProjector.Id && recs[0].TimeSlotId == 2
	})).Return(nil)

	resp, err := svc.Generate(context.Background(), &request.GenerateRecommendationsRequest{
		ChangeRequestId: changeRequestId.String(),
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	mockRepo.AssertExpectations(t)
}

func TestRecommendationService_Generate_NoCommonSlot(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockRecommendationRepository)
	mockRequests := new(MockChangeRequestRepository)
	mockProposals := new(MockProposalRepository)
	svc := NewRecommendationService(mockRepo, mockRequests, mockProposals, logger)

	changeRequestId := uuid.New()
	cr := pendingChangeRequest(changeRequestId)
	day := time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC)

	mockRequests.On("GetById", mock.Anything, changeRequestId).Return(cr, nil)
	// both sides proposed, but never the same slot
	mockProposals.On("ListByChangeRequest", mock.Anything, changeRequestId).Return([]*domain.Proposal{
		{Id: uuid.New(), ChangeRequestId: changeRequestId, UserId: cr.InitiatorId, Day: day, TimeSlotId: 1},
		{Id: uuid.New(), ChangeRequestId: changeRequestId, UserId: cr.RecipientId, Day: day, TimeSlotId: 2},
	}, nil)

	resp, err := svc.Generate(context.Background(), &request.GenerateRecommendationsRequest{
		ChangeRequestId: changeRequestId.String(),
	})

	assert.Error(t, err)
	assert.Nil(t, resp)
	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_COMMON_SLOT", domainErr.Code)
	mockRepo.AssertNotCalled(t, "ListAvailableRooms")
}

func TestRecommendationService_Generate_NoRoomAvailable(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockRecommendationRepository)
	mockRequests := new(MockChangeRequestRepository)
	mockProposals := new(MockProposalRepository)
	svc := NewRecommendationService(mockRepo, mockRequests, mockProposals, logger)

	changeRequestId := uuid.New()
	cr := pendingChangeRequest(changeRequestId)
	cr.RoomRequirements = "capacity > 500"
	day := time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC)

	mockRequests.On("GetById", mock.Anything, changeRequestId).Return(cr, nil)
	mockProposals.On("ListByChangeRequest", mock.Anything, changeRequestId).Return([]*domain.Proposal{
		{Id: uuid.New(), ChangeRequestId: changeRequestId, UserId: cr.InitiatorId, Day: day, TimeSlotId: 1},
		{Id: uuid.New(), ChangeRequestId: changeRequestId, UserId: cr.RecipientId, Day: day, TimeSlotId: 1},
	}, nil)
	mockRepo.On("ListAvailableRooms", mock.Anything, mock.Anything, 1).Return([]*domain.Room{
		{Id: uuid.New(), Capacity: 80, Equipment: "projector"},
	}, nil)

	resp, err := svc.Generate(context.Background(), &request.GenerateRecommendationsRequest{
		ChangeRequestId: changeRequestId.String(),
	})

	assert.Error(t, err)
	assert.Nil(t, resp)
	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NO_ROOM_AVAILABLE", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Replace")
}

func TestRecommendationService_Clear_Success(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockRecommendationRepository)
	mockRequests := new(MockChangeRequestRepository)
	mockProposals := new(MockProposalRepository)
	svc := NewRecommendationService(mockRepo, mockRequests, mockProposals, logger)

	changeRequestId := uuid.New()
	mockRequests.On("GetById", mock.Anything, changeRequestId).
		Return(pendingChangeRequest(changeRequestId), nil)
	mockRepo.On("DeleteByChangeRequest", mock.Anything, changeRequestId).Return(nil)

	err := svc.Clear(context.Background(), &request.ClearRecommendationsRequest{
		ChangeRequestId: changeRequestId.String(),
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
