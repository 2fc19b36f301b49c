package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mzielinska/timetable-change-backend/internal/domain"
	"github.com/mzielinska/timetable-change-backend/internal/infrastructure/models/dto"
	"github.com/mzielinska/timetable-change-backend/internal/infrastructure/repository"
	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockProposalRepository mocks the proposal repository for tests
type MockProposalRepository struct {
	mock.Mock
}

func (m *MockProposalRepository) Create(ctx context.Context, d *dto.CreateProposalDTO) (*domain.Proposal, error) {
	args := m.Called(ctx, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Proposal), args.Error(1)
}

func (m *MockProposalRepository) ListByChangeRequest(ctx context.Context, changeRequestId uuid.UUID) ([]*domain.Proposal, error) {
	args := m.Called(ctx, changeRequestId)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Proposal), args.Error(1)
}

func (m *MockProposalRepository) ListForRequests(ctx context.Context, changeRequestIds []uuid.UUID) ([]*domain.Proposal, error) {
	args := m.Called(ctx, changeRequestIds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Proposal), args.Error(1)
}

func (m *MockProposalRepository) Delete(ctx context.Context, d *dto.DeleteProposalDTO) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func testSlotTable(t *testing.T) *domain.SlotTable {
	t.Helper()
	slots, err := domain.ParseSlotTable("08:00-09:30,09:45-11:15,11:30-13:00")
	require.NoError(t, err)
	return slots
}

func pendingChangeRequest(id uuid.UUID) *domain.ChangeRequest {
	return &domain.ChangeRequest{
		Id:            id,
		CourseEventId: uuid.New(),
		InitiatorId:   uuid.New(),
		RecipientId:   uuid.New(),
		Status:        domain.StatusPending,
	}
}

func TestProposalService_Submit_Success(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockProposalRepository)
	mockRequests := new(MockChangeRequestRepository)
	svc := NewProposalService(mockRepo, mockRequests, testSlotTable(t), logger)

	changeRequestId := uuid.New()
	userId := uuid.New()

	mockRequests.On("GetById", mock.Anything, changeRequestId).
		Return(pendingChangeRequest(changeRequestId), nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(d *dto.CreateProposalDTO) bool {
		return d.ChangeRequestId == changeRequestId &&
			d.UserId == userId &&
			d.TimeSlotId == 2 &&
			d.Day.Equal(time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC))
	})).Return(&domain.Proposal{
		Id:              uuid.New(),
		ChangeRequestId: changeRequestId,
		UserId:          userId,
		Day:             time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC),
		TimeSlotId:      2,
	}, nil)

	resp, err := svc.Submit(context.Background(), &request.CreateProposalRequest{
		ChangeRequestId: changeRequestId.String(),
		UserId:          userId.String(),
		Day:             "2024-05-13",
		TimeSlotId:      2,
	})

	assert.NoError(t, err)
	assert.Equal(t, "2024-05-13", resp.Day)
	assert.Equal(t, 2, resp.TimeSlotId)
	mockRepo.AssertExpectations(t)
	mockRequests.AssertExpectations(t)
}

func TestProposalService_Submit_Duplicate(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockProposalRepository)
	mockRequests := new(MockChangeRequestRepository)
	svc := NewProposalService(mockRepo, mockRequests, testSlotTable(t), logger)

	changeRequestId := uuid.New()
	mockRequests.On("GetById", mock.Anything, changeRequestId).
		Return(pendingChangeRequest(changeRequestId), nil)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil, repository.ErrAlreadyExists)

	resp, err := svc.Submit(context.Background(), &request.CreateProposalRequest{
		ChangeRequestId: changeRequestId.String(),
		UserId:          uuid.New().String(),
		Day:             "2024-05-13",
		TimeSlotId:      1,
	})

	assert.Error(t, err)
	assert.Nil(t, resp)
	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PROPOSAL_EXISTS", domainErr.Code)
}

func TestProposalService_Submit_SlotOutOfRange(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockProposalRepository)
	mockRequests := new(MockChangeRequestRepository)
	svc := NewProposalService(mockRepo, mockRequests, testSlotTable(t), logger)

	for _, slot := range []int{0, -1, 4, 100} {
		resp, err := svc.Submit(context.Background(), &request.CreateProposalRequest{
			ChangeRequestId: uuid.New().String(),
			UserId:          uuid.New().String(),
			Day:             "2024-05-13",
			TimeSlotId:      slot,
		})

		assert.Error(t, err)
		assert.Nil(t, resp)
		var domainErr *DomainError
		assert.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
	}

	mockRepo.AssertNotCalled(t, "Create")
	mockRequests.AssertNotCalled(t, "GetById")
}

func TestProposalService_Submit_BadDay(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockProposalRepository)
	mockRequests := new(MockChangeRequestRepository)
	svc := NewProposalService(mockRepo, mockRequests, testSlotTable(t), logger)

	resp, err := svc.Submit(context.Background(), &request.CreateProposalRequest{
		ChangeRequestId: uuid.New().String(),
		UserId:          uuid.New().String(),
		Day:             "13.05.2024",
		TimeSlotId:      1,
	})

	assert.Error(t, err)
	assert.Nil(t, resp)
	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestProposalService_Submit_RequestMissing(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockProposalRepository)
	mockRequests := new(MockChangeRequestRepository)
	svc := NewProposalService(mockRepo, mockRequests, testSlotTable(t), logger)

	changeRequestId := uuid.New()
	mockRequests.On("GetById", mock.Anything, changeRequestId).Return(nil, repository.ErrNotFound)

	resp, err := svc.Submit(context.Background(), &request.CreateProposalRequest{
		ChangeRequestId: changeRequestId.String(),
		UserId:          uuid.New().String(),
		Day:             "2024-05-13",
		TimeSlotId:      1,
	})

	assert.Error(t, err)
	assert.Nil(t, resp)
	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestProposalService_Common_ReturnsMatchedPairs(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockProposalRepository)
	mockRequests := new(MockChangeRequestRepository)
	svc := NewProposalService(mockRepo, mockRequests, testSlotTable(t), logger)

	changeRequestId := uuid.New()
	userId := uuid.New()
	otherId := uuid.New()
	day := time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)

	mockRequests.On("GetById", mock.Anything, changeRequestId).
		Return(pendingChangeRequest(changeRequestId), nil)
	mockRepo.On("ListByChangeRequest", mock.Anything, changeRequestId).Return([]*domain.Proposal{
		{Id: uuid.New(), ChangeRequestId: changeRequestId, UserId: userId, Day: day, TimeSlotId: 2},
		{Id: uuid.New(), ChangeRequestId: changeRequestId, UserId: userId, Day: day, TimeSlotId: 3},
		{Id: uuid.New(), ChangeRequestId: changeRequestId, UserId: otherId, Day: day, TimeSlotId: 2},
	}, nil)

	resp, err := svc.Common(context.Background(), &request.CommonProposalsRequest{
		ChangeRequestId: changeRequestId.String(),
		UserId:          userId.String(),
	})

	assert.NoError(t, err)
	require.Len(t, resp.Common, 1)
	assert.Equal(t, 2, resp.Common[0].TimeSlotId)
	assert.Equal(t, "2024-05-14", resp.Common[0].Day)
}

func TestProposalService_Common_EmptyIsNotAnError(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockProposalRepository)
	mockRequests := new(MockChangeRequestRepository)
	svc := NewProposalService(mockRepo, mockRequests, testSlotTable(t), logger)

	changeRequestId := uuid.New()
	userId := uuid.New()
	day := time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC)

	mockRequests.On("GetById", mock.Anything, changeRequestId).
		Return(pendingChangeRequest(changeRequestId), nil)
	mockRepo.On("ListByChangeRequest", mock.Anything, changeRequestId).Return([]*domain.Proposal{
		{Id: uuid.New(), ChangeRequestId: changeRequestId, UserId: userId, Day: day, TimeSlotId: 1},
	}, nil)

	resp, err := svc.Common(context.Background(), &request.CommonProposalsRequest{
		ChangeRequestId: changeRequestId.String(),
		UserId:          userId.String(),
	})

	assert.NoError(t, err)
	assert.Empty(t, resp.Common)
}

func TestProposalService_Withdraw_Success(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockProposalRepository)
	mockRequests := new(MockChangeRequestRepository)
	svc := NewProposalService(mockRepo, mockRequests, testSlotTable(t), logger)

	proposalId := uuid.New()
	userId := uuid.New()

	mockRepo.On("Delete", mock.Anything, mock.MatchedBy(func(d *dto.DeleteProposalDTO) bool {
		return d.ProposalId == proposalId && d.UserId == userId
	})).Return(nil)

	err := svc.Withdraw(context.Background(), &request.WithdrawProposalRequest{
		ProposalId: proposalId.String(),
		UserId:     userId.String(),
	})

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProposalService_Withdraw_NotFound(t *testing.T) {
	logger := zap.NewNop()
	mockRepo := new(MockProposalRepository)
	mockRequests := new(MockChangeRequestRepository)
	svc := NewProposalService(mockRepo, mockRequests, testSlotTable(t), logger)

	mockRepo.On("Delete", mock.Anything, mock.Anything).Return(repository.ErrNotFound)

	err := svc.Withdraw(context.Background(), &request.WithdrawProposalRequest{
		ProposalId: uuid.New().String(),
		UserId:     uuid.New().String(),
	})

	assert.Error(t, err)
	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}
