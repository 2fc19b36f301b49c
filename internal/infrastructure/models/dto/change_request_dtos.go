package dto

import (
	"github.com/google/uuid"
	"github.com/mzielinska/timetable-change-backend/internal/domain"
)

type CreateChangeRequestDTO struct {
	Id               uuid.UUID
	CourseEventId    uuid.UUID
	InitiatorId      uuid.UUID
	RecipientId      uuid.UUID
	Reason           string
	RoomRequirements string
}

type UpdateStatusDTO struct {
	ChangeRequestId uuid.UUID
	Expected        domain.Status
	Next            domain.Status
}

type AcceptMatchDTO struct {
	ChangeRequestId uuid.UUID
	ProposalId      uuid.UUID
}
