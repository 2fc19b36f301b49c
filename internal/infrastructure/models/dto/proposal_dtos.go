package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProposalDTO struct {
	Id              uuid.UUID
	ChangeRequestId uuid.UUID
	UserId          uuid.UUID
	Day             time.Time
	TimeSlotId      int
}

type DeleteProposalDTO struct {
	ProposalId uuid.UUID
	UserId     uuid.UUID
}
