package service

import "fmt"

type DomainError struct {
	Code    string
	Message string
	Err     error
}

func WrapError(domainError *DomainError, err error) error {
	return &DomainError{
		Code:    domainError.Code,
		Message: domainError.Message,
		Err:     err,
	}
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) Is(target error) bool {
	other, ok := target.(*DomainError)
	return ok && other.Code == e.Code && other.Message == e.Message
}

var (
	// NOT_FOUND
	ErrChangeRequestNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "change request not found",
	}
	ErrCourseEventNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "course event not found",
	}
	ErrProposalNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "proposal not found",
	}

	// INVALID_TRANSITION
	ErrInvalidTransition = &DomainError{
		Code:    "INVALID_TRANSITION",
		Message: "change request is already closed",
	}

	// PROPOSAL_EXISTS
	ErrProposalExists = &DomainError{
		Code:    "PROPOSAL_EXISTS",
		Message: "identical slot already proposed by this user",
	}

	// NO_COMMON_SLOT
	ErrNoCommonSlot = &DomainError{
		Code:    "NO_COMMON_SLOT",
		Message: "no common availability found",
	}

	// NO_ROOM_AVAILABLE
	ErrNoRoomAvailable = &DomainError{
		Code:    "NO_ROOM_AVAILABLE",
		Message: "no rooms available for the common slots",
	}

	// INVALID_INPUT
	ErrInvalidInput = &DomainError{
		Code:    "INVALID_INPUT",
		Message: "invalid input",
	}
)
