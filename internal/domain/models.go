package domain

import (
	"time"

	"github.com/google/uuid"
)

type ChangeRequest struct {
	Id               uuid.UUID `json:"id"`
	CourseEventId    uuid.UUID `json:"course_event_id"`
	InitiatorId      uuid.UUID `json:"initiator_id"`
	RecipientId      uuid.UUID `json:"recipient_id"`
	Status           Status    `json:"status"`
	Reason           string    `json:"reason"`
	RoomRequirements string    `json:"room_requirements"`
	CreatedAt        time.Time `json:"created_at"`
}

type Proposal struct {
	Id              uuid.UUID `json:"id"`
	ChangeRequestId uuid.UUID `json:"change_request_id"`
	UserId          uuid.UUID `json:"user_id"`
	Day             time.Time `json:"day"`
	TimeSlotId      int       `json:"time_slot_id"`
	CreatedAt       time.Time `json:"-"`
}

type CourseEvent struct {
	Id            uuid.UUID `json:"id"`
	CourseName    string    `json:"course_name"`
	RoomId        uuid.UUID `json:"room_id"`
	LecturerId    uuid.UUID `json:"lecturer_id"`
	GroupLeaderId uuid.UUID `json:"group_leader_id"`
	Day           time.Time `json:"day"`
	TimeSlotId    int       `json:"time_slot_id"`
	Canceled      bool      `json:"canceled"`
	CreatedAt     time.Time `json:"-"`
}

type Room struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Equipment string    `json:"equipment"`
	CreatedAt time.Time `json:"-"`
}

type Recommendation struct {
	Id              uuid.UUID `json:"id"`
	ChangeRequestId uuid.UUID `json:"change_request_id"`
	Day             time.Time `json:"day"`
	TimeSlotId      int       `json:"time_slot_id"`
	RoomId          uuid.UUID `json:"room_id"`
	CreatedAt       time.Time `json:"-"`
}

// sameDay compares proposals at date-only granularity.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
