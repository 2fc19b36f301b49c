package response

import "time"

type ChangeRequestResponse struct {
	Id               string    `json:"id"`
	CourseEventId    string    `json:"course_event_id"`
	InitiatorId      string    `json:"initiator_id"`
	RecipientId      string    `json:"recipient_id"`
	Status           string    `json:"status"`
	Reason           string    `json:"reason"`
	RoomRequirements string    `json:"room_requirements"`
	CreatedAt        time.Time `json:"created_at"`
}

type ListChangeRequestsResponse struct {
	UserId   string                   `json:"user_id"`
	Requests []*ChangeRequestResponse `json:"change_requests"`
}

type AcceptMatchResponse struct {
	ChangeRequestId string `json:"change_request_id"`
	Status          string `json:"status"`
	Day             string `json:"day"`
	TimeSlotId      int    `json:"time_slot_id"`
}
