package request

type CreateChangeRequestRequest struct {
	CourseEventId    string `json:"course_event_id"`
	InitiatorId      string `json:"initiator_id"`
	Reason           string `json:"reason"`
	RoomRequirements string `json:"room_requirements"`
}

type GetChangeRequestRequest struct {
	ChangeRequestId string `json:"change_request_id"`
}

type ListChangeRequestsRequest struct {
	UserId string `json:"user_id"`
}

type AcceptMatchRequest struct {
	ChangeRequestId string `json:"change_request_id"`
	ProposalId      string `json:"proposal_id"`
}

type CancelChangeRequestRequest struct {
	ChangeRequestId string `json:"change_request_id"`
}
