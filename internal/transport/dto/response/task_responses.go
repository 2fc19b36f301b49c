package response

type TaskResponse struct {
	ChangeRequestId string `json:"change_request_id"`
	CourseEventId   string `json:"course_event_id"`
	Kind            string `json:"kind"`
}

type ListTasksResponse struct {
	UserId string          `json:"user_id"`
	Tasks  []*TaskResponse `json:"tasks"`
}
