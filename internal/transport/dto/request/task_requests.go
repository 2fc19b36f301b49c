package request

type ListTasksRequest struct {
	UserId string `json:"user_id"`
}
