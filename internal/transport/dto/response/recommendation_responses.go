package response

type RecommendationResponse struct {
	Id              string `json:"id"`
	ChangeRequestId string `json:"change_request_id"`
	Day             string `json:"day"`
	TimeSlotId      int    `json:"time_slot_id"`
	RoomId          string `json:"room_id"`
}

type GenerateRecommendationsResponse struct {
	ChangeRequestId string `json:"change_request_id"`
	Count           int    `json:"count"`
}

type ListRecommendationsResponse struct {
	ChangeRequestId string                    `json:"change_request_id"`
	Recommendations []*RecommendationResponse `json:"recommendations"`
}
