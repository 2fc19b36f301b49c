package request

type GenerateRecommendationsRequest struct {
	ChangeRequestId string `json:"change_request_id"`
}

type ListRecommendationsRequest struct {
	ChangeRequestId string `json:"change_request_id"`
}

type ClearRecommendationsRequest struct {
	ChangeRequestId string `json:"change_request_id"`
}
