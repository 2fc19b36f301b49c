package response

type ProposalResponse struct {
	Id              string `json:"id"`
	ChangeRequestId string `json:"change_request_id"`
	UserId          string `json:"user_id"`
	Day             string `json:"day"`
	TimeSlotId      int    `json:"time_slot_id"`
}

type ListProposalsResponse struct {
	ChangeRequestId string              `json:"change_request_id"`
	Proposals       []*ProposalResponse `json:"proposals"`
}

type CommonProposalsResponse struct {
	ChangeRequestId string              `json:"change_request_id"`
	UserId          string              `json:"user_id"`
	Common          []*ProposalResponse `json:"common_proposals"`
}
