package request

type CreateProposalRequest struct {
	ChangeRequestId string `json:"change_request_id"`
	UserId          string `json:"user_id"`
	Day             string `json:"day"`
	TimeSlotId      int    `json:"time_slot_id"`
}

type ListProposalsRequest struct {
	ChangeRequestId string `json:"change_request_id"`
}

type CommonProposalsRequest struct {
	ChangeRequestId string `json:"change_request_id"`
	UserId          string `json:"user_id"`
}

type WithdrawProposalRequest struct {
	ProposalId string `json:"proposal_id"`
	UserId     string `json:"user_id"`
}
