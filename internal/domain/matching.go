package domain

import "github.com/google/uuid"

// CommonProposals returns the proposals submitted by selfId that coincide
// exactly (same day, same slot index) with a proposal from any other
// participant on the same change request. Each own proposal appears at most
// once, in submission order; one confirming counterpart is enough.
//
// The collections involved are tiny (a handful of proposals per participant),
// so the nested comparison is deliberate.
func CommonProposals(proposals []*Proposal, selfId uuid.UUID) []*Proposal {
	var mine, others []*Proposal
	for _, p := range proposals {
		if p.UserId == selfId {
			mine = append(mine, p)
		} else {
			others = append(others, p)
		}
	}

	var common []*Proposal
	for _, p := range mine {
		for _, q := range others {
			if p.TimeSlotId == q.TimeSlotId && sameDay(p.Day, q.Day) {
				common = append(common, p)
				break
			}
		}
	}
	return common
}
