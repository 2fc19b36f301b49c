package domain

import "github.com/google/uuid"

// TaskKind classifies what a participant still has to do on a request.
type TaskKind string

const (
	// TaskNeedsAvailability - the participant has not proposed any slot yet.
	TaskNeedsAvailability TaskKind = "NEEDS_AVAILABILITY"
	// TaskHasCommonSlot - at least one own proposal is matched by the other side.
	TaskHasCommonSlot TaskKind = "HAS_COMMON_SLOT"
	// TaskWaiting - own proposals exist but nothing matches yet.
	TaskWaiting TaskKind = "WAITING"
)

type Task struct {
	ChangeRequestId uuid.UUID `json:"change_request_id"`
	CourseEventId   uuid.UUID `json:"course_event_id"`
	Kind            TaskKind  `json:"kind"`
}

// DeriveTasks projects the participant's pending work out of their change
// requests and the proposals grouped per request. One task per request that
// is still PENDING; closed requests produce nothing. Output keeps the input
// request order.
//
// Classification precedence: missing own availability dominates, then a
// found common slot, otherwise the participant is waiting on the other side.
func DeriveTasks(userId uuid.UUID, requests []*ChangeRequest, proposalsByRequest map[uuid.UUID][]*Proposal) []*Task {
	var tasks []*Task
	for _, cr := range requests {
		if cr.Status != StatusPending {
			continue
		}

		proposals := proposalsByRequest[cr.Id]
		var own int
		for _, p := range proposals {
			if p.UserId == userId {
				own++
			}
		}

		kind := TaskWaiting
		switch {
		case own == 0:
			kind = TaskNeedsAvailability
		case len(CommonProposals(proposals, userId)) > 0:
			kind = TaskHasCommonSlot
		}

		tasks = append(tasks, &Task{
			ChangeRequestId: cr.Id,
			CourseEventId:   cr.CourseEventId,
			Kind:            kind,
		})
	}
	return tasks
}
