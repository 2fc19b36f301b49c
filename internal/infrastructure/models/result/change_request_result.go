package result

import (
	"time"

	"github.com/mzielinska/timetable-change-backend/internal/domain"
)

// AcceptMatchResult carries the resolved request together with the accepted
// (day, slot) pair the course event was moved to.
type AcceptMatchResult struct {
	Request    *domain.ChangeRequest
	Day        time.Time
	TimeSlotId int
}
