package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var capacityPattern = regexp.MustCompile(`capacity\s*>\s*(\d+)`)

// RoomRequirements is the parsed form of the free-text constraint string
// attached to a change request, e.g. "projector, capacity > 30".
type RoomRequirements struct {
	Projector   bool
	MinCapacity int
}

// ParseRoomRequirements extracts the constraints understood by the room
// recommender. Unknown text is ignored rather than rejected.
func ParseRoomRequirements(raw string) RoomRequirements {
	lowered := strings.ToLower(raw)

	req := RoomRequirements{
		Projector: strings.Contains(lowered, "projector"),
	}
	if m := capacityPattern.FindStringSubmatch(lowered); m != nil {
		// regexp guarantees digits only
		n, _ := strconv.Atoi(m[1])
		req.MinCapacity = n
	}
	return req
}

// Matches reports whether the room satisfies the parsed requirements.
func (r RoomRequirements) Matches(room *Room) bool {
	if r.Projector && !strings.Contains(strings.ToLower(room.Equipment), "projector") {
		return false
	}
	if room.Capacity < r.MinCapacity {
		return false
	}
	return true
}
