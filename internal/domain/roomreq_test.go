package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRoomRequirements(t *testing.T) {
	req := ParseRoomRequirements("Projector, capacity > 30")

	assert.True(t, req.Projector)
	assert.Equal(t, 30, req.MinCapacity)
}

func TestParseRoomRequirements_EmptyAndUnknownText(t *testing.T) {
	assert.Equal(t, RoomRequirements{}, ParseRoomRequirements(""))
	assert.Equal(t, RoomRequirements{}, ParseRoomRequirements("ground floor please"))
}

func TestRoomRequirements_Matches(t *testing.T) {
	req := ParseRoomRequirements("projector, capacity > 25")

	assert.True(t, req.Matches(&Room{Capacity: 40, Equipment: "Projector, whiteboard"}))
	assert.False(t, req.Matches(&Room{Capacity: 40, Equipment: "whiteboard"}))
	assert.False(t, req.Matches(&Room{Capacity: 20, Equipment: "projector"}))
}

func TestRoomRequirements_NoConstraintsMatchEverything(t *testing.T) {
	req := ParseRoomRequirements("")

	assert.True(t, req.Matches(&Room{Capacity: 0, Equipment: ""}))
}
