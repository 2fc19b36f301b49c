package e2e

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The full negotiation: a lecturer opens a request, both sides propose,
// the grid matches, accepting moves the course event and closes the request.
func TestChangeRequestLifecycle(t *testing.T) {
	lecturerId := uuid.New()
	leaderId := uuid.New()
	roomId := seedRoom(t, "lifecycle-101", 80, "projector")
	eventId := seedCourseEvent(t, roomId, lecturerId, leaderId, "2024-06-03", 1)

	// lecturer opens the request
	resp, body := postJSON(t, "/changeRequests/create", map[string]any{
		"course_event_id": eventId.String(),
		"initiator_id":    lecturerId.String(),
		"reason":          "double booking",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	cr := body["change_request"].(map[string]any)
	changeRequestId := cr["id"].(string)
	assert.Equal(t, "PENDING", cr["status"])
	assert.Equal(t, leaderId.String(), cr["recipient_id"])

	// the group leader sees a task asking for availability
	resp, body = getJSON(t, "/tasks?user_id="+leaderId.String())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tasks := body["tasks"].([]any)
	require.Len(t, tasks, 1)
	assert.Equal(t, "NEEDS_AVAILABILITY", tasks[0].(map[string]any)["kind"])

	// both sides propose the same day and slot
	resp, _ = postJSON(t, "/proposals/create", map[string]any{
		"change_request_id": changeRequestId,
		"user_id":           lecturerId.String(),
		"day":               "2024-06-05",
		"time_slot_id":      3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = postJSON(t, "/proposals/create", map[string]any{
		"change_request_id": changeRequestId,
		"user_id":           leaderId.String(),
		"day":               "2024-06-05",
		"time_slot_id":      3,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	matchedProposalId := body["proposal"].(map[string]any)["id"].(string)

	// the intersection is visible to the lecturer
	resp, body = getJSON(t, "/proposals/common?change_request_id="+changeRequestId+"&user_id="+lecturerId.String())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	common := body["common_proposals"].([]any)
	require.Len(t, common, 1)
	assert.Equal(t, float64(3), common[0].(map[string]any)["time_slot_id"])

	// both sides now hold a HAS_COMMON_SLOT task
	resp, body = getJSON(t, "/tasks?user_id="+lecturerId.String())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tasks = body["tasks"].([]any)
	require.Len(t, tasks, 1)
	assert.Equal(t, "HAS_COMMON_SLOT", tasks[0].(map[string]any)["kind"])

	// accepting resolves the request
	resp, body = postJSON(t, "/changeRequests/accept", map[string]any{
		"change_request_id": changeRequestId,
		"proposal_id":       matchedProposalId,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "RESOLVED", body["status"])
	assert.Equal(t, "2024-06-05", body["day"])
	assert.Equal(t, float64(3), body["time_slot_id"])

	// the course event moved to the accepted window
	var day time.Time
	var slot int
	err := testPool.QueryRow(context.Background(),
		`SELECT day, time_slot_id FROM course_events WHERE id = $1`, eventId).Scan(&day, &slot)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-05", day.Format("2006-01-02"))
	assert.Equal(t, 3, slot)

	// a second accept loses the status race
	resp, body = postJSON(t, "/changeRequests/accept", map[string]any{
		"change_request_id": changeRequestId,
		"proposal_id":       matchedProposalId,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, body))

	// so does cancelling a resolved request
	resp, body = postJSON(t, "/changeRequests/cancel", map[string]any{
		"change_request_id": changeRequestId,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, body))

	// closed requests produce no tasks
	resp, body = getJSON(t, "/tasks?user_id="+leaderId.String())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["tasks"])
}

func TestDuplicateProposalRejected(t *testing.T) {
	lecturerId := uuid.New()
	leaderId := uuid.New()
	roomId := seedRoom(t, "duplicate-201", 40, "")
	eventId := seedCourseEvent(t, roomId, lecturerId, leaderId, "2024-06-10", 2)

	resp, body := postJSON(t, "/changeRequests/create", map[string]any{
		"course_event_id": eventId.String(),
		"initiator_id":    leaderId.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	changeRequestId := body["change_request"].(map[string]any)["id"].(string)

	proposal := map[string]any{
		"change_request_id": changeRequestId,
		"user_id":           leaderId.String(),
		"day":               "2024-06-12",
		"time_slot_id":      4,
	}

	resp, _ = postJSON(t, "/proposals/create", proposal)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body = postJSON(t, "/proposals/create", proposal)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "PROPOSAL_EXISTS", errorCode(t, body))
}

func TestProposalSlotOutOfRange(t *testing.T) {
	lecturerId := uuid.New()
	leaderId := uuid.New()
	roomId := seedRoom(t, "badslot-301", 40, "")
	eventId := seedCourseEvent(t, roomId, lecturerId, leaderId, "2024-06-10", 2)

	resp, body := postJSON(t, "/changeRequests/create", map[string]any{
		"course_event_id": eventId.String(),
		"initiator_id":    leaderId.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	changeRequestId := body["change_request"].(map[string]any)["id"].(string)

	resp, body = postJSON(t, "/proposals/create", map[string]any{
		"change_request_id": changeRequestId,
		"user_id":           leaderId.String(),
		"day":               "2024-06-12",
		"time_slot_id":      42,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_INPUT", errorCode(t, body))
}

func TestCancelPendingRequest(t *testing.T) {
	lecturerId := uuid.New()
	leaderId := uuid.New()
	roomId := seedRoom(t, "cancel-401", 40, "")
	eventId := seedCourseEvent(t, roomId, lecturerId, leaderId, "2024-06-11", 5)

	resp, body := postJSON(t, "/changeRequests/create", map[string]any{
		"course_event_id": eventId.String(),
		"initiator_id":    lecturerId.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	changeRequestId := body["change_request"].(map[string]any)["id"].(string)

	resp, body = postJSON(t, "/changeRequests/cancel", map[string]any{
		"change_request_id": changeRequestId,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CANCELLED", body["change_request"].(map[string]any)["status"])

	resp, body = postJSON(t, "/changeRequests/cancel", map[string]any{
		"change_request_id": changeRequestId,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, body))
}

func TestWithdrawProposal(t *testing.T) {
	lecturerId := uuid.New()
	leaderId := uuid.New()
	roomId := seedRoom(t, "withdraw-501", 40, "")
	eventId := seedCourseEvent(t, roomId, lecturerId, leaderId, "2024-06-13", 1)

	resp, body := postJSON(t, "/changeRequests/create", map[string]any{
		"course_event_id": eventId.String(),
		"initiator_id":    leaderId.String(),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	changeRequestId := body["change_request"].(map[string]any)["id"].(string)

	resp, body = postJSON(t, "/proposals/create", map[string]any{
		"change_request_id": changeRequestId,
		"user_id":           leaderId.String(),
		"day":               "2024-06-14",
		"time_slot_id":      2,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	proposalId := body["proposal"].(map[string]any)["id"].(string)

	// someone else cannot withdraw it
	resp, body = postJSON(t, "/proposals/withdraw", map[string]any{
		"proposal_id": proposalId,
		"user_id":     lecturerId.String(),
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, body))

	// the owner can
	resp, _ = postJSON(t, "/proposals/withdraw", map[string]any{
		"proposal_id": proposalId,
		"user_id":     leaderId.String(),
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = getJSON(t, "/proposals/list?change_request_id="+changeRequestId)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body["proposals"])
}
