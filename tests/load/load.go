package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	baseURL      = "http://localhost:8080"
	targetRPS    = 5
	testDuration = 2 * time.Minute
)

var rng *rand.Rand

type CreateChangeRequestBody struct {
	CourseEventId    string `json:"course_event_id"`
	InitiatorId      string `json:"initiator_id"`
	Reason           string `json:"reason"`
	RoomRequirements string `json:"room_requirements"`
}

type CreateProposalBody struct {
	ChangeRequestId string `json:"change_request_id"`
	UserId          string `json:"user_id"`
	Day             string `json:"day"`
	TimeSlotId      int    `json:"time_slot_id"`
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run load.go <scenario>")
		fmt.Println("Scenarios: health, calendar, tasks, negotiation, all")
		os.Exit(1)
	}

	scenario := os.Args[1]
	rng = rand.New(rand.NewSource(time.Now().UnixNano()))

	var metrics vegeta.Metrics
	var err error

	switch scenario {
	case "health":
		metrics, err = testHealth()
	case "calendar":
		metrics, err = testCalendar()
	case "tasks":
		metrics, err = testTasks()
	case "negotiation":
		metrics, err = testNegotiation()
	case "all":
		metrics, err = testAll()
	default:
		fmt.Printf("Unknown scenario: %s\n", scenario)
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	printMetrics(metrics)
}

func testHealth() (vegeta.Metrics, error) {
	targeter := vegeta.NewStaticTargeter(vegeta.Target{
		Method: "GET",
		URL:    baseURL + "/health",
	})

	return runAttack(targeter, "Health Check")
}

func testCalendar() (vegeta.Metrics, error) {
	day := randomDay()

	targeter := vegeta.NewStaticTargeter(
		vegeta.Target{
			Method: "GET",
			URL:    baseURL + "/calendar/slots?day=" + day,
		},
		vegeta.Target{
			Method: "GET",
			URL:    baseURL + "/calendar/events?from=" + day + "&to=" + day,
		},
	)

	return runAttack(targeter, "Calendar Views")
}

func testTasks() (vegeta.Metrics, error) {
	userId := uuid.New().String()

	targeter := vegeta.NewStaticTargeter(
		vegeta.Target{
			Method: "GET",
			URL:    baseURL + "/tasks?user_id=" + userId,
		},
		vegeta.Target{
			Method: "GET",
			URL:    baseURL + "/changeRequests/list?user_id=" + userId,
		},
	)

	return runAttack(targeter, "Task Projection")
}

func testNegotiation() (vegeta.Metrics, error) {
	changeRequestId := uuid.New().String()
	userId := uuid.New().String()

	targeter := vegeta.NewStaticTargeter(
		vegeta.Target{
			Method: "POST",
			URL:    baseURL + "/changeRequests/create",
			Body:   createChangeRequestBody(),
			Header: http.Header{
				"Content-Type": []string{"application/json"},
			},
		},
		vegeta.Target{
			Method: "POST",
			URL:    baseURL + "/proposals/create",
			Body:   createProposalBody(changeRequestId, userId),
			Header: http.Header{
				"Content-Type": []string{"application/json"},
			},
		},
		vegeta.Target{
			Method: "GET",
			URL:    baseURL + "/proposals/common?change_request_id=" + changeRequestId + "&user_id=" + userId,
		},
	)

	return runAttack(targeter, "Negotiation Flow")
}

func testAll() (vegeta.Metrics, error) {
	changeRequestId := uuid.New().String()
	userId := uuid.New().String()
	day := randomDay()

	targeter := vegeta.NewStaticTargeter(
		vegeta.Target{
			Method: "GET",
			URL:    baseURL + "/health",
		},
		vegeta.Target{
			Method: "GET",
			URL:    baseURL + "/tasks?user_id=" + userId,
		},
		vegeta.Target{
			Method: "GET",
			URL:    baseURL + "/calendar/slots?day=" + day,
		},
		vegeta.Target{
			Method: "POST",
			URL:    baseURL + "/proposals/create",
			Body:   createProposalBody(changeRequestId, userId),
			Header: http.Header{
				"Content-Type": []string{"application/json"},
			},
		},
		vegeta.Target{
			Method: "GET",
			URL:    baseURL + "/proposals/common?change_request_id=" + changeRequestId + "&user_id=" + userId,
		},
	)

	return runAttack(targeter, "All Endpoints")
}

func runAttack(targeter vegeta.Targeter, name string) (vegeta.Metrics, error) {
	rate := vegeta.Rate{Freq: targetRPS, Per: time.Second}
	attacker := vegeta.NewAttacker()

	var metrics vegeta.Metrics
	for res := range attacker.Attack(targeter, rate, testDuration, name) {
		metrics.Add(res)
	}
	metrics.Close()

	return metrics, nil
}

func randomDay() string {
	base := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, rng.Intn(90)).Format("2006-01-02")
}

func createChangeRequestBody() []byte {
	req := CreateChangeRequestBody{
		CourseEventId:    uuid.New().String(),
		InitiatorId:      uuid.New().String(),
		Reason:           "load test",
		RoomRequirements: "capacity > 30",
	}
	body, _ := json.Marshal(req)
	return body
}

func createProposalBody(changeRequestId, userId string) []byte {
	req := CreateProposalBody{
		ChangeRequestId: changeRequestId,
		UserId:          userId,
		Day:             randomDay(),
		TimeSlotId:      1 + rng.Intn(7),
	}
	body, _ := json.Marshal(req)
	return body
}

func printMetrics(m vegeta.Metrics) {
	fmt.Println("=== Load Test Results ===")
	fmt.Printf("Requests:      %d\n", m.Requests)
	fmt.Printf("Rate:          %.2f req/s\n", m.Rate)
	fmt.Printf("Success:       %.2f%%\n", m.Success*100)
	fmt.Printf("Latency mean:  %s\n", m.Latencies.Mean)
	fmt.Printf("Latency p50:   %s\n", m.Latencies.P50)
	fmt.Printf("Latency p95:   %s\n", m.Latencies.P95)
	fmt.Printf("Latency p99:   %s\n", m.Latencies.P99)
	fmt.Printf("Latency max:   %s\n", m.Latencies.Max)
	fmt.Printf("Status codes:  %v\n", m.StatusCodes)
	if len(m.Errors) > 0 {
		fmt.Printf("Errors:        %v\n", m.Errors)
	}
}
