package request

type DaySlotsRequest struct {
	Day string `json:"day"`
}

type CalendarEventsRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}
