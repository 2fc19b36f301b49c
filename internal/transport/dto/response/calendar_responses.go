package response

import "time"

type SlotWindowResponse struct {
	TimeSlotId int       `json:"time_slot_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
}

type DaySlotsResponse struct {
	Day   string                `json:"day"`
	Slots []*SlotWindowResponse `json:"slots"`
}

type CalendarEventResponse struct {
	Id         string    `json:"id"`
	CourseName string    `json:"course_name"`
	RoomId     string    `json:"room_id"`
	Day        string    `json:"day"`
	TimeSlotId int       `json:"time_slot_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Canceled   bool      `json:"canceled"`
}

type CalendarEventsResponse struct {
	From   string                   `json:"from"`
	To     string                   `json:"to"`
	Events []*CalendarEventResponse `json:"events"`
}
