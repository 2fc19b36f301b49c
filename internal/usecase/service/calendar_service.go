package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mzielinska/timetable-change-backend/internal/domain"
	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/request"
	"github.com/mzielinska/timetable-change-backend/internal/transport/dto/response"
	"go.uber.org/zap"
)

var calendarEventsError = errors.New("list calendar events error")

type CourseEventLister interface {
	ListByRange(ctx context.Context, from, to time.Time) ([]*domain.CourseEvent, error)
}

type CalendarService struct {
	events CourseEventLister
	slots  *domain.SlotTable
	log    *zap.Logger
}

func NewCalendarService(events CourseEventLister, slots *domain.SlotTable, log *zap.Logger) *CalendarService {
	return &CalendarService{
		events: events,
		slots:  slots,
		log:    log,
	}
}

// DaySlots renders the configured slot grid onto one calendar day.
func (s *CalendarService) DaySlots(ctx context.Context, req *request.DaySlotsRequest) (*response.DaySlotsResponse, error) {
	day, err := parseDay(req.Day, "day")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}

	slots := make([]*response.SlotWindowResponse, 0, s.slots.Len())
	for id := 1; id <= s.slots.Len(); id++ {
		start, end := s.slots.Window(day, id)
		slots = append(slots, &response.SlotWindowResponse{
			TimeSlotId: id,
			StartsAt:   start,
			EndsAt:     end,
		})
	}

	return &response.DaySlotsResponse{
		Day:   req.Day,
		Slots: slots,
	}, nil
}

// Events lists the course events of a period with concrete start/end times.
// Events carrying a bad slot id come back with the zero window instead of
// failing the whole view.
func (s *CalendarService) Events(ctx context.Context, req *request.CalendarEventsRequest) (*response.CalendarEventsResponse, error) {
	from, err := parseDay(req.From, "from")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}
	to, err := parseDay(req.To, "to")
	if err != nil {
		return nil, WrapError(ErrInvalidInput, err)
	}
	if to.Before(from) {
		return nil, WrapError(ErrInvalidInput, fmt.Errorf("to %s precedes from %s", req.To, req.From))
	}

	events, err := s.events.ListByRange(ctx, from, to)
	if err != nil {
		s.log.Error("failed to list course events",
			zap.String("from", req.From),
			zap.String("to", req.To),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", calendarEventsError, err)
	}

	items := make([]*response.CalendarEventResponse, 0, len(events))
	for _, e := range events {
		start, end := s.slots.Window(e.Day, e.TimeSlotId)
		items = append(items, &response.CalendarEventResponse{
			Id:         e.Id.String(),
			CourseName: e.CourseName,
			RoomId:     e.RoomId.String(),
			Day:        formatDay(e.Day),
			TimeSlotId: e.TimeSlotId,
			StartsAt:   start,
			EndsAt:     end,
			Canceled:   e.Canceled,
		})
	}

	s.log.Info("calendar events listed",
		zap.String("from", req.From),
		zap.String("to", req.To),
		zap.Int("event_count", len(items)),
	)

	return &response.CalendarEventsResponse{
		From:   req.From,
		To:     req.To,
		Events: items,
	}, nil
}
