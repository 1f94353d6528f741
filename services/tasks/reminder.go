package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"monastery360/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeVisitReminder = "itinerary:reminder"

// Reminders go out at this hour (UTC) on the day before the visit.
const reminderHourUTC = 9

func NewVisitReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeVisitReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.ItineraryID),
		asynq.MaxRetry(5),
	}
	return task, opts, nil
}

// ReminderTime is when the reminder for a visit on travelDate fires.
func ReminderTime(travelDate string) (time.Time, error) {
	day, err := time.Parse(models.DateLayout, travelDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid travel date %q: %w", travelDate, err)
	}
	return day.AddDate(0, 0, -1).Add(reminderHourUTC * time.Hour), nil
}

// Enqueuer is the part of *asynq.Client the scheduler uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// ReminderScheduler queues visit reminders for confirmed itineraries.
type ReminderScheduler struct {
	Client Enqueuer
	Logger *zap.Logger
	Now    func() time.Time
}

func NewReminderScheduler(client Enqueuer, logger *zap.Logger) *ReminderScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderScheduler{Client: client, Logger: logger, Now: time.Now}
}

// ScheduleVisitReminder enqueues the reminder for itinerary. Visits without a
// date, or whose reminder time has already passed, get none.
func (s *ReminderScheduler) ScheduleVisitReminder(ctx context.Context, itinerary models.Itinerary) error {
	if itinerary.TravelDate == "" {
		return nil
	}
	fireAt, err := ReminderTime(itinerary.TravelDate)
	if err != nil {
		return err
	}
	if !fireAt.After(s.Now()) {
		s.Logger.Debug("visit too close for a reminder",
			zap.String("itineraryId", itinerary.ID),
			zap.String("travelDate", itinerary.TravelDate))
		return nil
	}

	task, opts, err := NewVisitReminderTask(models.ReminderPayload{
		ItineraryID: itinerary.ID,
		Email:       itinerary.Visitor.Email,
		VisitDate:   itinerary.TravelDate,
	}, fireAt)
	if err != nil {
		return fmt.Errorf("failed to build reminder task: %w", err)
	}

	info, err := s.Client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	s.Logger.Info("visit reminder scheduled",
		zap.String("itineraryId", itinerary.ID),
		zap.String("taskId", info.ID),
		zap.Time("fireAt", fireAt))
	return nil
}
