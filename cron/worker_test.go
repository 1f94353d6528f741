package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	itineraryRepo "monastery360/database/repository/itinerary"
	"monastery360/models"
	"monastery360/services/delivery"
	"monastery360/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mapArchive map[string]models.Itinerary

func (m mapArchive) GetByID(_ context.Context, id string) (*models.Itinerary, error) {
	it, ok := m[id]
	if !ok {
		return nil, itineraryRepo.ErrNotFound
	}
	return &it, nil
}

type recordingSender struct {
	sentTo []string
	err    error
}

func (r *recordingSender) SendItinerary(_ context.Context, email string, it models.Itinerary) (*models.DeliveryReceipt, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.sentTo = append(r.sentTo, email)
	return &models.DeliveryReceipt{Success: true}, nil
}

func reminderTask(t *testing.T, p models.ReminderPayload) *asynq.Task {
	t.Helper()
	task, _, err := tasks.NewVisitReminderTask(p, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return task
}

func TestHandleVisitReminder_Resends(t *testing.T) {
	archive := mapArchive{"it-1": {ID: "it-1", Visitor: models.VisitorInfo{Email: "tenzin@example.com"}}}
	sender := &recordingSender{}
	h := HandleVisitReminder(archive, sender, zap.NewNop())

	err := h(context.Background(), reminderTask(t, models.ReminderPayload{ItineraryID: "it-1", VisitDate: "2026-11-02"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"tenzin@example.com"}, sender.sentTo)
}

func TestHandleVisitReminder_SkipsRetryWhenGone(t *testing.T) {
	h := HandleVisitReminder(mapArchive{}, &recordingSender{}, zap.NewNop())

	err := h(context.Background(), reminderTask(t, models.ReminderPayload{ItineraryID: "missing"}))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = h(context.Background(), asynq.NewTask(tasks.TypeVisitReminder, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleVisitReminder_RetriesDeliveryFailures(t *testing.T) {
	archive := mapArchive{"it-1": {ID: "it-1"}}

	h := HandleVisitReminder(archive, &recordingSender{err: errors.New("smtp down")}, zap.NewNop())
	err := h(context.Background(), reminderTask(t, models.ReminderPayload{ItineraryID: "it-1", Email: "a@b.io"}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)

	h = HandleVisitReminder(archive, &recordingSender{err: delivery.ErrInvalidRecipient}, zap.NewNop())
	err = h(context.Background(), reminderTask(t, models.ReminderPayload{ItineraryID: "it-1", Email: "bad"}))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
