package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"monastery360/config"
	itineraryRepo "monastery360/database/repository/itinerary"
	"monastery360/models"
	"monastery360/services/delivery"
	"monastery360/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ItineraryReader is what the reminder handler needs from the archive.
type ItineraryReader interface {
	GetByID(ctx context.Context, id string) (*models.Itinerary, error)
}

// QueueRedisOpt is the asynq connection for the reminder queue.
func QueueRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewReminderWorker builds the asynq server and mux that deliver visit
// reminders.
func NewReminderWorker(archive ItineraryReader, sender delivery.DeliveryProvider, logger *zap.Logger) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		QueueRedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeVisitReminder, HandleVisitReminder(archive, sender, logger))
	return srv, mux
}

// RunReminderWorker serves reminder tasks until ctx is cancelled.
func RunReminderWorker(ctx context.Context, archive ItineraryReader, sender delivery.DeliveryProvider, logger *zap.Logger) error {
	srv, mux := NewReminderWorker(archive, sender, logger)

	go monitorRedisConnection(ctx, logger)

	logger.Info("[ReminderWorker] starting async worker")
	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("failed to start reminder worker: %w", err)
	}
	<-ctx.Done()
	logger.Info("[ReminderWorker] shutting down")
	srv.Shutdown()
	return nil
}

// HandleVisitReminder re-sends the archived itinerary ahead of the visit.
func HandleVisitReminder(archive ItineraryReader, sender delivery.DeliveryProvider, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("[ReminderHandler] invalid payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		itinerary, err := archive.GetByID(ctx, p.ItineraryID)
		if err != nil {
			if errors.Is(err, itineraryRepo.ErrNotFound) {
				logger.Warn("[ReminderHandler] itinerary no longer archived", zap.String("itineraryId", p.ItineraryID))
				return fmt.Errorf("itinerary %s: %w", p.ItineraryID, asynq.SkipRetry)
			}
			return err
		}

		email := p.Email
		if email == "" {
			email = itinerary.Visitor.Email
		}
		logger.Info("[ReminderHandler] sending visit reminder",
			zap.String("itineraryId", p.ItineraryID),
			zap.String("visitDate", p.VisitDate))

		receipt, err := sender.SendItinerary(ctx, email, *itinerary)
		if err != nil {
			if errors.Is(err, delivery.ErrInvalidRecipient) {
				return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
			}
			logger.Error("[ReminderHandler] failed to send reminder", zap.Error(err))
			return err
		}
		if receipt == nil || !receipt.Success {
			return errors.New("reminder delivery was not accepted")
		}
		return nil
	}
}

// monitorRedisConnection pings the queue Redis periodically to surface
// failures at runtime.
func monitorRedisConnection(ctx context.Context, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				logger.Warn("[ReminderWorker] Redis connection lost", zap.Error(err))
			}
		}
	}
}
