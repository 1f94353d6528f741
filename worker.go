package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"monastery360/config"
	"monastery360/cron"
	"monastery360/database"
	itineraryRepo "monastery360/database/repository/itinerary"
	"monastery360/services/delivery"
	"monastery360/utils"
)

// runWorker serves visit reminders. It needs the itinerary archive, since a
// reminder carries only the itinerary id.
func runWorker() error {
	logger := utils.GetLogger()
	defer logger.Sync()
	cfg := config.AppConfig

	if cfg.DatabaseURL == "" {
		return errors.New("worker: DATABASE_URL is required to load itineraries")
	}
	client, err := database.InitDB(logger)
	if err != nil {
		return err
	}
	defer database.CloseDB(context.Background())

	archive, err := itineraryRepo.NewMongoItineraryRepo(client.Database(cfg.DatabaseName))
	if err != nil {
		return err
	}
	sender := delivery.NewMockEmailDelivery(cfg.DeliveryLatency(), logger.Named("delivery"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return cron.RunReminderWorker(ctx, archive, sender, logger.Named("worker"))
}
