package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"monastery360/models"
	"monastery360/services/delivery"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultPlannerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultPlannerService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

// update applies fn to the stored session and stamps UpdatedAt.
func (s *DefaultPlannerService) update(ctx context.Context, sessionID string, fn UpdateFunc) (*models.WizardState, error) {
	if sessionID == "" {
		return nil, newSessionNotFound(sessionID, ErrSessionNotFound)
	}
	state, err := s.Store.Update(ctx, sessionID, func(cur models.WizardState) (models.WizardState, error) {
		next, err := fn(cur)
		if err != nil {
			return cur, err
		}
		next.UpdatedAt = s.now()
		return next, nil
	})
	if errors.Is(err, ErrSessionNotFound) {
		return nil, newSessionNotFound(sessionID, err)
	}
	return state, err
}

// StartSession creates a fresh planner session at step 1.
func (s *DefaultPlannerService) StartSession(ctx context.Context) (*models.WizardState, error) {
	state := NewWizardState(uuid.New().String(), s.now())
	if err := s.Store.Create(ctx, state); err != nil {
		s.logger().Error("StartSession: failed to store session", zap.Error(err))
		return nil, fmt.Errorf("failed to start planner session: %w", err)
	}
	sessionsStarted.Inc()
	s.logger().Info("StartSession: planner session started", zap.String("sessionId", state.SessionID))
	return &state, nil
}

func (s *DefaultPlannerService) GetSession(ctx context.Context, sessionID string) (*models.WizardState, error) {
	state, err := s.Store.Get(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, newSessionNotFound(sessionID, err)
	}
	return state, err
}

// EndSession tears the session down. Searches or submissions still running
// for it will find it gone and drop their results.
func (s *DefaultPlannerService) EndSession(ctx context.Context, sessionID string) error {
	err := s.Store.Delete(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return newSessionNotFound(sessionID, err)
	}
	if err == nil {
		s.logger().Info("EndSession: planner session ended", zap.String("sessionId", sessionID))
	}
	return err
}

func (s *DefaultPlannerService) ToggleMonastery(ctx context.Context, sessionID, monasteryID string) (*models.WizardState, error) {
	if _, err := s.Catalog.MonasteryByID(monasteryID); err != nil {
		return nil, NewValidationError("monasteryId", fmt.Sprintf("unknown monastery %q", monasteryID))
	}
	return s.update(ctx, sessionID, func(cur models.WizardState) (models.WizardState, error) {
		return ToggleMonastery(cur, monasteryID)
	})
}

func (s *DefaultPlannerService) NextStep(ctx context.Context, sessionID string) (*models.WizardState, error) {
	return s.update(ctx, sessionID, Next)
}

func (s *DefaultPlannerService) PreviousStep(ctx context.Context, sessionID string) (*models.WizardState, error) {
	return s.update(ctx, sessionID, Back)
}

// SearchFlights issues q, waits for the provider and applies the offers if q
// is still the latest flight query of a live session.
func (s *DefaultPlannerService) SearchFlights(ctx context.Context, sessionID string, q models.FlightQuery) (*models.WizardState, error) {
	log := s.logger().With(zap.String("sessionId", sessionID), zap.String("category", "flights"))

	var gen uint64
	var issueErr error
	state, err := s.update(ctx, sessionID, func(cur models.WizardState) (models.WizardState, error) {
		next, g, err := IssueFlightSearch(cur, q)
		if err != nil && !IsCode(err, CodeInvalidQuery) {
			return cur, err
		}
		gen, issueErr = g, err
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	if issueErr != nil {
		searchOutcomes.WithLabelValues("flights", "invalid").Inc()
		return state, issueErr
	}

	log.Debug("SearchFlights: search issued", zap.Uint64("generation", gen), zap.String("origin", q.Origin))
	offers, searchErr := s.Flights.SearchFlights(ctx, q)

	state, err = s.applyResults(context.WithoutCancel(ctx), sessionID, func(cur models.WizardState) (models.WizardState, bool) {
		return ApplyFlightResults(cur, gen, offers, searchErr)
	})
	applied := !errors.Is(err, errStaleResult)
	if !applied {
		err = nil
	}
	return s.finishSearch(log, "flights", sessionID, gen, state, err, applied, searchErr)
}

// SearchHotels is SearchFlights for the hotel slot.
func (s *DefaultPlannerService) SearchHotels(ctx context.Context, sessionID string, q models.HotelQuery) (*models.WizardState, error) {
	log := s.logger().With(zap.String("sessionId", sessionID), zap.String("category", "hotels"))

	var gen uint64
	var issueErr error
	state, err := s.update(ctx, sessionID, func(cur models.WizardState) (models.WizardState, error) {
		next, g, err := IssueHotelSearch(cur, q)
		if err != nil && !IsCode(err, CodeInvalidQuery) {
			return cur, err
		}
		gen, issueErr = g, err
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	if issueErr != nil {
		searchOutcomes.WithLabelValues("hotels", "invalid").Inc()
		return state, issueErr
	}

	log.Debug("SearchHotels: search issued", zap.Uint64("generation", gen), zap.String("location", q.Location))
	offers, searchErr := s.Hotels.SearchHotels(ctx, q)

	state, err = s.applyResults(context.WithoutCancel(ctx), sessionID, func(cur models.WizardState) (models.WizardState, bool) {
		return ApplyHotelResults(cur, gen, offers, searchErr)
	})
	applied := !errors.Is(err, errStaleResult)
	if !applied {
		err = nil
	}
	return s.finishSearch(log, "hotels", sessionID, gen, state, err, applied, searchErr)
}

// errStaleResult aborts the store write for a result that no longer applies.
var errStaleResult = errors.New("search result superseded")

// applyResults stores a search outcome. A result that does not apply leaves
// the session untouched, including its TTL, and the current state is
// returned together with errStaleResult.
func (s *DefaultPlannerService) applyResults(ctx context.Context, sessionID string, apply func(models.WizardState) (models.WizardState, bool)) (*models.WizardState, error) {
	state, err := s.update(ctx, sessionID, func(cur models.WizardState) (models.WizardState, error) {
		next, ok := apply(cur)
		if !ok {
			return cur, errStaleResult
		}
		return next, nil
	})
	if !errors.Is(err, errStaleResult) {
		return state, err
	}
	state, err = s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return state, errStaleResult
}

func (s *DefaultPlannerService) finishSearch(log *zap.Logger, category, sessionID string, gen uint64, state *models.WizardState, err error, applied bool, searchErr error) (*models.WizardState, error) {
	if err != nil {
		if IsCode(err, CodeSessionNotFound) {
			log.Info("discarding search results for ended session", zap.Uint64("generation", gen))
			return nil, newSessionEnded(sessionID)
		}
		return nil, err
	}
	if !applied {
		searchOutcomes.WithLabelValues(category, "stale").Inc()
		log.Debug("discarding superseded search results", zap.Uint64("generation", gen))
		return state, nil
	}
	if searchErr != nil {
		searchOutcomes.WithLabelValues(category, "failed").Inc()
		log.Warn("search failed", zap.Uint64("generation", gen), zap.Error(searchErr))
		return state, newSearchFailure(category, searchErr)
	}
	searchOutcomes.WithLabelValues(category, "applied").Inc()
	return state, nil
}

func (s *DefaultPlannerService) SelectFlight(ctx context.Context, sessionID, offerID string) (*models.WizardState, error) {
	return s.update(ctx, sessionID, func(cur models.WizardState) (models.WizardState, error) {
		return SelectFlight(cur, offerID)
	})
}

func (s *DefaultPlannerService) SelectHotel(ctx context.Context, sessionID, offerID string) (*models.WizardState, error) {
	return s.update(ctx, sessionID, func(cur models.WizardState) (models.WizardState, error) {
		return SelectHotel(cur, offerID)
	})
}

func (s *DefaultPlannerService) SelectPackage(ctx context.Context, sessionID, packageID string) (*models.WizardState, error) {
	if _, err := s.Catalog.PackageByID(packageID); err != nil {
		return nil, NewValidationError("packageId", fmt.Sprintf("unknown package %q", packageID))
	}
	return s.update(ctx, sessionID, func(cur models.WizardState) (models.WizardState, error) {
		return SelectPackage(cur, packageID)
	})
}

func (s *DefaultPlannerService) UpdateVisitor(ctx context.Context, sessionID string, v models.VisitorInfo) (*models.WizardState, error) {
	return s.update(ctx, sessionID, func(cur models.WizardState) (models.WizardState, error) {
		return UpdateVisitor(cur, v)
	})
}

// Submit sends the itinerary. The session is Submitting for the duration of
// the delivery call, which rejects a second submit, and always leaves that
// state again: Confirmed on success, EnterDetails on failure.
func (s *DefaultPlannerService) Submit(ctx context.Context, sessionID string) (*models.WizardState, error) {
	log := s.logger().With(zap.String("sessionId", sessionID))

	state, err := s.update(ctx, sessionID, BeginSubmission)
	if err != nil {
		if IsCode(err, CodeValidation) || IsCode(err, CodeSubmissionInProgress) {
			submissionOutcomes.WithLabelValues("rejected").Inc()
		}
		return nil, err
	}

	finishCtx := context.WithoutCancel(ctx)
	itinerary, err := BuildItinerary(*state, s.Catalog, uuid.New().String(), s.now())
	if err != nil {
		log.Error("Submit: failed to build itinerary", zap.Error(err))
		return s.failSubmission(finishCtx, sessionID, err, newSubmissionFailure("could not assemble your itinerary", err))
	}

	email := state.Selections.Visitor.Email
	receipt, sendErr := s.Delivery.SendItinerary(ctx, email, itinerary)
	if sendErr == nil && (receipt == nil || !receipt.Success) {
		msg := "delivery was not accepted"
		if receipt != nil && receipt.Message != "" {
			msg = receipt.Message
		}
		sendErr = errors.New(msg)
	}
	if sendErr != nil {
		log.Warn("Submit: itinerary delivery failed", zap.Error(sendErr))
		if errors.Is(sendErr, delivery.ErrInvalidRecipient) {
			return s.failSubmission(finishCtx, sessionID, sendErr, newInvalidRecipient(sendErr))
		}
		return s.failSubmission(finishCtx, sessionID, sendErr,
			newSubmissionFailure("there was a problem sending your itinerary, please try again", sendErr))
	}

	confirmed, err := s.update(finishCtx, sessionID, func(cur models.WizardState) (models.WizardState, error) {
		return CompleteSubmission(cur, itinerary)
	})
	if err != nil {
		if IsCode(err, CodeSessionNotFound) {
			log.Warn("Submit: itinerary delivered but session ended", zap.String("itineraryId", itinerary.ID))
			return nil, newSessionEnded(sessionID)
		}
		return nil, err
	}

	submissionOutcomes.WithLabelValues("confirmed").Inc()
	log.Info("Submit: itinerary confirmed", zap.String("itineraryId", itinerary.ID), zap.String("message", receipt.Message))
	s.afterConfirmation(finishCtx, log, itinerary)
	return confirmed, nil
}

func (s *DefaultPlannerService) failSubmission(ctx context.Context, sessionID string, cause error, result error) (*models.WizardState, error) {
	submissionOutcomes.WithLabelValues("failed").Inc()
	var pe *PlannerError
	reason := cause.Error()
	if errors.As(result, &pe) {
		reason = pe.Message
	}
	state, err := s.update(ctx, sessionID, func(cur models.WizardState) (models.WizardState, error) {
		return FailSubmission(cur, reason)
	})
	if err != nil {
		if IsCode(err, CodeSessionNotFound) {
			return nil, newSessionEnded(sessionID)
		}
		return nil, err
	}
	return state, result
}

// afterConfirmation archives the itinerary and queues its reminder. Neither
// can undo a confirmation, so failures are only logged.
func (s *DefaultPlannerService) afterConfirmation(ctx context.Context, log *zap.Logger, itinerary models.Itinerary) {
	if s.Archive != nil {
		if _, err := s.Archive.Create(ctx, itinerary); err != nil {
			log.Error("Submit: failed to archive itinerary", zap.String("itineraryId", itinerary.ID), zap.Error(err))
		}
	}
	if s.Reminders != nil && itinerary.TravelDate != "" {
		if err := s.Reminders.ScheduleVisitReminder(ctx, itinerary); err != nil {
			log.Warn("Submit: failed to schedule visit reminder", zap.String("itineraryId", itinerary.ID), zap.Error(err))
		}
	}
}

// Reset is "create another plan": back to step 1 with empty selections.
func (s *DefaultPlannerService) Reset(ctx context.Context, sessionID string) (*models.WizardState, error) {
	return s.update(ctx, sessionID, func(cur models.WizardState) (models.WizardState, error) {
		return Reset(cur, s.now())
	})
}
