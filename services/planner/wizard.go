package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"monastery360/models"
	"monastery360/services/delivery"
	"monastery360/services/search"
)

// Defaults pre-filled into a fresh travel step.
const (
	DefaultFlightDestination = "IXB (Bagdogra Airport)"
	DefaultHotelLocation     = "Gangtok"
	defaultStayNights        = 7
)

// The functions in this file are the wizard's transitions. Each takes a state
// value and returns a new one; the input is never modified and a rejected
// transition returns it unchanged together with the error.

// NewWizardState returns the initial state: step 1, nothing selected.
func NewWizardState(sessionID string, now time.Time) models.WizardState {
	today := now.Format(models.DateLayout)
	weekLater := now.AddDate(0, 0, defaultStayNights).Format(models.DateLayout)

	return models.WizardState{
		SessionID: sessionID,
		Step:      models.StepSelectMonasteries,
		Status:    models.StatusEditing,
		Selections: models.Selections{
			MonasteryIDs: []string{},
		},
		Flights: models.FlightSearch{
			Query: models.FlightQuery{
				Destination:   DefaultFlightDestination,
				DepartureDate: today,
				ReturnDate:    weekLater,
				Passengers:    1,
			},
		},
		Hotels: models.HotelSearch{
			Query: models.HotelQuery{
				Location: DefaultHotelLocation,
				CheckIn:  today,
				CheckOut: weekLater,
				Rooms:    1,
				Guests:   2,
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Reset starts another plan in the same session.
func Reset(s models.WizardState, now time.Time) (models.WizardState, error) {
	if s.Status == models.StatusSubmitting {
		return s, newSubmissionInProgress()
	}
	next := NewWizardState(s.SessionID, now)
	// Searches issued before the reset may still complete; keeping the
	// counters monotonic makes them stale.
	next.Flights.Generation = s.Flights.Generation
	next.Hotels.Generation = s.Hotels.Generation
	return next, nil
}

func ensureEditing(s models.WizardState) error {
	switch s.Status {
	case models.StatusSubmitting:
		return newSessionLocked("the plan is being submitted")
	case models.StatusConfirmed:
		return newSessionLocked("the plan has been confirmed; create another plan to make changes")
	}
	return nil
}

func ensureStep(s models.WizardState, step int) error {
	if err := ensureEditing(s); err != nil {
		return err
	}
	if s.Step != step {
		return NewValidationError("step", fmt.Sprintf("this change belongs to step %d, the plan is at step %d", step, s.Step))
	}
	return nil
}

// stepComplete is the required-field predicate of a step.
func stepComplete(s models.WizardState, step int) error {
	switch step {
	case models.StepSelectMonasteries:
		if len(s.Selections.MonasteryIDs) == 0 {
			return NewValidationError("monasteryIds", "select at least one monastery")
		}
	case models.StepSelectPackage:
		if strings.TrimSpace(s.Selections.PackageID) == "" {
			return NewValidationError("packageId", "choose a travel package")
		}
	case models.StepEnterDetails:
		return validateVisitor(s.Selections.Visitor)
	}
	return nil
}

func validateVisitor(v models.VisitorInfo) error {
	if strings.TrimSpace(v.Name) == "" {
		return NewValidationError("name", "full name is required")
	}
	if strings.TrimSpace(v.Email) == "" {
		return NewValidationError("email", "email address is required")
	}
	if !delivery.ValidEmail(v.Email) {
		return NewValidationError("email", "enter a valid email address")
	}
	return nil
}

// ToggleMonastery adds id to the selection, or removes it if already selected.
func ToggleMonastery(s models.WizardState, id string) (models.WizardState, error) {
	if err := ensureStep(s, models.StepSelectMonasteries); err != nil {
		return s, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return s, NewValidationError("monasteryId", "monastery id is required")
	}

	out := s.Clone()
	kept := out.Selections.MonasteryIDs[:0]
	removed := false
	for _, existing := range out.Selections.MonasteryIDs {
		if existing == id {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		kept = append(kept, id)
	}
	out.Selections.MonasteryIDs = kept
	return out, nil
}

// Next advances one step if the current step's required fields are filled.
func Next(s models.WizardState) (models.WizardState, error) {
	if err := ensureEditing(s); err != nil {
		return s, err
	}
	if s.Step >= models.StepEnterDetails {
		return s, NewValidationError("step", "this is the last step; submit the plan instead")
	}
	if err := stepComplete(s, s.Step); err != nil {
		return s, err
	}
	out := s.Clone()
	out.Step++
	return out, nil
}

// Back returns to the previous step, keeping everything entered so far.
func Back(s models.WizardState) (models.WizardState, error) {
	if err := ensureEditing(s); err != nil {
		return s, err
	}
	if s.Step <= models.StepSelectMonasteries {
		return s, NewValidationError("step", "already at the first step")
	}
	out := s.Clone()
	out.Step--
	return out, nil
}

// IssueFlightSearch records q as the current flight query and opens a new
// generation for it. The returned state is meant to be saved even when the
// error is an invalidQuery: the draft query is kept and any search still in
// flight is superseded.
func IssueFlightSearch(s models.WizardState, q models.FlightQuery) (models.WizardState, uint64, error) {
	if err := ensureStep(s, models.StepSelectTravel); err != nil {
		return s, 0, err
	}

	out := s.Clone()
	out.Flights.Query = q
	out.Flights.Generation++
	if err := search.ValidateFlightQuery(q); err != nil {
		out.Flights.Loading = false
		out.Flights.Error = err.Error()
		return out, out.Flights.Generation, queryError(err)
	}

	out.Flights.Loading = true
	out.Flights.Offers = nil
	out.Flights.Error = ""
	out.Selections.FlightID = ""
	return out, out.Flights.Generation, nil
}

// IssueHotelSearch is IssueFlightSearch for the hotel slot.
func IssueHotelSearch(s models.WizardState, q models.HotelQuery) (models.WizardState, uint64, error) {
	if err := ensureStep(s, models.StepSelectTravel); err != nil {
		return s, 0, err
	}

	out := s.Clone()
	out.Hotels.Query = q
	out.Hotels.Generation++
	if err := search.ValidateHotelQuery(q); err != nil {
		out.Hotels.Loading = false
		out.Hotels.Error = err.Error()
		return out, out.Hotels.Generation, queryError(err)
	}

	out.Hotels.Loading = true
	out.Hotels.Offers = nil
	out.Hotels.Error = ""
	out.Selections.HotelID = ""
	return out, out.Hotels.Generation, nil
}

func queryError(err error) error {
	var qe *search.QueryError
	if errors.As(err, &qe) {
		return newInvalidQueryError(qe.Field, qe.Message, err)
	}
	return newInvalidQueryError("", err.Error(), err)
}

// ApplyFlightResults stores the outcome of the search issued as generation
// gen. It reports false, leaving s untouched, when that search has been
// superseded or the plan is no longer editable.
func ApplyFlightResults(s models.WizardState, gen uint64, offers []models.FlightOffer, searchErr error) (models.WizardState, bool) {
	if s.Status != models.StatusEditing || s.Flights.Generation != gen || !s.Flights.Loading {
		return s, false
	}
	out := s.Clone()
	out.Flights.Loading = false
	if searchErr != nil {
		out.Flights.Offers = nil
		out.Flights.Error = searchFailureMessage("flights")
		return out, true
	}
	out.Flights.Error = ""
	out.Flights.Offers = uniqueFlights(offers)
	return out, true
}

// ApplyHotelResults is ApplyFlightResults for the hotel slot.
func ApplyHotelResults(s models.WizardState, gen uint64, offers []models.HotelOffer, searchErr error) (models.WizardState, bool) {
	if s.Status != models.StatusEditing || s.Hotels.Generation != gen || !s.Hotels.Loading {
		return s, false
	}
	out := s.Clone()
	out.Hotels.Loading = false
	if searchErr != nil {
		out.Hotels.Offers = nil
		out.Hotels.Error = searchFailureMessage("hotels")
		return out, true
	}
	out.Hotels.Error = ""
	out.Hotels.Offers = uniqueHotels(offers)
	return out, true
}

func uniqueFlights(offers []models.FlightOffer) []models.FlightOffer {
	seen := make(map[string]bool, len(offers))
	out := make([]models.FlightOffer, 0, len(offers))
	for _, o := range offers {
		if seen[o.ID] {
			continue
		}
		seen[o.ID] = true
		out = append(out, o)
	}
	return out
}

func uniqueHotels(offers []models.HotelOffer) []models.HotelOffer {
	seen := make(map[string]bool, len(offers))
	out := make([]models.HotelOffer, 0, len(offers))
	for _, o := range offers {
		if seen[o.ID] {
			continue
		}
		seen[o.ID] = true
		o.Amenities = append([]string(nil), o.Amenities...)
		out = append(out, o)
	}
	return out
}

// SelectFlight makes offerID the single selected flight.
func SelectFlight(s models.WizardState, offerID string) (models.WizardState, error) {
	if err := ensureStep(s, models.StepSelectTravel); err != nil {
		return s, err
	}
	for _, o := range s.Flights.Offers {
		if o.ID == offerID {
			out := s.Clone()
			out.Selections.FlightID = offerID
			return out, nil
		}
	}
	return s, NewValidationError("offerId", fmt.Sprintf("flight %q is not among the current results", offerID))
}

// SelectHotel makes offerID the single selected hotel.
func SelectHotel(s models.WizardState, offerID string) (models.WizardState, error) {
	if err := ensureStep(s, models.StepSelectTravel); err != nil {
		return s, err
	}
	for _, o := range s.Hotels.Offers {
		if o.ID == offerID {
			out := s.Clone()
			out.Selections.HotelID = offerID
			return out, nil
		}
	}
	return s, NewValidationError("offerId", fmt.Sprintf("hotel %q is not among the current results", offerID))
}

// SelectPackage records the chosen package id. Catalog membership is the
// caller's concern.
func SelectPackage(s models.WizardState, packageID string) (models.WizardState, error) {
	if err := ensureStep(s, models.StepSelectPackage); err != nil {
		return s, err
	}
	packageID = strings.TrimSpace(packageID)
	if packageID == "" {
		return s, NewValidationError("packageId", "choose a travel package")
	}
	out := s.Clone()
	out.Selections.PackageID = packageID
	return out, nil
}

// UpdateVisitor replaces the contact fields. Validation happens on submit so
// a half-typed form can still be saved.
func UpdateVisitor(s models.WizardState, v models.VisitorInfo) (models.WizardState, error) {
	if err := ensureStep(s, models.StepEnterDetails); err != nil {
		return s, err
	}
	out := s.Clone()
	out.Selections.Visitor = models.VisitorInfo{
		Name:                strings.TrimSpace(v.Name),
		Email:               strings.TrimSpace(v.Email),
		Phone:               strings.TrimSpace(v.Phone),
		GroupSize:           strings.TrimSpace(v.GroupSize),
		SpecialRequirements: strings.TrimSpace(v.SpecialRequirements),
	}
	return out, nil
}

// BeginSubmission moves EnterDetails to Submitting.
func BeginSubmission(s models.WizardState) (models.WizardState, error) {
	switch s.Status {
	case models.StatusSubmitting:
		return s, newSubmissionInProgress()
	case models.StatusConfirmed:
		return s, newSessionLocked("the plan has already been confirmed")
	}
	if s.Step != models.StepEnterDetails {
		return s, NewValidationError("step", "complete every step before submitting")
	}
	for step := models.StepSelectMonasteries; step <= models.StepEnterDetails; step++ {
		if err := stepComplete(s, step); err != nil {
			return s, err
		}
	}

	out := s.Clone()
	out.Status = models.StatusSubmitting
	// Pending searches can no longer apply once the plan is locked.
	out.Flights.Loading = false
	out.Hotels.Loading = false
	out.Submission.Attempts++
	out.Submission.LastError = ""
	return out, nil
}

// CompleteSubmission moves Submitting to Confirmed and freezes the itinerary.
func CompleteSubmission(s models.WizardState, it models.Itinerary) (models.WizardState, error) {
	if s.Status != models.StatusSubmitting {
		return s, newSessionLocked("no submission is in progress")
	}
	out := s.Clone()
	out.Status = models.StatusConfirmed
	out.Itinerary = &it
	out.Submission.LastError = ""
	return out, nil
}

// FailSubmission returns Submitting to EnterDetails with every field intact.
func FailSubmission(s models.WizardState, reason string) (models.WizardState, error) {
	if s.Status != models.StatusSubmitting {
		return s, newSessionLocked("no submission is in progress")
	}
	out := s.Clone()
	out.Status = models.StatusEditing
	out.Step = models.StepEnterDetails
	out.Submission.LastError = reason
	return out, nil
}
