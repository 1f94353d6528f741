package models

import "time"

// Wizard steps. Steps are 1-based and bounded by StepSelectMonasteries and StepEnterDetails.
const (
	StepSelectMonasteries = 1
	StepSelectTravel      = 2
	StepSelectPackage     = 3
	StepEnterDetails      = 4
)

// SubmissionStatus tracks the submit lifecycle on top of the step.
type SubmissionStatus string

const (
	StatusEditing    SubmissionStatus = "editing"
	StatusSubmitting SubmissionStatus = "submitting"
	StatusConfirmed  SubmissionStatus = "confirmed"
)

// Phase names the wizard state as a whole.
type Phase string

const (
	PhaseSelectMonasteries Phase = "SelectMonasteries"
	PhaseSelectTravel      Phase = "SelectTravel"
	PhaseSelectPackage     Phase = "SelectPackage"
	PhaseEnterDetails      Phase = "EnterDetails"
	PhaseSubmitting        Phase = "Submitting"
	PhaseConfirmed         Phase = "Confirmed"
)

// VisitorInfo holds the contact fields collected in step 4.
type VisitorInfo struct {
	Name                string `bson:"name" json:"name"`
	Email               string `bson:"email" json:"email"`
	Phone               string `bson:"phone,omitempty" json:"phone,omitempty"`
	GroupSize           string `bson:"groupSize,omitempty" json:"groupSize,omitempty"`
	SpecialRequirements string `bson:"specialRequirements,omitempty" json:"specialRequirements,omitempty"`
}

// Selections are the user's choices across all steps.
type Selections struct {
	MonasteryIDs []string    `json:"monasteryIds"`
	FlightID     string      `json:"flightId,omitempty"`
	HotelID      string      `json:"hotelId,omitempty"`
	PackageID    string      `json:"packageId,omitempty"`
	Visitor      VisitorInfo `json:"visitor"`
}

type SubmissionState struct {
	Attempts  int    `json:"attempts"`
	LastError string `json:"lastError,omitempty"`
}

// WizardState is the whole planner session as persisted between requests.
type WizardState struct {
	SessionID  string           `json:"sessionId"`
	Step       int              `json:"step"`
	Status     SubmissionStatus `json:"status"`
	Selections Selections       `json:"selections"`
	Flights    FlightSearch     `json:"flights"`
	Hotels     HotelSearch      `json:"hotels"`
	Submission SubmissionState  `json:"submission"`
	Itinerary  *Itinerary       `json:"itinerary,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// Phase derives the state-machine state from Step and Status.
func (s WizardState) Phase() Phase {
	switch s.Status {
	case StatusSubmitting:
		return PhaseSubmitting
	case StatusConfirmed:
		return PhaseConfirmed
	}
	switch s.Step {
	case StepSelectTravel:
		return PhaseSelectTravel
	case StepSelectPackage:
		return PhaseSelectPackage
	case StepEnterDetails:
		return PhaseEnterDetails
	default:
		return PhaseSelectMonasteries
	}
}

// Clone returns a deep copy so transitions never share slices with their input.
func (s WizardState) Clone() WizardState {
	out := s
	out.Selections.MonasteryIDs = cloneStrings(s.Selections.MonasteryIDs)
	if s.Flights.Offers != nil {
		out.Flights.Offers = append([]FlightOffer{}, s.Flights.Offers...)
	}
	if s.Hotels.Offers != nil {
		out.Hotels.Offers = make([]HotelOffer, len(s.Hotels.Offers))
		for i, h := range s.Hotels.Offers {
			h.Amenities = cloneStrings(h.Amenities)
			out.Hotels.Offers[i] = h
		}
	}
	if s.Itinerary != nil {
		it := *s.Itinerary
		out.Itinerary = &it
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}

// SessionView is what the API returns for a planner session.
type SessionView struct {
	WizardState
	Phase    Phase `json:"phase"`
	Progress int   `json:"progress"`
}

// ToSessionView decorates a state with its derived fields.
func ToSessionView(s WizardState) SessionView {
	return SessionView{
		WizardState: s,
		Phase:       s.Phase(),
		Progress:    s.Step * 25,
	}
}
