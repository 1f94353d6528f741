package models

// Monastery is a catalog entry shown in listings and step 1 of the planner.
type Monastery struct {
	ID              string `yaml:"id" bson:"id" json:"id"`
	Name            string `yaml:"name" bson:"name" json:"name"`
	Location        string `yaml:"location" bson:"location" json:"location"`
	BestVisitWindow string `yaml:"bestVisitWindow" bson:"bestVisitWindow" json:"bestVisitWindow"`
	Tradition       string `yaml:"tradition" bson:"tradition,omitempty" json:"tradition,omitempty"`
	Founded         string `yaml:"founded" bson:"founded,omitempty" json:"founded,omitempty"`
	VisitingHours   string `yaml:"visitingHours" bson:"visitingHours,omitempty" json:"visitingHours,omitempty"`
	Description     string `yaml:"description" bson:"description,omitempty" json:"description,omitempty"`
	HasVirtualTour  bool   `yaml:"hasVirtualTour" bson:"hasVirtualTour" json:"hasVirtualTour"`
}

// TravelPackage is one of the tour packages offered in step 3.
type TravelPackage struct {
	ID       string   `yaml:"id" bson:"id" json:"id"`
	Name     string   `yaml:"name" bson:"name" json:"name"`
	Price    float64  `yaml:"price" bson:"price" json:"price"`
	Currency string   `yaml:"currency" bson:"currency" json:"currency"`
	Duration string   `yaml:"duration" bson:"duration" json:"duration"`
	Includes []string `yaml:"includes" bson:"includes" json:"includes"`
	BestFor  string   `yaml:"bestFor" bson:"bestFor" json:"bestFor"`
	Popular  bool     `yaml:"popular" bson:"popular,omitempty" json:"popular,omitempty"`
}

type TravelTip struct {
	Title   string `yaml:"title" json:"title"`
	Content string `yaml:"content" json:"content"`
}

// PlannerOptions lists the fixed choices offered by the travel step.
type PlannerOptions struct {
	FlightDestinations []string `yaml:"flightDestinations" json:"flightDestinations"`
	HotelLocations     []string `yaml:"hotelLocations" json:"hotelLocations"`
}

// MonasteryFilter narrows a catalog listing. Empty fields match everything.
type MonasteryFilter struct {
	Query       string `form:"q"`
	Tradition   string `form:"tradition"`
	VirtualOnly bool   `form:"virtual"`
}
