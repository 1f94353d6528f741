package models

// DateLayout is the wire format of every calendar date in the planner.
const DateLayout = "2006-01-02"

// FlightQuery is the travel step's flight search form.
type FlightQuery struct {
	Origin        string `bson:"origin" json:"origin"`
	Destination   string `bson:"destination" json:"destination"`
	DepartureDate string `bson:"departureDate" json:"departureDate"`
	ReturnDate    string `bson:"returnDate,omitempty" json:"returnDate,omitempty"`
	Passengers    int    `bson:"passengers" json:"passengers"`
}

// HotelQuery is the travel step's hotel search form.
type HotelQuery struct {
	Location string `bson:"location" json:"location"`
	CheckIn  string `bson:"checkIn" json:"checkIn"`
	CheckOut string `bson:"checkOut" json:"checkOut"`
	Rooms    int    `bson:"rooms" json:"rooms"`
	Guests   int    `bson:"guests" json:"guests"`
}

type FlightOffer struct {
	ID          string  `bson:"id" json:"id"`
	Airline     string  `bson:"airline" json:"airline"`
	Origin      string  `bson:"origin" json:"origin"`
	Destination string  `bson:"destination" json:"destination"`
	Departure   string  `bson:"departure" json:"departure"`
	Arrival     string  `bson:"arrival" json:"arrival"`
	Duration    string  `bson:"duration" json:"duration"`
	Price       float64 `bson:"price" json:"price"`
	Currency    string  `bson:"currency" json:"currency"`
}

type HotelOffer struct {
	ID            string   `bson:"id" json:"id"`
	Name          string   `bson:"name" json:"name"`
	Location      string   `bson:"location" json:"location"`
	PricePerNight float64  `bson:"pricePerNight" json:"pricePerNight"`
	Currency      string   `bson:"currency" json:"currency"`
	Rating        float64  `bson:"rating" json:"rating"`
	Amenities     []string `bson:"amenities" json:"amenities"`
}

// FlightSearch is the flight slot of a planner session: the latest issued
// query and whatever results have been applied for it.
type FlightSearch struct {
	Query      FlightQuery   `json:"query"`
	Generation uint64        `json:"generation"`
	Loading    bool          `json:"loading"`
	Offers     []FlightOffer `json:"offers"`
	Error      string        `json:"error,omitempty"`
}

// HotelSearch is the hotel slot of a planner session.
type HotelSearch struct {
	Query      HotelQuery   `json:"query"`
	Generation uint64       `json:"generation"`
	Loading    bool         `json:"loading"`
	Offers     []HotelOffer `json:"offers"`
	Error      string       `json:"error,omitempty"`
}
