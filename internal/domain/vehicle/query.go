package vehicle

import (
	"strings"
	"time"
)

// FuelType is the fuel the vehicle runs on
type FuelType string

const (
	FuelPetrol   FuelType = "Petrol"
	FuelDiesel   FuelType = "Diesel"
	FuelHybrid   FuelType = "Hybrid"
	FuelElectric FuelType = "Electric"
)

// Valid reports whether the fuel type is one of the known choices
func (f FuelType) Valid() bool {
	switch f {
	case FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric:
		return true
	}
	return false
}

// Gearbox is the transmission type
type Gearbox string

const (
	GearboxManual    Gearbox = "Manual"
	GearboxAutomatic Gearbox = "Automatic"
)

// Valid reports whether the gearbox is one of the known choices
func (g Gearbox) Valid() bool {
	return g == GearboxManual || g == GearboxAutomatic
}

// OfferType tells whether the listing is a used or a new vehicle
type OfferType string

const (
	OfferUsed OfferType = "Used"
	OfferNew  OfferType = "New"
)

// Valid reports whether the offer type is one of the known choices
func (o OfferType) Valid() bool {
	return o == OfferUsed || o == OfferNew
}

// FuelTypes, Gearboxes and OfferTypes are the fixed choice sets offered by
// the presentation layers.
var (
	FuelTypes  = []FuelType{FuelPetrol, FuelDiesel, FuelHybrid, FuelElectric}
	Gearboxes  = []Gearbox{GearboxManual, GearboxAutomatic}
	OfferTypes = []OfferType{OfferUsed, OfferNew}
)

// ParseFuelType matches s against the fuel choices, ignoring case and
// surrounding space
func ParseFuelType(s string) (FuelType, bool) {
	return parseChoice(FuelTypes, s)
}

// ParseGearbox matches s against the gearbox choices
func ParseGearbox(s string) (Gearbox, bool) {
	return parseChoice(Gearboxes, s)
}

// ParseOfferType matches s against the offer choices
func ParseOfferType(s string) (OfferType, bool) {
	return parseChoice(OfferTypes, s)
}

func parseChoice[T ~string](choices []T, s string) (T, bool) {
	s = strings.TrimSpace(s)
	for _, c := range choices {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	var zero T
	return zero, false
}

// Query is the vehicle record submitted to the scoring service.
// The JSON field names are the wire contract of POST /api/check.
//
// Query holds only value fields, so a copy is a frozen snapshot of the form.
type Query struct {
	Make       string    `json:"make" validate:"notblank"`
	Model      string    `json:"model" validate:"notblank"`
	Year       int       `json:"year" validate:"gt=1900"`
	ReportedKm int       `json:"reported_km" validate:"gte=0"`
	FuelType   FuelType  `json:"fuelType"`
	Gearbox    Gearbox   `json:"gearbox"`
	Horsepower int       `json:"horsepower" validate:"gt=0"`
	Price      int       `json:"price" validate:"gt=0"`
	OfferType  OfferType `json:"offerType"`
}

// NewQuery returns a form with the defaults shown to a user before typing
func NewQuery(now time.Time) Query {
	return Query{
		Year:      now.Year(),
		FuelType:  FuelDiesel,
		Gearbox:   GearboxManual,
		OfferType: OfferUsed,
	}
}
