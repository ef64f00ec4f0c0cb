package vehicle

import (
	"math"
	"strconv"
	"strings"
)

// Field identifies a form field by its wire name
type Field string

const (
	FieldMake       Field = "make"
	FieldModel      Field = "model"
	FieldYear       Field = "year"
	FieldReportedKm Field = "reported_km"
	FieldFuelType   Field = "fuelType"
	FieldGearbox    Field = "gearbox"
	FieldHorsepower Field = "horsepower"
	FieldPrice      Field = "price"
	FieldOfferType  Field = "offerType"
)

// Fields lists every form field in display order
var Fields = []Field{
	FieldMake, FieldModel, FieldYear, FieldReportedKm,
	FieldHorsepower, FieldPrice, FieldFuelType, FieldGearbox, FieldOfferType,
}

// ParseField resolves a field identifier
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if string(f) == s {
			return f, nil
		}
	}
	return "", &UnknownFieldError{Name: s}
}

// Numeric reports whether the field holds an integer
func (f Field) Numeric() bool {
	switch f {
	case FieldYear, FieldReportedKm, FieldHorsepower, FieldPrice:
		return true
	}
	return false
}

// NormalizeNumeric turns raw keystrokes into a non-negative integer.
// Every rune outside 0-9 is dropped, so "50,000 km" becomes 50000 and
// "-3.5e2" becomes 352. An empty result is 0; values too large for an int
// saturate at math.MaxInt.
func NormalizeNumeric(raw string) int {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return 0
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		// only ErrRange is possible here
		return math.MaxInt
	}
	return n
}

// Set stores a raw value typed into the given field.
// Numeric fields go through NormalizeNumeric; text and choice fields are
// stored as typed.
func (q *Query) Set(field Field, raw string) error {
	switch field {
	case FieldMake:
		q.Make = raw
	case FieldModel:
		q.Model = raw
	case FieldYear:
		q.Year = NormalizeNumeric(raw)
	case FieldReportedKm:
		q.ReportedKm = NormalizeNumeric(raw)
	case FieldHorsepower:
		q.Horsepower = NormalizeNumeric(raw)
	case FieldPrice:
		q.Price = NormalizeNumeric(raw)
	case FieldFuelType:
		q.FuelType = FuelType(raw)
	case FieldGearbox:
		q.Gearbox = Gearbox(raw)
	case FieldOfferType:
		q.OfferType = OfferType(raw)
	default:
		return &UnknownFieldError{Name: string(field)}
	}
	return nil
}

// Get returns the field's current value as text, the way a form shows it
func (q Query) Get(field Field) string {
	switch field {
	case FieldMake:
		return q.Make
	case FieldModel:
		return q.Model
	case FieldYear:
		return strconv.Itoa(q.Year)
	case FieldReportedKm:
		return strconv.Itoa(q.ReportedKm)
	case FieldHorsepower:
		return strconv.Itoa(q.Horsepower)
	case FieldPrice:
		return strconv.Itoa(q.Price)
	case FieldFuelType:
		return string(q.FuelType)
	case FieldGearbox:
		return string(q.Gearbox)
	case FieldOfferType:
		return string(q.OfferType)
	}
	return ""
}
