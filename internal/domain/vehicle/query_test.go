package vehicle

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuery_Defaults(t *testing.T) {
	q := NewQuery(time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, Query{
		Year:      2026,
		FuelType:  FuelDiesel,
		Gearbox:   GearboxManual,
		OfferType: OfferUsed,
	}, q)
	assert.False(t, Submittable(q))
}

func TestQuery_WireFieldNames(t *testing.T) {
	q := Query{
		Make: "Toyota", Model: "Camry", Year: 2020, ReportedKm: 50000,
		FuelType: FuelDiesel, Gearbox: GearboxManual, Horsepower: 150,
		Price: 15000, OfferType: OfferUsed,
	}

	data, err := json.Marshal(q)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"make": "Toyota", "model": "Camry", "year": 2020,
		"reported_km": 50000, "fuelType": "Diesel", "gearbox": "Manual",
		"horsepower": 150, "price": 15000, "offerType": "Used"
	}`, string(data))
}

func TestChoiceSets(t *testing.T) {
	for _, f := range FuelTypes {
		assert.True(t, f.Valid(), f)
	}
	for _, g := range Gearboxes {
		assert.True(t, g.Valid(), g)
	}
	for _, o := range OfferTypes {
		assert.True(t, o.Valid(), o)
	}

	assert.False(t, FuelType("petrol").Valid())
	assert.False(t, Gearbox("CVT").Valid())
	assert.False(t, OfferType("Leased").Valid())
}

func TestParseChoices(t *testing.T) {
	fuel, ok := ParseFuelType(" electric ")
	assert.True(t, ok)
	assert.Equal(t, FuelElectric, fuel)

	_, ok = ParseFuelType("steam")
	assert.False(t, ok)

	gearbox, ok := ParseGearbox("AUTOMATIC")
	assert.True(t, ok)
	assert.Equal(t, GearboxAutomatic, gearbox)

	offer, ok := ParseOfferType("new")
	assert.True(t, ok)
	assert.Equal(t, OfferNew, offer)

	_, ok = ParseOfferType("")
	assert.False(t, ok)
}
