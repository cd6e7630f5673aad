package reservation

import (
	"encoding/json"
	"testing"

	"github.com/teaseong5-stack/azit-erp-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDetailsEmptyPayload(t *testing.T) {
	for _, cat := range []models.ReservationCategory{
		models.CategoryTour, models.CategoryAccommodation, models.CategoryGolf,
	} {
		out, err := ValidateDetails(cat, nil)
		require.NoError(t, err)
		assert.Nil(t, out)

		out, err = ValidateDetails(cat, json.RawMessage("null"))
		require.NoError(t, err)
		assert.Nil(t, out)
	}
}

func TestValidateDetailsParty(t *testing.T) {
	raw := json.RawMessage(`{"adults":2,"children":1,"infants":0,"pickup_location":"Hotel A","car_type":"SUV"}`)

	out, err := ValidateDetails(models.CategoryTour, raw)
	require.NoError(t, err)

	var d PartyDetails
	require.NoError(t, json.Unmarshal(out, &d))
	assert.Equal(t, 2, d.Adults)
	assert.Equal(t, "Hotel A", d.PickupLocation)
	// car_type belongs to rental cars only and is stripped for tours
	assert.Empty(t, d.CarType)

	out, err = ValidateDetails(models.CategoryRentalCar, raw)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(out, &d))
	assert.Equal(t, "SUV", d.CarType)
}

func TestValidateDetailsRejectsNegatives(t *testing.T) {
	_, err := ValidateDetails(models.CategoryTour, json.RawMessage(`{"adults":-1}`))
	assert.Error(t, err)

	_, err = ValidateDetails(models.CategoryAccommodation, json.RawMessage(`{"nights":-2,"room_count":1}`))
	assert.Error(t, err)

	_, err = ValidateDetails(models.CategoryGolf, json.RawMessage(`{"players":-4}`))
	assert.Error(t, err)
}

func TestValidateDetailsRejectsNonObject(t *testing.T) {
	_, err := ValidateDetails(models.CategoryTour, json.RawMessage(`"just a string"`))
	assert.Error(t, err)

	_, err = ValidateDetails(models.ReservationCategory("BOGUS"), json.RawMessage(`{}`))
	assert.Error(t, err)
}

func TestValidateDetailsRejectsUnknownKeys(t *testing.T) {
	_, err := ValidateDetails(models.CategoryGolf, json.RawMessage(`{"players":4,"caddies":2}`))
	assert.Error(t, err)

	_, err = ValidateDetails(models.CategoryAccommodation, json.RawMessage(`{"nights":2,"adults":2}`))
	assert.Error(t, err)

	_, err = ValidateDetails(models.CategoryTour, json.RawMessage(`{"adults":2,"room_type":"Twin"}`))
	assert.Error(t, err)
}

func TestDetailMetrics(t *testing.T) {
	stay, err := ValidateDetails(models.CategoryAccommodation,
		json.RawMessage(`{"room_type":"Deluxe","nights":3,"room_count":2,"guests":4}`))
	require.NoError(t, err)
	assert.Equal(t, 6, RoomNights(stay))

	golf, err := ValidateDetails(models.CategoryGolf,
		json.RawMessage(`{"tee_off_time":"07:30","players":4}`))
	require.NoError(t, err)
	assert.Equal(t, 4, Players(golf))

	party, err := ValidateDetails(models.CategoryTicket,
		json.RawMessage(`{"adults":2,"children":1,"infants":1,"usage_time":"14:00"}`))
	require.NoError(t, err)
	assert.Equal(t, 4, PartySize(party))

	assert.Equal(t, 0, RoomNights(nil))
	assert.Equal(t, 0, Players(nil))
	assert.Equal(t, 0, PartySize(nil))
}
