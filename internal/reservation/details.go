package reservation

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/teaseong5-stack/azit-erp-backend/internal/models"

	"gorm.io/datatypes"
)

// Each reservation category carries its own details payload. The payloads
// below are the only shapes accepted; keys outside the variant are rejected
// at the boundary.

// PartyDetails is shared by TOUR, RENTAL_CAR, TICKET and OTHER.
type PartyDetails struct {
	Adults          int    `json:"adults"`
	Children        int    `json:"children"`
	Infants         int    `json:"infants"`
	StartTime       string `json:"start_time,omitempty"`
	PickupLocation  string `json:"pickup_location,omitempty"`
	DropoffLocation string `json:"dropoff_location,omitempty"`

	// RENTAL_CAR only.
	CarType    string `json:"car_type,omitempty"`
	UsageHours string `json:"usage_hours,omitempty"`

	// TICKET and OTHER only.
	UsageTime string `json:"usage_time,omitempty"`
}

// StayDetails is the ACCOMMODATION payload.
type StayDetails struct {
	RoomType  string `json:"room_type,omitempty"`
	Nights    int    `json:"nights"`
	RoomCount int    `json:"room_count"`
	Guests    int    `json:"guests"`
}

// GolfDetails is the GOLF payload.
type GolfDetails struct {
	TeeOffTime string `json:"tee_off_time,omitempty"`
	Players    int    `json:"players"`
}

// ValidateDetails checks a raw details payload against the variant for the
// given category and returns the canonical JSON to store. A nil or empty
// payload is allowed for every category and stored as null. Keys outside
// the variant are rejected, not dropped, so a typoed field never vanishes
// silently.
func ValidateDetails(category models.ReservationCategory, raw json.RawMessage) (datatypes.JSON, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	dec := func(dst any) error {
		d := json.NewDecoder(bytes.NewReader(raw))
		d.DisallowUnknownFields()
		if err := d.Decode(dst); err != nil {
			return fmt.Errorf("invalid details payload: %w", err)
		}
		return nil
	}

	switch category {
	case models.CategoryAccommodation:
		var d StayDetails
		if err := dec(&d); err != nil {
			return nil, err
		}
		if d.Nights < 0 || d.RoomCount < 0 || d.Guests < 0 {
			return nil, fmt.Errorf("nights, room_count and guests must not be negative")
		}
		return marshalDetails(d)
	case models.CategoryGolf:
		var d GolfDetails
		if err := dec(&d); err != nil {
			return nil, err
		}
		if d.Players < 0 {
			return nil, fmt.Errorf("players must not be negative")
		}
		return marshalDetails(d)
	case models.CategoryTour, models.CategoryRentalCar, models.CategoryTicket, models.CategoryOther:
		var d PartyDetails
		if err := dec(&d); err != nil {
			return nil, err
		}
		if d.Adults < 0 || d.Children < 0 || d.Infants < 0 {
			return nil, fmt.Errorf("adults, children and infants must not be negative")
		}
		if category != models.CategoryRentalCar {
			d.CarType = ""
			d.UsageHours = ""
		}
		if category == models.CategoryTour || category == models.CategoryRentalCar {
			d.UsageTime = ""
		}
		return marshalDetails(d)
	}
	return nil, fmt.Errorf("unknown category %q", category)
}

func marshalDetails(d any) (datatypes.JSON, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// PartySize returns adults+children+infants from a stored details payload,
// or zero when the payload is missing or not a party variant.
func PartySize(details datatypes.JSON) int {
	if len(details) == 0 {
		return 0
	}
	var d PartyDetails
	if err := json.Unmarshal(details, &d); err != nil {
		return 0
	}
	return d.Adults + d.Children + d.Infants
}

// RoomNights returns nights*room_count for an accommodation payload.
func RoomNights(details datatypes.JSON) int {
	if len(details) == 0 {
		return 0
	}
	var d StayDetails
	if err := json.Unmarshal(details, &d); err != nil {
		return 0
	}
	return d.Nights * d.RoomCount
}

// Players returns the player count from a golf payload.
func Players(details datatypes.JSON) int {
	if len(details) == 0 {
		return 0
	}
	var d GolfDetails
	if err := json.Unmarshal(details, &d); err != nil {
		return 0
	}
	return d.Players
}
