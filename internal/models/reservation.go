package models

import (
	"time"

	"gorm.io/datatypes"
)

type ReservationCategory string

const (
	CategoryTour          ReservationCategory = "TOUR"
	CategoryRentalCar     ReservationCategory = "RENTAL_CAR"
	CategoryAccommodation ReservationCategory = "ACCOMMODATION"
	CategoryGolf          ReservationCategory = "GOLF"
	CategoryTicket        ReservationCategory = "TICKET"
	CategoryOther         ReservationCategory = "OTHER"
)

func (c ReservationCategory) Valid() bool {
	switch c {
	case CategoryTour, CategoryRentalCar, CategoryAccommodation, CategoryGolf, CategoryTicket, CategoryOther:
		return true
	}
	return false
}

func (c ReservationCategory) Label() string {
	switch c {
	case CategoryTour:
		return "Tour"
	case CategoryRentalCar:
		return "Rental Car"
	case CategoryAccommodation:
		return "Accommodation"
	case CategoryGolf:
		return "Golf"
	case CategoryTicket:
		return "Ticket"
	case CategoryOther:
		return "Other"
	}
	return string(c)
}

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusPaid      ReservationStatus = "PAID"
	StatusCompleted ReservationStatus = "COMPLETED"
	StatusCanceled  ReservationStatus = "CANCELED"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPaid, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

func (s ReservationStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusConfirmed:
		return "Confirmed"
	case StatusPaid:
		return "Paid"
	case StatusCompleted:
		return "Completed"
	case StatusCanceled:
		return "Canceled"
	}
	return string(s)
}

// ActiveStatuses are the statuses revenue reports count; pending and
// canceled reservations never contribute to sales figures.
var ActiveStatuses = []ReservationStatus{StatusConfirmed, StatusPaid, StatusCompleted}

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "UNPAID"
	PaymentDeposit PaymentStatus = "DEPOSIT"
	PaymentPaid    PaymentStatus = "PAID"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentUnpaid, PaymentDeposit, PaymentPaid:
		return true
	}
	return false
}

// Reservation is the central booking row. The tuple
// (customer_id, reservation_date, start_date, category, tour_name) acts as
// the natural key for bulk-import deduplication but is intentionally NOT a
// unique constraint: the regular create path can produce duplicate tuples
// and a later import collapses onto the oldest one.
type Reservation struct {
	ID uint `gorm:"primaryKey"`

	CustomerID *uint     `gorm:"index"`
	Customer   *Customer `gorm:"constraint:OnDelete:SET NULL"`
	ManagerID  *uint     `gorm:"index"`
	Manager    *User     `gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL"`

	TourName        string              `gorm:"size:200;not null"`
	Category        ReservationCategory `gorm:"size:20;not null;default:TOUR;index"`
	ReservationDate time.Time           `gorm:"type:date;not null;index"`
	StartDate       *time.Time          `gorm:"type:date;index"`
	EndDate         *time.Time          `gorm:"type:date"`

	TotalPrice    *float64 // sale price, whole VND
	TotalCost     *float64
	PaymentAmount *float64

	Status        ReservationStatus `gorm:"size:10;not null;default:PENDING;index"`
	PaymentStatus PaymentStatus     `gorm:"size:20;not null;default:UNPAID"`

	Notes        string `gorm:"type:text"`
	Requests     string `gorm:"type:text"`
	SpecialNotes string `gorm:"type:text"`

	// Category-specific payload, validated against the tagged variant for
	// Category before it is stored.
	Details datatypes.JSON `gorm:"type:jsonb"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
