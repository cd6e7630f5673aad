package models

import "time"

type PartnerCategory string

const (
	PartnerHotel      PartnerCategory = "HOTEL"
	PartnerAirline    PartnerCategory = "AIRLINE"
	PartnerRental     PartnerCategory = "RENTAL"
	PartnerRestaurant PartnerCategory = "RESTAURANT"
	PartnerAgency     PartnerCategory = "AGENCY"
	PartnerOther      PartnerCategory = "OTHER"
)

func (c PartnerCategory) Valid() bool {
	switch c {
	case PartnerHotel, PartnerAirline, PartnerRental, PartnerRestaurant, PartnerAgency, PartnerOther:
		return true
	}
	return false
}

type Partner struct {
	ID            uint            `gorm:"primaryKey"`
	Name          string          `gorm:"size:100;not null"`
	Category      PartnerCategory `gorm:"size:20;not null"`
	ContactPerson string          `gorm:"size:50"`
	PhoneNumber   string          `gorm:"size:50"`
	Email         string          `gorm:"size:100"`
	Address       string          `gorm:"size:255"`
	Notes         string          `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
