package models

import "time"

type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

type ExpenseItem string

const (
	ExpenseRentalCar     ExpenseItem = "RENTAL_CAR"
	ExpenseAccommodation ExpenseItem = "ACCOMMODATION"
	ExpenseGolf          ExpenseItem = "GOLF"
	ExpenseCash          ExpenseItem = "CASH"
	ExpenseDeposit       ExpenseItem = "DEPOSIT"
	ExpensePurchase      ExpenseItem = "PURCHASE"
	ExpensePartner       ExpenseItem = "PARTNER"
	ExpenseTicket        ExpenseItem = "TICKET"
	ExpenseGuide         ExpenseItem = "GUIDE"
	ExpenseMisc          ExpenseItem = "MISC"
	ExpenseOther         ExpenseItem = "OTHER"
)

func (e ExpenseItem) Valid() bool {
	switch e {
	case ExpenseRentalCar, ExpenseAccommodation, ExpenseGolf, ExpenseCash, ExpenseDeposit,
		ExpensePurchase, ExpensePartner, ExpenseTicket, ExpenseGuide, ExpenseMisc, ExpenseOther:
		return true
	}
	return false
}

type PaymentMethod string

const (
	MethodCard     PaymentMethod = "CARD"
	MethodCash     PaymentMethod = "CASH"
	MethodTransfer PaymentMethod = "TRANSFER"
)

func (m PaymentMethod) Valid() bool {
	return m == MethodCard || m == MethodCash || m == MethodTransfer
}

type ProcessingStatus string

const (
	ProcessingPending   ProcessingStatus = "PENDING"
	ProcessingCompleted ProcessingStatus = "COMPLETED"
	ProcessingHold      ProcessingStatus = "HOLD"
)

func (s ProcessingStatus) Valid() bool {
	return s == ProcessingPending || s == ProcessingCompleted || s == ProcessingHold
}

// Transaction is one accounting-ledger entry, optionally tied to a
// reservation, a partner and a manager. All three links null out when the
// referenced row is deleted.
type Transaction struct {
	ID uint `gorm:"primaryKey"`

	TransactionDate  time.Time        `gorm:"type:date;not null;index"`
	TransactionType  TransactionType  `gorm:"size:10;not null;index"`
	Amount           float64          `gorm:"not null"`
	Description      string           `gorm:"size:255;not null"`
	ExpenseItem      *ExpenseItem     `gorm:"size:20"`
	PaymentMethod    *PaymentMethod   `gorm:"size:10"`
	ProcessingStatus ProcessingStatus `gorm:"size:10;not null;default:PENDING"`

	ReservationID *uint        `gorm:"index"`
	Reservation   *Reservation `gorm:"constraint:OnDelete:SET NULL"`
	PartnerID     *uint        `gorm:"index"`
	Partner       *Partner     `gorm:"constraint:OnDelete:SET NULL"`
	ManagerID     *uint        `gorm:"index"`
	Manager       *User        `gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL"`

	Notes     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
