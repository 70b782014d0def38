package models

import "time"

// Parent defines the parent/guardian model based on the 'parents' table.
// The card number duplicate check is advisory only; it never blocks a write.
type Parent struct {
	ID         int64     `json:"id" db:"id" example:"1"`
	FullName   string    `json:"fullName" db:"full_name" example:"Kofi Mensah"`
	Phone      string    `json:"phone" db:"phone" example:"0244123456"`
	CardNumber *string   `json:"cardNumber,omitempty" db:"card_number"`
	Address    *string   `json:"address,omitempty" db:"address"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
