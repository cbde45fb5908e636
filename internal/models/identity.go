package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Identity is a user record as stored in the directory
// The auth core only ever reads it
type Identity struct {
	ID           int64
	CreatedAt    time.Time
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	BaseSalary   decimal.Decimal
	RoleID       int64 // 0 means no role assigned
}

// DisplayName is embedded into access tokens as the 'name' claim
func (i Identity) DisplayName() string {
	switch {
	case i.FirstName == "":
		return i.LastName
	case i.LastName == "":
		return i.FirstName
	default:
		return i.FirstName + " " + i.LastName
	}
}
