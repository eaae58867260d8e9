package model

import (
	"time"

	"github.com/google/uuid"
)

// Empresa is the tenant root: every core entity is scoped to one empresa.
// Operations are rejected when Ativa is false or the license has expired.
type Empresa struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nome             string    `gorm:"not null"`
	EmailContato     string    `gorm:"not null"`
	LicencaValidaAte time.Time `gorm:"not null"`
	Ativa            bool      `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LicencaExpirada reports whether the license expired before today.
// The expiry date itself is still valid through end of day.
func (e *Empresa) LicencaExpirada(now time.Time) bool {
	endOfDay := time.Date(
		e.LicencaValidaAte.Year(), e.LicencaValidaAte.Month(), e.LicencaValidaAte.Day(),
		23, 59, 59, 999_999_999, now.Location(),
	)
	return endOfDay.Before(now)
}
