package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Produto is a sellable catalog entry. Preco is the current list price;
// comanda items freeze their own copy at add time.
type Produto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Nome        string    `gorm:"not null"`
	Descricao   *string
	Preco       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CategoriaID *uuid.UUID      `gorm:"type:uuid;index"`
	Disponivel  bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
}

// Categoria groups produtos for menu display. Company scoped.
type Categoria struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID uuid.UUID `gorm:"type:uuid;index;not null"`
	Nome      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
