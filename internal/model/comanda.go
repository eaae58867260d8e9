package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Comanda status values. Transitions are one-directional:
// Aberta → Paga (settlement), Aberta → Cancelada (cancel).
// Fechada is a reserved intermediate ("closed for payment") that no
// operation currently produces, but settlement accepts it as a valid
// pre-payment state. Paga and Cancelada are terminal.
const (
	ComandaAberta    = "Aberta"
	ComandaFechada   = "Fechada"
	ComandaPaga      = "Paga"
	ComandaCancelada = "Cancelada"
)

// Payment methods. Both card sub-types collapse into the caixa's single
// card bucket; Outro settles the tab without crediting any bucket.
const (
	PagamentoDinheiro      = "Dinheiro"
	PagamentoCartaoCredito = "Cartão de Crédito"
	PagamentoCartaoDebito  = "Cartão de Débito"
	PagamentoPix           = "PIX"
	PagamentoOutro         = "Outro"
)

// ParseComandaStatus normalizes a loosely-cased status string against the
// closed enum. ok is false for anything unrecognized — callers must treat
// that as an invalid argument instead of passing the raw value through.
func ParseComandaStatus(s string) (string, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ABERTA":
		return ComandaAberta, true
	case "FECHADA":
		return ComandaFechada, true
	case "PAGA":
		return ComandaPaga, true
	case "CANCELADA":
		return ComandaCancelada, true
	default:
		return "", false
	}
}

// ValidFormaPagamento reports whether s is one of the supported payment
// methods.
func ValidFormaPagamento(s string) bool {
	switch s {
	case PagamentoDinheiro, PagamentoCartaoCredito, PagamentoCartaoDebito, PagamentoPix, PagamentoOutro:
		return true
	}
	return false
}

// Comanda is one customer tab. TotalComanda always equals the sum of its
// current item subtotals; item mutations adjust it by delta inside the
// same locked transaction.
type Comanda struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID         uuid.UUID `gorm:"type:uuid;index;not null"`
	UsuarioAberturaID uuid.UUID `gorm:"type:uuid;not null"`
	// CaixaID is set at creation to the open caixa and set again at payment
	// to whichever caixa is open then — they differ when the register was
	// cycled between shifts.
	CaixaID        *uuid.UUID `gorm:"type:uuid;index"`
	Mesa           *string
	NomeCliente    *string
	Status         string          `gorm:"type:varchar(10);not null;default:'Aberta'"`
	TotalComanda   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	FormaPagamento *string         `gorm:"type:varchar(20)"`
	DataAbertura   time.Time       `gorm:"not null"`
	DataFechamento *time.Time
	Observacoes    *string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	ItensComanda    []ItemComanda `gorm:"foreignKey:ComandaID"`
	UsuarioAbertura *Usuario      `gorm:"foreignKey:UsuarioAberturaID"`
	Caixa           *Caixa        `gorm:"foreignKey:CaixaID"`
}

func (Comanda) TableName() string { return "comandas" }

// ItemComanda is one product line. PrecoUnitarioCobrado is frozen at add
// time and never follows later catalog price changes. Subtotal is always
// quantidade × the frozen unit price.
type ItemComanda struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ComandaID uuid.UUID `gorm:"type:uuid;index;not null"`
	ProdutoID uuid.UUID `gorm:"type:uuid;not null"`
	// EmpresaID is denormalized from the comanda to keep tenant filtering
	// cheap on item queries.
	EmpresaID            uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantidade           int             `gorm:"not null"`
	PrecoUnitarioCobrado decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Subtotal             decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ObservacaoItem       *string         `gorm:"type:text"`
	CreatedAt            time.Time
	UpdatedAt            time.Time

	Produto *Produto `gorm:"foreignKey:ProdutoID"`
}

func (ItemComanda) TableName() string { return "itens_comanda" }
