package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Caixa status values. A caixa transitions Aberto → Fechado exactly once
// and is never re-opened.
const (
	CaixaAberto  = "Aberto"
	CaixaFechado = "Fechado"
)

// Movement types of the register ledger.
const (
	MovimentacaoSuprimento = "Suprimento"
	MovimentacaoSangria    = "Sangria"
)

// Caixa represents one open/closed cash-register period for an empresa.
// At most one caixa per empresa may be Aberto at any time — enforced by a
// unique partial index on (empresa_id) WHERE status = 'Aberto' plus row
// locking on every mutation path.
type Caixa struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpresaID           uuid.UUID  `gorm:"type:uuid;index;not null"`
	UsuarioAberturaID   uuid.UUID  `gorm:"type:uuid;not null"`
	UsuarioFechamentoID *uuid.UUID `gorm:"type:uuid"`
	DataAbertura        time.Time  `gorm:"not null"`
	DataFechamento      *time.Time

	SaldoInicial decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	// Running sales totals — credited only at payment settlement.
	TotalVendasDinheiro decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalVendasCartao   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalVendasPix      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	// Running adjustment totals — credited at movement time.
	TotalSuprimentos decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	TotalSangrias    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	SaldoFinalCalculado decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0"`
	SaldoFinalInformado *decimal.Decimal `gorm:"type:decimal(10,2)"`
	DiferencaCaixa      decimal.Decimal  `gorm:"type:decimal(10,2);not null;default:0"`

	ObservacoesAbertura   *string `gorm:"type:text"`
	ObservacoesFechamento *string `gorm:"type:text"`

	Status    string `gorm:"type:varchar(10);not null;default:'Aberto'"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Movimentacoes []MovimentacaoCaixa `gorm:"foreignKey:CaixaID"`
}

func (Caixa) TableName() string { return "caixas" }

// SaldoCalculado returns the theoretical drawer balance:
// saldoInicial + vendas (all buckets) + suprimentos − sangrias.
func (c *Caixa) SaldoCalculado() decimal.Decimal {
	return c.SaldoInicial.
		Add(c.TotalVendasDinheiro).
		Add(c.TotalVendasCartao).
		Add(c.TotalVendasPix).
		Add(c.TotalSuprimentos).
		Sub(c.TotalSangrias)
}

// MovimentacaoCaixa is an immutable ledger entry (suprimento or sangria)
// against a caixa that was Aberto at creation time. Never updated or
// deleted.
type MovimentacaoCaixa struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaixaID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	EmpresaID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	UsuarioID  uuid.UUID       `gorm:"type:uuid;not null"`
	Tipo       string          `gorm:"type:varchar(12);not null"`
	Valor      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Observacao *string         `gorm:"type:text"`
	CriadoEm   time.Time       `gorm:"autoCreateTime"`
}

func (MovimentacaoCaixa) TableName() string { return "movimentacoes_caixa" }
