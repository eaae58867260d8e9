package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCaixaRequest struct {
	SaldoInicial        decimal.Decimal `json:"saldoInicial"        validate:"min=0"`
	ObservacoesAbertura *string         `json:"observacoesAbertura"`
}

type MovimentacaoRequest struct {
	Tipo       string          `json:"tipo"       validate:"required,oneof=Suprimento Sangria"`
	Valor      decimal.Decimal `json:"valor"      validate:"required,gt=0"`
	Observacao *string         `json:"observacao"`
}

type FecharCaixaRequest struct {
	SaldoFinalInformado   decimal.Decimal `json:"saldoFinalInformado"   validate:"min=0"`
	ObservacoesFechamento *string         `json:"observacoesFechamento"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimentacaoResponse struct {
	ID         string          `json:"id"`
	Tipo       string          `json:"tipo"`
	Valor      decimal.Decimal `json:"valor"`
	Observacao *string         `json:"observacao"`
	CriadoEm   time.Time       `json:"criadoEm"`
}

type CaixaResponse struct {
	ID                  string           `json:"id"`
	EmpresaID           string           `json:"empresaId"`
	Status              string           `json:"status"`
	DataAbertura        time.Time        `json:"dataAbertura"`
	DataFechamento      *time.Time       `json:"dataFechamento,omitempty"`
	SaldoInicial        decimal.Decimal  `json:"saldoInicial"`
	TotalVendasDinheiro decimal.Decimal  `json:"totalVendasDinheiro"`
	TotalVendasCartao   decimal.Decimal  `json:"totalVendasCartao"`
	TotalVendasPix      decimal.Decimal  `json:"totalVendasPix"`
	TotalSuprimentos    decimal.Decimal  `json:"totalSuprimentos"`
	TotalSangrias       decimal.Decimal  `json:"totalSangrias"`
	SaldoFinalCalculado decimal.Decimal  `json:"saldoFinalCalculado"`
	SaldoFinalInformado *decimal.Decimal `json:"saldoFinalInformado,omitempty"`
	DiferencaCaixa      decimal.Decimal  `json:"diferencaCaixa"`

	ObservacoesAbertura   *string `json:"observacoesAbertura,omitempty"`
	ObservacoesFechamento *string `json:"observacoesFechamento,omitempty"`

	Movimentacoes []MovimentacaoResponse `json:"movimentacoes,omitempty"`
}

// DetalhesFechamentoResponse is the read-only closing preview of an open
// caixa — totals plus the theoretical drawer balance, without closing it.
type DetalhesFechamentoResponse struct {
	SaldoInicial        decimal.Decimal `json:"saldoInicial"`
	TotalVendas         decimal.Decimal `json:"totalVendas"`
	TotalVendasDinheiro decimal.Decimal `json:"totalVendasDinheiro"`
	TotalVendasCartao   decimal.Decimal `json:"totalVendasCartao"`
	TotalVendasPix      decimal.Decimal `json:"totalVendasPix"`
	TotalSuprimentos    decimal.Decimal `json:"totalSuprimentos"`
	TotalSangrias       decimal.Decimal `json:"totalSangrias"`
	SaldoTeorico        decimal.Decimal `json:"saldoTeorico"`
}

type RelatorioCaixaResponse struct {
	CaixaID               string                     `json:"caixaId"`
	EmpresaID             string                     `json:"empresaId"`
	Status                string                     `json:"status"`
	DataAbertura          time.Time                  `json:"dataAbertura"`
	DataFechamento        *time.Time                 `json:"dataFechamento,omitempty"`
	SaldoInicial          decimal.Decimal            `json:"saldoInicial"`
	SaldoFinalCalculado   decimal.Decimal            `json:"saldoFinalCalculado"`
	SaldoFinalInformado   *decimal.Decimal           `json:"saldoFinalInformado,omitempty"`
	DiferencaCaixa        decimal.Decimal            `json:"diferencaCaixa"`
	TotalVendasDinheiro   decimal.Decimal            `json:"totalVendasDinheiro"`
	TotalVendasCartao     decimal.Decimal            `json:"totalVendasCartao"`
	TotalVendasPix        decimal.Decimal            `json:"totalVendasPix"`
	TotalSuprimentos      decimal.Decimal            `json:"totalSuprimentos"`
	TotalSangrias         decimal.Decimal            `json:"totalSangrias"`
	TotaisPorMovimentacao map[string]decimal.Decimal `json:"totaisPorMovimentacao"`
	ObservacoesAbertura   *string                    `json:"observacoesAbertura,omitempty"`
	ObservacoesFechamento *string                    `json:"observacoesFechamento,omitempty"`
}

// CaixaToResponse converts the entity plus its recent movements.
func CaixaToResponse(c *model.Caixa, movs []model.MovimentacaoCaixa) *CaixaResponse {
	resp := &CaixaResponse{
		ID:                    c.ID.String(),
		EmpresaID:             c.EmpresaID.String(),
		Status:                c.Status,
		DataAbertura:          c.DataAbertura,
		DataFechamento:        c.DataFechamento,
		SaldoInicial:          c.SaldoInicial,
		TotalVendasDinheiro:   c.TotalVendasDinheiro,
		TotalVendasCartao:     c.TotalVendasCartao,
		TotalVendasPix:        c.TotalVendasPix,
		TotalSuprimentos:      c.TotalSuprimentos,
		TotalSangrias:         c.TotalSangrias,
		SaldoFinalCalculado:   c.SaldoFinalCalculado,
		SaldoFinalInformado:   c.SaldoFinalInformado,
		DiferencaCaixa:        c.DiferencaCaixa,
		ObservacoesAbertura:   c.ObservacoesAbertura,
		ObservacoesFechamento: c.ObservacoesFechamento,
	}
	for _, m := range movs {
		resp.Movimentacoes = append(resp.Movimentacoes, MovimentacaoResponse{
			ID:         m.ID.String(),
			Tipo:       m.Tipo,
			Valor:      m.Valor,
			Observacao: m.Observacao,
			CriadoEm:   m.CriadoEm,
		})
	}
	return resp
}
