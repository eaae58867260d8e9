package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RelatorioVendasResponse aggregates PAGA comandas over a period.
type RelatorioVendasResponse struct {
	Periodo struct {
		DataInicio string `json:"dataInicio"`
		DataFim    string `json:"dataFim"`
	} `json:"periodo"`
	EmpresaID               string                     `json:"empresaId"`
	TotalVendidoBruto       decimal.Decimal            `json:"totalVendidoBruto"`
	NumeroComandasPagas     int                        `json:"numeroComandasPagas"`
	TicketMedio             decimal.Decimal            `json:"ticketMedio"`
	VendasPorFormaPagamento map[string]decimal.Decimal `json:"vendasPorFormaPagamento"`
}

// DashboardResponse is the landing-page snapshot.
type DashboardResponse struct {
	ComandasAbertas int64           `json:"comandasAbertas"`
	VendasHoje      decimal.Decimal `json:"vendasHoje"`
	StatusMesas     []MesaStatus    `json:"statusMesas"`
	PedidosRecentes []PedidoRecente `json:"pedidosRecentes"`
}

type MesaStatus struct {
	Mesa   string          `json:"mesa"`
	Status string          `json:"status"`
	Total  decimal.Decimal `json:"total"`
}

type PedidoRecente struct {
	ID           string          `json:"id"`
	Mesa         string          `json:"mesa"`
	Cliente      string          `json:"cliente"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	DataAbertura time.Time       `json:"dataAbertura"`
}
