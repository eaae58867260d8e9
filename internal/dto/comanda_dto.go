package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CriarComandaRequest struct {
	Mesa        *string `json:"mesa"`
	NomeCliente *string `json:"nomeCliente"`
	Observacoes *string `json:"observacoes"`
}

type AdicionarItemRequest struct {
	ProdutoID      string  `json:"produtoId"      validate:"required,uuid"`
	Quantidade     int     `json:"quantidade"     validate:"required,min=1"`
	ObservacaoItem *string `json:"observacaoItem"`
}

type AtualizarItemRequest struct {
	Quantidade int `json:"quantidade" validate:"required,min=1"`
}

type ProcessarPagamentoRequest struct {
	FormaPagamento string `json:"formaPagamento" validate:"required"`
}

// ListarComandasQuery carries the raw listing filters from the query
// string; the service normalizes and validates them.
type ListarComandasQuery struct {
	Status     string `form:"status"`
	Mesa       string `form:"mesa"`
	DataInicio string `form:"dataInicio"` // YYYY-MM-DD
	DataFim    string `form:"dataFim"`    // YYYY-MM-DD
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemComandaResponse struct {
	ID                   string          `json:"id"`
	ProdutoID            string          `json:"produtoId"`
	ProdutoNome          string          `json:"produtoNome,omitempty"`
	Quantidade           int             `json:"quantidade"`
	PrecoUnitarioCobrado decimal.Decimal `json:"precoUnitarioCobrado"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	ObservacaoItem       *string         `json:"observacaoItem,omitempty"`
}

type ComandaResponse struct {
	ID             string          `json:"id"`
	EmpresaID      string          `json:"empresaId"`
	CaixaID        *string         `json:"caixaId,omitempty"`
	Mesa           *string         `json:"mesa,omitempty"`
	NomeCliente    *string         `json:"nomeCliente,omitempty"`
	Status         string          `json:"status"`
	TotalComanda   decimal.Decimal `json:"totalComanda"`
	FormaPagamento *string         `json:"formaPagamento,omitempty"`
	DataAbertura   time.Time       `json:"dataAbertura"`
	DataFechamento *time.Time      `json:"dataFechamento,omitempty"`
	Observacoes    *string         `json:"observacoes,omitempty"`
	AbertaPor      string          `json:"abertaPor,omitempty"`

	Itens []ItemComandaResponse `json:"itens,omitempty"`
}

func ComandaToResponse(c *model.Comanda) *ComandaResponse {
	resp := &ComandaResponse{
		ID:             c.ID.String(),
		EmpresaID:      c.EmpresaID.String(),
		Mesa:           c.Mesa,
		NomeCliente:    c.NomeCliente,
		Status:         c.Status,
		TotalComanda:   c.TotalComanda,
		FormaPagamento: c.FormaPagamento,
		DataAbertura:   c.DataAbertura,
		DataFechamento: c.DataFechamento,
		Observacoes:    c.Observacoes,
	}
	if c.CaixaID != nil {
		id := c.CaixaID.String()
		resp.CaixaID = &id
	}
	if c.UsuarioAbertura != nil {
		resp.AbertaPor = c.UsuarioAbertura.Nome
	}
	for _, item := range c.ItensComanda {
		resp.Itens = append(resp.Itens, *ItemToResponse(&item))
	}
	return resp
}

func ItemToResponse(item *model.ItemComanda) *ItemComandaResponse {
	ir := &ItemComandaResponse{
		ID:                   item.ID.String(),
		ProdutoID:            item.ProdutoID.String(),
		Quantidade:           item.Quantidade,
		PrecoUnitarioCobrado: item.PrecoUnitarioCobrado,
		Subtotal:             item.Subtotal,
		ObservacaoItem:       item.ObservacaoItem,
	}
	if item.Produto != nil {
		ir.ProdutoNome = item.Produto.Nome
	}
	return ir
}
