package dto

import (
	"github.com/shopspring/decimal"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
)

type CriarProdutoRequest struct {
	Nome        string          `json:"nome"        validate:"required,min=2"`
	Descricao   *string         `json:"descricao"`
	Preco       decimal.Decimal `json:"preco"       validate:"required,gt=0"`
	CategoriaID *string         `json:"categoriaId" validate:"omitempty,uuid"`
	Disponivel  *bool           `json:"disponivel"`
}

type AtualizarProdutoRequest struct {
	Nome        *string          `json:"nome"        validate:"omitempty,min=2"`
	Descricao   *string          `json:"descricao"`
	Preco       *decimal.Decimal `json:"preco"       validate:"omitempty"`
	CategoriaID *string          `json:"categoriaId" validate:"omitempty,uuid"`
	Disponivel  *bool            `json:"disponivel"`
}

type ProdutoResponse struct {
	ID          string          `json:"id"`
	Nome        string          `json:"nome"`
	Descricao   *string         `json:"descricao,omitempty"`
	Preco       decimal.Decimal `json:"preco"`
	CategoriaID *string         `json:"categoriaId,omitempty"`
	Categoria   string          `json:"categoria,omitempty"`
	Disponivel  bool            `json:"disponivel"`
}

func ProdutoToResponse(p *model.Produto) *ProdutoResponse {
	resp := &ProdutoResponse{
		ID:         p.ID.String(),
		Nome:       p.Nome,
		Descricao:  p.Descricao,
		Preco:      p.Preco,
		Disponivel: p.Disponivel,
	}
	if p.CategoriaID != nil {
		id := p.CategoriaID.String()
		resp.CategoriaID = &id
	}
	if p.Categoria != nil {
		resp.Categoria = p.Categoria.Nome
	}
	return resp
}

type CriarCategoriaRequest struct {
	Nome string `json:"nome" validate:"required,min=2"`
}

type CategoriaResponse struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}

func CategoriaToResponse(c *model.Categoria) *CategoriaResponse {
	return &CategoriaResponse{ID: c.ID.String(), Nome: c.Nome}
}
