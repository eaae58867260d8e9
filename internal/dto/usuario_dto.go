package dto

import (
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
)

type CriarUsuarioRequest struct {
	Nome  string `json:"nome"  validate:"required,min=2"`
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required,min=6"`
	Role  string `json:"role"  validate:"required,oneof=admin_empresa garcom caixa"`
}

type AtualizarUsuarioRequest struct {
	Nome  *string `json:"nome"  validate:"omitempty,min=2"`
	Role  *string `json:"role"  validate:"omitempty,oneof=admin_empresa garcom caixa"`
	Senha *string `json:"senha" validate:"omitempty,min=6"`
	Ativo *bool   `json:"ativo"`
}

type UsuarioResponse struct {
	ID        string  `json:"id"`
	Nome      string  `json:"nome"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	EmpresaID *string `json:"empresaId,omitempty"`
	Ativo     bool    `json:"ativo"`
}

func UsuarioToResponse(u *model.Usuario) *UsuarioResponse {
	resp := &UsuarioResponse{
		ID:    u.ID.String(),
		Nome:  u.Nome,
		Email: u.Email,
		Role:  u.Role,
		Ativo: u.Ativo,
	}
	if u.EmpresaID != nil {
		id := u.EmpresaID.String()
		resp.EmpresaID = &id
	}
	return resp
}
