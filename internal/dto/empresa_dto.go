package dto

import (
	"time"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
)

type CriarEmpresaRequest struct {
	Nome             string `json:"nome"             validate:"required,min=2"`
	EmailContato     string `json:"emailContato"     validate:"required,email"`
	LicencaValidaAte string `json:"licencaValidaAte" validate:"required,datetime=2006-01-02"`
	// Credentials of the empresa's first admin_empresa account.
	AdminNome  string `json:"adminNome"  validate:"required,min=2"`
	AdminEmail string `json:"adminEmail" validate:"required,email"`
	AdminSenha string `json:"adminSenha" validate:"required,min=6"`
}

type AtualizarEmpresaRequest struct {
	Nome             *string `json:"nome"             validate:"omitempty,min=2"`
	EmailContato     *string `json:"emailContato"     validate:"omitempty,email"`
	LicencaValidaAte *string `json:"licencaValidaAte" validate:"omitempty,datetime=2006-01-02"`
	Ativa            *bool   `json:"ativa"`
}

type EmpresaResponse struct {
	ID               string    `json:"id"`
	Nome             string    `json:"nome"`
	EmailContato     string    `json:"emailContato"`
	LicencaValidaAte time.Time `json:"licencaValidaAte"`
	Ativa            bool      `json:"ativa"`
}

func EmpresaToResponse(e *model.Empresa) *EmpresaResponse {
	return &EmpresaResponse{
		ID:               e.ID.String(),
		Nome:             e.Nome,
		EmailContato:     e.EmailContato,
		LicencaValidaAte: e.LicencaValidaAte,
		Ativa:            e.Ativa,
	}
}
