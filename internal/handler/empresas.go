package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/dto"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/service"
)

// EmpresaHandler exposes tenant management, restricted to the global
// administrator by the route group.
type EmpresaHandler struct{ svc service.EmpresaService }

func NewEmpresaHandler(svc service.EmpresaService) *EmpresaHandler {
	return &EmpresaHandler{svc: svc}
}

// Criar godoc
// @Summary Cadastra uma empresa com seu primeiro administrador
// @Tags empresas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarEmpresaRequest true "Empresa e administrador"
// @Success 201 {object} dto.EmpresaResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/admin/empresas [post]
func (h *EmpresaHandler) Criar(c *gin.Context) {
	var req dto.CriarEmpresaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista todas as empresas
// @Tags empresas
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.EmpresaResponse
// @Router /api/admin/empresas [get]
func (h *EmpresaHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Buscar godoc
// @Summary Detalha uma empresa
// @Tags empresas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da empresa"
// @Success 200 {object} dto.EmpresaResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/admin/empresas/{id} [get]
func (h *EmpresaHandler) Buscar(c *gin.Context) {
	empresaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), empresaID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary Atualiza cadastro, licença ou ativação de uma empresa
// @Tags empresas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da empresa"
// @Param body body dto.AtualizarEmpresaRequest true "Campos a atualizar"
// @Success 200 {object} dto.EmpresaResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/admin/empresas/{id} [put]
func (h *EmpresaHandler) Atualizar(c *gin.Context) {
	empresaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarEmpresaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), empresaID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
