package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/dto"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/service"
)

type ProdutoHandler struct{ svc service.ProdutoService }

func NewProdutoHandler(svc service.ProdutoService) *ProdutoHandler {
	return &ProdutoHandler{svc: svc}
}

// Criar godoc
// @Summary Cadastra um produto no cardápio
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarProdutoRequest true "Produto"
// @Success 201 {object} dto.ProdutoResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/produtos [post]
func (h *ProdutoHandler) Criar(c *gin.Context) {
	var req dto.CriarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), empresaID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista os produtos da empresa
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ProdutoResponse
// @Router /api/produtos [get]
func (h *ProdutoHandler) Listar(c *gin.Context) {
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), empresaID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Buscar godoc
// @Summary Detalha um produto
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProdutoResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/produtos/{id} [get]
func (h *ProdutoHandler) Buscar(c *gin.Context) {
	produtoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), produtoID, empresaID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary Atualiza um produto
// @Tags produtos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Param body body dto.AtualizarProdutoRequest true "Campos a atualizar"
// @Success 200 {object} dto.ProdutoResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/produtos/{id} [put]
func (h *ProdutoHandler) Atualizar(c *gin.Context) {
	produtoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AtualizarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), produtoID, empresaID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Remover godoc
// @Summary Remove um produto do cardápio
// @Tags produtos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do produto"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /api/produtos/{id} [delete]
func (h *ProdutoHandler) Remover(c *gin.Context) {
	produtoID, ok := parseID(c, "id")
	if !ok {
		return
	}
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	if err := h.svc.Remover(c.Request.Context(), produtoID, empresaID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
