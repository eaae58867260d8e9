package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/dto"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/service"
)

type CategoriaHandler struct{ svc service.CategoriaService }

func NewCategoriaHandler(svc service.CategoriaService) *CategoriaHandler {
	return &CategoriaHandler{svc: svc}
}

// Criar godoc
// @Summary Cadastra uma categoria de produtos
// @Tags categorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarCategoriaRequest true "Categoria"
// @Success 201 {object} dto.CategoriaResponse
// @Router /api/categorias [post]
func (h *CategoriaHandler) Criar(c *gin.Context) {
	var req dto.CriarCategoriaRequest
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
// @Summary Lista as categorias da empresa
// @Tags categorias
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CategoriaResponse
// @Router /api/categorias [get]
func (h *CategoriaHandler) Listar(c *gin.Context) {
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

// Atualizar godoc
// @Summary Renomeia uma categoria
// @Tags categorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da categoria"
// @Param body body dto.CriarCategoriaRequest true "Novo nome"
// @Success 200 {object} dto.CategoriaResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/categorias/{id} [put]
func (h *CategoriaHandler) Atualizar(c *gin.Context) {
	categoriaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CriarCategoriaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), categoriaID, empresaID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Remover godoc
// @Summary Remove uma categoria
// @Tags categorias
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da categoria"
// @Success 204
// @Failure 404 {object} apierror.APIError
// @Router /api/categorias/{id} [delete]
func (h *CategoriaHandler) Remover(c *gin.Context) {
	categoriaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	if err := h.svc.Remover(c.Request.Context(), categoriaID, empresaID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
