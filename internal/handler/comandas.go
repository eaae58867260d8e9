package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/dto"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/service"
)

type ComandaHandler struct {
	svc        service.ComandaService
	pagamentos service.PagamentoService
}

func NewComandaHandler(svc service.ComandaService, pagamentos service.PagamentoService) *ComandaHandler {
	return &ComandaHandler{svc: svc, pagamentos: pagamentos}
}

// Criar godoc
// @Summary Abre uma nova comanda
// @Tags comandas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CriarComandaRequest true "Dados da comanda"
// @Success 201 {object} dto.ComandaResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/comandas [post]
func (h *ComandaHandler) Criar(c *gin.Context) {
	var req dto.CriarComandaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	empresaID, usuarioID, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), empresaID, usuarioID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Lista comandas com filtros de status, mesa e período
// @Tags comandas
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status (aberta, fechada, paga, cancelada)"
// @Param mesa query string false "Mesa (igualdade exata)"
// @Param dataInicio query string false "Data inicial (AAAA-MM-DD)"
// @Param dataFim query string false "Data final (AAAA-MM-DD)"
// @Success 200 {array} dto.ComandaResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/comandas [get]
func (h *ComandaHandler) Listar(c *gin.Context) {
	var q dto.ListarComandasQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, err)
		return
	}
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), empresaID, q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Visualizar godoc
// @Summary Detalha uma comanda com seus itens
// @Tags comandas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Success 200 {object} dto.ComandaResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/comandas/{id} [get]
func (h *ComandaHandler) Visualizar(c *gin.Context) {
	comandaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.Visualizar(c.Request.Context(), comandaID, empresaID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AdicionarItem godoc
// @Summary Adiciona um item à comanda aberta
// @Tags comandas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Param body body dto.AdicionarItemRequest true "Item"
// @Success 200 {object} dto.ComandaResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/comandas/{id}/itens [post]
func (h *ComandaHandler) AdicionarItem(c *gin.Context) {
	comandaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.AdicionarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.AdicionarItem(c.Request.Context(), comandaID, empresaID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AtualizarItem godoc
// @Summary Altera a quantidade de um item da comanda
// @Tags comandas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Param itemId path string true "ID do item"
// @Param body body dto.AtualizarItemRequest true "Nova quantidade"
// @Success 200 {object} dto.ComandaResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/comandas/{id}/itens/{itemId} [put]
func (h *ComandaHandler) AtualizarItem(c *gin.Context) {
	comandaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}
	var req dto.AtualizarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.AtualizarItem(c.Request.Context(), comandaID, itemID, empresaID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoverItem godoc
// @Summary Remove um item da comanda
// @Tags comandas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Param itemId path string true "ID do item"
// @Success 200 {object} dto.ComandaResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/comandas/{id}/itens/{itemId} [delete]
func (h *ComandaHandler) RemoverItem(c *gin.Context) {
	comandaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return
	}
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.RemoverItem(c.Request.Context(), comandaID, itemID, empresaID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancelar godoc
// @Summary Cancela uma comanda aberta
// @Tags comandas
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Success 200 {object} dto.ComandaResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /api/comandas/{id}/cancelar [post]
func (h *ComandaHandler) Cancelar(c *gin.Context) {
	comandaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.Cancelar(c.Request.Context(), comandaID, empresaID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Pagar godoc
// @Summary Processa o pagamento de uma comanda contra o caixa aberto
// @Tags comandas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID da comanda"
// @Param body body dto.ProcessarPagamentoRequest true "Forma de pagamento"
// @Success 200 {object} dto.ComandaResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /api/comandas/{id}/pagar [post]
func (h *ComandaHandler) Pagar(c *gin.Context) {
	comandaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.ProcessarPagamentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.pagamentos.ProcessarPagamento(c.Request.Context(), comandaID, empresaID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
