package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/apierror"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/service"
)

type RelatorioHandler struct {
	relatorios service.RelatorioService
	dashboard  service.DashboardService
}

func NewRelatorioHandler(relatorios service.RelatorioService, dashboard service.DashboardService) *RelatorioHandler {
	return &RelatorioHandler{relatorios: relatorios, dashboard: dashboard}
}

// Vendas godoc
// @Summary Relatório de vendas por período
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Param dataInicio query string true "Data inicial (AAAA-MM-DD)"
// @Param dataFim query string true "Data final (AAAA-MM-DD)"
// @Success 200 {object} dto.RelatorioVendasResponse
// @Failure 400 {object} apierror.APIError
// @Router /api/relatorios/vendas [get]
func (h *RelatorioHandler) Vendas(c *gin.Context) {
	dataInicio := c.Query("dataInicio")
	dataFim := c.Query("dataFim")
	if dataInicio == "" || dataFim == "" {
		c.JSON(http.StatusBadRequest, apierror.New("Informe dataInicio e dataFim (AAAA-MM-DD)."))
		return
	}
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.relatorios.Vendas(c.Request.Context(), empresaID, dataInicio, dataFim)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Dashboard godoc
// @Summary Resumo do dia: comandas abertas, vendas e mesas ocupadas
// @Tags relatorios
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Router /api/dashboard [get]
func (h *RelatorioHandler) Dashboard(c *gin.Context) {
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.dashboard.Resumo(c.Request.Context(), empresaID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
