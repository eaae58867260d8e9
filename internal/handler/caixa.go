package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/apierror"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/dto"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/middleware"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/service"
)

type CaixaHandler struct{ svc service.CaixaService }

func NewCaixaHandler(svc service.CaixaService) *CaixaHandler { return &CaixaHandler{svc: svc} }

func tenantIDs(c *gin.Context) (empresaID, usuarioID uuid.UUID, ok bool) {
	var err error
	empresaID, err = middleware.EmpresaUUID(c)
	if err != nil || empresaID == uuid.Nil {
		c.JSON(http.StatusForbidden, apierror.New("Usuário sem empresa associada."))
		return uuid.Nil, uuid.Nil, false
	}
	usuarioID, err = middleware.UserUUID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token inválido."))
		return uuid.Nil, uuid.Nil, false
	}
	return empresaID, usuarioID, true
}

// Abrir godoc
// @Summary Abre um novo caixa para a empresa
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AbrirCaixaRequest true "Dados de abertura"
// @Success 201 {object} dto.CaixaResponse
// @Failure 409 {object} apierror.APIError
// @Router /api/caixa/abrir [post]
func (h *CaixaHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	empresaID, usuarioID, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), empresaID, usuarioID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Status godoc
// @Summary Retorna o caixa aberto atual com as movimentações recentes
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CaixaResponse
// @Router /api/caixa/status [get]
func (h *CaixaHandler) Status(c *gin.Context) {
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.StatusAtual(c.Request.Context(), empresaID)
	if err != nil {
		writeError(c, err)
		return
	}
	if resp == nil {
		c.JSON(http.StatusOK, gin.H{"caixaAberto": false, "caixa": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"caixaAberto": true, "caixa": resp})
}

// Movimentacao godoc
// @Summary Registra um suprimento ou sangria no caixa aberto
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MovimentacaoRequest true "Movimentação"
// @Success 201 {object} dto.MovimentacaoResponse
// @Failure 400 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /api/caixa/movimentacao [post]
func (h *CaixaHandler) Movimentacao(c *gin.Context) {
	var req dto.MovimentacaoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	empresaID, usuarioID, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.RegistrarMovimentacao(c.Request.Context(), empresaID, usuarioID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Fechar godoc
// @Summary Fecha o caixa aberto e calcula a diferença de caixa
// @Tags caixa
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.FecharCaixaRequest true "Dados de fechamento"
// @Success 200 {object} dto.CaixaResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /api/caixa/fechar [post]
func (h *CaixaHandler) Fechar(c *gin.Context) {
	var req dto.FecharCaixaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	empresaID, usuarioID, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.Fechar(c.Request.Context(), empresaID, usuarioID, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DetalhesFechamento godoc
// @Summary Prévia dos totais para o fechamento do caixa aberto
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DetalhesFechamentoResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/caixa/detalhes-fechamento [get]
func (h *CaixaHandler) DetalhesFechamento(c *gin.Context) {
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.DetalhesFechamento(c.Request.Context(), empresaID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Relatorio godoc
// @Summary Relatório consolidado de um caixa (aberto ou fechado)
// @Tags caixa
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID do caixa"
// @Success 200 {object} dto.RelatorioCaixaResponse
// @Failure 404 {object} apierror.APIError
// @Router /api/caixa/{id}/relatorio [get]
func (h *CaixaHandler) Relatorio(c *gin.Context) {
	caixaID, ok := parseID(c, "id")
	if !ok {
		return
	}
	empresaID, _, ok := tenantIDs(c)
	if !ok {
		return
	}
	resp, err := h.svc.Relatorio(c.Request.Context(), caixaID, empresaID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
