package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/apierror"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/dto"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/repository"
)

const pedidosRecentesLimite = 5

// DashboardService builds the landing-page snapshot for a tenant.
type DashboardService interface {
	Resumo(ctx context.Context, empresaID uuid.UUID) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	comandaRepo repository.ComandaRepository
}

func NewDashboardService(comandaRepo repository.ComandaRepository) DashboardService {
	return &dashboardService{comandaRepo: comandaRepo}
}

func (s *dashboardService) Resumo(ctx context.Context, empresaID uuid.UUID) (*dto.DashboardResponse, error) {
	abertas, err := s.comandaRepo.CountAbertas(ctx, empresaID)
	if err != nil {
		return nil, apierror.Internal("Falha ao montar o dashboard.", err)
	}

	hoje := time.Now()
	inicio := time.Date(hoje.Year(), hoje.Month(), hoje.Day(), 0, 0, 0, 0, time.Local)
	fim := inicio.Add(24*time.Hour - time.Nanosecond)
	pagasHoje, err := s.comandaRepo.ListPagasNoPeriodo(ctx, empresaID, inicio, fim)
	if err != nil {
		return nil, apierror.Internal("Falha ao montar o dashboard.", err)
	}
	vendasHoje := decimal.Zero
	for i := range pagasHoje {
		vendasHoje = vendasHoje.Add(pagasHoje[i].TotalComanda)
	}

	comMesa, err := s.comandaRepo.ListAbertasComMesa(ctx, empresaID)
	if err != nil {
		return nil, apierror.Internal("Falha ao montar o dashboard.", err)
	}
	mesas := make([]dto.MesaStatus, 0, len(comMesa))
	for i := range comMesa {
		c := &comMesa[i]
		mesas = append(mesas, dto.MesaStatus{
			Mesa:   derefStr(c.Mesa),
			Status: "Ocupada",
			Total:  c.TotalComanda,
		})
	}

	recentes, err := s.comandaRepo.ListRecentes(ctx, empresaID, pedidosRecentesLimite)
	if err != nil {
		return nil, apierror.Internal("Falha ao montar o dashboard.", err)
	}
	pedidos := make([]dto.PedidoRecente, 0, len(recentes))
	for i := range recentes {
		c := &recentes[i]
		pedidos = append(pedidos, dto.PedidoRecente{
			ID:           c.ID.String(),
			Mesa:         derefStr(c.Mesa),
			Cliente:      derefStr(c.NomeCliente),
			Total:        c.TotalComanda,
			Status:       c.Status,
			DataAbertura: c.DataAbertura,
		})
	}

	return &dto.DashboardResponse{
		ComandasAbertas: abertas,
		VendasHoje:      vendasHoje,
		StatusMesas:     mesas,
		PedidosRecentes: pedidos,
	}, nil
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
