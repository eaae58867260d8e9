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

// RelatorioService aggregates settled tabs into the sales report.
type RelatorioService interface {
	Vendas(ctx context.Context, empresaID uuid.UUID, dataInicio, dataFim string) (*dto.RelatorioVendasResponse, error)
}

type relatorioService struct {
	comandaRepo repository.ComandaRepository
}

func NewRelatorioService(comandaRepo repository.ComandaRepository) RelatorioService {
	return &relatorioService{comandaRepo: comandaRepo}
}

// Vendas sums PAGA comandas whose settlement fell inside the inclusive
// [dataInicio, dataFim] day range.
func (s *relatorioService) Vendas(ctx context.Context, empresaID uuid.UUID, dataInicio, dataFim string) (*dto.RelatorioVendasResponse, error) {
	inicio, err := time.ParseInLocation("2006-01-02", dataInicio, time.Local)
	if err != nil {
		return nil, apierror.InvalidArgument("Data inicial inválida; use o formato AAAA-MM-DD.")
	}
	fimDia, err := time.ParseInLocation("2006-01-02", dataFim, time.Local)
	if err != nil {
		return nil, apierror.InvalidArgument("Data final inválida; use o formato AAAA-MM-DD.")
	}
	if fimDia.Before(inicio) {
		return nil, apierror.InvalidArgument("A data final não pode ser anterior à data inicial.")
	}
	fim := fimDia.Add(24*time.Hour - time.Nanosecond)

	comandas, err := s.comandaRepo.ListPagasNoPeriodo(ctx, empresaID, inicio, fim)
	if err != nil {
		return nil, apierror.Internal("Falha ao gerar relatório de vendas.", err)
	}

	total := decimal.Zero
	porForma := map[string]decimal.Decimal{}
	for i := range comandas {
		c := &comandas[i]
		total = total.Add(c.TotalComanda)
		if c.FormaPagamento != nil {
			porForma[*c.FormaPagamento] = porForma[*c.FormaPagamento].Add(c.TotalComanda)
		}
	}

	ticketMedio := decimal.Zero
	if len(comandas) > 0 {
		ticketMedio = total.DivRound(decimal.NewFromInt(int64(len(comandas))), 2)
	}

	resp := &dto.RelatorioVendasResponse{
		EmpresaID:               empresaID.String(),
		TotalVendidoBruto:       total,
		NumeroComandasPagas:     len(comandas),
		TicketMedio:             ticketMedio,
		VendasPorFormaPagamento: porForma,
	}
	resp.Periodo.DataInicio = dataInicio
	resp.Periodo.DataFim = dataFim
	return resp, nil
}
