package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/apierror"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/dto"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/repository"
)

// PagamentoService settles tabs against the open register. It is the
// only writer that touches a comanda and a caixa in the same
// transaction, which is what keeps the sales totals consistent with the
// set of paid tabs.
type PagamentoService interface {
	ProcessarPagamento(ctx context.Context, comandaID, empresaID uuid.UUID, req dto.ProcessarPagamentoRequest) (*dto.ComandaResponse, error)
}

type pagamentoService struct {
	comandaRepo repository.ComandaRepository
	caixaRepo   repository.CaixaRepository
	tx          repository.TxRunner
}

func NewPagamentoService(
	comandaRepo repository.ComandaRepository,
	caixaRepo repository.CaixaRepository,
	tx repository.TxRunner,
) PagamentoService {
	return &pagamentoService{comandaRepo: comandaRepo, caixaRepo: caixaRepo, tx: tx}
}

// ProcessarPagamento marks the comanda Paga and credits its total into
// the open register's per-method sales bucket. Both rows are locked for
// the duration, so two settlements of the same tab cannot both pass the
// status check, and concurrent settlements cannot lose a totals update.
func (s *pagamentoService) ProcessarPagamento(ctx context.Context, comandaID, empresaID uuid.UUID, req dto.ProcessarPagamentoRequest) (*dto.ComandaResponse, error) {
	if !model.ValidFormaPagamento(req.FormaPagamento) {
		return nil, apierror.InvalidArgument("Forma de pagamento inválida: " + req.FormaPagamento + ".")
	}

	err := s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		comanda, err := s.comandaRepo.FindPagavelForUpdateTx(tx, comandaID, empresaID)
		if err != nil {
			if isNotFound(err) {
				return apierror.NotFound("Comanda não encontrada ou já finalizada.")
			}
			return err
		}

		caixa, err := s.caixaRepo.FindAbertoForUpdateTx(tx, empresaID)
		if err != nil {
			if isNotFound(err) {
				return apierror.InvalidArgument("Nenhum caixa aberto para receber o pagamento.")
			}
			return err
		}

		forma := req.FormaPagamento
		now := time.Now()

		comanda.Status = model.ComandaPaga
		comanda.FormaPagamento = &forma
		comanda.DataFechamento = &now
		comanda.CaixaID = &caixa.ID
		if err := s.comandaRepo.UpdateTx(tx, comanda); err != nil {
			return err
		}

		switch forma {
		case model.PagamentoDinheiro:
			caixa.TotalVendasDinheiro = caixa.TotalVendasDinheiro.Add(comanda.TotalComanda)
		case model.PagamentoCartaoCredito, model.PagamentoCartaoDebito:
			caixa.TotalVendasCartao = caixa.TotalVendasCartao.Add(comanda.TotalComanda)
		case model.PagamentoPix:
			caixa.TotalVendasPix = caixa.TotalVendasPix.Add(comanda.TotalComanda)
		case model.PagamentoOutro:
			// "Outro" settles the tab without crediting a sales bucket.
		}
		return s.caixaRepo.UpdateTx(tx, caixa)
	})
	if err != nil {
		return nil, apierror.From(err, "Falha ao processar pagamento da comanda.")
	}

	comanda, err := s.comandaRepo.FindByIDAndEmpresa(ctx, comandaID, empresaID)
	if err != nil {
		return nil, apierror.Internal("Falha ao carregar comanda após pagamento.", err)
	}
	return dto.ComandaToResponse(comanda), nil
}
