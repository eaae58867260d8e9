package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/apierror"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/dto"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/repository"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/worker"
)

// movimentacoesRecentes bounds the movement list attached to the open
// register status view.
const movimentacoesRecentes = 10

// CaixaService owns the register-session lifecycle: open, record
// movement, close, and the read-only projections.
type CaixaService interface {
	Abrir(ctx context.Context, empresaID, usuarioID uuid.UUID, req dto.AbrirCaixaRequest) (*dto.CaixaResponse, error)
	StatusAtual(ctx context.Context, empresaID uuid.UUID) (*dto.CaixaResponse, error)
	RegistrarMovimentacao(ctx context.Context, empresaID, usuarioID uuid.UUID, req dto.MovimentacaoRequest) (*dto.MovimentacaoResponse, error)
	Fechar(ctx context.Context, empresaID, usuarioID uuid.UUID, req dto.FecharCaixaRequest) (*dto.CaixaResponse, error)
	DetalhesFechamento(ctx context.Context, empresaID uuid.UUID) (*dto.DetalhesFechamentoResponse, error)
	Relatorio(ctx context.Context, caixaID, empresaID uuid.UUID) (*dto.RelatorioCaixaResponse, error)
}

type caixaService struct {
	repo        repository.CaixaRepository
	comandaRepo repository.ComandaRepository
	usuarioRepo repository.UsuarioRepository
	empresaRepo repository.EmpresaRepository
	tx          repository.TxRunner
	dispatcher  *worker.Dispatcher
}

func NewCaixaService(
	repo repository.CaixaRepository,
	comandaRepo repository.ComandaRepository,
	usuarioRepo repository.UsuarioRepository,
	empresaRepo repository.EmpresaRepository,
	tx repository.TxRunner,
	dispatcher *worker.Dispatcher,
) CaixaService {
	return &caixaService{
		repo:        repo,
		comandaRepo: comandaRepo,
		usuarioRepo: usuarioRepo,
		empresaRepo: empresaRepo,
		tx:          tx,
		dispatcher:  dispatcher,
	}
}

func isNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *caixaService) Abrir(ctx context.Context, empresaID, usuarioID uuid.UUID, req dto.AbrirCaixaRequest) (*dto.CaixaResponse, error) {
	if _, err := s.empresaRepo.FindByID(ctx, empresaID); err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Empresa não encontrada.")
		}
		return nil, apierror.Internal("Falha ao abrir o caixa.", err)
	}

	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Usuário de abertura não encontrado.")
		}
		return nil, apierror.Internal("Falha ao abrir o caixa.", err)
	}
	if !usuario.PertenceAEmpresa(empresaID) {
		return nil, apierror.Forbidden("Usuário não pertence à empresa informada.")
	}

	if _, err := s.repo.FindAbertoPorEmpresa(ctx, empresaID); err == nil {
		return nil, apierror.Conflict("Já existe um caixa aberto para esta empresa.")
	} else if !isNotFound(err) {
		return nil, apierror.Internal("Falha ao abrir o caixa.", err)
	}

	if req.SaldoInicial.IsNegative() {
		return nil, apierror.InvalidArgument("Saldo inicial inválido.")
	}

	caixa := &model.Caixa{
		EmpresaID:           empresaID,
		UsuarioAberturaID:   usuarioID,
		SaldoInicial:        req.SaldoInicial,
		DataAbertura:        time.Now(),
		Status:              model.CaixaAberto,
		ObservacoesAbertura: req.ObservacoesAbertura,
	}
	if err := s.repo.Create(ctx, caixa); err != nil {
		// The partial unique index turns a lost race into a constraint
		// violation here rather than a second open register.
		return nil, apierror.Internal("Falha ao abrir o caixa.", err)
	}

	return dto.CaixaToResponse(caixa, nil), nil
}

// ── StatusAtual ───────────────────────────────────────────────────────────────

// StatusAtual returns the open caixa with its most recent movements, or
// (nil, nil) when no register is open.
func (s *caixaService) StatusAtual(ctx context.Context, empresaID uuid.UUID) (*dto.CaixaResponse, error) {
	caixa, err := s.repo.FindAbertoPorEmpresa(ctx, empresaID)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, apierror.Internal("Falha ao buscar status do caixa.", err)
	}

	movs, err := s.repo.ListMovimentacoesRecentes(ctx, caixa.ID, movimentacoesRecentes)
	if err != nil {
		return nil, apierror.Internal("Falha ao buscar status do caixa.", err)
	}
	return dto.CaixaToResponse(caixa, movs), nil
}

// ── RegistrarMovimentacao ─────────────────────────────────────────────────────

// RegistrarMovimentacao inserts an immutable ledger entry and bumps the
// matching running total on the locked caixa row — one transaction, so a
// failure leaves neither behind.
func (s *caixaService) RegistrarMovimentacao(ctx context.Context, empresaID, usuarioID uuid.UUID, req dto.MovimentacaoRequest) (*dto.MovimentacaoResponse, error) {
	if !req.Valor.IsPositive() {
		return nil, apierror.InvalidArgument("O valor da movimentação deve ser um número positivo.")
	}
	if req.Tipo != model.MovimentacaoSuprimento && req.Tipo != model.MovimentacaoSangria {
		return nil, apierror.InvalidArgument("Tipo de movimentação inválido: " + req.Tipo + ".")
	}

	var mov *model.MovimentacaoCaixa
	err := s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		caixa, err := s.repo.FindAbertoForUpdateTx(tx, empresaID)
		if err != nil {
			if isNotFound(err) {
				return apierror.NotFound("Nenhum caixa aberto encontrado para registrar a movimentação.")
			}
			return err
		}

		mov = &model.MovimentacaoCaixa{
			CaixaID:    caixa.ID,
			EmpresaID:  empresaID,
			UsuarioID:  usuarioID,
			Tipo:       req.Tipo,
			Valor:      req.Valor,
			Observacao: req.Observacao,
		}
		if err := s.repo.CreateMovimentacaoTx(tx, mov); err != nil {
			return err
		}

		switch req.Tipo {
		case model.MovimentacaoSuprimento:
			caixa.TotalSuprimentos = caixa.TotalSuprimentos.Add(req.Valor)
		case model.MovimentacaoSangria:
			caixa.TotalSangrias = caixa.TotalSangrias.Add(req.Valor)
		}
		return s.repo.UpdateTx(tx, caixa)
	})
	if err != nil {
		return nil, apierror.From(err, "Falha ao registrar movimentação no caixa.")
	}

	return &dto.MovimentacaoResponse{
		ID:         mov.ID.String(),
		Tipo:       mov.Tipo,
		Valor:      mov.Valor,
		Observacao: mov.Observacao,
		CriadoEm:   mov.CriadoEm,
	}, nil
}

// ── Fechar ────────────────────────────────────────────────────────────────────

// Fechar closes the open register. Blocked while any comanda remains
// Aberta: every tab must be settled or cancelled first.
func (s *caixaService) Fechar(ctx context.Context, empresaID, usuarioID uuid.UUID, req dto.FecharCaixaRequest) (*dto.CaixaResponse, error) {
	var caixa *model.Caixa
	err := s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		var err error
		caixa, err = s.repo.FindAbertoForUpdateTx(tx, empresaID)
		if err != nil {
			if isNotFound(err) {
				return apierror.NotFound("Nenhum caixa aberto encontrado.")
			}
			return err
		}

		if req.SaldoFinalInformado.IsNegative() {
			return apierror.InvalidArgument("Saldo final inválido.")
		}

		abertas, err := s.comandaRepo.CountAbertasTx(tx, empresaID)
		if err != nil {
			return err
		}
		if abertas > 0 {
			return apierror.Conflict("Existem comandas abertas. Finalize-as antes de fechar o caixa.")
		}

		saldoCalculado := caixa.SaldoCalculado()
		informado := req.SaldoFinalInformado
		now := time.Now()

		caixa.Status = model.CaixaFechado
		caixa.DataFechamento = &now
		caixa.UsuarioFechamentoID = &usuarioID
		caixa.SaldoFinalCalculado = saldoCalculado
		caixa.SaldoFinalInformado = &informado
		caixa.DiferencaCaixa = informado.Sub(saldoCalculado)
		caixa.ObservacoesFechamento = req.ObservacoesFechamento

		return s.repo.UpdateTx(tx, caixa)
	})
	if err != nil {
		return nil, apierror.From(err, "Falha ao fechar o caixa.")
	}

	// Closing report by email is best effort — the close itself already
	// committed.
	if s.dispatcher != nil {
		if err := s.dispatcher.EnqueueRelatorioFechamento(ctx, worker.RelatorioFechamentoPayload{
			CaixaID:   caixa.ID.String(),
			EmpresaID: empresaID.String(),
		}); err != nil {
			log.Warn().Err(err).Str("caixa_id", caixa.ID.String()).Msg("falha ao enfileirar relatório de fechamento")
		}
	}

	return dto.CaixaToResponse(caixa, nil), nil
}

// ── DetalhesFechamento ────────────────────────────────────────────────────────

// DetalhesFechamento is the closing preview: current totals plus the
// theoretical drawer balance, without closing anything.
func (s *caixaService) DetalhesFechamento(ctx context.Context, empresaID uuid.UUID) (*dto.DetalhesFechamentoResponse, error) {
	caixa, err := s.repo.FindAbertoPorEmpresa(ctx, empresaID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Nenhum caixa aberto encontrado.")
		}
		return nil, apierror.Internal("Falha ao buscar detalhes de fechamento.", err)
	}

	totalVendas := caixa.TotalVendasDinheiro.
		Add(caixa.TotalVendasCartao).
		Add(caixa.TotalVendasPix)

	// Theoretical cash in drawer: card and PIX never enter it.
	saldoTeorico := caixa.SaldoInicial.
		Add(caixa.TotalVendasDinheiro).
		Add(caixa.TotalSuprimentos).
		Sub(caixa.TotalSangrias)

	return &dto.DetalhesFechamentoResponse{
		SaldoInicial:        caixa.SaldoInicial,
		TotalVendas:         totalVendas,
		TotalVendasDinheiro: caixa.TotalVendasDinheiro,
		TotalVendasCartao:   caixa.TotalVendasCartao,
		TotalVendasPix:      caixa.TotalVendasPix,
		TotalSuprimentos:    caixa.TotalSuprimentos,
		TotalSangrias:       caixa.TotalSangrias,
		SaldoTeorico:        saldoTeorico,
	}, nil
}

// ── Relatorio ─────────────────────────────────────────────────────────────────

func (s *caixaService) Relatorio(ctx context.Context, caixaID, empresaID uuid.UUID) (*dto.RelatorioCaixaResponse, error) {
	caixa, err := s.repo.FindByIDAndEmpresa(ctx, caixaID, empresaID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Caixa não encontrado para esta empresa.")
		}
		return nil, apierror.Internal("Falha ao gerar relatório do caixa.", err)
	}

	totais, err := s.repo.SumMovimentacoesPorTipo(ctx, caixa.ID)
	if err != nil {
		return nil, apierror.Internal("Falha ao gerar relatório do caixa.", err)
	}
	if totais == nil {
		totais = map[string]decimal.Decimal{}
	}

	return &dto.RelatorioCaixaResponse{
		CaixaID:               caixa.ID.String(),
		EmpresaID:             caixa.EmpresaID.String(),
		Status:                caixa.Status,
		DataAbertura:          caixa.DataAbertura,
		DataFechamento:        caixa.DataFechamento,
		SaldoInicial:          caixa.SaldoInicial,
		SaldoFinalCalculado:   caixa.SaldoFinalCalculado,
		SaldoFinalInformado:   caixa.SaldoFinalInformado,
		DiferencaCaixa:        caixa.DiferencaCaixa,
		TotalVendasDinheiro:   caixa.TotalVendasDinheiro,
		TotalVendasCartao:     caixa.TotalVendasCartao,
		TotalVendasPix:        caixa.TotalVendasPix,
		TotalSuprimentos:      caixa.TotalSuprimentos,
		TotalSangrias:         caixa.TotalSangrias,
		TotaisPorMovimentacao: totais,
		ObservacoesAbertura:   caixa.ObservacoesAbertura,
		ObservacoesFechamento: caixa.ObservacoesFechamento,
	}, nil
}
