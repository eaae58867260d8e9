package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/apierror"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/dto"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/repository"
)

// ComandaService owns the tab lifecycle short of settlement: opening,
// item management, cancellation and the read paths. Settlement lives in
// PagamentoService because it also touches the caixa row.
type ComandaService interface {
	Criar(ctx context.Context, empresaID, usuarioID uuid.UUID, req dto.CriarComandaRequest) (*dto.ComandaResponse, error)
	Visualizar(ctx context.Context, comandaID, empresaID uuid.UUID) (*dto.ComandaResponse, error)
	Listar(ctx context.Context, empresaID uuid.UUID, q dto.ListarComandasQuery) ([]dto.ComandaResponse, error)
	AdicionarItem(ctx context.Context, comandaID, empresaID uuid.UUID, req dto.AdicionarItemRequest) (*dto.ComandaResponse, error)
	AtualizarItem(ctx context.Context, comandaID, itemID, empresaID uuid.UUID, req dto.AtualizarItemRequest) (*dto.ComandaResponse, error)
	RemoverItem(ctx context.Context, comandaID, itemID, empresaID uuid.UUID) (*dto.ComandaResponse, error)
	Cancelar(ctx context.Context, comandaID, empresaID uuid.UUID) (*dto.ComandaResponse, error)
}

type comandaService struct {
	repo        repository.ComandaRepository
	caixaRepo   repository.CaixaRepository
	produtoRepo repository.ProdutoRepository
	usuarioRepo repository.UsuarioRepository
	tx          repository.TxRunner
}

func NewComandaService(
	repo repository.ComandaRepository,
	caixaRepo repository.CaixaRepository,
	produtoRepo repository.ProdutoRepository,
	usuarioRepo repository.UsuarioRepository,
	tx repository.TxRunner,
) ComandaService {
	return &comandaService{
		repo:        repo,
		caixaRepo:   caixaRepo,
		produtoRepo: produtoRepo,
		usuarioRepo: usuarioRepo,
		tx:          tx,
	}
}

// ── Criar ─────────────────────────────────────────────────────────────────────

// Criar opens a tab. A tab can only exist under an open register, so the
// absence of one is rejected up front.
func (s *comandaService) Criar(ctx context.Context, empresaID, usuarioID uuid.UUID, req dto.CriarComandaRequest) (*dto.ComandaResponse, error) {
	caixa, err := s.caixaRepo.FindAbertoPorEmpresa(ctx, empresaID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.InvalidArgument("Não é possível abrir comanda: nenhum caixa aberto para esta empresa.")
		}
		return nil, apierror.Internal("Falha ao criar comanda.", err)
	}

	usuario, err := s.usuarioRepo.FindByID(ctx, usuarioID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Usuário de abertura não encontrado.")
		}
		return nil, apierror.Internal("Falha ao criar comanda.", err)
	}
	if !usuario.PertenceAEmpresa(empresaID) {
		return nil, apierror.Forbidden("Usuário não pertence à empresa informada.")
	}

	comanda := &model.Comanda{
		EmpresaID:         empresaID,
		UsuarioAberturaID: usuarioID,
		CaixaID:           &caixa.ID,
		Mesa:              req.Mesa,
		NomeCliente:       req.NomeCliente,
		Status:            model.ComandaAberta,
		TotalComanda:      decimal.Zero,
		DataAbertura:      time.Now(),
		Observacoes:       req.Observacoes,
	}
	if err := s.repo.Create(ctx, comanda); err != nil {
		return nil, apierror.Internal("Falha ao criar comanda.", err)
	}

	return s.Visualizar(ctx, comanda.ID, empresaID)
}

// ── Visualizar / Listar ───────────────────────────────────────────────────────

func (s *comandaService) Visualizar(ctx context.Context, comandaID, empresaID uuid.UUID) (*dto.ComandaResponse, error) {
	comanda, err := s.repo.FindByIDAndEmpresa(ctx, comandaID, empresaID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Comanda não encontrada.")
		}
		return nil, apierror.Internal("Falha ao buscar comanda.", err)
	}
	return dto.ComandaToResponse(comanda), nil
}

func (s *comandaService) Listar(ctx context.Context, empresaID uuid.UUID, q dto.ListarComandasQuery) ([]dto.ComandaResponse, error) {
	filtros := repository.ComandaFiltros{}

	if q.Status != "" {
		status, ok := model.ParseComandaStatus(q.Status)
		if !ok {
			return nil, apierror.InvalidArgument("Status de comanda inválido: " + q.Status + ".")
		}
		filtros.Status = &status
	}
	if q.Mesa != "" {
		mesa := q.Mesa
		filtros.Mesa = &mesa
	}

	// Date filters are inclusive day bounds on the opening timestamp.
	if q.DataInicio != "" {
		t, err := time.ParseInLocation("2006-01-02", q.DataInicio, time.Local)
		if err != nil {
			return nil, apierror.InvalidArgument("Data inicial inválida; use o formato AAAA-MM-DD.")
		}
		filtros.DataInicio = &t
	}
	if q.DataFim != "" {
		t, err := time.ParseInLocation("2006-01-02", q.DataFim, time.Local)
		if err != nil {
			return nil, apierror.InvalidArgument("Data final inválida; use o formato AAAA-MM-DD.")
		}
		fim := t.Add(24*time.Hour - time.Nanosecond)
		filtros.DataFim = &fim
	}

	comandas, err := s.repo.List(ctx, empresaID, filtros)
	if err != nil {
		return nil, apierror.Internal("Falha ao listar comandas.", err)
	}

	out := make([]dto.ComandaResponse, 0, len(comandas))
	for i := range comandas {
		out = append(out, *dto.ComandaToResponse(&comandas[i]))
	}
	return out, nil
}

// ── Itens ─────────────────────────────────────────────────────────────────────

// AdicionarItem appends a line to an open tab. The product price is read
// inside the same transaction and frozen on the line: later price edits
// never reprice a sold item.
func (s *comandaService) AdicionarItem(ctx context.Context, comandaID, empresaID uuid.UUID, req dto.AdicionarItemRequest) (*dto.ComandaResponse, error) {
	if req.Quantidade < 1 {
		return nil, apierror.InvalidArgument("A quantidade deve ser de no mínimo 1.")
	}
	produtoID, err := uuid.Parse(req.ProdutoID)
	if err != nil {
		return nil, apierror.InvalidArgument("Identificador de produto inválido.")
	}

	err = s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		comanda, err := s.repo.FindAbertaForUpdateTx(tx, comandaID, empresaID)
		if err != nil {
			if isNotFound(err) {
				return apierror.NotFound("Comanda não encontrada ou não está aberta.")
			}
			return err
		}

		produto, err := s.produtoRepo.FindDisponivelTx(tx, produtoID, empresaID)
		if err != nil {
			if isNotFound(err) {
				return apierror.NotFound("Produto não encontrado ou indisponível.")
			}
			return err
		}

		subtotal := produto.Preco.Mul(decimal.NewFromInt(int64(req.Quantidade)))
		item := &model.ItemComanda{
			ComandaID:            comanda.ID,
			ProdutoID:            produto.ID,
			EmpresaID:            empresaID,
			Quantidade:           req.Quantidade,
			PrecoUnitarioCobrado: produto.Preco,
			Subtotal:             subtotal,
			ObservacaoItem:       req.ObservacaoItem,
		}
		if err := s.repo.CreateItemTx(tx, item); err != nil {
			return err
		}

		comanda.TotalComanda = comanda.TotalComanda.Add(subtotal)
		return s.repo.UpdateTx(tx, comanda)
	})
	if err != nil {
		return nil, apierror.From(err, "Falha ao adicionar item à comanda.")
	}

	return s.Visualizar(ctx, comandaID, empresaID)
}

// AtualizarItem changes a line's quantity at the frozen unit price,
// adjusting the tab total by the subtotal delta.
func (s *comandaService) AtualizarItem(ctx context.Context, comandaID, itemID, empresaID uuid.UUID, req dto.AtualizarItemRequest) (*dto.ComandaResponse, error) {
	if req.Quantidade < 1 {
		return nil, apierror.InvalidArgument("A quantidade deve ser de no mínimo 1.")
	}

	err := s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		comanda, err := s.repo.FindAbertaForUpdateTx(tx, comandaID, empresaID)
		if err != nil {
			if isNotFound(err) {
				return apierror.NotFound("Comanda não encontrada ou não está aberta.")
			}
			return err
		}

		item, err := s.repo.FindItemTx(tx, itemID, comanda.ID)
		if err != nil {
			if isNotFound(err) {
				return apierror.NotFound("Item não encontrado nesta comanda.")
			}
			return err
		}

		novoSubtotal := item.PrecoUnitarioCobrado.Mul(decimal.NewFromInt(int64(req.Quantidade)))
		delta := novoSubtotal.Sub(item.Subtotal)

		item.Quantidade = req.Quantidade
		item.Subtotal = novoSubtotal
		if err := s.repo.UpdateItemTx(tx, item); err != nil {
			return err
		}

		comanda.TotalComanda = comanda.TotalComanda.Add(delta)
		return s.repo.UpdateTx(tx, comanda)
	})
	if err != nil {
		return nil, apierror.From(err, "Falha ao atualizar item da comanda.")
	}

	return s.Visualizar(ctx, comandaID, empresaID)
}

func (s *comandaService) RemoverItem(ctx context.Context, comandaID, itemID, empresaID uuid.UUID) (*dto.ComandaResponse, error) {
	err := s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		comanda, err := s.repo.FindAbertaForUpdateTx(tx, comandaID, empresaID)
		if err != nil {
			if isNotFound(err) {
				return apierror.NotFound("Comanda não encontrada ou não está aberta.")
			}
			return err
		}

		item, err := s.repo.FindItemTx(tx, itemID, comanda.ID)
		if err != nil {
			if isNotFound(err) {
				return apierror.NotFound("Item não encontrado nesta comanda.")
			}
			return err
		}

		if err := s.repo.DeleteItemTx(tx, item); err != nil {
			return err
		}

		comanda.TotalComanda = comanda.TotalComanda.Sub(item.Subtotal)
		return s.repo.UpdateTx(tx, comanda)
	})
	if err != nil {
		return nil, apierror.From(err, "Falha ao remover item da comanda.")
	}

	return s.Visualizar(ctx, comandaID, empresaID)
}

// ── Cancelar ──────────────────────────────────────────────────────────────────

// Cancelar voids an open tab. Paid and already-cancelled tabs are
// immutable, and cancellation never touches register totals.
func (s *comandaService) Cancelar(ctx context.Context, comandaID, empresaID uuid.UUID) (*dto.ComandaResponse, error) {
	err := s.tx.RunInTx(ctx, func(tx *gorm.DB) error {
		comanda, err := s.repo.FindForUpdateTx(tx, comandaID, empresaID)
		if err != nil {
			if isNotFound(err) {
				return apierror.NotFound("Comanda não encontrada.")
			}
			return err
		}

		if comanda.Status != model.ComandaAberta {
			return apierror.InvalidArgument("Apenas comandas abertas podem ser canceladas. Status atual: " + comanda.Status + ".")
		}

		now := time.Now()
		comanda.Status = model.ComandaCancelada
		comanda.DataFechamento = &now
		return s.repo.UpdateTx(tx, comanda)
	})
	if err != nil {
		return nil, apierror.From(err, "Falha ao cancelar comanda.")
	}

	return s.Visualizar(ctx, comandaID, empresaID)
}
