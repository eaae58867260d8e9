package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/apierror"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/dto"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/repository"
)

// ProdutoService manages the tenant's menu.
type ProdutoService interface {
	Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error)
	Buscar(ctx context.Context, produtoID, empresaID uuid.UUID) (*dto.ProdutoResponse, error)
	Listar(ctx context.Context, empresaID uuid.UUID) ([]dto.ProdutoResponse, error)
	Atualizar(ctx context.Context, produtoID, empresaID uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error)
	Remover(ctx context.Context, produtoID, empresaID uuid.UUID) error
}

type produtoService struct {
	repo          repository.ProdutoRepository
	categoriaRepo repository.CategoriaRepository
}

func NewProdutoService(repo repository.ProdutoRepository, categoriaRepo repository.CategoriaRepository) ProdutoService {
	return &produtoService{repo: repo, categoriaRepo: categoriaRepo}
}

func (s *produtoService) validarCategoria(ctx context.Context, categoriaID *uuid.UUID, empresaID uuid.UUID) error {
	if categoriaID == nil {
		return nil
	}
	if _, err := s.categoriaRepo.FindByIDAndEmpresa(ctx, *categoriaID, empresaID); err != nil {
		if isNotFound(err) {
			return apierror.NotFound("Categoria não encontrada.")
		}
		return apierror.Internal("Falha ao validar categoria.", err)
	}
	return nil
}

func (s *produtoService) Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarProdutoRequest) (*dto.ProdutoResponse, error) {
	if req.Preco.IsNegative() {
		return nil, apierror.InvalidArgument("O preço do produto não pode ser negativo.")
	}

	var categoriaID *uuid.UUID
	if req.CategoriaID != nil && *req.CategoriaID != "" {
		id, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, apierror.InvalidArgument("Identificador de categoria inválido.")
		}
		categoriaID = &id
	}
	if err := s.validarCategoria(ctx, categoriaID, empresaID); err != nil {
		return nil, err
	}

	disponivel := true
	if req.Disponivel != nil {
		disponivel = *req.Disponivel
	}

	produto := &model.Produto{
		EmpresaID:   empresaID,
		Nome:        req.Nome,
		Descricao:   req.Descricao,
		Preco:       req.Preco,
		CategoriaID: categoriaID,
		Disponivel:  disponivel,
	}
	if err := s.repo.Create(ctx, produto); err != nil {
		return nil, apierror.Internal("Falha ao criar produto.", err)
	}

	return s.Buscar(ctx, produto.ID, empresaID)
}

func (s *produtoService) Buscar(ctx context.Context, produtoID, empresaID uuid.UUID) (*dto.ProdutoResponse, error) {
	produto, err := s.repo.FindByIDAndEmpresa(ctx, produtoID, empresaID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Produto não encontrado.")
		}
		return nil, apierror.Internal("Falha ao buscar produto.", err)
	}
	return dto.ProdutoToResponse(produto), nil
}

func (s *produtoService) Listar(ctx context.Context, empresaID uuid.UUID) ([]dto.ProdutoResponse, error) {
	produtos, err := s.repo.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return nil, apierror.Internal("Falha ao listar produtos.", err)
	}
	out := make([]dto.ProdutoResponse, 0, len(produtos))
	for i := range produtos {
		out = append(out, *dto.ProdutoToResponse(&produtos[i]))
	}
	return out, nil
}

func (s *produtoService) Atualizar(ctx context.Context, produtoID, empresaID uuid.UUID, req dto.AtualizarProdutoRequest) (*dto.ProdutoResponse, error) {
	produto, err := s.repo.FindByIDAndEmpresa(ctx, produtoID, empresaID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Produto não encontrado.")
		}
		return nil, apierror.Internal("Falha ao atualizar produto.", err)
	}

	if req.Nome != nil {
		produto.Nome = *req.Nome
	}
	if req.Descricao != nil {
		produto.Descricao = req.Descricao
	}
	if req.Preco != nil {
		if req.Preco.IsNegative() {
			return nil, apierror.InvalidArgument("O preço do produto não pode ser negativo.")
		}
		// Price edits affect future lines only; sold items keep the
		// price charged at the time.
		produto.Preco = *req.Preco
	}
	if req.CategoriaID != nil {
		if *req.CategoriaID == "" {
			produto.CategoriaID = nil
		} else {
			id, err := uuid.Parse(*req.CategoriaID)
			if err != nil {
				return nil, apierror.InvalidArgument("Identificador de categoria inválido.")
			}
			if err := s.validarCategoria(ctx, &id, empresaID); err != nil {
				return nil, err
			}
			produto.CategoriaID = &id
		}
	}
	if req.Disponivel != nil {
		produto.Disponivel = *req.Disponivel
	}

	if err := s.repo.Update(ctx, produto); err != nil {
		return nil, apierror.Internal("Falha ao atualizar produto.", err)
	}
	return s.Buscar(ctx, produto.ID, empresaID)
}

func (s *produtoService) Remover(ctx context.Context, produtoID, empresaID uuid.UUID) error {
	if _, err := s.repo.FindByIDAndEmpresa(ctx, produtoID, empresaID); err != nil {
		if isNotFound(err) {
			return apierror.NotFound("Produto não encontrado.")
		}
		return apierror.Internal("Falha ao remover produto.", err)
	}
	if err := s.repo.Delete(ctx, produtoID, empresaID); err != nil {
		return apierror.Internal("Falha ao remover produto.", err)
	}
	return nil
}
