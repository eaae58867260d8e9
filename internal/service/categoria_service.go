package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/apierror"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/dto"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/repository"
)

type CategoriaService interface {
	Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarCategoriaRequest) (*dto.CategoriaResponse, error)
	Listar(ctx context.Context, empresaID uuid.UUID) ([]dto.CategoriaResponse, error)
	Atualizar(ctx context.Context, categoriaID, empresaID uuid.UUID, req dto.CriarCategoriaRequest) (*dto.CategoriaResponse, error)
	Remover(ctx context.Context, categoriaID, empresaID uuid.UUID) error
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func (s *categoriaService) Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarCategoriaRequest) (*dto.CategoriaResponse, error) {
	categoria := &model.Categoria{EmpresaID: empresaID, Nome: req.Nome}
	if err := s.repo.Create(ctx, categoria); err != nil {
		return nil, apierror.Internal("Falha ao criar categoria.", err)
	}
	return dto.CategoriaToResponse(categoria), nil
}

func (s *categoriaService) Listar(ctx context.Context, empresaID uuid.UUID) ([]dto.CategoriaResponse, error) {
	categorias, err := s.repo.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return nil, apierror.Internal("Falha ao listar categorias.", err)
	}
	out := make([]dto.CategoriaResponse, 0, len(categorias))
	for i := range categorias {
		out = append(out, *dto.CategoriaToResponse(&categorias[i]))
	}
	return out, nil
}

func (s *categoriaService) Atualizar(ctx context.Context, categoriaID, empresaID uuid.UUID, req dto.CriarCategoriaRequest) (*dto.CategoriaResponse, error) {
	categoria, err := s.repo.FindByIDAndEmpresa(ctx, categoriaID, empresaID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Categoria não encontrada.")
		}
		return nil, apierror.Internal("Falha ao atualizar categoria.", err)
	}
	categoria.Nome = req.Nome
	if err := s.repo.Update(ctx, categoria); err != nil {
		return nil, apierror.Internal("Falha ao atualizar categoria.", err)
	}
	return dto.CategoriaToResponse(categoria), nil
}

func (s *categoriaService) Remover(ctx context.Context, categoriaID, empresaID uuid.UUID) error {
	if _, err := s.repo.FindByIDAndEmpresa(ctx, categoriaID, empresaID); err != nil {
		if isNotFound(err) {
			return apierror.NotFound("Categoria não encontrada.")
		}
		return apierror.Internal("Falha ao remover categoria.", err)
	}
	if err := s.repo.Delete(ctx, categoriaID, empresaID); err != nil {
		return apierror.Internal("Falha ao remover categoria.", err)
	}
	return nil
}
