package service

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/apierror"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/dto"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/repository"
)

// UsuarioService manages a tenant's staff accounts.
type UsuarioService interface {
	Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error)
	Listar(ctx context.Context, empresaID uuid.UUID) ([]dto.UsuarioResponse, error)
	Atualizar(ctx context.Context, usuarioID, empresaID uuid.UUID, req dto.AtualizarUsuarioRequest) (*dto.UsuarioResponse, error)
}

type usuarioService struct {
	repo repository.UsuarioRepository
}

func NewUsuarioService(repo repository.UsuarioRepository) UsuarioService {
	return &usuarioService{repo: repo}
}

func (s *usuarioService) Criar(ctx context.Context, empresaID uuid.UUID, req dto.CriarUsuarioRequest) (*dto.UsuarioResponse, error) {
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apierror.Conflict("Já existe um usuário com este email.")
	} else if !isNotFound(err) {
		return nil, apierror.Internal("Falha ao criar usuário.", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierror.Internal("Falha ao criar usuário.", err)
	}

	usuario := &model.Usuario{
		Nome:      req.Nome,
		Email:     req.Email,
		SenhaHash: string(hash),
		Role:      req.Role,
		EmpresaID: &empresaID,
		Ativo:     true,
	}
	if err := s.repo.Create(ctx, usuario); err != nil {
		return nil, apierror.Internal("Falha ao criar usuário.", err)
	}

	return dto.UsuarioToResponse(usuario), nil
}

func (s *usuarioService) Listar(ctx context.Context, empresaID uuid.UUID) ([]dto.UsuarioResponse, error) {
	usuarios, err := s.repo.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return nil, apierror.Internal("Falha ao listar usuários.", err)
	}
	out := make([]dto.UsuarioResponse, 0, len(usuarios))
	for i := range usuarios {
		out = append(out, *dto.UsuarioToResponse(&usuarios[i]))
	}
	return out, nil
}

func (s *usuarioService) Atualizar(ctx context.Context, usuarioID, empresaID uuid.UUID, req dto.AtualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := s.repo.FindByID(ctx, usuarioID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Usuário não encontrado.")
		}
		return nil, apierror.Internal("Falha ao atualizar usuário.", err)
	}
	// Cross-tenant lookups behave like misses.
	if usuario.EmpresaID == nil || *usuario.EmpresaID != empresaID {
		return nil, apierror.NotFound("Usuário não encontrado.")
	}

	if req.Nome != nil {
		usuario.Nome = *req.Nome
	}
	if req.Role != nil {
		usuario.Role = *req.Role
	}
	if req.Ativo != nil {
		usuario.Ativo = *req.Ativo
	}
	if req.Senha != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Senha), bcrypt.DefaultCost)
		if err != nil {
			return nil, apierror.Internal("Falha ao atualizar usuário.", err)
		}
		usuario.SenhaHash = string(hash)
	}

	if err := s.repo.Update(ctx, usuario); err != nil {
		return nil, apierror.Internal("Falha ao atualizar usuário.", err)
	}
	return dto.UsuarioToResponse(usuario), nil
}
