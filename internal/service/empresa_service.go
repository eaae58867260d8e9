package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/apierror"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/dto"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/repository"
)

// EmpresaService manages tenants. Criar also provisions the tenant's
// first admin account so a new company is usable immediately.
type EmpresaService interface {
	Criar(ctx context.Context, req dto.CriarEmpresaRequest) (*dto.EmpresaResponse, error)
	Buscar(ctx context.Context, empresaID uuid.UUID) (*dto.EmpresaResponse, error)
	Listar(ctx context.Context) ([]dto.EmpresaResponse, error)
	Atualizar(ctx context.Context, empresaID uuid.UUID, req dto.AtualizarEmpresaRequest) (*dto.EmpresaResponse, error)
	AssertAtiva(ctx context.Context, empresaID uuid.UUID) error
}

type empresaService struct {
	repo        repository.EmpresaRepository
	usuarioRepo repository.UsuarioRepository
}

func NewEmpresaService(repo repository.EmpresaRepository, usuarioRepo repository.UsuarioRepository) EmpresaService {
	return &empresaService{repo: repo, usuarioRepo: usuarioRepo}
}

func (s *empresaService) Criar(ctx context.Context, req dto.CriarEmpresaRequest) (*dto.EmpresaResponse, error) {
	licenca, err := time.ParseInLocation("2006-01-02", req.LicencaValidaAte, time.Local)
	if err != nil {
		return nil, apierror.InvalidArgument("Data de licença inválida; use o formato AAAA-MM-DD.")
	}

	empresa := &model.Empresa{
		Nome:             req.Nome,
		EmailContato:     req.EmailContato,
		LicencaValidaAte: licenca,
		Ativa:            true,
	}
	if err := s.repo.Create(ctx, empresa); err != nil {
		return nil, apierror.Internal("Falha ao criar empresa.", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.AdminSenha), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierror.Internal("Falha ao criar administrador da empresa.", err)
	}
	admin := &model.Usuario{
		Nome:      req.AdminNome,
		Email:     req.AdminEmail,
		SenhaHash: string(hash),
		Role:      model.RoleAdminEmpresa,
		EmpresaID: &empresa.ID,
		Ativo:     true,
	}
	if err := s.usuarioRepo.Create(ctx, admin); err != nil {
		return nil, apierror.Internal("Falha ao criar administrador da empresa.", err)
	}

	return dto.EmpresaToResponse(empresa), nil
}

func (s *empresaService) Buscar(ctx context.Context, empresaID uuid.UUID) (*dto.EmpresaResponse, error) {
	empresa, err := s.repo.FindByID(ctx, empresaID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Empresa não encontrada.")
		}
		return nil, apierror.Internal("Falha ao buscar empresa.", err)
	}
	return dto.EmpresaToResponse(empresa), nil
}

func (s *empresaService) Listar(ctx context.Context) ([]dto.EmpresaResponse, error) {
	empresas, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Internal("Falha ao listar empresas.", err)
	}
	out := make([]dto.EmpresaResponse, 0, len(empresas))
	for i := range empresas {
		out = append(out, *dto.EmpresaToResponse(&empresas[i]))
	}
	return out, nil
}

func (s *empresaService) Atualizar(ctx context.Context, empresaID uuid.UUID, req dto.AtualizarEmpresaRequest) (*dto.EmpresaResponse, error) {
	empresa, err := s.repo.FindByID(ctx, empresaID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.NotFound("Empresa não encontrada.")
		}
		return nil, apierror.Internal("Falha ao atualizar empresa.", err)
	}

	if req.Nome != nil {
		empresa.Nome = *req.Nome
	}
	if req.EmailContato != nil {
		empresa.EmailContato = *req.EmailContato
	}
	if req.LicencaValidaAte != nil {
		licenca, err := time.ParseInLocation("2006-01-02", *req.LicencaValidaAte, time.Local)
		if err != nil {
			return nil, apierror.InvalidArgument("Data de licença inválida; use o formato AAAA-MM-DD.")
		}
		empresa.LicencaValidaAte = licenca
	}
	if req.Ativa != nil {
		empresa.Ativa = *req.Ativa
	}

	if err := s.repo.Update(ctx, empresa); err != nil {
		return nil, apierror.Internal("Falha ao atualizar empresa.", err)
	}
	return dto.EmpresaToResponse(empresa), nil
}

// AssertAtiva is the tenant gate used by the request middleware: the
// company must exist, be active and hold a valid license.
func (s *empresaService) AssertAtiva(ctx context.Context, empresaID uuid.UUID) error {
	empresa, err := s.repo.FindByID(ctx, empresaID)
	if err != nil {
		if isNotFound(err) {
			return apierror.NotFound("Empresa não encontrada.")
		}
		return apierror.Internal("Falha ao verificar empresa.", err)
	}
	if !empresa.Ativa {
		return apierror.Forbidden("Empresa desativada. Contate o suporte.")
	}
	if empresa.LicencaExpirada(time.Now()) {
		return apierror.Forbidden("Licença da empresa expirada. Contate o suporte.")
	}
	return nil
}
