package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/apierror"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/config"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/dto"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	usuarioRepo repository.UsuarioRepository
	cfg         *config.Config
}

func NewAuthService(usuarioRepo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{usuarioRepo: usuarioRepo, cfg: cfg}
}

// Login authenticates by email and password and issues an HS256 token.
// Credential failures and unknown emails produce the same response.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	usuario, err := s.usuarioRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if isNotFound(err) {
			return nil, apierror.Unauthorized("Credenciais inválidas.")
		}
		return nil, apierror.Internal("Falha ao autenticar.", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usuario.SenhaHash), []byte(req.Senha)); err != nil {
		return nil, apierror.Unauthorized("Credenciais inválidas.")
	}

	if !usuario.Ativo {
		return nil, apierror.Forbidden("Usuário desativado.")
	}

	// Company gates apply to everyone except the global administrator.
	if usuario.Role != model.RoleAdminGlobal {
		if usuario.Empresa == nil {
			return nil, apierror.Forbidden("Usuário sem empresa associada.")
		}
		if !usuario.Empresa.Ativa {
			return nil, apierror.Forbidden("Empresa desativada. Contate o suporte.")
		}
		if usuario.Empresa.LicencaExpirada(time.Now()) {
			return nil, apierror.Forbidden("Licença da empresa expirada. Contate o suporte.")
		}
	}

	claims := jwt.MapClaims{
		"userId": usuario.ID.String(),
		"role":   usuario.Role,
		"exp":    time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat":    time.Now().Unix(),
	}
	if usuario.EmpresaID != nil {
		claims["empresaId"] = usuario.EmpresaID.String()
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return nil, apierror.Internal("Falha ao gerar token de acesso.", err)
	}

	return &dto.LoginResponse{
		Token:   token,
		Usuario: *dto.UsuarioToResponse(usuario),
	}, nil
}
