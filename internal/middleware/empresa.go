package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/apierror"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/model"
	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/service"
)

// EmpresaGuard enforces the tenant gate after authentication: the token
// must carry a company that exists, is active and holds a valid
// license. The global administrator bypasses it.
func EmpresaGuard(empresas service.EmpresaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticação necessária."))
			return
		}
		if claims.Role == model.RoleAdminGlobal {
			c.Next()
			return
		}
		if claims.EmpresaID == nil {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Usuário sem empresa associada."))
			return
		}
		empresaID, err := uuid.Parse(*claims.EmpresaID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Identificador de empresa inválido no token."))
			return
		}

		if err := empresas.AssertAtiva(c.Request.Context(), empresaID); err != nil {
			apiErr := apierror.From(err, "Falha ao verificar empresa.")
			c.AbortWithStatusJSON(apiErr.HTTPStatus(), apierror.New(apiErr.Message))
			return
		}
		c.Next()
	}
}
