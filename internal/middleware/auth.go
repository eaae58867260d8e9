package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/francafellipe/ComandixPro-Projeto-Final/internal/apierror"
)

const ClaimsKey = "claims"

// JWTClaims are the custom claims embedded in every access token.
// EmpresaID is absent for the global administrator.
type JWTClaims struct {
	UserID    string  `json:"userId"`
	EmpresaID *string `json:"empresaId,omitempty"`
	Role      string  `json:"role"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticação necessária."))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token inválido ou expirado."))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole rejects requests whose JWT role is not in the allowed list.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || !allowed[claims.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Permissões insuficientes."))
			return
		}
		c.Next()
	}
}

// GetClaims retrieves the typed claims from the Gin context. Returns
// nil when authentication did not run, so guards downstream can reject
// with 401 instead of panicking on a misordered chain.
func GetClaims(c *gin.Context) *JWTClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*JWTClaims)
	return claims
}

// UserUUID parses the authenticated user's ID from the claims.
func UserUUID(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(GetClaims(c).UserID)
}

// EmpresaUUID parses the tenant ID from the claims. Returns uuid.Nil
// for tokens without a company (the global administrator).
func EmpresaUUID(c *gin.Context) (uuid.UUID, error) {
	claims := GetClaims(c)
	if claims.EmpresaID == nil {
		return uuid.Nil, nil
	}
	return uuid.Parse(*claims.EmpresaID)
}
