package middleware

import (
	"net/http"
	"strings"

	"lastresort/internal/handler/httperr"
	"lastresort/internal/pkg/config"
	"lastresort/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const RoleStaffOps = "staff-ops"

var errUnauthorized = errs.New("unauthorized")

type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(cfg config.JWTConfig) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(cfg.Secret)}
}

// RequireStaffOps guards the room status mutation entrypoint: only the staff
// operations collaborator holds tokens with the staff-ops role.
func (m *AuthMiddleware) RequireStaffOps() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.parseToken(c)
		if err != nil {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Authentication required", nil)
			return
		}

		role, _ := claims["role"].(string)
		if role != RoleStaffOps {
			httperr.AbortWithError(c, http.StatusForbidden, errUnauthorized, "Staff operations role required", nil)
			return
		}

		if sub, ok := claims["sub"].(string); ok {
			c.Set("staff_id", sub)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) parseToken(c *gin.Context) (jwt.MapClaims, error) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, errUnauthorized
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.Newf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errUnauthorized
	}
	return claims, nil
}
