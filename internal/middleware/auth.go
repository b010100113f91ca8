package middleware

import (
	"net/http"
	"strings"

	"checkout-service/internal/dto"
	"checkout-service/internal/service"
	"checkout-service/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Ключи gin-контекста с данными пользователя
const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
)

type TokenVerifier interface {
	ParseAndValidateAccess(token string) (*token.Claims, error)
}

// AuthRequired проверяет Bearer-токен и кладёт принципала в контекст запроса,
// откуда его читают сервисы.
func AuthRequired(tokens TokenVerifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authz := c.GetHeader("Authorization")
		if authz == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("missing Authorization header"))
			return
		}
		raw, ok := ExtractBearerToken(authz)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid Authorization header"))
			return
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("empty token"))
			return
		}

		claims, err := tokens.ParseAndValidateAccess(raw)
		if err != nil {
			log.Warn("token validation failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewUnauthorizedError("invalid token"))
			return
		}

		role := NormalizeRole(claims.Role)
		ctx := service.WithPrincipal(c.Request.Context(), claims.UserID, role, claims.Email)
		c.Request = c.Request.WithContext(ctx)

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserRole, role)
		c.Next()
	}
}

// OptionalAuth кладёт принципала в контекст, если передан валидный токен, и пропускает запрос без него.
// Используется на публичных маршрутах каталога, где администратор видит больше.
func OptionalAuth(tokens TokenVerifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := ExtractBearerToken(c.GetHeader("Authorization"))
		if !ok || raw == "" {
			c.Next()
			return
		}
		claims, err := tokens.ParseAndValidateAccess(raw)
		if err != nil {
			log.Debug("optional token ignored", zap.Error(err))
			c.Next()
			return
		}
		role := NormalizeRole(claims.Role)
		c.Request = c.Request.WithContext(service.WithPrincipal(c.Request.Context(), claims.UserID, role, claims.Email))
		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserRole, role)
		c.Next()
	}
}

// NormalizeRole принимает "admin", "ADMIN" и "ROLE_ADMIN"; всё неизвестное считается покупателем.
func NormalizeRole(role string) service.Role {
	r := strings.ToUpper(strings.TrimSpace(role))
	if !strings.HasPrefix(r, "ROLE_") {
		r = "ROLE_" + r
	}
	switch service.Role(r) {
	case service.RoleAdmin:
		return service.RoleAdmin
	default:
		return service.RoleCustomer
	}
}

// ExtractBearerToken извлекает токен из заголовка Authorization.
// Допустимо: "Bearer abc.def.ghi", "Bearer \"abc.def.ghi\"", "Bearer abc.def.ghi, extra".
func ExtractBearerToken(authz string) (string, bool) {
	if authz == "" {
		return "", false
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	t := strings.Trim(strings.TrimSpace(parts[1]), " \"'")
	if i := strings.IndexRune(t, ','); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	if i := strings.IndexByte(t, ' '); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return strings.Trim(t, " \"'"), true
}
