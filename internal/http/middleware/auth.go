package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/motodiag-backend/internal/http/response"
	"github.com/yungbote/motodiag-backend/internal/platform/apierr"
	"github.com/yungbote/motodiag-backend/internal/platform/ctxutil"
	"github.com/yungbote/motodiag-backend/internal/platform/logger"
	"github.com/yungbote/motodiag-backend/internal/services"
)

type AuthMiddleware struct {
	log         *logger.Logger
	authService services.AuthService
}

func NewAuthMiddleware(log *logger.Logger, authService services.AuthService) *AuthMiddleware {
	middlewareLogger := log.With("Middleware", "AuthMiddleware")
	return &AuthMiddleware{log: middlewareLogger, authService: authService}
}

func (am *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
			c.Abort()
			return
		}
		if !am.attach(c, tokenString) {
			return
		}
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil || rd.UserID == 0 {
			response.RespondError(c, http.StatusForbidden, "forbidden", errForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// OptionalAuth attaches the caller when a token is present. A present but
// invalid token is still rejected.
func (am *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString != "" && !am.attach(c, tokenString) {
			return
		}
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func (am *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		rd := ctxutil.GetRequestData(c.Request.Context())
		if rd == nil {
			response.RespondError(c, http.StatusUnauthorized, "unauthorized", errMissingToken)
			c.Abort()
			return
		}
		if _, ok := allowed[rd.Role]; !ok {
			am.log.Warn("Role check failed", "user_id", rd.UserID, "role", rd.Role)
			response.RespondError(c, http.StatusForbidden, "forbidden", errForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

func (am *AuthMiddleware) attach(c *gin.Context, tokenString string) bool {
	ctx, err := am.authService.SetContextFromToken(c.Request.Context(), tokenString)
	if err != nil {
		if _, ok := apierr.As(err); !ok {
			am.log.Error("Token validation failed", "error", err)
		}
		response.RespondAPIError(c, err)
		c.Abort()
		return false
	}
	c.Request = c.Request.WithContext(ctx)
	return true
}

func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
