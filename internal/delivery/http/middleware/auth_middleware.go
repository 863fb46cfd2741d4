package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware verifies the bearer token and resolves the principal.
// Role always comes from the local users table, never from a token claim:
// claims go stale, the table does not.
func AuthMiddleware(jwksProvider *auth.Provider, cfg *config.Config, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); ok {
				if cfg.JWTSecret == "" {
					return nil, fmt.Errorf("HS256 token received but JWT_SECRET is not configured")
				}
				return []byte(cfg.JWTSecret), nil
			}
			if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
				return jwksProvider.KeyFunc(token)
			}
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		})

		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)

		// Registration sync runs before the user row exists, so it only
		// needs the verified token identity.
		if c.FullPath() == "/v1/auth/register" {
			c.Set(string(domain.KeyUserID), sub)
			c.Set(string(domain.KeyUserEmail), email)
			c.Next()
			return
		}

		user, err := authUC.GetCurrentUser(c.Request.Context(), sub)
		if err != nil {
			// Deleted-out-of-band identity: force re-authentication.
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}

		principal := &domain.Principal{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		}

		c.Set(string(domain.KeyPrincipal), principal)
		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), user.Email)
		c.Set(string(domain.KeyUserRole), string(user.Role))

		c.Next()
	}
}

// PrincipalFrom extracts the resolved principal from the request context.
func PrincipalFrom(c *gin.Context) *domain.Principal {
	v, ok := c.Get(string(domain.KeyPrincipal))
	if !ok {
		return nil
	}
	p, _ := v.(*domain.Principal)
	return p
}
