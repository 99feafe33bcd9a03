package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/jwt"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/redis"
	"github.com/escambientalveracruz-cpu/RegistroElectronicoIA/pkg/response"
)

// Context keys set by JWTAuth.
const (
	UserIDKey   = "user_id"
	TokenJTIKey = "token_jti"
	TokenExpKey = "token_exp"
)

// JWTAuth extracts and verifies the access token from
// Authorization: Bearer <token>. With Redis available it also rejects
// blacklisted tokens; without it the blacklist check is skipped.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "falta el encabezado de autenticación")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "encabezado de autenticación inválido")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "el token es inválido o expiró")
			c.Abort()
			return
		}
		if claims.TokenType != jwt.TokenTypeAccess {
			response.Unauthorized(c, 10002, "tipo de token inválido")
			c.Abort()
			return
		}

		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				response.Unauthorized(c, 10002, "la sesión fue cerrada")
				c.Abort()
				return
			}
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(TokenJTIKey, claims.ID)
		var exp time.Time
		if claims.ExpiresAt != nil {
			exp = claims.ExpiresAt.Time
		}
		c.Set(TokenExpKey, exp)

		c.Next()
	}
}
