package jwtmw

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserID は認証済みユーザーIDを格納するgin.Contextのキーです。
	ContextUserID = "userID"
	// ContextClaims は検証済みクレームを格納するgin.Contextのキーです。
	ContextClaims = "claims"
)

// RevocationChecker はログアウト済みトークンの照会を定義します。
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// AuthRequired はBearerトークンを検証し、認証済みユーザーのみ通過させるミドルウェアを返します。
// トークン未指定は401、不正・期限切れ・失効済みは403を返します。
// revocationsがnilの場合、失効チェックは行いません。
func AuthRequired(secret string, revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		if secret == "" {
			// JWT_SECRET未設定
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		claims, err := ParseToken(secret, tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		if revocations != nil {
			revoked, err := revocations.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				slog.Error("token revocation lookup failed", "error", err, "remote_addr", c.ClientIP())
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to verify token"})
				return
			}
			if revoked {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
				return
			}
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}

// UserID は認証済みユーザーIDを返します。
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserID)
	return id, id != ""
}

// ClaimsFrom は検証済みクレームを返します。
func ClaimsFrom(c *gin.Context) (*Claims, bool) {
	v, ok := c.Get(ContextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*Claims)
	return claims, ok
}
