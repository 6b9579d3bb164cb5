// Package password はbcryptでパスワードのハッシュ化と照合を行います。
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher は固定のbcryptコストでパスワードをハッシュ化します。
type Hasher struct {
	cost int
}

// NewHasher はHasherを返します。bcryptの範囲外のコストはbcrypt.DefaultCostになります。
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash はplainのbcryptハッシュを返します。
func (h *Hasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify はplainがdigestと一致するかを返します。
func (h *Hasher) Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
