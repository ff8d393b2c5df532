package security

import (
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
)

var ErrRevokedToken = errors.New("token has been revoked")

// RevocationList remembers signed-out token ids until the tokens would have
// expired anyway. Entries live in process memory.
type RevocationList struct {
	ids *cache.Cache
	now func() time.Time
}

func NewRevocationList() *RevocationList {
	return &RevocationList{
		ids: cache.New(cache.NoExpiration, 10*time.Minute),
		now: time.Now,
	}
}

// Revoke records id until expiresAt. Already expired tokens are ignored.
func (l *RevocationList) Revoke(id string, expiresAt time.Time) {
	ttl := expiresAt.Sub(l.now())
	if id == "" || ttl <= 0 {
		return
	}
	l.ids.Set(id, struct{}{}, ttl)
}

func (l *RevocationList) IsRevoked(id string) bool {
	if id == "" {
		return false
	}
	_, found := l.ids.Get(id)
	return found
}

// Check returns ErrRevokedToken when the claims' token id was revoked.
func (l *RevocationList) Check(claims *SessionClaims) error {
	if l.IsRevoked(claims.ID) {
		return ErrRevokedToken
	}
	return nil
}
