package identity

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/samber/lo"
)

// NewToken mints an opaque urlsafe bearer token.
func NewToken() string {
	b := make([]byte, 32)
	lo.Must(rand.Read(b))
	return base64.RawURLEncoding.EncodeToString(b)
}
