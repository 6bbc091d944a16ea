// Package identifier generates the prefixed random ids used as primary keys.
package identifier

import (
	"crypto/rand"
	"math/big"
)

const (
	UserPrefix = "u_"
	AppPrefix  = "app_"

	alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	length   = 16
)

// New returns prefix followed by 16 characters drawn uniformly from
// [A-Za-z0-9]. Uniqueness is not checked here; the primary key constraint
// rejects collisions.
func New(prefix string) string {
	buf := make([]byte, 0, len(prefix)+length)
	buf = append(buf, prefix...)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			// crypto/rand.Reader failing means the platform's entropy
			// source is broken; there is nothing sensible to fall back to.
			panic(err)
		}
		buf = append(buf, alphabet[n.Int64()])
	}
	return string(buf)
}

func NewUserID() string {
	return New(UserPrefix)
}

func NewAppID() string {
	return New(AppPrefix)
}
