package identifier_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deployhub_backend/internal/identifier"
)

func TestNewUserID_Format(t *testing.T) {
	id := identifier.NewUserID()
	assert.Regexp(t, `^u_[A-Za-z0-9]{16}$`, id)
}

func TestNewAppID_Format(t *testing.T) {
	id := identifier.NewAppID()
	assert.Regexp(t, `^app_[A-Za-z0-9]{16}$`, id)
}

func TestNew_CustomPrefix(t *testing.T) {
	id := identifier.New("x_")
	assert.Regexp(t, `^x_[A-Za-z0-9]{16}$`, id)
	assert.Len(t, id, 18)
}

func TestNew_DoesNotRepeat(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := identifier.NewUserID()
		_, dup := seen[id]
		require.False(t, dup, "id %s generated twice", id)
		seen[id] = struct{}{}
	}
}

func TestNew_DrawsFromFullAlphabet(t *testing.T) {
	// across enough draws every character class must show up
	var lower, upper, digit bool
	for i := 0; i < 200 && !(lower && upper && digit); i++ {
		body := strings.TrimPrefix(identifier.NewUserID(), identifier.UserPrefix)
		for _, c := range body {
			switch {
			case c >= 'a' && c <= 'z':
				lower = true
			case c >= 'A' && c <= 'Z':
				upper = true
			case c >= '0' && c <= '9':
				digit = true
			}
		}
	}
	assert.True(t, lower, "no lowercase character in 200 ids")
	assert.True(t, upper, "no uppercase character in 200 ids")
	assert.True(t, digit, "no digit in 200 ids")
}
