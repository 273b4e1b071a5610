package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joblane/joblane/internal/model"
)

func TestIssueAndDecode(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"))

	token, err := issuer.Issue(model.Identity{Username: "test", IsAdmin: true})
	require.NoError(t, err)

	id, err := issuer.Decode(token)
	require.NoError(t, err)

	assert.Equal(t, "test", id.Username)
	assert.True(t, id.IsAdmin)
	assert.WithinDuration(t, time.Now(), id.IssuedAt, 5*time.Second)
}

func TestIssueDefaultsToNonAdmin(t *testing.T) {
	// Security-critical default: an identity without the admin flag set
	// must never round-trip to admin.
	issuer := NewTokenIssuer([]byte("test-secret"))

	token, err := issuer.Issue(model.Identity{Username: "test"})
	require.NoError(t, err)

	id, err := issuer.Decode(token)
	require.NoError(t, err)

	assert.Equal(t, "test", id.Username)
	assert.False(t, id.IsAdmin)
}

func TestDecodeWrongSecret(t *testing.T) {
	right := NewTokenIssuer([]byte("right-secret"))
	wrong := NewTokenIssuer([]byte("wrong-secret"))

	token, err := right.Issue(model.Identity{Username: "test"})
	require.NoError(t, err)

	_, err = wrong.Decode(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDecodeGarbage(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"))

	for _, token := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJub25lIn0.e30."} {
		_, err := issuer.Decode(token)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", token)
	}
}

func TestDecodeTruncated(t *testing.T) {
	issuer := NewTokenIssuer([]byte("test-secret"))

	token, err := issuer.Issue(model.Identity{Username: "test"})
	require.NoError(t, err)

	_, err = issuer.Decode(token[:len(token)-5])
	assert.ErrorIs(t, err, ErrInvalidToken)
}
