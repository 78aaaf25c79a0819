package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokensRoundTrip(t *testing.T) {
	m := NewManager("secret", 20*time.Minute, 7*24*time.Hour)
	tokens, err := m.GenerateTokens(Identity{Email: "admin@cekspek.id", Role: RoleAdmin})
	require.NoError(t, err)

	id, err := m.ParseAccess(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, Identity{Email: "admin@cekspek.id", Role: RoleAdmin}, id)

	id, err = m.ParseRefresh(tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, id.Role)
}

func TestTokenTypesAreNotInterchangeable(t *testing.T) {
	m := NewManager("secret", time.Minute, time.Hour)
	tokens, err := m.GenerateTokens(Identity{Email: "a@b.c", Role: RoleAdmin})
	require.NoError(t, err)

	_, err = m.ParseAccess(tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ParseRefresh(tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredAndForeignTokens(t *testing.T) {
	m := NewManager("secret", time.Minute, time.Hour)
	issued := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return issued }
	tokens, err := m.GenerateTokens(Identity{Email: "a@b.c", Role: RoleAdmin})
	require.NoError(t, err)

	m.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = m.ParseAccess(tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewManager("other", time.Minute, time.Hour)
	other.now = func() time.Time { return issued }
	_, err = other.ParseAccess(tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdminAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := Admin{Email: "admin@cekspek.id", PasswordHash: string(hash)}

	assert.True(t, admin.Authenticate(" Admin@CekSpek.id ", "rahasia"))
	assert.False(t, admin.Authenticate("admin@cekspek.id", "salah"))
	assert.False(t, admin.Authenticate("other@cekspek.id", "rahasia"))
	assert.False(t, Admin{Email: "admin@cekspek.id"}.Authenticate("admin@cekspek.id", ""))
}
