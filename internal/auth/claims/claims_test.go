package claims

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docustore/admin-console/internal/core/domain"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestDecode_StripsPrefixOncePreservesOrder(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{
		"sub":   "alice",
		"roles": []string{"ROLE_SYS_ADMIN", "AUDITOR", "ROLE_ROLE_NESTED"},
	})

	cs, err := Decode(tok)
	require.NoError(t, err)

	assert.Equal(t, "alice", cs.Subject)
	assert.Equal(t, []string{"SYS_ADMIN", "AUDITOR", "ROLE_NESTED"}, cs.Roles)
}

func TestDecode_Expiry(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	tok := signedToken(t, jwt.MapClaims{
		"sub": "alice",
		"exp": exp.Unix(),
	})

	cs, err := Decode(tok)
	require.NoError(t, err)
	assert.WithinDuration(t, exp, cs.ExpiresAt, time.Second)
}

func TestDecode_NoRolesClaim(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{"sub": "alice"})

	cs, err := Decode(tok)
	require.NoError(t, err)
	assert.Empty(t, cs.Roles)
}

func TestDecode_NonStringRolesSkipped(t *testing.T) {
	tok := signedToken(t, jwt.MapClaims{
		"sub":   "alice",
		"roles": []any{"ROLE_USER", 42, true},
	})

	cs, err := Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, []string{"USER"}, cs.Roles)
}

func TestDecode_Malformed(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"not a token":      "garbage",
		"two segments":     "abc.def",
		"bad payload":      "eyJhbGciOiJIUzI1NiJ9.!!!notbase64!!!.sig",
		"payload not json": "eyJhbGciOiJIUzI1NiJ9.bm90LWpzb24.sig",
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(tok)
			assert.ErrorIs(t, err, domain.ErrMalformedToken)
		})
	}
}
