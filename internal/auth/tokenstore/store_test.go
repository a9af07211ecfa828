package tokenstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docustore/admin-console/internal/core/domain"
)

func TestStore_RoundTrip(t *testing.T) {
	s := New(t.TempDir())
	now := time.Now().UTC().Truncate(time.Second)
	cred := domain.Credential{
		Token: "header.payload.sig",
		User: &domain.User{
			ID: 7, Username: "alice", Email: "alice@example.com",
			Roles: []string{"SYS_ADMIN"}, CreatedAt: now, UpdatedAt: now,
		},
	}

	require.NoError(t, s.Save(cred))

	got, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, cred, got)
}

func TestStore_LoadAbsent(t *testing.T) {
	s := New(t.TempDir())
	_, ok := s.Load()
	assert.False(t, ok)
}

func TestStore_MalformedSlotIsDeleted(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	slot := filepath.Join(dir, slotName)
	require.NoError(t, os.WriteFile(slot, []byte("{not json"), 0o600))

	_, ok := s.Load()
	assert.False(t, ok)

	_, err := os.Stat(slot)
	assert.True(t, os.IsNotExist(err), "malformed slot should be removed")
}

func TestStore_EmptyTokenTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, slotName), []byte(`{"token":""}`), 0o600))

	_, ok := s.Load()
	assert.False(t, ok)
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Save(domain.Credential{Token: "first"}))
	require.NoError(t, s.Save(domain.Credential{Token: "second"}))

	got, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, "second", got.Token)
}

func TestStore_ClearIdempotent(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Save(domain.Credential{Token: "tok"}))
	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())

	_, ok := s.Load()
	assert.False(t, ok)
}
