package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dekarrin/ldlf2dfa/internal/automaton"
	"github.com/dekarrin/ldlf2dfa/internal/ldlf"
	"github.com/dekarrin/ldlf2dfa/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Store_PutThenGet_RoundTrips(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	formula := ldlf.NewAtom("a")
	dfa, err := automaton.ToDFA(formula)
	require.NoError(t, err)

	ctx := context.Background()
	hash, err := s.Put(ctx, formula, "a", dfa)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	restored, err := s.Get(ctx, hash)
	require.NoError(t, err)
	assert.Equal(t, dfa.NumStates(), restored.NumStates())
	assert.Equal(t, dfa.Alphabet(), restored.Alphabet())
}

func Test_Store_Get_MissingHashIsNotFound(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Get(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func Test_Store_Put_IsIdempotentForSameFormula(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	formula := ldlf.NewAtom("a")
	dfa, err := automaton.ToDFA(formula)
	require.NoError(t, err)

	ctx := context.Background()
	hash1, err := s.Put(ctx, formula, "a", dfa)
	require.NoError(t, err)
	hash2, err := s.Put(ctx, formula, "a", dfa)
	require.NoError(t, err)
	assert.Equal(t, hash1, hash2)
}

func Test_Store_CreateAccountThenGetByName_RoundTrips(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	created, err := s.CreateAccount(ctx, "alice", []byte("hashed-secret"))
	require.NoError(t, err)
	require.NotEqual(t, "", created.ID.String())

	byName, err := s.GetAccountByName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.Equal(t, []byte("hashed-secret"), byName.SecretHash)

	byID, err := s.GetAccountByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, byID.Name)
}

func Test_Store_GetAccountByName_MissingIsNotFound(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.GetAccountByName(context.Background(), "nobody")
	assert.ErrorIs(t, err, store.ErrAccountNotFound)
}

func Test_Store_CreateAccount_DuplicateNameIsAlreadyExists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	_, err = s.CreateAccount(ctx, "carol", []byte("hashed-secret"))
	require.NoError(t, err)

	_, err = s.CreateAccount(ctx, "carol", []byte("different-secret"))
	assert.ErrorIs(t, err, store.ErrAccountExists)
}

func Test_Store_InvalidateTokens_ChangesLastLogout(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cache.db")
	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	created, err := s.CreateAccount(ctx, "bob", []byte("hashed-secret"))
	require.NoError(t, err)

	require.NoError(t, s.InvalidateTokens(ctx, created.ID))

	updated, err := s.GetAccountByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, updated.LastLogout.After(created.LastLogout))
}
