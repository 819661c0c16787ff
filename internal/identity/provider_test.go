package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/repository"
)

func seedAccount(t *testing.T) (*repository.Store, string) {
	t.Helper()
	db, err := repository.NewSQLiteDB("")
	require.NoError(t, err)
	store := repository.NewStore(db)

	ctx := context.Background()
	acc, err := store.Accounts.Create(ctx, &entity.Account{
		Email: "ops@example.com",
		Roles: []entity.RoleGroup{entity.RoleDevOps},
	})
	require.NoError(t, err)

	token := NewToken()
	require.NoError(t, store.Accounts.CreateToken(ctx, acc.ID, token))
	return store, token
}

func TestPrincipalByToken(t *testing.T) {
	store, token := seedAccount(t)
	p := NewStoreProvider(store, nil)

	principal, err := p.PrincipalByToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, "ops@example.com", principal.Email)
	assert.True(t, principal.HasRole(entity.RoleDevOps))
}

func TestPrincipalByTokenRejectsUnknownToken(t *testing.T) {
	store, _ := seedAccount(t)
	p := NewStoreProvider(store, nil)

	_, err := p.PrincipalByToken(context.Background(), "no-such-token")
	require.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestPrincipalByTokenRejectsEmptyToken(t *testing.T) {
	store, _ := seedAccount(t)
	p := NewStoreProvider(store, nil)

	_, err := p.PrincipalByToken(context.Background(), "")
	require.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestPrincipalByTokenRejectsExpiredToken(t *testing.T) {
	store, token := seedAccount(t)
	future := func() time.Time { return time.Now().Add(entity.AuthTokenTTL + time.Hour) }
	p := NewStoreProvider(store, future)

	_, err := p.PrincipalByToken(context.Background(), token)
	require.ErrorIs(t, err, entity.ErrUnauthorized)
}

func TestNewTokenIsUnique(t *testing.T) {
	assert.NotEqual(t, NewToken(), NewToken())
	assert.NotEmpty(t, NewToken())
}
