package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newTestDB(t))
	ctx := context.Background()

	m, err := svc.Register(ctx, "ada", "correct-horse", "Ada")
	require.NoError(t, err)
	assert.NotZero(t, m.ID)
	assert.NotEqual(t, "correct-horse", m.Password, "password is stored hashed")

	got, err := svc.Login(ctx, "ada", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)

	_, err = svc.Login(ctx, "ada", "wrong")
	assert.Error(t, err)

	_, err = svc.Login(ctx, "nobody", "whatever")
	assert.Error(t, err)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewAuthService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.Register(ctx, "ada", "correct-horse", "Ada")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ada", "other-pass", "Other")
	assert.Error(t, err)
}
