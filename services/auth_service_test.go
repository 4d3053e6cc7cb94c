package services_test

import (
	"testing"

	"github.com/joaomidowz/vargas-mix/models"
	"github.com/joaomidowz/vargas-mix/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLoginResolvesRoles(t *testing.T) {
	svc := services.NewAuthService(hash(t, "mix123"), hash(t, "supersecret"))

	role, err := svc.Login("supersecret")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)

	role, err = svc.Login("mix123")
	require.NoError(t, err)
	assert.Equal(t, models.RoleViewer, role)

	_, err = svc.Login("wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}
