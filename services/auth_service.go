package services

import (
	"github.com/joaomidowz/vargas-mix/models"
	"github.com/joaomidowz/vargas-mix/utils"
)

// AuthService resolves one of the two shared passwords into a role. There is
// no user table: everyone who knows the site password is a viewer, everyone
// who knows the admin password runs the show.
type AuthService interface {
	Login(password string) (models.Role, error)
}

type authService struct {
	sitePasswordHash  string
	adminPasswordHash string
}

func NewAuthService(sitePasswordHash, adminPasswordHash string) AuthService {
	return &authService{
		sitePasswordHash:  sitePasswordHash,
		adminPasswordHash: adminPasswordHash,
	}
}

func (s *authService) Login(password string) (models.Role, error) {
	if utils.CheckPasswordHash(password, s.adminPasswordHash) {
		return models.RoleAdmin, nil
	}
	if utils.CheckPasswordHash(password, s.sitePasswordHash) {
		return models.RoleViewer, nil
	}
	return "", ErrInvalidCredentials
}
