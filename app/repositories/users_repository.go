package repositories

import (
	"context"
	"errors"
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-admin/app/services"
	"github.com/Rakhulsr/go-ecommerce-admin/app/utils/sessions"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAdmin           = errors.New("account is not an administrator")
)

type UserRepositoryImpl interface {
	Authenticate(ctx context.Context, email, password string) (*sessions.Admin, error)
}

type userRepository struct {
	auth *services.AuthService
}

func NewUserRepository(auth *services.AuthService) UserRepositoryImpl {
	return &userRepository{auth: auth}
}

// Authenticate logs in against the backend and only accepts admins.
func (r *userRepository) Authenticate(ctx context.Context, email, password string) (*sessions.Admin, error) {
	result, err := r.auth.Login(ctx, email, password)
	if err != nil {
		var apiErr *services.APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusBadRequest) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if result.Token == "" {
		return nil, ErrInvalidCredentials
	}
	if !result.User.IsAdmin() {
		return nil, ErrNotAdmin
	}
	return &sessions.Admin{Token: result.Token, User: result.User}, nil
}
