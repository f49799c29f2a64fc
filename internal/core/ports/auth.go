package ports

import (
	"context"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
)

// AuthRepository stores operator accounts.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// AuthService implements registration and login.
type AuthService interface {
	Register(ctx context.Context, username, password, email, role string) (*domain.User, error)
	// Login returns a signed session token and the authenticated user.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
