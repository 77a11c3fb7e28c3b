package repository

import (
	"context"
	"time"

	"github.com/busca-app/cacapreco-api/internal/domain/entity"
)

// UserRepository defines the account persistence operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	GetByID(ctx context.Context, id int64) (*entity.Usuario, error)
	// Activate marks the account verified+active and clears the confirmation code.
	Activate(ctx context.Context, id int64) error
	// RotateConfirmation replaces the confirmation code and its expiry.
	RotateConfirmation(ctx context.Context, email, code string, expiresAt time.Time) error
	UpdateLastLogin(ctx context.Context, id int64) error
}
