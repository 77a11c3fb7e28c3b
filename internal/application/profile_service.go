package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/busca-app/cacapreco-api/internal/domain/entity"
	repo "github.com/busca-app/cacapreco-api/internal/domain/repository"
)

var (
	ErrProfileExists  = errors.New("profile already exists")
	ErrProfileMissing = errors.New("profile not found")
	ErrWrongRole      = errors.New("operation not allowed for role")
)

// ProfileService is the profile-completion gate. Account ids always come from
// the validated token, never from the request body, so a caller cannot
// complete a stranger's profile.
type ProfileService struct {
	Users    repo.UserRepository
	Profiles repo.ProfileRepository
	Logger   *logrus.Logger
}

func NewProfileService(users repo.UserRepository, profiles repo.ProfileRepository, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Users: users, Profiles: profiles, Logger: logger}
}

// CompleteClient creates the address and client rows for the account. The
// existence pre-check is a fast path; the unique constraint on
// cliente.id_usuario is what actually prevents a duplicate when two calls
// race.
func (s *ProfileService) CompleteClient(ctx context.Context, userID int64, tipo entity.Role, c *entity.Cliente, end *entity.Endereco) error {
	if !tipo.Is(entity.RoleCliente) {
		return ErrWrongRole
	}
	if _, err := s.Profiles.ClientByUserID(ctx, userID); err == nil {
		return ErrProfileExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	c.IDUsuario = userID
	if err := s.Profiles.CreateClient(ctx, c, end); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrProfileExists
		}
		return err
	}
	return nil
}

// CompleteSeller mirrors CompleteClient for seller accounts.
func (s *ProfileService) CompleteSeller(ctx context.Context, userID int64, tipo entity.Role, v *entity.Vendedor, end *entity.Endereco) error {
	if !tipo.Is(entity.RoleVendedor) {
		return ErrWrongRole
	}
	if _, err := s.Profiles.SellerByUserID(ctx, userID); err == nil {
		return ErrProfileExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	v.IDUsuario = userID
	if err := s.Profiles.CreateSeller(ctx, v, end); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrProfileExists
		}
		return err
	}
	return nil
}

// Profile returns the role-specific profile for the account, dispatching on
// the token's role.
func (s *ProfileService) Profile(ctx context.Context, userID int64, tipo entity.Role) (any, error) {
	switch {
	case tipo.Is(entity.RoleCliente):
		c, err := s.Profiles.ClientByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProfileMissing
		}
		return c, err
	case tipo.Is(entity.RoleVendedor):
		v, err := s.Profiles.SellerByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProfileMissing
		}
		return v, err
	default:
		return nil, ErrWrongRole
	}
}

// UpdateSeller applies a partial update to the seller profile of the account.
func (s *ProfileService) UpdateSeller(ctx context.Context, userID int64, up entity.VendedorUpdate) error {
	v, err := s.Profiles.SellerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrProfileMissing
		}
		return err
	}
	return s.Profiles.UpdateSeller(ctx, v.ID, up)
}

// SellerRatings lists the store ratings for the account's seller profile.
func (s *ProfileService) SellerRatings(ctx context.Context, userID int64) ([]entity.AvaliacaoLoja, error) {
	v, err := s.Profiles.SellerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProfileMissing
		}
		return nil, err
	}
	return s.Profiles.SellerRatings(ctx, v.ID)
}

// Indicate records a seller referral, attributed to the caller's profile when
// one exists.
func (s *ProfileService) Indicate(ctx context.Context, userID int64, tipo entity.Role, ind *entity.IndicacaoVendedor) error {
	if tipo.Is(entity.RoleCliente) {
		if c, err := s.Profiles.ClientByUserID(ctx, userID); err == nil {
			ind.IDCliente = &c.ID
		}
	} else if tipo.Is(entity.RoleVendedor) {
		if v, err := s.Profiles.SellerByUserID(ctx, userID); err == nil {
			ind.IDVendedor = &v.ID
		}
	}
	return s.Profiles.CreateIndication(ctx, ind)
}

// SellerID resolves the seller profile id for an account, used by the catalog
// and monitoring endpoints.
func (s *ProfileService) SellerID(ctx context.Context, userID int64) (int64, error) {
	v, err := s.Profiles.SellerByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return 0, ErrProfileMissing
		}
		return 0, err
	}
	return v.ID, nil
}
