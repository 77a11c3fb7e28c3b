package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/busca-app/cacapreco-api/internal/domain/entity"
	repo "github.com/busca-app/cacapreco-api/internal/domain/repository"
	"github.com/busca-app/cacapreco-api/pkg/helpers"
	"github.com/busca-app/cacapreco-api/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account inactive")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrAlreadyActive      = errors.New("account already active")
	ErrInvalidCode        = errors.New("invalid confirmation code")
)

// EmailPublisher enqueues e-mail jobs; satisfied by helpers.RabbitPublisher.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AuthService owns the account lifecycle: registration, e-mail verification
// and login. Whether onboarding is finished is never stored; it is derived
// from the existence of the role profile row on each login.
type AuthService struct {
	Users    repo.UserRepository
	Profiles repo.ProfileRepository
	JWT      *helpers.JWTManager
	Pub      EmailPublisher
	Logger   *logrus.Logger
	CodeTTL  time.Duration
}

func NewAuthService(users repo.UserRepository, profiles repo.ProfileRepository, jwt *helpers.JWTManager, pub EmailPublisher, logger *logrus.Logger, codeTTL time.Duration) *AuthService {
	if codeTTL <= 0 {
		codeTTL = 24 * time.Hour
	}
	return &AuthService{Users: users, Profiles: profiles, JWT: jwt, Pub: pub, Logger: logger, CodeTTL: codeTTL}
}

// Register creates an inactive account and enqueues the verification e-mail.
// The confirmation code is random and single-use, with a bounded lifetime.
func (s *AuthService) Register(ctx context.Context, email, senha string, tipo entity.Role) (*entity.Usuario, error) {
	if existing, err := s.Users.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	hash, err := helpers.HashPassword(senha)
	if err != nil {
		return nil, err
	}
	code, err := helpers.GenVerificationCode()
	if err != nil {
		return nil, err
	}
	expires := time.Now().Add(s.CodeTTL)

	u := &entity.Usuario{
		Email:            email,
		SenhaHash:        hash,
		Tipo:             tipo,
		Ativo:            false,
		EmailConfirmado:  false,
		TokenConfirmacao: &code,
		TokenExpiraEm:    &expires,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// Two registrations racing past the pre-check: the unique index on
		// email settles it.
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.enqueueVerification(ctx, u.Email, code)
	return u, nil
}

// VerifyEmail confirms the code and activates the account. A second call with
// the same code rejects: the code is cleared on activation.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.Ativo {
		return ErrAlreadyActive
	}
	if u.TokenConfirmacao == nil || *u.TokenConfirmacao != code {
		return ErrInvalidCode
	}
	if u.TokenExpiraEm != nil && time.Now().After(*u.TokenExpiraEm) {
		return ErrInvalidCode
	}
	return s.Users.Activate(ctx, u.ID)
}

// ResendVerification rotates the confirmation code and sends a fresh e-mail.
func (s *AuthService) ResendVerification(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.Ativo {
		return ErrAlreadyActive
	}
	code, err := helpers.GenVerificationCode()
	if err != nil {
		return err
	}
	if err := s.Users.RotateConfirmation(ctx, email, code, time.Now().Add(s.CodeTTL)); err != nil {
		return err
	}
	s.enqueueVerification(ctx, email, code)
	return nil
}

type LoginResult struct {
	Token          string
	ExpiresAt      time.Time
	Usuario        *entity.Usuario
	PerfilCompleto bool
}

// Login validates credentials and issues the bearer token. Inactive accounts
// are rejected before the password is checked.
func (s *AuthService) Login(ctx context.Context, email, senha string) (*LoginResult, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.Ativo {
		return nil, ErrAccountInactive
	}
	if !helpers.CompareHashAndPassword(u.SenhaHash, senha) {
		return nil, ErrInvalidCredentials
	}

	if err := s.Users.UpdateLastLogin(ctx, u.ID); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("update last login failed")
	}

	complete, err := s.ProfileComplete(ctx, u.ID, u.Tipo)
	if err != nil {
		return nil, err
	}

	token, exp, err := s.JWT.GenerateToken(u.ID, u.Tipo)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, Usuario: u, PerfilCompleto: complete}, nil
}

// User loads the account behind a validated token.
func (s *AuthService) User(ctx context.Context, userID int64) (*entity.Usuario, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// ProfileComplete reports whether the role profile row exists for the account.
// Admin accounts have no extra profile table; they are complete by definition.
func (s *AuthService) ProfileComplete(ctx context.Context, userID int64, tipo entity.Role) (bool, error) {
	switch {
	case tipo.Is(entity.RoleCliente):
		_, err := s.Profiles.ClientByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return err == nil, err
	case tipo.Is(entity.RoleVendedor):
		_, err := s.Profiles.SellerByUserID(ctx, userID)
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return err == nil, err
	default:
		return true, nil
	}
}

func (s *AuthService) enqueueVerification(ctx context.Context, email, code string) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{
		To:       email,
		Template: mailer.TemplateVerifyEmail,
		Data: map[string]any{
			"Codigo":   code,
			"ExpiraEm": s.CodeTTL.String(),
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("to", email).Warn("failed to publish verification email job")
	}
}
