package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/busca-app/cacapreco-api/internal/domain/entity"
	"github.com/busca-app/cacapreco-api/internal/domain/repository"
	"github.com/busca-app/cacapreco-api/pkg/helpers"
)

const testSecret = "this-is-a-test-secret-with-32-bytes!"

// =============================================================================
// Mock UserRepository
// =============================================================================

type mockUserRepository struct {
	createFunc             func(ctx context.Context, u *entity.Usuario) error
	getByEmailFunc         func(ctx context.Context, email string) (*entity.Usuario, error)
	getByIDFunc            func(ctx context.Context, id int64) (*entity.Usuario, error)
	activateFunc           func(ctx context.Context, id int64) error
	rotateConfirmationFunc func(ctx context.Context, email, code string, expiresAt time.Time) error
	updateLastLoginFunc    func(ctx context.Context, id int64) error
}

func (m *mockUserRepository) Create(ctx context.Context, u *entity.Usuario) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*entity.Usuario, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUserRepository) Activate(ctx context.Context, id int64) error {
	if m.activateFunc != nil {
		return m.activateFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepository) RotateConfirmation(ctx context.Context, email, code string, expiresAt time.Time) error {
	if m.rotateConfirmationFunc != nil {
		return m.rotateConfirmationFunc(ctx, email, code, expiresAt)
	}
	return errors.New("not implemented")
}

func (m *mockUserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	if m.updateLastLoginFunc != nil {
		return m.updateLastLoginFunc(ctx, id)
	}
	return nil
}

// =============================================================================
// Mock ProfileRepository
// =============================================================================

type mockProfileRepository struct {
	clientByUserIDFunc   func(ctx context.Context, idUsuario int64) (*entity.Cliente, error)
	sellerByUserIDFunc   func(ctx context.Context, idUsuario int64) (*entity.Vendedor, error)
	createClientFunc     func(ctx context.Context, c *entity.Cliente, end *entity.Endereco) error
	createSellerFunc     func(ctx context.Context, v *entity.Vendedor, end *entity.Endereco) error
	updateSellerFunc     func(ctx context.Context, idVendedor int64, up entity.VendedorUpdate) error
	sellerRatingsFunc    func(ctx context.Context, idVendedor int64) ([]entity.AvaliacaoLoja, error)
	createIndicationFunc func(ctx context.Context, ind *entity.IndicacaoVendedor) error
}

func (m *mockProfileRepository) ClientByUserID(ctx context.Context, idUsuario int64) (*entity.Cliente, error) {
	if m.clientByUserIDFunc != nil {
		return m.clientByUserIDFunc(ctx, idUsuario)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProfileRepository) SellerByUserID(ctx context.Context, idUsuario int64) (*entity.Vendedor, error) {
	if m.sellerByUserIDFunc != nil {
		return m.sellerByUserIDFunc(ctx, idUsuario)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProfileRepository) CreateClient(ctx context.Context, c *entity.Cliente, end *entity.Endereco) error {
	if m.createClientFunc != nil {
		return m.createClientFunc(ctx, c, end)
	}
	return errors.New("not implemented")
}

func (m *mockProfileRepository) CreateSeller(ctx context.Context, v *entity.Vendedor, end *entity.Endereco) error {
	if m.createSellerFunc != nil {
		return m.createSellerFunc(ctx, v, end)
	}
	return errors.New("not implemented")
}

func (m *mockProfileRepository) UpdateSeller(ctx context.Context, idVendedor int64, up entity.VendedorUpdate) error {
	if m.updateSellerFunc != nil {
		return m.updateSellerFunc(ctx, idVendedor, up)
	}
	return errors.New("not implemented")
}

func (m *mockProfileRepository) SellerRatings(ctx context.Context, idVendedor int64) ([]entity.AvaliacaoLoja, error) {
	if m.sellerRatingsFunc != nil {
		return m.sellerRatingsFunc(ctx, idVendedor)
	}
	return nil, errors.New("not implemented")
}

func (m *mockProfileRepository) CreateIndication(ctx context.Context, ind *entity.IndicacaoVendedor) error {
	if m.createIndicationFunc != nil {
		return m.createIndicationFunc(ctx, ind)
	}
	return errors.New("not implemented")
}

// =============================================================================
// Test helpers
// =============================================================================

type capturedJob struct {
	jobs []any
}

func (c *capturedJob) PublishJSON(_ context.Context, body any) error {
	c.jobs = append(c.jobs, body)
	return nil
}

func newTestAuthService(users *mockUserRepository, profiles *mockProfileRepository) (*AuthService, *capturedJob) {
	pub := &capturedJob{}
	jwt := helpers.NewJWTManager(testSecret, time.Hour)
	return NewAuthService(users, profiles, jwt, pub, nil, 24*time.Hour), pub
}

func activeUser(id int64, email, password string, tipo entity.Role) *entity.Usuario {
	hash, _ := helpers.HashPassword(password)
	return &entity.Usuario{
		ID:              id,
		Email:           email,
		SenhaHash:       hash,
		Tipo:            tipo,
		Ativo:           true,
		EmailConfirmado: true,
	}
}

// =============================================================================
// Register
// =============================================================================

func TestRegister_CreatesInactiveAccountWithRandomCode(t *testing.T) {
	var created *entity.Usuario
	users := &mockUserRepository{
		getByEmailFunc: func(_ context.Context, _ string) (*entity.Usuario, error) {
			return nil, repository.ErrNotFound
		},
		createFunc: func(_ context.Context, u *entity.Usuario) error {
			u.ID = 7
			created = u
			return nil
		},
	}
	svc, pub := newTestAuthService(users, &mockProfileRepository{})

	u, err := svc.Register(context.Background(), "ana@example.com", "segredo1", entity.RoleCliente)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID != 7 {
		t.Errorf("expected id 7, got %d", u.ID)
	}
	if created.Ativo || created.EmailConfirmado {
		t.Error("new account must start inactive and unverified")
	}
	if created.TokenConfirmacao == nil || len(*created.TokenConfirmacao) != 6 {
		t.Fatalf("expected a 6-digit confirmation code, got %v", created.TokenConfirmacao)
	}
	if *created.TokenConfirmacao == "123456" {
		t.Error("confirmation code must not be a predictable constant")
	}
	if created.TokenExpiraEm == nil || !created.TokenExpiraEm.After(time.Now()) {
		t.Error("confirmation code must carry a future expiry")
	}
	if created.SenhaHash == "segredo1" {
		t.Error("password must be stored hashed")
	}
	if len(pub.jobs) != 1 {
		t.Errorf("expected one e-mail job, got %d", len(pub.jobs))
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := &mockUserRepository{
		getByEmailFunc: func(_ context.Context, _ string) (*entity.Usuario, error) {
			return &entity.Usuario{ID: 1, Email: "ana@example.com"}, nil
		},
	}
	svc, _ := newTestAuthService(users, &mockProfileRepository{})

	if _, err := svc.Register(context.Background(), "ana@example.com", "segredo1", entity.RoleCliente); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_DuplicateRaceMapsConstraintViolation(t *testing.T) {
	// Pre-check misses, the unique index catches the race.
	users := &mockUserRepository{
		getByEmailFunc: func(_ context.Context, _ string) (*entity.Usuario, error) {
			return nil, repository.ErrNotFound
		},
		createFunc: func(_ context.Context, _ *entity.Usuario) error {
			return repository.ErrDuplicate
		},
	}
	svc, _ := newTestAuthService(users, &mockProfileRepository{})

	if _, err := svc.Register(context.Background(), "ana@example.com", "segredo1", entity.RoleCliente); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

// =============================================================================
// VerifyEmail
// =============================================================================

func TestVerifyEmail_ActivatesAccount(t *testing.T) {
	code := "482910"
	expires := time.Now().Add(time.Hour)
	activated := false
	users := &mockUserRepository{
		getByEmailFunc: func(_ context.Context, _ string) (*entity.Usuario, error) {
			return &entity.Usuario{ID: 3, TokenConfirmacao: &code, TokenExpiraEm: &expires}, nil
		},
		activateFunc: func(_ context.Context, id int64) error {
			activated = true
			return nil
		},
	}
	svc, _ := newTestAuthService(users, &mockProfileRepository{})

	if err := svc.VerifyEmail(context.Background(), "ana@example.com", code); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	if !activated {
		t.Error("expected account activation")
	}
}

func TestVerifyEmail_SecondCallRejects(t *testing.T) {
	// After activation the stored code is cleared, replaying it fails.
	users := &mockUserRepository{
		getByEmailFunc: func(_ context.Context, _ string) (*entity.Usuario, error) {
			return &entity.Usuario{ID: 3, Ativo: true, EmailConfirmado: true}, nil
		},
	}
	svc, _ := newTestAuthService(users, &mockProfileRepository{})

	if err := svc.VerifyEmail(context.Background(), "ana@example.com", "482910"); !errors.Is(err, ErrAlreadyActive) {
		t.Fatalf("expected ErrAlreadyActive, got %v", err)
	}
}

func TestVerifyEmail_WrongOrExpiredCode(t *testing.T) {
	code := "482910"
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name string
		user *entity.Usuario
		code string
	}{
		{"wrong code", &entity.Usuario{TokenConfirmacao: &code, TokenExpiraEm: &future}, "000000"},
		{"expired code", &entity.Usuario{TokenConfirmacao: &code, TokenExpiraEm: &past}, code},
		{"no code stored", &entity.Usuario{}, code},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mockUserRepository{
				getByEmailFunc: func(_ context.Context, _ string) (*entity.Usuario, error) {
					return tt.user, nil
				},
			}
			svc, _ := newTestAuthService(users, &mockProfileRepository{})
			if err := svc.VerifyEmail(context.Background(), "ana@example.com", tt.code); !errors.Is(err, ErrInvalidCode) {
				t.Fatalf("expected ErrInvalidCode, got %v", err)
			}
		})
	}
}

func TestVerifyEmail_UnknownUser(t *testing.T) {
	users := &mockUserRepository{
		getByEmailFunc: func(_ context.Context, _ string) (*entity.Usuario, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc, _ := newTestAuthService(users, &mockProfileRepository{})

	if err := svc.VerifyEmail(context.Background(), "nobody@example.com", "482910"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

// =============================================================================
// ResendVerification
// =============================================================================

func TestResendVerification_RotatesCode(t *testing.T) {
	old := "482910"
	expires := time.Now().Add(time.Hour)
	var rotated string
	users := &mockUserRepository{
		getByEmailFunc: func(_ context.Context, _ string) (*entity.Usuario, error) {
			return &entity.Usuario{ID: 3, TokenConfirmacao: &old, TokenExpiraEm: &expires}, nil
		},
		rotateConfirmationFunc: func(_ context.Context, _, code string, _ time.Time) error {
			rotated = code
			return nil
		},
	}
	svc, pub := newTestAuthService(users, &mockProfileRepository{})

	if err := svc.ResendVerification(context.Background(), "ana@example.com"); err != nil {
		t.Fatalf("ResendVerification: %v", err)
	}
	if len(rotated) != 6 {
		t.Fatalf("expected a fresh 6-digit code, got %q", rotated)
	}
	if len(pub.jobs) != 1 {
		t.Errorf("expected one e-mail job, got %d", len(pub.jobs))
	}
}

// =============================================================================
// Login
// =============================================================================

func TestLogin_Success(t *testing.T) {
	u := activeUser(5, "ana@example.com", "segredo1", entity.RoleCliente)
	users := &mockUserRepository{
		getByEmailFunc: func(_ context.Context, _ string) (*entity.Usuario, error) { return u, nil },
	}
	profiles := &mockProfileRepository{
		clientByUserIDFunc: func(_ context.Context, id int64) (*entity.Cliente, error) {
			return &entity.Cliente{ID: 1, IDUsuario: id}, nil
		},
	}
	svc, _ := newTestAuthService(users, profiles)

	res, err := svc.Login(context.Background(), "ana@example.com", "segredo1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" {
		t.Error("expected a token")
	}
	if !res.PerfilCompleto {
		t.Error("client with a profile row must be perfilCompleto")
	}

	claims, err := svc.JWT.ParseToken(res.Token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 5 || !claims.Tipo.Is(entity.RoleCliente) {
		t.Errorf("token claims mismatch: uid=%d tipo=%s", claims.UserID, claims.Tipo)
	}
}

func TestLogin_ProfileIncomplete(t *testing.T) {
	u := activeUser(5, "ana@example.com", "segredo1", entity.RoleVendedor)
	users := &mockUserRepository{
		getByEmailFunc: func(_ context.Context, _ string) (*entity.Usuario, error) { return u, nil },
	}
	// no seller profile row yet
	svc, _ := newTestAuthService(users, &mockProfileRepository{})

	res, err := svc.Login(context.Background(), "ana@example.com", "segredo1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.PerfilCompleto {
		t.Error("seller without profile row must not be perfilCompleto")
	}
}

func TestLogin_InactiveBeforePassword(t *testing.T) {
	// An inactive account reports inactivity even with the wrong password.
	u := activeUser(5, "ana@example.com", "segredo1", entity.RoleCliente)
	u.Ativo = false
	users := &mockUserRepository{
		getByEmailFunc: func(_ context.Context, _ string) (*entity.Usuario, error) { return u, nil },
	}
	svc, _ := newTestAuthService(users, &mockProfileRepository{})

	if _, err := svc.Login(context.Background(), "ana@example.com", "errada"); !errors.Is(err, ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	u := activeUser(5, "ana@example.com", "segredo1", entity.RoleCliente)
	tests := []struct {
		name       string
		email      string
		senha      string
		repository *mockUserRepository
	}{
		{
			"unknown email", "nobody@example.com", "segredo1",
			&mockUserRepository{getByEmailFunc: func(_ context.Context, _ string) (*entity.Usuario, error) {
				return nil, repository.ErrNotFound
			}},
		},
		{
			"wrong password", "ana@example.com", "errada",
			&mockUserRepository{getByEmailFunc: func(_ context.Context, _ string) (*entity.Usuario, error) {
				return u, nil
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestAuthService(tt.repository, &mockProfileRepository{})
			if _, err := svc.Login(context.Background(), tt.email, tt.senha); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

// =============================================================================
// ProfileComplete
// =============================================================================

func TestProfileComplete_AdminAlwaysComplete(t *testing.T) {
	svc, _ := newTestAuthService(&mockUserRepository{}, &mockProfileRepository{})

	complete, err := svc.ProfileComplete(context.Background(), 1, entity.RoleAdmin)
	if err != nil {
		t.Fatalf("ProfileComplete: %v", err)
	}
	if !complete {
		t.Error("admin accounts have no profile table and are always complete")
	}
}

func TestProfileComplete_PropagatesStorageError(t *testing.T) {
	boom := errors.New("connection reset")
	profiles := &mockProfileRepository{
		clientByUserIDFunc: func(_ context.Context, _ int64) (*entity.Cliente, error) {
			return nil, boom
		},
	}
	svc, _ := newTestAuthService(&mockUserRepository{}, profiles)

	if _, err := svc.ProfileComplete(context.Background(), 1, entity.RoleCliente); !errors.Is(err, boom) {
		t.Fatalf("expected storage error to propagate, got %v", err)
	}
}
