package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/busca-app/cacapreco-api/internal/domain/entity"
	"github.com/busca-app/cacapreco-api/pkg/helpers"
)

const testSecret = "this-is-a-test-secret-with-32-bytes!"

func setupAuthRouter(jwt *helpers.JWTManager, roles ...entity.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := []gin.HandlerFunc{Auth(jwt)}
	if len(roles) > 0 {
		chain = append(chain, RequireRole(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": UserID(c), "tipo": UserRole(c)})
	})
	r.GET("/protegido", chain...)
	return r
}

func doRequest(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingToken(t *testing.T) {
	jwt := helpers.NewJWTManager(testSecret, time.Hour)
	r := setupAuthRouter(jwt)

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc123"},
		{"empty bearer", "Bearer "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := doRequest(r, tt.header); w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
		})
	}
}

func TestAuth_InvalidTokenIsForbidden(t *testing.T) {
	jwt := helpers.NewJWTManager(testSecret, time.Hour)
	r := setupAuthRouter(jwt)

	// expired token
	expired, _, err := helpers.NewJWTManager(testSecret, -time.Minute).GenerateToken(1, entity.RoleCliente)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	// signed with a different secret
	forged, _, err := helpers.NewJWTManager("another-secret-entirely-32-bytes!!", time.Hour).GenerateToken(1, entity.RoleCliente)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	for name, token := range map[string]string{"expired": expired, "forged": forged, "garbage": "abc"} {
		t.Run(name, func(t *testing.T) {
			if w := doRequest(r, "Bearer "+token); w.Code != http.StatusForbidden {
				t.Errorf("expected 403, got %d", w.Code)
			}
		})
	}
}

func TestAuth_ValidTokenPassesClaims(t *testing.T) {
	jwt := helpers.NewJWTManager(testSecret, time.Hour)
	r := setupAuthRouter(jwt)

	token, _, err := jwt.GenerateToken(42, entity.RoleVendedor)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	w := doRequest(r, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRequireRole(t *testing.T) {
	jwt := helpers.NewJWTManager(testSecret, time.Hour)
	r := setupAuthRouter(jwt, entity.RoleVendedor)

	seller, _, _ := jwt.GenerateToken(1, entity.RoleVendedor)
	client, _, _ := jwt.GenerateToken(2, entity.RoleCliente)

	if w := doRequest(r, "Bearer "+seller); w.Code != http.StatusOK {
		t.Errorf("seller should pass, got %d", w.Code)
	}
	if w := doRequest(r, "Bearer "+client); w.Code != http.StatusForbidden {
		t.Errorf("client should be rejected with 403, got %d", w.Code)
	}
}
