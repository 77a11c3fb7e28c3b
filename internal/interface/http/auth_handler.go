package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/busca-app/cacapreco-api/internal/application"
	"github.com/busca-app/cacapreco-api/internal/domain/entity"
	"github.com/busca-app/cacapreco-api/pkg/response"
	"github.com/busca-app/cacapreco-api/pkg/validation"
)

// AuthHandler exposes the account lifecycle: register, verify, resend, login.
type AuthHandler struct {
	Auth *application.AuthService
}

func NewAuthHandler(auth *application.AuthService) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

type registerRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Senha       string `json:"senha" binding:"required,senha"`
	TipoUsuario string `json:"tipoUsuario" binding:"required"`
}

type registerResponse struct {
	IDUsuario   int64  `json:"idUsuario"`
	Email       string `json:"email"`
	TipoUsuario string `json:"tipoUsuario"`
}

// Register creates an inactive account and triggers the verification e-mail.
func (h *AuthHandler) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error[any](ctx, http.StatusBadRequest, "Dados inválidos.", validation.ToDetails(err))
		return
	}
	tipo, err := entity.ParseRole(req.TipoUsuario)
	if err != nil {
		response.Error[any](ctx, http.StatusBadRequest, "Tipo de usuário inválido.", nil)
		return
	}

	u, err := h.Auth.Register(ctx.Request.Context(), req.Email, req.Senha, tipo)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error[any](ctx, http.StatusConflict, "E-mail já cadastrado.", nil)
			return
		}
		response.Error[any](ctx, http.StatusInternalServerError, "Erro ao cadastrar usuário.", nil)
		return
	}

	response.Success(ctx, http.StatusCreated, registerResponse{
		IDUsuario:   u.ID,
		Email:       u.Email,
		TipoUsuario: string(u.Tipo),
	}, "Cadastro realizado. Verifique seu e-mail para ativar a conta.")
}

type verifyEmailRequest struct {
	Email            string `json:"email" binding:"required,email"`
	TokenConfirmacao string `json:"tokenConfirmacao" binding:"required,codigo"`
}

// VerifyEmail confirms the verification code and activates the account.
func (h *AuthHandler) VerifyEmail(ctx *gin.Context) {
	var req verifyEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error[any](ctx, http.StatusBadRequest, "Dados inválidos.", validation.ToDetails(err))
		return
	}

	err := h.Auth.VerifyEmail(ctx.Request.Context(), req.Email, req.TokenConfirmacao)
	switch {
	case err == nil:
		response.Success[any](ctx, http.StatusOK, nil, "E-mail verificado com sucesso.")
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](ctx, http.StatusNotFound, "Usuário não encontrado.", nil)
	case errors.Is(err, application.ErrAlreadyActive):
		response.Error[any](ctx, http.StatusBadRequest, "Conta já verificada.", nil)
	case errors.Is(err, application.ErrInvalidCode):
		response.Error[any](ctx, http.StatusBadRequest, "Código inválido ou expirado.", nil)
	default:
		response.Error[any](ctx, http.StatusInternalServerError, "Erro ao verificar e-mail.", nil)
	}
}

type resendRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResendVerification rotates the code and re-sends the verification e-mail.
func (h *AuthHandler) ResendVerification(ctx *gin.Context) {
	var req resendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error[any](ctx, http.StatusBadRequest, "Dados inválidos.", validation.ToDetails(err))
		return
	}

	err := h.Auth.ResendVerification(ctx.Request.Context(), req.Email)
	switch {
	case err == nil:
		response.Success[any](ctx, http.StatusOK, nil, "Código reenviado. Verifique seu e-mail.")
	case errors.Is(err, application.ErrUserNotFound):
		response.Error[any](ctx, http.StatusNotFound, "Usuário não encontrado.", nil)
	case errors.Is(err, application.ErrAlreadyActive):
		response.Error[any](ctx, http.StatusBadRequest, "Conta já verificada.", nil)
	default:
		response.Error[any](ctx, http.StatusInternalServerError, "Erro ao reenviar código.", nil)
	}
}

type loginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

type loginResponse struct {
	Token          string `json:"token"`
	IDUsuario      int64  `json:"idUsuario"`
	TipoUsuario    string `json:"tipoUsuario"`
	PerfilCompleto bool   `json:"perfilCompleto"`
	ExpiraEm       string `json:"expiraEm"`
}

// Login validates credentials and returns the bearer token together with the
// onboarding flag the clients route on.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error[any](ctx, http.StatusBadRequest, "Dados inválidos.", validation.ToDetails(err))
		return
	}

	res, err := h.Auth.Login(ctx.Request.Context(), req.Email, req.Senha)
	switch {
	case err == nil:
		response.Success(ctx, http.StatusOK, loginResponse{
			Token:          res.Token,
			IDUsuario:      res.Usuario.ID,
			TipoUsuario:    string(res.Usuario.Tipo),
			PerfilCompleto: res.PerfilCompleto,
			ExpiraEm:       res.ExpiresAt.UTC().Format(time.RFC3339),
		}, "Login realizado com sucesso.")
	case errors.Is(err, application.ErrAccountInactive):
		response.Error[any](ctx, http.StatusForbidden, "Conta inativa. Verifique seu e-mail para ativar a conta.", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](ctx, http.StatusUnauthorized, "Credenciais inválidas.", nil)
	default:
		response.Error[any](ctx, http.StatusInternalServerError, "Erro ao realizar login.", nil)
	}
}
