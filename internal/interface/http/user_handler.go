package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/busca-app/cacapreco-api/internal/application"
	"github.com/busca-app/cacapreco-api/internal/domain/entity"
	"github.com/busca-app/cacapreco-api/internal/interface/middleware"
	"github.com/busca-app/cacapreco-api/pkg/response"
	"github.com/busca-app/cacapreco-api/pkg/routeguard"
	"github.com/busca-app/cacapreco-api/pkg/validation"
)

// UserHandler exposes profile completion, profile read/update, ratings,
// referrals and the session resolver the clients route on.
type UserHandler struct {
	Auth     *application.AuthService
	Profiles *application.ProfileService
}

func NewUserHandler(auth *application.AuthService, profiles *application.ProfileService) *UserHandler {
	return &UserHandler{Auth: auth, Profiles: profiles}
}

type enderecoRequest struct {
	Logradouro  string `json:"logradouro" binding:"required"`
	Numero      string `json:"numero" binding:"required"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro" binding:"required"`
	Cidade      string `json:"cidade" binding:"required"`
	Estado      string `json:"estado" binding:"required,len=2"`
	CEP         string `json:"cep" binding:"required"`
}

func (r enderecoRequest) toEntity() *entity.Endereco {
	return &entity.Endereco{
		Logradouro:  r.Logradouro,
		Numero:      r.Numero,
		Complemento: r.Complemento,
		Bairro:      r.Bairro,
		Cidade:      r.Cidade,
		Estado:      r.Estado,
		CEP:         r.CEP,
	}
}

type completeClientRequest struct {
	Nome           string          `json:"nome" binding:"required"`
	Telefone       string          `json:"telefone" binding:"required"`
	CPF            string          `json:"cpf" binding:"required"`
	DataNascimento string          `json:"dataNascimento"`
	Endereco       enderecoRequest `json:"endereco" binding:"required"`
}

// CompleteClient finishes onboarding for a client account. The account id
// comes from the token, never from the body.
func (h *UserHandler) CompleteClient(ctx *gin.Context) {
	var req completeClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error[any](ctx, http.StatusBadRequest, "Dados inválidos.", validation.ToDetails(err))
		return
	}

	c := &entity.Cliente{
		Nome:     req.Nome,
		Telefone: req.Telefone,
		CPF:      req.CPF,
	}
	if req.DataNascimento != "" {
		d, err := time.Parse("2006-01-02", req.DataNascimento)
		if err != nil {
			response.Error[any](ctx, http.StatusBadRequest, "Dados inválidos.", map[string]string{"dataNascimento": "deve estar no formato AAAA-MM-DD"})
			return
		}
		c.DataNascimento = &d
	}

	err := h.Profiles.CompleteClient(ctx.Request.Context(), middleware.UserID(ctx), middleware.UserRole(ctx), c, req.Endereco.toEntity())
	h.writeCompletion(ctx, err, "Perfil de cliente criado com sucesso.")
}

type completeSellerRequest struct {
	NomeLoja             string          `json:"nomeLoja" binding:"required"`
	CNPJ                 string          `json:"cnpj" binding:"required"`
	Telefone             string          `json:"telefone" binding:"required"`
	Fundacao             string          `json:"fundacao"`
	HorarioFuncionamento string          `json:"horarioFuncionamento"`
	NomeResponsavel      string          `json:"nomeResponsavel" binding:"required"`
	CPFResponsavel       string          `json:"cpfResponsavel" binding:"required"`
	BreveDescricao       string          `json:"breveDescricao"`
	LogotipoURL          string          `json:"logotipoUrl"`
	WebsiteRedesSociais  string          `json:"websiteRedesSociais"`
	IDCategoriaLoja      int64           `json:"idCategoriaLoja" binding:"required"`
	Endereco             enderecoRequest `json:"endereco" binding:"required"`
}

// CompleteSeller finishes onboarding for a seller account.
func (h *UserHandler) CompleteSeller(ctx *gin.Context) {
	var req completeSellerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error[any](ctx, http.StatusBadRequest, "Dados inválidos.", validation.ToDetails(err))
		return
	}

	v := &entity.Vendedor{
		NomeLoja:             req.NomeLoja,
		CNPJ:                 req.CNPJ,
		Telefone:             req.Telefone,
		HorarioFuncionamento: req.HorarioFuncionamento,
		NomeResponsavel:      req.NomeResponsavel,
		CPFResponsavel:       req.CPFResponsavel,
		BreveDescricao:       req.BreveDescricao,
		LogotipoURL:          req.LogotipoURL,
		WebsiteRedesSociais:  req.WebsiteRedesSociais,
		IDCategoriaLoja:      req.IDCategoriaLoja,
	}
	if req.Fundacao != "" {
		d, err := time.Parse("2006-01-02", req.Fundacao)
		if err != nil {
			response.Error[any](ctx, http.StatusBadRequest, "Dados inválidos.", map[string]string{"fundacao": "deve estar no formato AAAA-MM-DD"})
			return
		}
		v.Fundacao = &d
	}

	err := h.Profiles.CompleteSeller(ctx.Request.Context(), middleware.UserID(ctx), middleware.UserRole(ctx), v, req.Endereco.toEntity())
	h.writeCompletion(ctx, err, "Perfil de vendedor criado com sucesso.")
}

func (h *UserHandler) writeCompletion(ctx *gin.Context, err error, okMsg string) {
	switch {
	case err == nil:
		response.Success(ctx, http.StatusCreated, gin.H{"perfilCompleto": true}, okMsg)
	case errors.Is(err, application.ErrProfileExists):
		response.Error[any](ctx, http.StatusConflict, "Perfil já cadastrado.", nil)
	case errors.Is(err, application.ErrWrongRole):
		response.Error[any](ctx, http.StatusForbidden, "Acesso negado.", nil)
	default:
		response.Error[any](ctx, http.StatusInternalServerError, "Erro ao completar perfil.", nil)
	}
}

// Profile returns the role-specific profile of the authenticated account.
func (h *UserHandler) Profile(ctx *gin.Context) {
	p, err := h.Profiles.Profile(ctx.Request.Context(), middleware.UserID(ctx), middleware.UserRole(ctx))
	switch {
	case err == nil:
		response.Success(ctx, http.StatusOK, p, "")
	case errors.Is(err, application.ErrProfileMissing):
		response.Error[any](ctx, http.StatusNotFound, "Perfil não encontrado.", nil)
	case errors.Is(err, application.ErrWrongRole):
		response.Error[any](ctx, http.StatusForbidden, "Acesso negado.", nil)
	default:
		response.Error[any](ctx, http.StatusInternalServerError, "Erro ao buscar perfil.", nil)
	}
}

type updateSellerRequest struct {
	NomeLoja             *string `json:"nomeLoja"`
	CNPJ                 *string `json:"cnpj"`
	Telefone             *string `json:"telefone"`
	HorarioFuncionamento *string `json:"horarioFuncionamento"`
	NomeResponsavel      *string `json:"nomeResponsavel"`
	CPFResponsavel       *string `json:"cpfResponsavel"`
	BreveDescricao       *string `json:"breveDescricao"`
	LogotipoURL          *string `json:"logotipoUrl"`
	WebsiteRedesSociais  *string `json:"websiteRedesSociais"`
	IDCategoriaLoja      *int64  `json:"idCategoriaLoja"`
}

// UpdateSeller applies a partial update to the caller's seller profile.
func (h *UserHandler) UpdateSeller(ctx *gin.Context) {
	var req updateSellerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error[any](ctx, http.StatusBadRequest, "Dados inválidos.", validation.ToDetails(err))
		return
	}

	up := entity.VendedorUpdate{
		NomeLoja:             req.NomeLoja,
		CNPJ:                 req.CNPJ,
		Telefone:             req.Telefone,
		HorarioFuncionamento: req.HorarioFuncionamento,
		NomeResponsavel:      req.NomeResponsavel,
		CPFResponsavel:       req.CPFResponsavel,
		BreveDescricao:       req.BreveDescricao,
		LogotipoURL:          req.LogotipoURL,
		WebsiteRedesSociais:  req.WebsiteRedesSociais,
		IDCategoriaLoja:      req.IDCategoriaLoja,
	}
	err := h.Profiles.UpdateSeller(ctx.Request.Context(), middleware.UserID(ctx), up)
	switch {
	case err == nil:
		response.Success[any](ctx, http.StatusOK, nil, "Perfil atualizado com sucesso.")
	case errors.Is(err, application.ErrProfileMissing):
		response.Error[any](ctx, http.StatusNotFound, "Perfil não encontrado.", nil)
	default:
		response.Error[any](ctx, http.StatusInternalServerError, "Erro ao atualizar perfil.", nil)
	}
}

// Ratings lists the store ratings of the caller's seller profile.
func (h *UserHandler) Ratings(ctx *gin.Context) {
	list, err := h.Profiles.SellerRatings(ctx.Request.Context(), middleware.UserID(ctx))
	switch {
	case err == nil:
		response.Success(ctx, http.StatusOK, list, "")
	case errors.Is(err, application.ErrProfileMissing):
		response.Error[any](ctx, http.StatusNotFound, "Perfil não encontrado.", nil)
	default:
		response.Error[any](ctx, http.StatusInternalServerError, "Erro ao buscar avaliações.", nil)
	}
}

type indicateRequest struct {
	NomeIndicado     string `json:"nomeIndicado" binding:"required"`
	EmailIndicado    string `json:"emailIndicado" binding:"omitempty,email"`
	TelefoneIndicado string `json:"telefoneIndicado"`
	Mensagem         string `json:"mensagem"`
}

// Indicate records a seller referral attributed to the caller.
func (h *UserHandler) Indicate(ctx *gin.Context) {
	var req indicateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error[any](ctx, http.StatusBadRequest, "Dados inválidos.", validation.ToDetails(err))
		return
	}

	ind := &entity.IndicacaoVendedor{
		NomeIndicado:     req.NomeIndicado,
		EmailIndicado:    req.EmailIndicado,
		TelefoneIndicado: req.TelefoneIndicado,
		Mensagem:         req.Mensagem,
	}
	if err := h.Profiles.Indicate(ctx.Request.Context(), middleware.UserID(ctx), middleware.UserRole(ctx), ind); err != nil {
		response.Error[any](ctx, http.StatusInternalServerError, "Erro ao registrar indicação.", nil)
		return
	}
	response.Success[any](ctx, http.StatusCreated, nil, "Indicação registrada com sucesso.")
}

type suggestionRequest struct {
	Suggestion string `json:"suggestion" binding:"required"`
}

// Suggestion receives free-form feedback. It is logged, not persisted; there
// is no review workflow behind it yet.
func (h *UserHandler) Suggestion(ctx *gin.Context) {
	var req suggestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error[any](ctx, http.StatusBadRequest, "A sugestão não pode ser vazia.", validation.ToDetails(err))
		return
	}
	if h.Profiles.Logger != nil {
		h.Profiles.Logger.WithFields(map[string]any{
			"user_id": middleware.UserID(ctx),
			"tipo":    string(middleware.UserRole(ctx)),
		}).Info("sugestão recebida: " + req.Suggestion)
	}
	response.Success[any](ctx, http.StatusOK, nil, "Sugestão enviada com sucesso!")
}

type sessionResponse struct {
	IDUsuario      int64  `json:"idUsuario"`
	TipoUsuario    string `json:"tipoUsuario"`
	EmailVerified  bool   `json:"emailVerificado"`
	PerfilCompleto bool   `json:"perfilCompleto"`
	Destino        string `json:"destino"`
}

// Session resolves where the client must route the authenticated user. The
// requested path and the roles the route allows come as query parameters; the
// rest of the state is derived server-side.
func (h *UserHandler) Session(ctx *gin.Context) {
	userID := middleware.UserID(ctx)
	role := middleware.UserRole(ctx)

	u, err := h.Auth.User(ctx.Request.Context(), userID)
	if err != nil {
		response.Error[any](ctx, http.StatusNotFound, "Usuário não encontrado.", nil)
		return
	}
	complete, err := h.Auth.ProfileComplete(ctx.Request.Context(), userID, role)
	if err != nil {
		response.Error[any](ctx, http.StatusInternalServerError, "Erro ao resolver sessão.", nil)
		return
	}

	requested := ctx.DefaultQuery("rota", "/")
	dest := routeguard.Resolve(routeguard.State{
		HasToken:        true,
		EmailVerified:   u.EmailConfirmado,
		ProfileComplete: complete,
		Role:            string(role),
	}, requested, ctx.QueryArray("perfil")...)

	response.Success(ctx, http.StatusOK, sessionResponse{
		IDUsuario:      userID,
		TipoUsuario:    string(role),
		EmailVerified:  u.EmailConfirmado,
		PerfilCompleto: complete,
		Destino:        dest,
	}, "")
}
