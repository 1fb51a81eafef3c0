package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/avantpro-blog/internal/domain/ports"
	"github.com/rafabene/avantpro-blog/internal/handlers/dto"
	"github.com/rafabene/avantpro-blog/internal/handlers/middleware"
	"github.com/rafabene/avantpro-blog/internal/services"
)

// AuthHandler lida com registro, login e sessão
type AuthHandler struct {
	authService *services.AuthService
	logger      ports.Logger
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService, logger ports.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register registra um usuário com senha
//
//	@Summary	Register a user
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.RegisterRequest	true	"User data"
//	@Success	201		{object}	dto.Response{data=dto.UserResponse}
//	@Failure	422		{object}	dto.Response
//	@Router		/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success(c, "auth.registered", dto.ToUserResponse(user)))
}

// Login autentica com email e senha
//
//	@Summary	Login with email and password
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.LoginRequest	true	"Credentials"
//	@Success	200		{object}	dto.Response{data=dto.UserResponse}
//	@Failure	401		{object}	dto.Response
//	@Failure	422		{object}	dto.Response
//	@Router		/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	token, user, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := dto.Success(c, "auth.logged_in", dto.ToUserResponse(user))
	response.Token = token.Value
	c.JSON(http.StatusOK, response)
}

// Google autentica com um access token do Google
//
//	@Summary	Login with a Google access token
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.GoogleLoginRequest	true	"Google token"
//	@Success	200		{object}	dto.Response{data=dto.UserResponse}
//	@Failure	401		{object}	dto.Response
//	@Failure	422		{object}	dto.Response
//	@Router		/v1/auth/google [post]
func (h *AuthHandler) Google(c *gin.Context) {
	var req dto.GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	token, user, err := h.authService.LoginWithOAuthToken(c.Request.Context(), req.Token)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := dto.Success(c, "auth.logged_in_google", dto.ToUserResponse(user))
	response.Token = token.Value
	c.JSON(http.StatusOK, response)
}

// Logout revoga o token atual
//
//	@Summary	Revoke the current token
//	@Tags		auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.Response
//	@Failure	401	{object}	dto.Response
//	@Router		/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context(), middleware.RawToken(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(c, "auth.logged_out", nil))
}

// Me retorna o usuário autenticado
//
//	@Summary	Current user
//	@Tags		auth
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.Response{data=dto.UserResponse}
//	@Failure	401	{object}	dto.Response
//	@Router		/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.CurrentUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.Success(c, "auth.me", dto.ToUserResponse(user)))
}
