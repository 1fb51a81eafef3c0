package dto

import (
	"github.com/rafabene/avantpro-blog/internal/domain/entities"
)

// RegisterRequest representa a requisição de registro
type RegisterRequest struct {
	Name                 string `json:"name" binding:"required,max=255"`
	Email                string `json:"email" binding:"required,email,max=255"`
	Password             string `json:"password" binding:"required,min=8,max=72"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
}

// LoginRequest representa a requisição de login com senha
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carrega o access token emitido pelo Google
type GoogleLoginRequest struct {
	Token string `json:"token" binding:"required"`
}

// UserResponse representa a resposta de um usuário (nunca inclui o hash)
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email.String(),
	}
}
