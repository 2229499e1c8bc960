package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"travelapp-backend/services"
	"travelapp-backend/utils"
)

type RegisterInput struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
	Password  string `json:"password" binding:"required"`
	Password2 string `json:"password2" binding:"required"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshInput struct {
	Refresh string `json:"refresh" binding:"required"`
}

type AuthController struct {
	Auth *services.AuthService
}

// Register creates an account and signs it in.
func (ac *AuthController) Register(c *gin.Context) {
	var input RegisterInput
	if !bindJSON(c, &input) {
		return
	}

	user, tokens, err := ac.Auth.Register(c.Request.Context(), utils.CurrentCaller(c), services.RegisterInput{
		Username:  input.Username,
		Email:     input.Email,
		Password:  input.Password,
		Password2: input.Password2,
	})
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"username": user.Username,
			"email":    user.Email,
		},
		"refresh": tokens.Refresh,
		"access":  tokens.Access,
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if !bindJSON(c, &input) {
		return
	}
	tokens, err := ac.Auth.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, tokens)
}

func (ac *AuthController) Refresh(c *gin.Context) {
	var input RefreshInput
	if !bindJSON(c, &input) {
		return
	}
	access, err := ac.Auth.Refresh(c.Request.Context(), input.Refresh)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access": access})
}

// Logout revokes the given refresh token.
func (ac *AuthController) Logout(c *gin.Context) {
	var input RefreshInput
	if !bindJSON(c, &input) {
		return
	}
	if err := ac.Auth.Logout(c.Request.Context(), input.Refresh); err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
