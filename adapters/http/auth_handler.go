package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/yash-jivani/DevNetworks/internal/application/usecase/auth"
	"github.com/yash-jivani/DevNetworks/pkg/apperror"
)

type AuthHandler struct {
	registerUseCase *authUC.RegisterUseCase
	loginUseCase    *authUC.LoginUseCase
	currentUseCase  *authUC.CurrentUserUseCase
}

func NewAuthHandler(registerUC *authUC.RegisterUseCase, loginUC *authUC.LoginUseCase, currentUC *authUC.CurrentUserUseCase) *AuthHandler {
	return &AuthHandler{
		registerUseCase: registerUC,
		loginUseCase:    loginUC,
		currentUseCase:  currentUC,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(newValidationError(err, registerFieldMsgs))
		return
	}

	output, err := h.registerUseCase.Execute(c.Request.Context(), authUC.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": output.AccessToken})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(newValidationError(err, loginFieldMsgs))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": output.AccessToken})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.currentUseCase.Execute(c.Request.Context(), authUC.CurrentUserInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToUserDTO(output.User))
}
