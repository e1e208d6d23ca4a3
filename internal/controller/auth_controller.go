package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"matelog-backend/internal/model"
	"matelog-backend/internal/service"
	"matelog-backend/utilities"
)

type AuthController struct {
	AuthService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register handles POST /users/register/
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Username        string `json:"username" binding:"required"`
		Password        string `json:"password" binding:"required"`
		PasswordConfirm string `json:"password_confirm" binding:"required"`
		Grupo           string `json:"grupo" binding:"required"`
		Especialidad    string `json:"especialidad" binding:"required"`
		Genero          string `json:"genero" binding:"required"`
		Edad            string `json:"edad" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos inválidos"})
		return
	}
	if req.Password != req.PasswordConfirm {
		c.JSON(http.StatusBadRequest, gin.H{"password_confirm": "Las contraseñas no coinciden."})
		return
	}

	user := model.User{
		Username:     req.Username,
		Grupo:        model.Group(req.Grupo),
		Especialidad: model.Specialty(req.Especialidad),
		Genero:       model.Gender(req.Genero),
		Edad:         model.AgeChoice(req.Edad),
	}
	if err := ac.AuthService.Register(&user, req.Password); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"mensaje": "Usuario registrado exitosamente",
		"usuario": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"grupo":        user.Grupo,
			"especialidad": user.Especialidad,
		},
	})
}

// Login handles POST /users/login/
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos inválidos"})
		return
	}

	user, err := ac.AuthService.Login(req.Username, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	accessToken, refreshToken, err := utilities.GenerateTokens(user)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mensaje": "Inicio de sesión exitoso",
		"usuario": gin.H{
			"id":           user.ID,
			"username":     user.Username,
			"grupo":        user.Grupo,
			"especialidad": user.Especialidad,
		},
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Refresh handles POST /users/refresh/
func (ac *AuthController) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos inválidos"})
		return
	}

	accessToken, refreshToken, err := utilities.RefreshTokens(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

// Logout handles POST /users/logout/. Tokens are stateless; the client just
// discards them.
func (ac *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"mensaje": "Sesión cerrada exitosamente"})
}

// Profile handles GET /users/profile/
func (ac *AuthController) Profile(c *gin.Context) {
	userID, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "usuario no autenticado"})
		return
	}

	user, err := ac.AuthService.GetProfile(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                   user.ID,
		"username":             user.Username,
		"grupo":                user.Grupo,
		"grupo_display":        user.Grupo.Label(),
		"especialidad":         user.Especialidad,
		"especialidad_display": user.Especialidad.Label(),
		"genero":               user.Genero,
		"genero_display":       user.Genero.Label(),
		"edad":                 user.Edad,
		"edad_display":         user.Edad.Label(),
		"date_joined":          user.CreatedAt,
	})
}

// Choices handles GET /users/choices/. The frontend fills its registration
// dropdowns from this catalog.
func (ac *AuthController) Choices(c *gin.Context) {
	c.JSON(http.StatusOK, model.RegistrationChoices())
}
