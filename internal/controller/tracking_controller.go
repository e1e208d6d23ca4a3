package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"matelog-backend/internal/service"
	"matelog-backend/utilities"
)

type TrackingController struct {
	TrackingService service.TrackingService
}

func NewTrackingController(trackingService service.TrackingService) *TrackingController {
	return &TrackingController{TrackingService: trackingService}
}

// StartSession handles POST /tracking/sesion/iniciar/
func (tc *TrackingController) StartSession(c *gin.Context) {
	userID, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "usuario no autenticado"})
		return
	}

	session, err := tc.TrackingService.StartSession(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// EndSession handles POST /tracking/sesion/finalizar/
func (tc *TrackingController) EndSession(c *gin.Context) {
	userID, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "usuario no autenticado"})
		return
	}

	var req struct {
		SessionID uint `json:"sesion_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Se requiere sesion_id"})
		return
	}

	session, err := tc.TrackingService.EndSession(userID, req.SessionID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// StartActivity handles POST /tracking/iniciar/. The login and registration
// screens report activity before a user exists, so the user reference is
// optional here.
func (tc *TrackingController) StartActivity(c *gin.Context) {
	var userID *uint
	if id, ok := utilities.CurrentUserID(c); ok {
		userID = &id
	}

	var input service.StartActivityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos de actividad inválidos"})
		return
	}

	activity, err := tc.TrackingService.StartActivity(userID, input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, activity)
}

// EndActivity handles POST /tracking/finalizar/
func (tc *TrackingController) EndActivity(c *gin.Context) {
	var req struct {
		ActivityID uint `json:"actividad_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Se requiere actividad_id"})
		return
	}

	activity, err := tc.TrackingService.EndActivity(req.ActivityID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity)
}

// RegisterReturn handles POST /tracking/volver-contenido/
func (tc *TrackingController) RegisterReturn(c *gin.Context) {
	var req struct {
		ActivityID uint `json:"actividad_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Se requiere actividad_id"})
		return
	}

	activity, err := tc.TrackingService.RegisterReturnToContent(req.ActivityID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, activity)
}
