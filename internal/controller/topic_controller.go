package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"matelog-backend/internal/config"
	"matelog-backend/internal/service"
	"matelog-backend/utilities"
)

type TopicController struct {
	TopicService service.TopicService
}

func NewTopicController(topicService service.TopicService) *TopicController {
	return &TopicController{TopicService: topicService}
}

func topicIDParam(c *gin.Context) (uint, bool) {
	topicID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de tema inválido"})
		return 0, false
	}
	return uint(topicID), true
}

// GetTopic handles GET /temas/:id/
func (tc *TopicController) GetTopic(c *gin.Context) {
	userID, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "usuario no autenticado"})
		return
	}
	topicID, ok := topicIDParam(c)
	if !ok {
		return
	}

	detail, err := tc.TopicService.GetTopicDetail(userID, topicID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ValidateAnswer handles POST /ejercicios/validar/
func (tc *TopicController) ValidateAnswer(c *gin.Context) {
	userID, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "usuario no autenticado"})
		return
	}

	var input service.ValidateAnswerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "datos de respuesta inválidos"})
		return
	}

	result, err := tc.TopicService.ValidateAnswer(userID, input)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// FinalizeTopic handles POST /temas/:id/finalizar/
func (tc *TopicController) FinalizeTopic(c *gin.Context) {
	userID, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "usuario no autenticado"})
		return
	}
	topicID, ok := topicIDParam(c)
	if !ok {
		return
	}

	result, err := tc.TopicService.FinalizeTopic(userID, topicID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// RetryTopic handles POST /temas/:id/reintentar/
func (tc *TopicController) RetryTopic(c *gin.Context) {
	userID, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "usuario no autenticado"})
		return
	}
	topicID, ok := topicIDParam(c)
	if !ok {
		return
	}

	if err := tc.TopicService.RetryTopic(userID, topicID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "tema reiniciado, puedes volver a intentarlo"})
}

// ReturnToTopic handles POST /temas/:id/volver/
func (tc *TopicController) ReturnToTopic(c *gin.Context) {
	topicID, ok := topicIDParam(c)
	if !ok {
		return
	}

	if err := tc.TopicService.ReturnToTopic(topicID); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensaje": "regreso al contenido registrado"})
}

// GetAttemptHistory handles GET /temas/:id/intentos/
func (tc *TopicController) GetAttemptHistory(c *gin.Context) {
	userID, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "usuario no autenticado"})
		return
	}
	topicID, ok := topicIDParam(c)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize := config.GetConfig().Pagination.PageSize

	history, err := tc.TopicService.GetAttemptHistory(userID, topicID, page, pageSize)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
