package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"matelog-backend/internal/service"
	"matelog-backend/utilities"
)

type LessonController struct {
	LessonService service.LessonService
}

func NewLessonController(lessonService service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// GetLessons handles GET /lecciones/
func (lc *LessonController) GetLessons(c *gin.Context) {
	userID, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "usuario no autenticado"})
		return
	}

	lessons, err := lc.LessonService.GetLessons(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// GetLesson handles GET /lecciones/:id/
func (lc *LessonController) GetLesson(c *gin.Context) {
	userID, ok := utilities.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "usuario no autenticado"})
		return
	}

	lessonID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id de lección inválido"})
		return
	}

	detail, err := lc.LessonService.GetLessonDetail(userID, uint(lessonID))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
