package api

import (
	"net/http"
	"strconv"

	"ExhibitSync/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ExhibitionHandler serves the public read side of the catalog.
type ExhibitionHandler struct {
	repo   repository.ExhibitionRepository
	logger *logrus.Logger
}

func NewExhibitionHandler(db *gorm.DB, logger *logrus.Logger) *ExhibitionHandler {
	return &ExhibitionHandler{
		repo:   repository.NewExhibitionRepository(db),
		logger: logger,
	}
}

// ListExhibitions lists catalog rows with optional filters.
// GET /api/exhibitions?status=ongoing&category=contemporary_art&city=서울&page=1&page_size=20
func (h *ExhibitionHandler) ListExhibitions(c *gin.Context) {
	filter := repository.ExhibitionFilter{
		Status:       c.Query("status"),
		Category:     c.Query("category"),
		City:         c.Query("city"),
		Verification: c.Query("verification"),
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	exhibitions, total, err := h.repo.ListExhibitions(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("ListExhibitions failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exhibitions": exhibitions,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
	})
}

// GetExhibition returns one exhibition by its public UUID and bumps the
// view counter.
// GET /api/exhibitions/:uuid
func (h *ExhibitionHandler) GetExhibition(c *gin.Context) {
	uuid := c.Param("uuid")
	if uuid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uuid is required"})
		return
	}

	ex, err := h.repo.GetExhibitionByUUID(c.Request.Context(), uuid)
	if err != nil {
		h.logger.WithError(err).Error("GetExhibition failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if ex == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "exhibition not found"})
		return
	}

	if err := h.repo.IncrementViewCount(c.Request.Context(), ex.ID); err != nil {
		h.logger.WithError(err).Warn("view count update failed")
	}

	c.JSON(http.StatusOK, ex)
}
