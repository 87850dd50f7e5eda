package api

import (
	"net/http"
	"strconv"

	"ExhibitSync/internal/scheduler"
	"ExhibitSync/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SyncHandler exposes manual pipeline triggers and run statistics. The
// scheduler drives the same service; this surface exists for operators.
type SyncHandler struct {
	syncService *service.SyncService
	scheduler   *scheduler.Scheduler
	logger      *logrus.Logger
}

func NewSyncHandler(svc *service.SyncService, sched *scheduler.Scheduler, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{
		syncService: svc,
		scheduler:   sched,
		logger:      logger,
	}
}

// TriggerTier runs one collection tier synchronously and returns its report.
// POST /sync/tier/:tier
func (h *SyncHandler) TriggerTier(c *gin.Context) {
	tier, err := strconv.Atoi(c.Param("tier"))
	if err != nil || tier < 1 || tier > 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tier must be 1, 2 or 3"})
		return
	}

	report := h.syncService.RunTier(c.Request.Context(), tier)
	if report.Failed() {
		c.JSON(http.StatusInternalServerError, report)
		return
	}
	c.JSON(http.StatusOK, report)
}

// TriggerVenue collects one venue immediately, outside its tier schedule.
// POST /sync/venue/:id
func (h *SyncHandler) TriggerVenue(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be numeric"})
		return
	}

	report, err := h.syncService.RunVenue(c.Request.Context(), id)
	if err != nil {
		h.logger.WithError(err).Errorf("venue %d run failed", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// TriggerCleanup runs the retention and lifecycle maintenance pass.
// POST /sync/cleanup
func (h *SyncHandler) TriggerCleanup(c *gin.Context) {
	if err := h.syncService.RunCleanup(c.Request.Context()); err != nil {
		h.logger.WithError(err).Error("cleanup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cleanup finished"})
}

// Stats returns process-lifetime run statistics.
// GET /sync/stats
func (h *SyncHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.syncService.Stats())
}

// SchedulerStatus lists registered jobs with their next fire times.
// GET /api/scheduler/status
func (h *SyncHandler) SchedulerStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.scheduler.Status())
}
