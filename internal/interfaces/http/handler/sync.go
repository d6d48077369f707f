package handler

import (
	"strconv"

	"github.com/estatecms/backend/internal/application/feedsync"
	"github.com/estatecms/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SyncHandler exposes the import workflow: transfer file listing, sync
// trigger and the run history.
type SyncHandler struct {
	BaseHandler
	importer *feedsync.Importer
	logger   *zap.Logger
}

// NewSyncHandler creates a new SyncHandler
func NewSyncHandler(importer *feedsync.Importer, logger *zap.Logger) *SyncHandler {
	return &SyncHandler{importer: importer, logger: logger}
}

// RegisterRoutes registers the sync routes
func (h *SyncHandler) RegisterRoutes(rg *gin.RouterGroup) {
	interfaces := rg.Group("/interfaces")
	{
		interfaces.GET("/:id/sync-files", h.ListSyncFiles)
		interfaces.POST("/:id/sync", h.TriggerSync)
		interfaces.GET("/:id/history", h.History)
	}
}

// ListSyncFiles handles GET /api/v1/interfaces/:id/sync-files
func (h *SyncHandler) ListSyncFiles(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid interface ID")
		return
	}
	interfaceID := uuid.MustParse(req.ID)

	run, err := h.importer.Initialize(c.Request.Context(), interfaceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	files, err := h.importer.SyncFiles(c.Request.Context(), run)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]dto.SyncFileResponse, 0, len(files))
	for _, f := range files {
		item := dto.SyncFileResponse{
			Name:     f.Name,
			Path:     f.Path,
			Size:     f.Size,
			ModTime:  f.ModTime,
			Synced:   f.Synced,
			SyncedBy: f.SyncedBy,
			Status:   f.Status,
		}
		if f.Synced {
			at := f.SyncedAt
			item.SyncedAt = &at
		}
		resp = append(resp, item)
	}
	h.Success(c, resp)
}

// TriggerSync handles POST /api/v1/interfaces/:id/sync
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid interface ID")
		return
	}
	interfaceID := uuid.MustParse(req.ID)

	var body dto.SyncRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid sync request")
		return
	}

	run, err := h.importer.Initialize(c.Request.Context(), interfaceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.importer.Sync(c.Request.Context(), run, body.File, body.Username); err != nil {
		h.logger.Error("import run failed",
			zap.String("interface", interfaceID.String()),
			zap.String("file", body.File),
			zap.Error(err))
		h.HandleError(c, err)
		return
	}

	h.Success(c, dto.SyncResultResponse{
		Partial:  run.Partial(),
		Messages: run.Messages(),
	})
}

// History handles GET /api/v1/interfaces/:id/history
func (h *SyncHandler) History(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid interface ID")
		return
	}
	interfaceID := uuid.MustParse(req.ID)

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	entries, err := h.importer.History(c.Request.Context(), interfaceID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, dto.HistoryEntryResponse{
			ID:       e.ID.String(),
			Source:   e.Source,
			Tstamp:   e.Tstamp,
			Username: e.Username,
			Text:     e.Text,
			Status:   e.Status,
		})
	}
	h.Success(c, resp)
}
