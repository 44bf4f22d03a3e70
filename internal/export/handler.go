package export

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prasetya/wiki-management/internal"
	"github.com/prasetya/wiki-management/internal/permission"
	"github.com/prasetya/wiki-management/internal/transport"
	"github.com/prasetya/wiki-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// ExportAll streams the full-content ZIP archive.
func (h *Handler) ExportAll(w http.ResponseWriter, r *http.Request) {
	h.Logger.Info("full export requested", "user_id", internal.UserIDFromContext(r.Context()))

	archive, err := h.Service.ExportAllToZip(permission.CallerFromContext(r.Context()))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	filename := fmt.Sprintf("wiki-export-%s.zip", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(archive); err != nil {
		h.Logger.Error("failed to write export archive", "error", err)
	}
}
