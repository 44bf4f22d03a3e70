package settings

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"

	"github.com/prasetya/wiki-management/internal"
	"github.com/prasetya/wiki-management/internal/auth"
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

func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	records, err := h.Service.ListSettings()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, records)
}

type updateSettingRequest struct {
	Value string `json:"value"`
}

func (h *Handler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req updateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Value) == "" {
		h.WriteAppError(w, internal.NewValidationError("value is required", internal.ErrCodeValidationFailed))
		return
	}

	user, _ := auth.UserFromContext(r.Context())
	record, err := h.Service.UpdateSetting(user.Caller(), key, req.Value)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, record)
}
