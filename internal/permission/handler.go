package permission

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"

	"github.com/prasetya/wiki-management/internal"
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

func (h *Handler) ListObjectGrants(w http.ResponseWriter, r *http.Request) {
	objectType := ObjectType(strings.ToUpper(chi.URLParam(r, "objectType")))
	objectID := chi.URLParam(r, "objectID")
	if !objectType.Valid() {
		h.WriteAppError(w, internal.NewValidationError("object type must be FOLDER or PAGE", internal.ErrCodeValidationFailed))
		return
	}

	grants, err := h.Service.ListObjectGrants(CallerFromContext(r.Context()), objectType, objectID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, grants)
}

func (h *Handler) GrantAccess(w http.ResponseWriter, r *http.Request) {
	var dto GrantAccessDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	grant, err := h.Service.GrantAccess(CallerFromContext(r.Context()), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, grant)
}

func (h *Handler) RevokeAccess(w http.ResponseWriter, r *http.Request) {
	grantID := chi.URLParam(r, "id")
	if err := h.Service.RevokeAccess(CallerFromContext(r.Context()), grantID); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "grant revoked"})
}
