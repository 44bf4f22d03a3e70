package content

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"

	"github.com/prasetya/wiki-management/internal"
	"github.com/prasetya/wiki-management/internal/auth"
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

func callerFromRequest(r *http.Request) *permission.Caller {
	user, _ := auth.UserFromContext(r.Context())
	return user.Caller()
}

// ---------------- Pages ----------------

func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.Service.ListPages(callerFromRequest(r))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, pages)
}

func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "id")
	page, err := h.Service.GetPage(callerFromRequest(r), pageID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var dto CreatePageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	page, err := h.Service.CreatePage(callerFromRequest(r), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, page)
}

func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "id")

	var dto UpdatePageDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	page, err := h.Service.UpdatePage(callerFromRequest(r), pageID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, page)
}

func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "id")
	if err := h.Service.DeletePage(callerFromRequest(r), pageID); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "page deleted"})
}

func (h *Handler) SearchPages(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		h.WriteAppError(w, internal.NewValidationError("query parameter q is required", internal.ErrCodeValidationFailed))
		return
	}

	pages, err := h.Service.SearchPages(callerFromRequest(r), query)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, pages)
}

// ---------------- Folders ----------------

func (h *Handler) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.Service.ListFolders(callerFromRequest(r))
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, folders)
}

func (h *Handler) GetFolder(w http.ResponseWriter, r *http.Request) {
	folderID := chi.URLParam(r, "id")
	folder, err := h.Service.GetFolder(callerFromRequest(r), folderID)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, folder)
}

func (h *Handler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var dto CreateFolderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.Service.CreateFolder(callerFromRequest(r), dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, folder)
}

func (h *Handler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	folderID := chi.URLParam(r, "id")

	var dto UpdateFolderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	folder, err := h.Service.UpdateFolder(callerFromRequest(r), folderID, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, folder)
}

func (h *Handler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	folderID := chi.URLParam(r, "id")
	if err := h.Service.DeleteFolder(callerFromRequest(r), folderID); err != nil {
		h.WriteAppError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "folder and contained pages deleted"})
}
