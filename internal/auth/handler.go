package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prasetya/wiki-management/internal"
	"github.com/prasetya/wiki-management/internal/permission"
	"github.com/prasetya/wiki-management/internal/transport"
	"github.com/prasetya/wiki-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Warn("authentication failed", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var dto RefreshTokenDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteAppError(w, err)
		return
	}

	tokens, err := h.Service.RefreshTokens(dto.RefreshToken)
	if err != nil {
		h.Logger.Warn("token refresh failed", "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// Me returns the authenticated user with role slugs.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		h.WriteAppError(w, internal.NewUnauthorizedError("Authentication required", internal.ErrCodeInvalidToken))
		return
	}
	h.WriteJSON(w, http.StatusOK, user)
}

// AuthMiddleware rejects requests without a valid bearer token and loads
// the user with role slugs into the request context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		user, err := h.authenticateToken(token)
		if err != nil {
			h.Logger.Warn("auth middleware: token rejected", "error", err)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(h.contextWithUser(r.Context(), user)))
	})
}

// OptionalAuthMiddleware loads the user when a valid bearer token is
// present and lets the request through anonymously otherwise. Content
// reads go through here so public objects stay reachable without login.
func (h *Handler) OptionalAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := h.authenticateToken(token)
		if err != nil {
			h.Logger.Warn("optional auth: token rejected, continuing anonymous", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(h.contextWithUser(r.Context(), user)))
	})
}

func (h *Handler) authenticateToken(token string) (*User, error) {
	claims, err := h.Service.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	user, err := h.Service.GetUserWithRoles(claims.UserID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (h *Handler) contextWithUser(ctx context.Context, user *User) context.Context {
	ctx = WithUser(ctx, user)
	ctx = internal.ContextWithUserID(ctx, user.ID)
	ctx = logger.With(ctx, "userID", user.ID)
	return permission.WithCaller(ctx, user.Caller())
}
