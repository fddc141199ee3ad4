package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"favorites-server/internal/shared/response"
	"favorites-server/internal/user"
)

type UserService interface {
	GetAllUsers(ctx context.Context) ([]user.User, error)
}

type UsersHandler struct {
	service UserService
}

func NewUsersHandler(service UserService) *UsersHandler {
	return &UsersHandler{service: service}
}

// ServeHTTP handles GET /users
func (h *UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "list_users")
	logger.Debug("Users list requested")

	users, err := h.service.GetAllUsers(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, users)
	logger.Debug("Users list completed", "user_count", len(users))
}
