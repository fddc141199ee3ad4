package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"favorites-server/internal/favorite"
	"favorites-server/internal/shared/errors"
	"favorites-server/internal/shared/request"
	"favorites-server/internal/shared/response"
)

type FavoriteService interface {
	AddFavorite(ctx context.Context, userID int, target favorite.Target) (*favorite.Favorite, error)
	RemoveFavorite(ctx context.Context, userID int, target favorite.Target) error
}

type FavoriteHandler struct {
	service FavoriteService
}

func NewFavoriteHandler(service FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// AddPlanet handles POST /favorite/planet/{planet_id}
func (h *FavoriteHandler) AddPlanet(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, slog.With("handler", "add_favorite_planet"), "planet_id", favorite.PlanetTarget)
}

// AddPerson handles POST /favorite/people/{people_id}
func (h *FavoriteHandler) AddPerson(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, slog.With("handler", "add_favorite_person"), "people_id", favorite.PersonTarget)
}

// RemovePlanet handles DELETE /favorite/planet/{planet_id}
func (h *FavoriteHandler) RemovePlanet(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, slog.With("handler", "remove_favorite_planet"), "planet_id", favorite.PlanetTarget)
}

// RemovePerson handles DELETE /favorite/people/{people_id}
func (h *FavoriteHandler) RemovePerson(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, slog.With("handler", "remove_favorite_person"), "people_id", favorite.PersonTarget)
}

func (h *FavoriteHandler) add(w http.ResponseWriter, r *http.Request, logger *slog.Logger, param string, targetOf func(int) favorite.Target) {
	target, userID, err := parseFavoriteRequest(w, r, param, targetOf)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	created, err := h.service.AddFavorite(r.Context(), userID, target)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, created)
	logger.Info("Favorite added", "favorite_id", created.ID, "user_id", userID, "target", target.String())
}

func (h *FavoriteHandler) remove(w http.ResponseWriter, r *http.Request, logger *slog.Logger, param string, targetOf func(int) favorite.Target) {
	target, userID, err := parseFavoriteRequest(w, r, param, targetOf)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if err := h.service.RemoveFavorite(r.Context(), userID, target); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Message(w, http.StatusOK, fmt.Sprintf("Favorite %s deleted", target.Noun()))
	logger.Info("Favorite removed", "user_id", userID, "target", target.String())
}

func parseFavoriteRequest(w http.ResponseWriter, r *http.Request, param string, targetOf func(int) favorite.Target) (favorite.Target, int, error) {
	id, err := request.PathID(r, param)
	if err != nil {
		return favorite.Target{}, 0, err
	}

	body, err := request.DecodeJSON[favorite.Request](w, r)
	if err != nil {
		return favorite.Target{}, 0, err
	}
	if body.UserID == nil {
		return favorite.Target{}, 0, errors.Malformed("user_id is required")
	}

	return targetOf(id), *body.UserID, nil
}
