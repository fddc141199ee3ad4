package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"favorites-server/internal/planet"
	"favorites-server/internal/shared/request"
	"favorites-server/internal/shared/response"
)

type PlanetService interface {
	GetAllPlanets(ctx context.Context) ([]planet.Planet, error)
	GetPlanet(ctx context.Context, id int) (*planet.Planet, error)
	CreatePlanet(ctx context.Context, req planet.CreateRequest) (*planet.Planet, error)
	DeletePlanet(ctx context.Context, id int) error
}

type PlanetHandler struct {
	service PlanetService
}

func NewPlanetHandler(service PlanetService) *PlanetHandler {
	return &PlanetHandler{service: service}
}

func (h *PlanetHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "list_planets")

	planets, err := h.service.GetAllPlanets(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, planets)
}

func (h *PlanetHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_planet")

	id, err := request.PathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	p, err := h.service.GetPlanet(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, p)
}

func (h *PlanetHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "create_planet")

	req, err := request.DecodeJSON[planet.CreateRequest](w, r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	p, err := h.service.CreatePlanet(r.Context(), *req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, p)
	logger.Info("Planet created", "planet_id", p.ID)
}

func (h *PlanetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "delete_planet")

	id, err := request.PathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if err := h.service.DeletePlanet(r.Context(), id); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Message(w, http.StatusOK, "Planet deleted")
	logger.Info("Planet deleted", "planet_id", id)
}
