package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"favorites-server/internal/people"
	"favorites-server/internal/shared/request"
	"favorites-server/internal/shared/response"
)

type PeopleService interface {
	GetAllPeople(ctx context.Context) ([]people.Person, error)
	GetPerson(ctx context.Context, id int) (*people.Person, error)
	CreatePerson(ctx context.Context, req people.CreateRequest) (*people.Person, error)
	DeletePerson(ctx context.Context, id int) error
}

type PeopleHandler struct {
	service PeopleService
}

func NewPeopleHandler(service PeopleService) *PeopleHandler {
	return &PeopleHandler{service: service}
}

// List handles GET /people
func (h *PeopleHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "list_people")

	list, err := h.service.GetAllPeople(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, list)
	logger.Debug("People list completed", "count", len(list))
}

// Get handles GET /people/{id}
func (h *PeopleHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_person")

	id, err := request.PathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	person, err := h.service.GetPerson(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, person)
}

// Create handles POST /people
func (h *PeopleHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "create_person")

	req, err := request.DecodeJSON[people.CreateRequest](w, r)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	person, err := h.service.CreatePerson(r.Context(), *req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, person)
	logger.Info("Person created", "person_id", person.ID)
}

// Delete handles DELETE /people/{id}
func (h *PeopleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "delete_person")

	id, err := request.PathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if err := h.service.DeletePerson(r.Context(), id); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Message(w, http.StatusOK, "Character deleted")
	logger.Info("Person deleted", "person_id", id)
}
