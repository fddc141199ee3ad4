package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"favorites-server/internal/shared/errors"
	"favorites-server/internal/shared/response"
)

type StatusResponse struct {
	Service   string `json:"service"`
	Users     int    `json:"users"`
	People    int    `json:"people"`
	Planets   int    `json:"planets"`
	Favorites int    `json:"favorites"`
}

type CountFunc func(ctx context.Context) (int, error)

// Counters supplies one row count per catalog table.
type Counters struct {
	Users     CountFunc
	People    CountFunc
	Planets   CountFunc
	Favorites CountFunc
}

type StatusHandler struct {
	counters Counters
}

func NewStatusHandler(counters Counters) *StatusHandler {
	return &StatusHandler{counters: counters}
}

func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := slog.With("handler", "status")

	resp := StatusResponse{Service: "favorites"}
	for _, c := range []struct {
		name  string
		count CountFunc
		dst   *int
	}{
		{"users", h.counters.Users, &resp.Users},
		{"people", h.counters.People, &resp.People},
		{"planets", h.counters.Planets, &resp.Planets},
		{"favorites", h.counters.Favorites, &resp.Favorites},
	} {
		n, err := c.count(ctx)
		if err != nil {
			response.Error(w, r, logger, errors.WrapInternal("failed to count "+c.name, err))
			return
		}
		*c.dst = n
	}

	response.Success(w, http.StatusOK, resp)
}
