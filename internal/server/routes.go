package server

import (
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"favorites-server/internal/favorite"
	favoriteHandlers "favorites-server/internal/favorite/handlers"
	"favorites-server/internal/middleware"
	"favorites-server/internal/people"
	peopleHandlers "favorites-server/internal/people/handlers"
	"favorites-server/internal/planet"
	planetHandlers "favorites-server/internal/planet/handlers"
	serverHandlers "favorites-server/internal/server/handlers"
	"favorites-server/internal/shared/database"
	"favorites-server/internal/shared/errors"
	"favorites-server/internal/shared/response"
	"favorites-server/internal/user"
	userHandlers "favorites-server/internal/user/handlers"
)

type route struct {
	method  string
	path    string
	handler http.Handler
}

type Routes struct {
	db              *database.DB
	userService     *user.Service
	peopleService   *people.Service
	planetService   *planet.Service
	favoriteService *favorite.Service
	logger          *slog.Logger
}

func NewRoutes(db *database.DB, userService *user.Service, peopleService *people.Service, planetService *planet.Service, favoriteService *favorite.Service, logger *slog.Logger) *Routes {
	return &Routes{
		db:              db,
		userService:     userService,
		peopleService:   peopleService,
		planetService:   planetService,
		favoriteService: favoriteService,
		logger:          logger,
	}
}

func (r *Routes) routes() []route {
	usersHandler := userHandlers.NewUsersHandler(r.userService)
	peopleHandler := peopleHandlers.NewPeopleHandler(r.peopleService)
	planetHandler := planetHandlers.NewPlanetHandler(r.planetService)
	favoriteHandler := favoriteHandlers.NewFavoriteHandler(r.favoriteService)

	return []route{
		{http.MethodGet, "/health", serverHandlers.NewHealthHandler(r.db)},
		{http.MethodGet, "/status", serverHandlers.NewStatusHandler(serverHandlers.Counters{
			Users:     r.userService.GetUserCount,
			People:    r.peopleService.GetPeopleCount,
			Planets:   r.planetService.GetPlanetCount,
			Favorites: r.favoriteService.GetFavoriteCount,
		})},
		{http.MethodGet, "/users", usersHandler},

		{http.MethodGet, "/people", http.HandlerFunc(peopleHandler.List)},
		{http.MethodPost, "/people", http.HandlerFunc(peopleHandler.Create)},
		{http.MethodGet, "/people/{id}", http.HandlerFunc(peopleHandler.Get)},
		{http.MethodDelete, "/people/{id}", http.HandlerFunc(peopleHandler.Delete)},

		{http.MethodGet, "/planets", http.HandlerFunc(planetHandler.List)},
		{http.MethodPost, "/planets", http.HandlerFunc(planetHandler.Create)},
		{http.MethodGet, "/planets/{id}", http.HandlerFunc(planetHandler.Get)},
		{http.MethodDelete, "/planets/{id}", http.HandlerFunc(planetHandler.Delete)},

		{http.MethodPost, "/favorite/planet/{planet_id}", http.HandlerFunc(favoriteHandler.AddPlanet)},
		{http.MethodDelete, "/favorite/planet/{planet_id}", http.HandlerFunc(favoriteHandler.RemovePlanet)},
		{http.MethodPost, "/favorite/people/{people_id}", http.HandlerFunc(favoriteHandler.AddPerson)},
		{http.MethodDelete, "/favorite/people/{people_id}", http.HandlerFunc(favoriteHandler.RemovePerson)},
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()
	table := r.routes()

	index := make([]serverHandlers.RouteInfo, 0, len(table)+1)
	index = append(index, serverHandlers.RouteInfo{Method: http.MethodGet, Path: "/"})
	for _, rt := range table {
		mux.Handle(rt.method+" "+rt.path, rt.handler)
		index = append(index, serverHandlers.RouteInfo{Method: rt.method, Path: rt.path})
	}

	mux.Handle("GET /{$}", serverHandlers.NewSitemapHandler(index))
	mux.Handle("/", fallback(mux, allowedMethods(table)))

	logger.Info("Routes configured successfully", "route_count", len(index))

	return mux
}

// Handler wraps the mux with the middleware stack.
func (r *Routes) Handler(cors *middleware.CORSMiddleware) http.Handler {
	return middleware.Chain(r.Setup(),
		middleware.RequestID,
		middleware.Logging,
		middleware.Recovery,
		cors.Middleware,
		middleware.StripTrailingSlash,
	)
}

func allowedMethods(table []route) []string {
	seen := map[string]bool{}
	for _, rt := range table {
		seen[rt.method] = true
	}

	methods := make([]string, 0, len(seen))
	for m := range seen {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

// fallback answers requests no pattern claimed: 405 when the path exists
// under another method, 404 otherwise. Both use the JSON error body.
func fallback(mux *http.ServeMux, methods []string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With("handler", "fallback")

		var allow []string
		for _, method := range methods {
			probe := r.Clone(r.Context())
			probe.Method = method
			if _, pattern := mux.Handler(probe); pattern != "/" && pattern != "" {
				allow = append(allow, method)
			}
		}

		if len(allow) > 0 {
			w.Header().Set("Allow", strings.Join(allow, ", "))
			response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
			return
		}

		response.Error(w, r, logger, errors.NotFound("Not found"))
	})
}
