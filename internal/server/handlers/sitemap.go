package handlers

import (
	"net/http"

	"favorites-server/internal/shared/response"
)

type RouteInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

type SitemapResponse struct {
	Routes []RouteInfo `json:"routes"`
}

// SitemapHandler lists every registered endpoint at GET /.
type SitemapHandler struct {
	routes []RouteInfo
}

func NewSitemapHandler(routes []RouteInfo) *SitemapHandler {
	return &SitemapHandler{routes: routes}
}

func (h *SitemapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, SitemapResponse{Routes: h.routes})
}
