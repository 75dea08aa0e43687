package echobase62

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/labstack/echo/v4"
)

// Mount serves the API under prefix on a Gorilla Mux router, for
// applications that route with mux rather than Echo.
func Mount(r *mux.Router, prefix string, config Config) *API {
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		prefix = ""
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	api := Setup(e, config)

	handler := http.Handler(e)
	if prefix != "" {
		handler = http.StripPrefix(prefix, e)
	}
	r.PathPrefix(prefix + "/int/").Handler(handler)
	r.PathPrefix(prefix + "/bytes/").Handler(handler)
	return api
}

// NewMuxRouter returns a Gorilla Mux router serving the API at its root
// and the metrics handler at metricsPath, if not empty.
func NewMuxRouter(config Config, metricsPath string) *mux.Router {
	r := mux.NewRouter()
	Mount(r, "", config)
	if metricsPath != "" {
		r.Handle(metricsPath, MetricsHandler()).Methods(http.MethodGet)
	}
	return r
}
