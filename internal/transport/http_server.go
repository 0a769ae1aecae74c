// Package transport exposes the checker and profile store over HTTP.
package transport

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vnykmshr/pantry/internal/log"
)

// HTTPServer is an http server that handles http requests
type HTTPServer struct {
	router *echo.Echo
	server *http.Server
	log    log.Logger
}

// NewHTTPServer registers the passed endpoints against routes and returns an
// HTTPServer that's ready to use. A non-nil gatherer is served on /metrics.
func NewHTTPServer(addr string, e *Endpoints, gatherer prometheus.Gatherer, l log.Logger) *HTTPServer {
	l = l.With("component", "HTTPServer")

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       1 * time.Minute,
	}

	h := &HTTPServer{
		router: router,
		server: server,
		log:    l,
	}
	h.registerEndpoints(e)
	if gatherer != nil {
		router.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	return h
}

// ServeHTTP makes HTTPServer implement the http.Handler interface
func (h *HTTPServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

// Serve listens on the HTTPServers addr and handles requests. It returns nil
// once Shutdown has been called.
func (h *HTTPServer) Serve() error {
	h.log.Info("starting http server", "addr", h.server.Addr)
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (h *HTTPServer) Shutdown(ctx context.Context) error {
	h.log.Info("shutting down http server", "addr", h.server.Addr)
	return h.server.Shutdown(ctx)
}

// Use applies the passed MiddlewareFuncs to all endpoints on the HTTPServer
func (h *HTTPServer) Use(mw ...echo.MiddlewareFunc) {
	for _, m := range mw {
		h.router.Use(m)
	}
}

func (h *HTTPServer) registerEndpoints(e *Endpoints) {
	h.router.GET("/health", NewUnaryHandler(
		e.Health,
		decodeHealthRequest,
		encodeResponse,
		encodeEchoError,
	))

	h.router.POST("/check", NewUnaryHandler(
		e.Check,
		decodeCheckRequest,
		encodeResponse,
		encodeEchoError,
	))

	h.router.GET("/profiles", NewUnaryHandler(
		e.ListProfiles,
		decodeListProfilesRequest,
		encodeResponse,
		encodeEchoError,
	))

	h.router.GET("/profiles/:consumer", NewUnaryHandler(
		e.GetProfile,
		decodeProfileRequest,
		encodeResponse,
		encodeEchoError,
	))

	h.router.PUT("/profiles/:consumer", NewUnaryHandler(
		e.PutProfile,
		decodePutProfileRequest,
		encodeResponse,
		encodeEchoError,
	))

	h.router.DELETE("/profiles/:consumer", NewUnaryHandler(
		e.DeleteProfile,
		decodeProfileRequest,
		encodeResponse,
		encodeEchoError,
	))
}
