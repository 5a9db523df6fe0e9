package server

import (
	"net/http"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/gorilla/mux"
)

// PlacemarkRoutes serves the placemark endpoints.
type PlacemarkRoutes interface {
	GetPlacemarks(w http.ResponseWriter, r *http.Request)
	GetPlacemarksNearby(w http.ResponseWriter, r *http.Request)
	Ping(w http.ResponseWriter, r *http.Request)
}

// RequestRoutes serves form request submission.
type RequestRoutes interface {
	CreateFormRequest(w http.ResponseWriter, r *http.Request)
}

// SessionRoutes serves the map session WebSocket.
type SessionRoutes interface {
	Serve(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	placemarkHandler PlacemarkRoutes
	requestHandler   RequestRoutes
	sessionHandler   SessionRoutes
	router           *mux.Router
	logger           log.Logger
}

// NewRouter creates a router with the app’s routes.
func NewRouter(
	placemarkHandler PlacemarkRoutes,
	requestHandler RequestRoutes,
	sessionHandler SessionRoutes,
	router *mux.Router,
	logger log.Logger) *Router {
	return &Router{
		placemarkHandler: placemarkHandler,
		requestHandler:   requestHandler,
		sessionHandler:   sessionHandler,
		router:           router,
		logger:           log.With(logger, "component", "Router"),
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(r.logRequests, corsHeaders)

	// optional ?sw_lat=&sw_lon=&ne_lat=&ne_lon= restricts to a bounding box
	r.router.HandleFunc("/placemarks", r.placemarkHandler.GetPlacemarks).Methods(http.MethodGet, http.MethodOptions)

	// expects ?lat={latitude(float)}&lon={longitude(float)}&radius={km(float)}
	r.router.HandleFunc("/placemarks/nearby", r.placemarkHandler.GetPlacemarksNearby).Methods(http.MethodGet, http.MethodOptions)

	r.router.HandleFunc("/form-request", r.requestHandler.CreateFormRequest).Methods(http.MethodPost, http.MethodOptions)

	r.router.HandleFunc("/ws/session", r.sessionHandler.Serve).Methods(http.MethodGet)

	r.router.HandleFunc("/ping", r.placemarkHandler.Ping).Methods(http.MethodGet)
}

func (r *Router) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		level.Debug(r.logger).Log("method", req.Method, "path", req.URL.Path, "took", time.Since(start))
	})
}

// corsHeaders lets the browser client call the API from another origin.
func corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, req)
	})
}
