// Package http wires the API routes and request middleware.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"recall-ai/internal/handlers"
	"recall-ai/internal/service"
	"recall-ai/internal/storage"
	"recall-ai/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Contexts   service.ContextBuilder
	Assistant  service.Assistant
	Pipeline   handlers.Ingester
	Vectors    vectorstore.VectorStore
	Memories   storage.MemoryStore
	Collection string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)
	r.Use(CORS)

	contextHandler := handlers.NewContextHandler(deps.Contexts)
	askHandler := handlers.NewAskHandler(deps.Assistant)
	memoriesHandler := handlers.NewMemoriesHandler(deps.Pipeline)
	healthHandler := handlers.NewHealthHandler(deps.Vectors, deps.Memories, deps.Collection)

	r.Route("/v1", func(r chi.Router) {
		r.Method(http.MethodPost, "/context", contextHandler)
		r.Method(http.MethodPost, "/ask", askHandler)
		r.Method(http.MethodPost, "/memories", memoriesHandler)
	})
	r.Method(http.MethodGet, "/health", healthHandler)

	return r
}
