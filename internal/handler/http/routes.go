package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Encoding", traceIDHeader},
		ExposedHeaders: []string{traceIDHeader},
		MaxAge:         300,
	}))
	router.Use(h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.Get("/", h.getStatus)
	router.Get("/version", h.getServerVersion)
	router.Get("/ativos", h.listAssets)

	router.Route("/clientes", func(r chi.Router) {
		r.Post("/", h.createClient)
		r.Get("/", h.listClients)
		r.Get("/busca", h.searchClients)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getClient)
			r.Put("/", h.updateClient)
			r.Delete("/", h.deleteClient)
			r.Get("/numero-alocacoes", h.getAllocationCount)
			r.Post("/alocacoes", h.recordAllocation)
			r.Get("/alocacoes", h.listAllocations)
		})
	})

	router.Route("/alocacoes/{alocacaoId}", func(r chi.Router) {
		r.Put("/", h.editAllocation)
		r.Delete("/", h.deleteAllocation)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
