// Package app wires the HTTP surface of the inventory service.
package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mytheresa/inventory-notes/app/api"
	"github.com/mytheresa/inventory-notes/app/export"
	"github.com/mytheresa/inventory-notes/app/notes"
	"github.com/mytheresa/inventory-notes/app/products"
	"github.com/mytheresa/inventory-notes/models"
)

// NewRouter registers every route over the given collections.
func NewRouter(tables models.Tables) http.Handler {
	catalog := models.NewProductsRepository(tables.Products)
	productHandler := products.NewProductHandler(catalog)

	r := chi.NewRouter()
	r.Use(api.WithRequestID)
	r.Use(api.WithLogging)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		api.MessageResponse(w, http.StatusOK, "ok")
	})

	r.Route("/products", func(r chi.Router) {
		r.Post("/", productHandler.HandleCreate)
		r.Get("/", productHandler.HandleGetAll)
		r.Get("/{product_id}", productHandler.HandleGet)
		r.Patch("/{product_id}", productHandler.HandleUpdate)
		r.Put("/{product_id}", productHandler.HandleUpdate)
		r.Delete("/{product_id}", productHandler.HandleDelete)
	})

	for _, kind := range []models.NoteKind{models.InboundNote, models.OutboundNote} {
		repo := models.NewNotesRepository(kind, tables.Notes(kind))
		h := notes.NewNotesHandler(kind, models.NewNoteBuilder(catalog, repo), repo, export.XLSXRenderer{})

		r.Route("/"+string(kind)+"-notes", func(r chi.Router) {
			r.Post("/", h.HandleCreate)
			r.Get("/", h.HandleGetAll)
			r.Get("/{note_id}", h.HandleGet)
			r.Get("/{note_id}/xlsx", h.HandleExport)
			r.Delete("/{note_id}", h.HandleDelete)
		})
	}

	return r
}
