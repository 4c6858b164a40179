package products

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mytheresa/inventory-notes/app/api"
	"github.com/mytheresa/inventory-notes/models"
)

type Product struct {
	ProductID   string      `json:"ProductID"`
	Name        string      `json:"Name"`
	Description string      `json:"Description"`
	Category    string      `json:"Category"`
	Quantity    json.Number `json:"Quantity"`
	LastPrice   json.Number `json:"LastPrice"`
}

type ProductProvider interface {
	Create(ctx context.Context, product models.Product) error
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type ProductHandler struct {
	repo ProductProvider
}

func NewProductHandler(r ProductProvider) *ProductHandler {
	return &ProductHandler{
		repo: r,
	}
}

// NewProduct maps a catalog record to its JSON representation.
func NewProduct(p models.Product) Product {
	return Product{
		ProductID:   p.ProductID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Quantity:    api.Number(p.Quantity),
		LastPrice:   api.Number(p.LastPrice),
	}
}

func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProductID   string `json:"ProductID"`
		Name        string `json:"Name"`
		Description string `json:"Description"`
		Category    string `json:"Category"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if input.ProductID == "" {
		api.ErrorResponse(w, http.StatusBadRequest, "Missing ProductID")
		return
	}

	product := models.NewProduct(input.ProductID, input.Name, input.Description, input.Category)
	if err := h.repo.Create(r.Context(), product); err != nil {
		api.WriteError(w, r, err)
		return
	}

	api.MessageResponse(w, http.StatusCreated, "Product added successfully")
}

func (h *ProductHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	res, err := h.repo.GetAll(r.Context())
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = NewProduct(p)
	}
	api.OKResponse(w, products)
}

func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	product, err := h.repo.GetByID(r.Context(), r.PathValue("product_id"))
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.OKResponse(w, NewProduct(*product))
}

// HandleUpdate answers 404 for an unknown product before looking at the body.
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("product_id")
	if _, err := h.repo.GetByID(r.Context(), id); err != nil {
		api.WriteError(w, r, err)
		return
	}

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	patch, err := models.ParseProductPatch(fields)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	if _, err := h.repo.Update(r.Context(), id, patch); err != nil {
		api.WriteError(w, r, fmt.Errorf("updating product %s: %w", id, err))
		return
	}

	api.MessageResponse(w, http.StatusOK, "Product updated successfully")
}

func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), r.PathValue("product_id")); err != nil {
		api.WriteError(w, r, err)
		return
	}

	api.MessageResponse(w, http.StatusOK, "Product deleted successfully")
}
