package notes

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mytheresa/inventory-notes/app/api"
	"github.com/mytheresa/inventory-notes/app/export"
	"github.com/mytheresa/inventory-notes/app/obs"
	"github.com/mytheresa/inventory-notes/models"
	"github.com/shopspring/decimal"
)

type Line struct {
	ProductID    string      `json:"ProductID"`
	Name         string      `json:"Name"`
	Description  string      `json:"Description"`
	Category     string      `json:"Category"`
	Quantity     json.Number `json:"Quantity"`
	LastPrice    json.Number `json:"LastPrice"`
	UnitPrice    json.Number `json:"UnitPrice"`
	TotalPrice   json.Number `json:"TotalPrice"`
	SnapshotAt   time.Time   `json:"SnapshotAt"`
	SnapshotHash string      `json:"SnapshotHash"`
}

type Note struct {
	NoteID        string      `json:"NoteID"`
	Kind          string      `json:"Kind"`
	Products      []Line      `json:"Products"`
	TotalQuantity json.Number `json:"TotalQuantity"`
	TotalPrice    json.Number `json:"TotalPrice"`
	CreatedAt     time.Time   `json:"CreatedAt"`
}

type NoteCreator interface {
	Create(ctx context.Context, noteID string, productIDs []string, quantities []decimal.Decimal) (*models.Note, error)
}

type NoteProvider interface {
	GetAll(ctx context.Context) ([]models.Note, error)
	GetByID(ctx context.Context, id string) (*models.Note, error)
	Delete(ctx context.Context, id string) error
}

// NotesHandler serves the notes of one kind.
type NotesHandler struct {
	kind     models.NoteKind
	builder  NoteCreator
	repo     NoteProvider
	renderer export.Renderer
}

func NewNotesHandler(kind models.NoteKind, b NoteCreator, r NoteProvider, renderer export.Renderer) *NotesHandler {
	return &NotesHandler{
		kind:     kind,
		builder:  b,
		repo:     r,
		renderer: renderer,
	}
}

// NewNote maps a stored note to its JSON representation.
func NewNote(n models.Note) Note {
	lines := make([]Line, len(n.Products))
	for i, l := range n.Products {
		lines[i] = Line{
			ProductID:    l.ProductID,
			Name:         l.Name,
			Description:  l.Description,
			Category:     l.Category,
			Quantity:     api.Number(l.Quantity),
			LastPrice:    api.Number(l.LastPrice),
			UnitPrice:    api.Number(l.UnitPrice),
			TotalPrice:   api.Number(l.TotalPrice),
			SnapshotAt:   l.SnapshotAt,
			SnapshotHash: l.SnapshotHash,
		}
	}
	return Note{
		NoteID:        n.NoteID,
		Kind:          string(n.Kind),
		Products:      lines,
		TotalQuantity: api.Number(n.TotalQuantity),
		TotalPrice:    api.Number(n.TotalPrice),
		CreatedAt:     n.CreatedAt,
	}
}

func (h *NotesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		NoteID     string            `json:"NoteID"`
		ProductIDs []string          `json:"ProductIDs"`
		Quantities []json.RawMessage `json:"Quantities"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if input.NoteID == "" {
		api.ErrorResponse(w, http.StatusBadRequest, "Missing NoteID")
		return
	}
	if input.ProductIDs == nil || input.Quantities == nil {
		api.ErrorResponse(w, http.StatusBadRequest, "Missing ProductIDs or Quantities")
		return
	}

	quantities := make([]decimal.Decimal, len(input.Quantities))
	for i, raw := range input.Quantities {
		q, err := models.ParseAmount(raw)
		if err != nil {
			api.WriteError(w, r, fmt.Errorf("Quantities[%d]: %w", i, err))
			return
		}
		quantities[i] = q
	}

	note, err := h.builder.Create(r.Context(), input.NoteID, input.ProductIDs, quantities)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	obs.Logger.Info("note_created",
		"kind", note.Kind,
		"note_id", note.NoteID,
		"lines", len(note.Products),
		"total_price", note.TotalPrice.String(),
		"request_id", api.RequestIDFromContext(r.Context()),
	)
	api.MessageResponse(w, http.StatusCreated, fmt.Sprintf("%s note added", h.kind.Title()))
}

func (h *NotesHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	res, err := h.repo.GetAll(r.Context())
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	notes := make([]Note, len(res))
	for i, n := range res {
		notes[i] = NewNote(n)
	}
	api.OKResponse(w, notes)
}

func (h *NotesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	note, err := h.repo.GetByID(r.Context(), r.PathValue("note_id"))
	if err != nil {
		api.WriteError(w, r, err)
		return
	}
	api.OKResponse(w, NewNote(*note))
}

// HandleExport answers with the note as a base64 encoded xlsx attachment.
func (h *NotesHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	noteID := r.PathValue("note_id")
	note, err := h.repo.GetByID(r.Context(), noteID)
	if err != nil {
		api.WriteError(w, r, err)
		return
	}

	workbook, err := h.renderer.Render(note)
	if err != nil {
		api.WriteError(w, r, fmt.Errorf("rendering note %s: %w", noteID, err))
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", noteID))
	w.Header().Set("Content-Transfer-Encoding", "base64")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(base64.StdEncoding.EncodeToString(workbook)))
}

func (h *NotesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), r.PathValue("note_id")); err != nil {
		api.WriteError(w, r, err)
		return
	}

	api.MessageResponse(w, http.StatusOK, fmt.Sprintf("%s note deleted successfully", h.kind.Title()))
}
