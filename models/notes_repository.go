package models

import (
	"context"
	"errors"
)

// NotesRepository persists the notes of one kind.
type NotesRepository struct {
	kind  NoteKind
	table Table[Note]
}

func NewNotesRepository(kind NoteKind, table Table[Note]) *NotesRepository {
	return &NotesRepository{
		kind:  kind,
		table: table,
	}
}

func (r *NotesRepository) Kind() NoteKind {
	return r.kind
}

// Save writes the note unconditionally; a note with the same NoteID is
// replaced.
func (r *NotesRepository) Save(ctx context.Context, note *Note) error {
	return r.table.Put(ctx, note.NoteID, *note)
}

func (r *NotesRepository) GetAll(ctx context.Context) ([]Note, error) {
	return r.table.Scan(ctx)
}

func (r *NotesRepository) GetByID(ctx context.Context, id string) (*Note, error) {
	note, err := r.table.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return note, nil
}

func (r *NotesRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return r.table.Delete(ctx, id)
}
