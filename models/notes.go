package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NoteKind tells receiving notes from shipping notes. Both kinds share the
// same shape and live in separate collections.
type NoteKind string

const (
	InboundNote  NoteKind = "inbound"
	OutboundNote NoteKind = "outbound"
)

// Title is the display name of the kind, e.g. "Inbound".
func (k NoteKind) Title() string {
	if k == OutboundNote {
		return "Outbound"
	}
	return "Inbound"
}

// Line is the snapshot of a product taken when the note was created, with
// Quantity replaced by the requested amount.
type Line struct {
	Product
	UnitPrice    decimal.Decimal `json:"UnitPrice"`
	TotalPrice   decimal.Decimal `json:"TotalPrice"`
	SnapshotAt   time.Time       `json:"SnapshotAt"`
	SnapshotHash string          `json:"SnapshotHash"`
}

// Note is an inbound or outbound inventory document.
type Note struct {
	NoteID        string          `json:"NoteID"`
	Kind          NoteKind        `json:"Kind"`
	Products      []Line          `json:"Products"`
	TotalQuantity decimal.Decimal `json:"TotalQuantity"`
	TotalPrice    decimal.Decimal `json:"TotalPrice"`
	CreatedAt     time.Time       `json:"CreatedAt"`
}
