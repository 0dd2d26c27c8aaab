package editing

import (
	"github.com/google/uuid"
)

// Document is the handle whose dirty flag an editing context maintains.
type Document interface {
	SetDirty(dirty bool)
	IsDirty() bool
}

// MemoryDocument is a Document that only tracks identity and dirty state.
// Saving is the caller's job; it calls MarkSaved afterwards.
type MemoryDocument struct {
	ID   uuid.UUID
	Path string

	dirty bool
}

// NewMemoryDocument creates a clean document with a fresh identity.
func NewMemoryDocument(path string) *MemoryDocument {
	return &MemoryDocument{ID: uuid.New(), Path: path}
}

func (d *MemoryDocument) SetDirty(dirty bool) { d.dirty = dirty }

func (d *MemoryDocument) IsDirty() bool { return d.dirty }

// MarkSaved clears the dirty flag.
func (d *MemoryDocument) MarkSaved() { d.dirty = false }
