package collection

import (
	"github.com/google/uuid"
)

// Entry is one record of a collection. ID is assigned at creation and never
// changes afterwards, Fields are replaced (never modified) on update.
type Entry struct {
	ID     string
	Fields Fields
}

// Collection is ordered sequence of entries.
type Collection []*Entry

// NewID returns fresh unique entry identifier.
func NewID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// New builds entry from template with freshly generated id.
func New(template Fields) *Entry {
	return &Entry{ID: NewID(), Fields: deepCopy(template)}
}

// String is shortcut to entry field value.
func (e *Entry) String(name, def string) string {
	return e.Fields.String(name, def)
}

// Bool is shortcut to entry field value.
func (e *Entry) Bool(name string) bool {
	return e.Fields.Bool(name)
}

// with returns new entry with the same id and replaced fields.
func (e *Entry) with(fields Fields) *Entry {
	return &Entry{ID: e.ID, Fields: fields}
}

// IDs returns entry ids in collection order.
func (c Collection) IDs() []string {
	ids := make([]string, len(c))
	for i, e := range c {
		ids[i] = e.ID
	}
	return ids
}

// Index returns position of entry with given id or -1.
func (c Collection) Index(id string) int {
	for i, e := range c {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// Valid reports whether index addresses an existing entry.
func (c Collection) Valid(i int) bool {
	return i >= 0 && i < len(c)
}
