// Package attrs holds attribute state of a single block instance and keeps it
// in sync with the persistence host.
package attrs

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"cblocks/collection"
	"cblocks/common"
)

// Document is persisted form of block instance.
type Document struct {
	Kind       common.BlockKind
	ID         string
	Attributes collection.Fields
}

// Host supplies current attributes on load and accepts full replacement value
// on every mutation. There is no partial update.
type Host interface {
	Load(ctx context.Context, id string) (*Document, error)
	Replace(ctx context.Context, doc *Document) error
}

// Rejected reports whether err is one of the recoverable engine rejections.
func Rejected(err error) bool {
	return errors.Is(err, collection.ErrOutOfRange) || errors.Is(err, collection.ErrCapacityExceeded)
}

// Store is the single source of truth for attributes of one block instance.
// It is not safe for concurrent use, single writer is expected.
type Store struct {
	host    Host
	kind    common.BlockKind
	id      string
	current collection.Fields
	log     *zap.Logger
}

// Open loads block instance from the host.
func Open(ctx context.Context, host Host, id string, log *zap.Logger) (*Store, error) {
	doc, err := host.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("unable to load block %q: %w", id, err)
	}
	return NewStore(host, doc, log), nil
}

// NewStore creates store for already loaded document. Host may be nil in
// which case replacements are kept in memory only.
func NewStore(host Host, doc *Document, log *zap.Logger) *Store {
	current := doc.Attributes
	if current == nil {
		current = collection.Fields{}
	}
	return &Store{
		host:    host,
		kind:    doc.Kind,
		id:      doc.ID,
		current: current,
		log:     log.With(zap.Stringer("kind", doc.Kind), zap.String("block", doc.ID)),
	}
}

// Current returns current attributes. Returned value must not be modified.
func (s *Store) Current() collection.Fields {
	return s.current
}

// Document returns snapshot of the block instance.
func (s *Store) Document() *Document {
	return &Document{Kind: s.kind, ID: s.id, Attributes: s.current}
}

// Replace persists next as the whole attribute state. Current state is only
// switched after host accepted the value.
func (s *Store) Replace(ctx context.Context, next collection.Fields) error {
	if s.host != nil {
		if err := s.host.Replace(ctx, &Document{Kind: s.kind, ID: s.id, Attributes: next}); err != nil {
			return fmt.Errorf("unable to replace attributes of %q: %w", s.id, err)
		}
	}
	s.current = next
	return nil
}

// Apply computes next state with fn and replaces current one with it.
// Rejections are logged and leave state untouched, Apply reports them as not
// applied without error.
func (s *Store) Apply(ctx context.Context, action string, fn func(collection.Fields) (collection.Fields, error)) (bool, error) {
	next, err := fn(s.current)
	if err != nil {
		if Rejected(err) {
			s.log.Debug("Mutation rejected", zap.String("action", action), zap.Error(err))
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", action, err)
	}
	if err := s.Replace(ctx, next); err != nil {
		return false, err
	}
	s.log.Debug("Mutation applied", zap.String("action", action))
	return true, nil
}
