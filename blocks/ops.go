package blocks

import (
	"errors"
	"fmt"

	"cblocks/collection"
)

// Operations below lift collection engine to block attributes: each returns
// new attributes with list replaced, or attrs unchanged with engine error.
// Attribute present under list name which is not a collection is never
// replaced, it fails operation with ErrInvalidValue.

// invalid marks collection type mismatches as invalid values, engine
// rejections pass through.
func invalid(err error) error {
	if errors.Is(err, collection.ErrNotCollection) {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}
	return err
}

// Collections checks attributes named are collections or absent.
func Collections(attrs collection.Fields, names ...string) error {
	for _, name := range names {
		if _, err := attrs.Collection(name); err != nil {
			return invalid(err)
		}
	}
	return nil
}

func Add(attrs collection.Fields, list string, template collection.Fields, max int) (collection.Fields, error) {
	c, err := attrs.Collection(list)
	if err == nil {
		c, err = collection.Add(c, template, max)
	}
	if err != nil {
		return attrs, fmt.Errorf("%s: %w", list, invalid(err))
	}
	return attrs.With(list, c), nil
}

// Remove removes entry i of list keeping at least min entries.
func Remove(attrs collection.Fields, list string, i, min int) (collection.Fields, error) {
	c, err := attrs.Collection(list)
	if err == nil {
		c, err = collection.RemoveAtLeast(c, i, min)
	}
	if err != nil {
		return attrs, fmt.Errorf("%s: %w", list, invalid(err))
	}
	return attrs.With(list, c), nil
}

// Update merges op updates into entry i of list.
func Update(attrs collection.Fields, list string, i int, updates collection.Fields) (collection.Fields, error) {
	c, err := attrs.Collection(list)
	if err == nil {
		c, err = collection.Update(c, i, updates)
	}
	if err != nil {
		return attrs, fmt.Errorf("%s: %w", list, invalid(err))
	}
	return attrs.With(list, c), nil
}

func Move(attrs collection.Fields, list string, i int, dir collection.Direction) (collection.Fields, error) {
	c, err := attrs.Collection(list)
	if err == nil {
		c, err = collection.Move(c, i, dir)
	}
	if err != nil {
		return attrs, fmt.Errorf("%s: %w", list, invalid(err))
	}
	return attrs.With(list, c), nil
}

// Nested applies fn to sub-collection field of entry i of list.
func Nested(attrs collection.Fields, list string, i int, field string, fn func(collection.Collection) (collection.Collection, error)) (collection.Fields, error) {
	c, err := attrs.Collection(list)
	if err == nil {
		c, err = collection.UpdateNested(c, i, field, fn)
	}
	if err != nil {
		return attrs, fmt.Errorf("%s[%d].%s: %w", list, i, field, invalid(err))
	}
	return attrs.With(list, c), nil
}

// Set replaces scalar attribute. Collections can only be changed through
// collection operations.
func Set(attrs collection.Fields, updates collection.Fields, lists ...string) (collection.Fields, error) {
	if len(updates) == 0 {
		return attrs, fmt.Errorf("set without field: %w", ErrUnknownAction)
	}
	for _, l := range lists {
		if updates.Has(l) {
			return attrs, fmt.Errorf("set of collection %q: %w", l, ErrUnknownAction)
		}
	}
	return attrs.Merge(updates), nil
}
