package attrs

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"

	"cblocks/collection"
	"cblocks/common"
)

type recordingHost struct {
	docs     map[string]*Document
	replaced int
	fail     error
}

func (h *recordingHost) Load(_ context.Context, id string) (*Document, error) {
	doc, ok := h.docs[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return doc, nil
}

func (h *recordingHost) Replace(_ context.Context, doc *Document) error {
	if h.fail != nil {
		return h.fail
	}
	h.replaced++
	h.docs[doc.ID] = doc
	return nil
}

func newHost() *recordingHost {
	return &recordingHost{docs: map[string]*Document{
		"faq-1": {
			Kind: common.BlockKindFaq,
			ID:   "faq-1",
			Attributes: collection.Fields{
				"faqItems": collection.Collection{{ID: "q1", Fields: collection.Fields{"question": "Why?"}}},
			},
		},
	}}
}

func addItem(f collection.Fields) (collection.Fields, error) {
	items, err := collection.Add(f.List("faqItems"), collection.Fields{"question": "New"}, 2)
	if err != nil {
		return f, err
	}
	return f.With("faqItems", items), nil
}

func TestStore_Apply(t *testing.T) {
	ctx := context.Background()
	host := newHost()

	s, err := Open(ctx, host, "faq-1", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	before := s.Current()

	applied, err := s.Apply(ctx, "add-item", addItem)
	if err != nil || !applied {
		t.Fatalf("Apply() = %v, %v", applied, err)
	}
	if host.replaced != 1 {
		t.Errorf("host replaced %d times, want 1", host.replaced)
	}
	if len(before.List("faqItems")) != 1 {
		t.Error("Apply() modified previous state")
	}
	if n := len(host.docs["faq-1"].Attributes.List("faqItems")); n != 2 {
		t.Errorf("host holds %d items, want 2", n)
	}

	applied, err = s.Apply(ctx, "add-item", addItem)
	if err != nil || applied {
		t.Fatalf("Apply() at capacity = %v, %v", applied, err)
	}
	if host.replaced != 1 {
		t.Error("rejected mutation reached the host")
	}
}

func TestStore_ReplaceFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	host := newHost()
	s, err := Open(ctx, host, "faq-1", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	before := s.Current()

	host.fail = errors.New("disk full")
	if _, err := s.Apply(ctx, "add-item", addItem); !errors.Is(err, host.fail) {
		t.Fatalf("Apply() error = %v, want %v", err, host.fail)
	}
	if len(s.Current().List("faqItems")) != len(before.List("faqItems")) {
		t.Error("state switched although host refused it")
	}
}

func TestStore_ApplyError(t *testing.T) {
	s := NewStore(nil, &Document{Kind: common.BlockKindHero, ID: "h"}, zaptest.NewLogger(t))
	boom := errors.New("boom")
	_, err := s.Apply(context.Background(), "explode", func(f collection.Fields) (collection.Fields, error) {
		return f, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("Apply() error = %v, want %v", err, boom)
	}
	if s.Current() == nil {
		t.Error("Current() is nil")
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := Open(context.Background(), newHost(), "nope", zaptest.NewLogger(t)); err == nil {
		t.Error("Open() of missing block did not fail")
	}
}

func TestRejected(t *testing.T) {
	_, err := collection.Remove(nil, 0)
	if !Rejected(err) {
		t.Errorf("Rejected(%v) = false", err)
	}
	if Rejected(errors.New("other")) {
		t.Error("Rejected() accepted unrelated error")
	}
}
