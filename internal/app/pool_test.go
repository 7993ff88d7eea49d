package app

import (
	"context"
	"errors"
	"testing"

	"github.com/example/alchemyrand/internal/core/effect"
	"github.com/example/alchemyrand/internal/ports/secondary"
)

func TestCapturePool(t *testing.T) {
	catalog := newMockCatalog(5)

	pool, err := CapturePool(catalog, effect.NewDenylist("ITEM02"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	wantIDs := []string{"Item00", "Item01", "Item03", "Item04"}
	if len(pool.ItemIDs) != len(wantIDs) {
		t.Fatalf("expected %d items, got %v", len(wantIDs), pool.ItemIDs)
	}
	for i, id := range wantIDs {
		if pool.ItemIDs[i] != id {
			t.Errorf("item %d: expected %s, got %s", i, id, pool.ItemIDs[i])
		}
		if pool.Groups[i] != catalog.item(id).effects {
			t.Errorf("item %d: captured effects differ from catalog", i)
		}
	}
}

func TestCapturePool_Unavailable(t *testing.T) {
	catalog := newMockCatalog(5)
	catalog.unavailable = true

	if _, err := CapturePool(catalog, nil); !errors.Is(err, secondary.ErrCatalogUnavailable) {
		t.Errorf("expected ErrCatalogUnavailable, got %v", err)
	}
}

func TestResolveDenylist(t *testing.T) {
	catalog := newMockCatalog(5)

	deny, skipped := ResolveDenylist(catalog, []string{"item01", "Item04", "Missing"})

	if !deny.Contains("Item01") || !deny.Contains("item04") {
		t.Errorf("expected Item01 and Item04 denylisted, got %v", deny.IDs())
	}
	if len(skipped) != 1 || !errors.Is(skipped[0], effect.ErrDenylistEntryNotFound) {
		t.Errorf("expected one ErrDenylistEntryNotFound, got %v", skipped)
	}
}

func TestDenylists_Load(t *testing.T) {
	readErr := errors.New("unreadable")
	sources := Denylists{
		&mockDenylist{ids: []string{"Wheat"}},
		&mockDenylist{ids: []string{"Salt"}, err: readErr},
		&mockDenylist{},
	}

	ids, err := sources.Load(context.Background())
	if !errors.Is(err, readErr) {
		t.Errorf("expected joined source error, got %v", err)
	}
	if len(ids) != 2 || ids[0] != "Wheat" || ids[1] != "Salt" {
		t.Errorf("expected [Wheat Salt], got %v", ids)
	}
}

func TestDenylists_Empty(t *testing.T) {
	ids, err := Denylists(nil).Load(context.Background())
	if err != nil || len(ids) != 0 {
		t.Errorf("expected nothing, got %v, %v", ids, err)
	}
}
