package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/alchemyrand/internal/core/effect"
	"github.com/example/alchemyrand/internal/ports/secondary"
)

// CapturePool snapshots the effects of every eligible ingredient in catalog
// order. It only reads from the catalog.
func CapturePool(catalog secondary.Catalog, deny effect.Denylist) (effect.Pool, error) {
	ingredients, err := catalog.Ingredients()
	if err != nil {
		return effect.Pool{}, err
	}

	items := make([]effect.Item, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing == nil {
			continue
		}
		items = append(items, effect.Item{EditorID: ing.EditorID(), Effects: ing.Effects()})
	}
	return effect.BuildPool(items, deny), nil
}

// ResolveDenylist keeps the denylisted editor IDs that name a live
// ingredient. Unknown IDs are returned as errors for logging.
func ResolveDenylist(catalog secondary.Catalog, ids []string) (effect.Denylist, []error) {
	deny := effect.NewDenylist()
	var skipped []error
	for _, id := range ids {
		ing, ok := catalog.Lookup(id)
		if !ok {
			skipped = append(skipped, fmt.Errorf("%w: %s", effect.ErrDenylistEntryNotFound, id))
			continue
		}
		deny.Add(ing.EditorID())
	}
	return deny, skipped
}

// Denylists merges several denylist sources. Every source is read; errors
// are joined and the IDs that were read are still returned.
type Denylists []secondary.DenylistSource

// Load concatenates the IDs of every source in order.
func (d Denylists) Load(ctx context.Context) ([]string, error) {
	var ids []string
	var errs []error
	for _, src := range d {
		got, err := src.Load(ctx)
		if err != nil {
			errs = append(errs, err)
		}
		ids = append(ids, got...)
	}
	return ids, errors.Join(errs...)
}

var _ secondary.DenylistSource = Denylists(nil)
