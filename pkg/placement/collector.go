package placement

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/placegraph/pkg/errors"
	"github.com/matzehuels/placegraph/pkg/model"
	"github.com/matzehuels/placegraph/pkg/observability"
)

// Collector deletes placements that are no longer referenced.
type Collector struct {
	store  Store
	logger *log.Logger
}

// NewCollector returns a collector over the given store. A nil logger uses
// log.Default().
func NewCollector(store Store, logger *log.Logger) *Collector {
	if logger == nil {
		logger = log.Default()
	}
	return &Collector{store: store, logger: logger}
}

// Collect deletes the placement id if nothing references it and reports
// whether it was deleted. It never deletes the placement's relative-to
// ancestors. A deletion that finds the placement in use is skipped.
func (c *Collector) Collect(ctx context.Context, id model.ID) bool {
	if id.IsZero() {
		return false
	}
	if _, ok := c.store.Placement(id); !ok {
		return false
	}
	if refs := c.store.ReferencesTo(id); len(refs) > 0 {
		c.logger.Debug("placement still referenced", "placement", id, "refs", refs)
		observability.Graph().OnCollectSkipped(ctx, int64(id), len(refs))
		return false
	}
	if err := c.store.Delete(id); err != nil {
		if errors.Is(err, errors.ErrCodeInUse) {
			c.logger.Warn("placement in use, skipping delete", "placement", id, "err", err)
			observability.Graph().OnCollectSkipped(ctx, int64(id), len(c.store.ReferencesTo(id)))
			return false
		}
		c.logger.Warn("delete placement", "placement", id, "err", err)
		return false
	}
	c.logger.Debug("collected orphan placement", "placement", id)
	observability.Graph().OnOrphanCollected(ctx, int64(id))
	return true
}

// CollectChain collects id, then each former relative-to ancestor in turn
// for as long as the deletions leave it unreferenced. It returns the deleted
// placements, bottom first.
func (c *Collector) CollectChain(ctx context.Context, id model.ID) []model.ID {
	var out []model.ID
	for !id.IsZero() {
		p, ok := c.store.Placement(id)
		if !ok || !c.Collect(ctx, id) {
			break
		}
		out = append(out, id)
		id = p.RelTo
	}
	return out
}
