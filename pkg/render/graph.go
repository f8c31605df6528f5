package render

import (
	"strconv"

	"github.com/matzehuels/placegraph/pkg/model"
	"github.com/matzehuels/placegraph/pkg/placement"
)

// Graph is the read-only view of a document needed for rendering.
type Graph interface {
	placement.Reader
	Objects() []model.Object
	Placements() []model.Placement
	Relations() []model.Relation
}

// Options configures rendering.
type Options struct {
	// Detailed adds GlobalIds and local transforms to node labels.
	Detailed bool
}

func objectNode(id model.ID) string    { return "o" + strconv.FormatInt(int64(id), 10) }
func placementNode(id model.ID) string { return "p" + strconv.FormatInt(int64(id), 10) }
