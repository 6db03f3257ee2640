package community

import (
	"github.com/cverad/connectome/pkg/bgraph"
	"github.com/cverad/connectome/pkg/errors"
)

// Resolve picks the community method actually used for a graph, applying
// the fallback policy in order:
//
//  1. an unregistered method is an error listing the registry;
//  2. spinglass on a disconnected graph falls back to louvain;
//  3. negative weights restrict the choice to spinglass or walktrap, and
//     anything else falls back to walktrap.
//
// Fallbacks surface as warnings, never errors; the pipeline runs unattended
// over batches and one graph's weight sign must not abort the rest.
func Resolve(requested string, negative, connected bool) (string, []errors.Warning, error) {
	if !Valid(requested) {
		return "", nil, errors.New(errors.ErrCodeInvalidMethod,
			"unknown community method %q (have %v)", requested, Methods())
	}

	method := requested
	var warnings []errors.Warning
	if method == Spinglass && !connected {
		method = Louvain
		warnings = append(warnings, errors.Warningf(
			"spinglass needs a connected graph; falling back to %s", Louvain))
	}
	if negative && method != Spinglass && method != Walktrap {
		method = Walktrap
		warnings = append(warnings, errors.Warningf(
			"negative edge weights: %s cannot be used; falling back to %s", requested, Walktrap))
	}
	return method, warnings, nil
}

// ResolveFor resolves the method for a graph using its own weight sign and
// connectivity, considering negativity only when weights are in play.
func ResolveFor(g *bgraph.Graph, requested string, weighted bool) (string, []errors.Warning, error) {
	negative := weighted && g.Weighted() && g.HasNegativeWeight()
	net := buildNetwork(g, false)
	connected := true
	seen := 0
	for _, id := range net.components() {
		if id > seen {
			seen = id
		}
	}
	if seen > 1 {
		connected = false
	}
	return Resolve(requested, negative, connected)
}
