// Package augment computes the full graph-theoretic attribute set for a
// brain network and stores it on the graph in place.
//
// Augment is the single entry point. It dispatches on the graph type:
// observed networks get the complete attribute battery (topology, distance
// metrics, centrality, community structure, hub classification, and the
// atlas-gated spatial branch), while randomized null networks get only the
// five summary attributes needed for normalized small-world statistics.
//
// Weighted variants of distance-based metrics require weights in the cost
// domain, so Augment transforms edge weights before those metrics and
// inverts the transform afterwards; the graph leaves Augment with its
// original weights bit for bit. Graphs with negative edge weights skip the
// weighted distance block entirely and surface the degradation as a
// [errors.Warning] value rather than a failure.
package augment

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/cverad/connectome/pkg/atlas"
	"github.com/cverad/connectome/pkg/bgraph"
	"github.com/cverad/connectome/pkg/bgraph/colorize"
	"github.com/cverad/connectome/pkg/bgraph/community"
	"github.com/cverad/connectome/pkg/bgraph/metrics"
	"github.com/cverad/connectome/pkg/bgraph/transform"
	"github.com/cverad/connectome/pkg/errors"
)

// Default values shared by CLI, API, and pipeline entry points.
const (
	// DefaultCommunityMethod is used when no method is requested.
	DefaultCommunityMethod = community.Louvain

	// DefaultTransform maps connection strength to cost for distance metrics.
	DefaultTransform = transform.Reciprocal

	// DefaultSeed seeds the stochastic community detectors for
	// reproducibility.
	DefaultSeed = int64(1)
)

// Options configures an augmentation run.
// The zero value is usable after ValidateAndSetDefaults.
type Options struct {
	// CommunityMethod is the requested community detection method. The
	// resolver may substitute a compatible one; the method actually used is
	// recorded on the graph.
	CommunityMethod string `json:"community_method,omitempty"`

	// Transform converts connection strength to cost before weighted
	// distance metrics.
	Transform transform.Kind `json:"transform,omitempty"`

	// Workers bounds the per-vertex parallelism of local efficiency and
	// vulnerability. Zero or negative selects GOMAXPROCS-style defaulting
	// inside the metrics package.
	Workers int `json:"workers,omitempty"`

	// Adjacency optionally supplies the connectivity matrix used for
	// hemispheric edge asymmetry. Defaults to the graph's own adjacency.
	Adjacency [][]float64 `json:"-"`

	// Seed drives the stochastic community detectors.
	Seed int64 `json:"seed,omitempty"`

	// Logger receives per-stage progress at debug level.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults fills zero fields with defaults and rejects
// unknown community methods and weight transforms.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.CommunityMethod == "" {
		o.CommunityMethod = DefaultCommunityMethod
	}
	if !community.Valid(o.CommunityMethod) {
		return errors.New(errors.ErrCodeInvalidMethod,
			"unknown community method %q, valid methods: %v", o.CommunityMethod, community.Methods())
	}
	if o.Transform == "" {
		o.Transform = DefaultTransform
	}
	if !transform.Valid(o.Transform) {
		return errors.New(errors.ErrCodeInvalidTransform,
			"unknown weight transform %q, valid transforms: %v", o.Transform, transform.Kinds())
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Augment computes and stores graph, vertex, and edge attributes on g
// according to its type. It returns the warnings accumulated along the way;
// a non-nil error means the graph may hold a partial attribute set.
func Augment(ctx context.Context, g *bgraph.Graph, opts Options) ([]errors.Warning, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	switch g.Type() {
	case bgraph.TypeRandom:
		return augmentRandom(ctx, g, opts)
	case bgraph.TypeObserved:
		return augmentObserved(ctx, g, opts)
	}
	return nil, errors.New(errors.ErrCodeInvalidGraphType, "unknown graph type %q", g.Type())
}

// augmentRandom computes the reduced attribute set for a randomized null
// network: clustering, path length, rich-club curve, global efficiency, and
// modularity. Null networks are generated in bulk, so everything here stays
// on the binarized topology and no vertex or edge attributes are stored.
func augmentRandom(ctx context.Context, g *bgraph.Graph, opts Options) ([]errors.Warning, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var warns []errors.Warning

	g.SetGraphAttr(AttrCp, meanOf(metrics.LocalTransitivity(g)))
	dist := metrics.Distances(g, false)
	_, lp := metrics.PathLength(dist)
	g.SetGraphAttr(AttrLp, lp)
	g.SetGraphAttr(AttrEGlobal, metrics.GlobalEfficiency(dist))
	g.SetGraphAttr(AttrRich, metrics.RichClubCurve(g))

	method, w, err := community.ResolveFor(g, opts.CommunityMethod, false)
	if err != nil {
		return warns, err
	}
	warns = append(warns, w...)
	res, err := community.Detect(g, method, community.Unweighted(), community.WithSeed(opts.Seed))
	if err != nil {
		return warns, err
	}
	g.SetGraphAttr(AttrMod, res.Modularity)
	return warns, nil
}

// augmentObserved runs the full attribute battery on a measured network.
func augmentObserved(ctx context.Context, g *bgraph.Graph, opts Options) ([]errors.Warning, error) {
	var warns []errors.Warning
	w := &attrWriter{g: g}

	stages := []struct {
		name string
		run  func(*attrWriter, *[]errors.Warning) error
	}{
		{"topology", func(w *attrWriter, _ *[]errors.Warning) error { return topologyStage(g, w) }},
		{"distance", func(w *attrWriter, _ *[]errors.Warning) error { return distanceStage(g, opts, w) }},
		{"community", func(w *attrWriter, warns *[]errors.Warning) error { return communityStage(g, opts, w, warns) }},
		{"hubs", func(w *attrWriter, _ *[]errors.Warning) error { return hubStage(g, false, w) }},
		{"weighted", func(w *attrWriter, warns *[]errors.Warning) error { return weightedStage(g, opts, w, warns) }},
		{"directed", func(w *attrWriter, _ *[]errors.Warning) error { return directedStage(g, w) }},
		{"atlas", func(w *attrWriter, _ *[]errors.Warning) error { return atlasStage(g, opts, w) }},
		{"color", func(w *attrWriter, _ *[]errors.Warning) error { return colorStage(g, w) }},
	}
	for _, st := range stages {
		if err := ctx.Err(); err != nil {
			return warns, err
		}
		opts.Logger.Debug("augment stage", "stage", st.name, "graph", g.Order())
		if err := st.run(w, &warns); err != nil {
			return warns, fmt.Errorf("augment %s: %w", st.name, err)
		}
	}
	return warns, nil
}

// topologyStage stores the metrics that need only the binarized adjacency:
// degree, density, components, triangles, clustering, and assortativity.
func topologyStage(g *bgraph.Graph, w *attrWriter) error {
	w.vertex(VAttrDegree, metrics.Degrees(g))
	w.graph(AttrDensity, metrics.Density(g))

	comp, sizes := metrics.Components(g)
	w.ints(VAttrComp, comp)
	w.graph(AttrCompSizes, sizes)
	if len(sizes) > 0 {
		w.graph(AttrMaxComp, sizes[0])
	}

	w.graph(AttrNumTri, metrics.TriangleCount(g))
	local := metrics.LocalTransitivity(g)
	w.vertex(VAttrTransitivity, local)
	w.graph(AttrCp, meanOf(local))
	w.graph(AttrTransitivity, metrics.GlobalTransitivity(g))
	w.graph(AttrAssort, metrics.DegreeAssortativity(g))
	w.graph(AttrRich, metrics.RichClubCurve(g))

	w.vertex(VAttrEv, metrics.EigenvectorCentrality(g))
	w.vertex(VAttrLev, metrics.LeverageCentrality(g))
	w.ints(VAttrKCore, metrics.KCore(g))
	return w.err
}

// distanceStage stores the unweighted distance battery: betweenness,
// eccentricity, diameter, path length, efficiencies, and vulnerability.
func distanceStage(g *bgraph.Graph, opts Options, w *attrWriter) error {
	btwn, ebtwn := metrics.Betweenness(g, false)
	w.vertex(VAttrBtwn, btwn)
	w.edge(EAttrBtwn, ebtwn)

	dist := metrics.Distances(g, false)
	w.vertex(VAttrEccentricity, metrics.Eccentricity(dist))
	w.graph(AttrDiameter, metrics.Diameter(dist))
	lpv, lp := metrics.PathLength(dist)
	w.vertex(VAttrLp, lpv)
	w.graph(AttrLp, lp)
	w.graph(AttrEGlobal, metrics.GlobalEfficiency(dist))
	w.vertex(VAttrENodal, metrics.NodalEfficiency(dist))
	w.vertex(VAttrELocal, metrics.LocalEfficiency(g, false, metrics.WithWorkers(opts.Workers)))

	vuln, worst := metrics.Vulnerability(g, false, metrics.WithWorkers(opts.Workers))
	w.vertex(VAttrVulnerability, vuln)
	w.graph(AttrVulnerability, worst)
	return w.err
}

// communityStage detects the unweighted partition and stores the modular
// role metrics computed against it.
func communityStage(g *bgraph.Graph, opts Options, w *attrWriter, warns *[]errors.Warning) error {
	method, ws, err := community.ResolveFor(g, opts.CommunityMethod, false)
	if err != nil {
		return err
	}
	*warns = append(*warns, ws...)

	res, err := community.Detect(g, method, community.Unweighted(), community.WithSeed(opts.Seed))
	if err != nil {
		return err
	}
	w.ints(VAttrComm, res.Membership)
	w.graph(AttrMod, res.Modularity)
	w.graph(AttrCommMethod, res.Method)

	return modularRoles(g, res.Membership, false, w)
}

// modularRoles stores participation, gateway, and within-module z-score for
// a partition. Gateway uses the matching betweenness variant as centrality.
func modularRoles(g *bgraph.Graph, membership []int, weighted bool, w *attrWriter) error {
	btwnName := VAttrBtwn
	suffix := func(n string) string { return n }
	if weighted {
		btwnName = wt(VAttrBtwn)
		suffix = wt
	}

	pc, err := metrics.ParticipationCoeff(g, membership, weighted)
	if err != nil {
		return err
	}
	w.vertex(suffix(VAttrPC), pc)

	if btwn, ok := g.VertexAttr(btwnName); ok {
		gc, err := metrics.GatewayCoeff(g, membership, btwn, weighted)
		if err != nil {
			return err
		}
		w.vertex(suffix(VAttrGC), gc)
	}

	z, err := metrics.WithinModuleZScore(g, membership, weighted)
	if err != nil {
		return err
	}
	w.vertex(suffix(VAttrZScore), z)
	return w.err
}

// hubStage scores every vertex against the four hub criteria and stores
// the score plus the hub count. It reads the attributes the earlier stages
// stored, so it must run after them.
func hubStage(g *bgraph.Graph, weighted bool, w *attrWriter) error {
	suffix := func(n string) string { return n }
	btwnName, transName, lpName := VAttrBtwn, VAttrTransitivity, VAttrLp
	if weighted {
		suffix = wt
		btwnName, transName, lpName = wt(VAttrBtwn), wt(VAttrTransitivity), wt(VAttrLp)
	}
	btwn, _ := g.VertexAttr(btwnName)
	trans, _ := g.VertexAttr(transName)
	lp, _ := g.VertexAttr(lpName)

	scores := metrics.HubScores(g, weighted, btwn, trans, lp)
	w.ints(suffix(VAttrHubs), scores)
	w.graph(suffix(AttrNumHubs), metrics.NumHubs(scores))
	return w.err
}

// weightedStage stores the weighted attribute battery. Strength-domain
// metrics run on the weights as loaded; distance-domain metrics run on
// transformed cost weights, which are inverted afterwards so the graph
// keeps its original weights exactly. Negative weights degrade the stage:
// the strength metrics and weighted community structure still run, the
// distance block is skipped with a warning.
func weightedStage(g *bgraph.Graph, opts Options, w *attrWriter, warns *[]errors.Warning) error {
	if !g.Weighted() {
		return nil
	}

	strength, mean := metrics.Strengths(g)
	w.vertex(VAttrStrength, strength)
	w.graph(AttrStrength, mean)
	w.vertex(VAttrKnn, metrics.WeightedNearestNeighborDegree(g))
	w.ints(VAttrSCore, metrics.SCore(g))
	w.graph(wt(AttrRich), metrics.WeightedRichClubCurve(g))
	localWt := metrics.WeightedLocalTransitivity(g)
	w.vertex(wt(VAttrTransitivity), localWt)
	w.graph(wt(AttrCp), meanOf(localWt))
	if w.err != nil {
		return w.err
	}

	method, ws, err := community.ResolveFor(g, opts.CommunityMethod, true)
	if err != nil {
		return err
	}
	*warns = append(*warns, ws...)

	if g.HasNegativeWeight() {
		*warns = append(*warns, errors.Warningf(
			"graph has negative edge weights: skipping weighted distance metrics"))
		res, err := community.Detect(g, method, community.WithSeed(opts.Seed))
		if err != nil {
			return err
		}
		w.ints(wt(VAttrComm), res.Membership)
		w.graph(wt(AttrMod), res.Modularity)
		w.graph(wt(AttrCommMethod), res.Method)
		return modularRoles(g, res.Membership, true, w)
	}

	if err := transform.Apply(g, opts.Transform, false); err != nil {
		return err
	}

	dist := metrics.Distances(g, true)
	w.graph(wt(AttrDiameter), metrics.Diameter(dist))
	lpv, lp := metrics.PathLength(dist)
	w.vertex(wt(VAttrLp), lpv)
	w.graph(wt(AttrLp), lp)
	w.graph(wt(AttrEGlobal), metrics.GlobalEfficiency(dist))
	w.vertex(wt(VAttrENodal), metrics.NodalEfficiency(dist))
	w.vertex(wt(VAttrELocal), metrics.LocalEfficiency(g, true, metrics.WithWorkers(opts.Workers)))

	btwn, ebtwn := metrics.Betweenness(g, true)
	w.vertex(wt(VAttrBtwn), btwn)
	w.edge(wt(EAttrBtwn), ebtwn)

	// Edge betweenness ranks edges by shortest-path traffic, so it needs
	// the cost-domain weights that are on the graph right now.
	var res *community.Result
	if method == community.EdgeBetweenness {
		res, err = community.Detect(g, method, community.WithSeed(opts.Seed))
		if err != nil {
			return err
		}
	}

	if err := transform.Apply(g, opts.Transform, true); err != nil {
		return err
	}
	if w.err != nil {
		return w.err
	}

	if err := hubStage(g, true, w); err != nil {
		return err
	}

	if res == nil {
		res, err = community.Detect(g, method, community.WithSeed(opts.Seed))
		if err != nil {
			return err
		}
	}
	w.ints(wt(VAttrComm), res.Membership)
	w.graph(wt(AttrMod), res.Modularity)
	w.graph(wt(AttrCommMethod), res.Method)
	return modularRoles(g, res.Membership, true, w)
}

// directedStage stores HITS hub and authority scores for directed graphs.
func directedStage(g *bgraph.Graph, w *attrWriter) error {
	if !g.Directed() {
		return nil
	}
	hub, auth, value := metrics.HITS(g)
	w.vertex(VAttrHubScore, hub)
	w.vertex(VAttrAuthScore, auth)
	w.graph(AttrHubScore, value)
	w.graph(AttrAuthScore, value)
	return w.err
}

// nominalColumns are the categorical atlas columns that get an
// "assort.<column>" attribute when the atlas carries them.
var nominalColumns = []string{
	atlas.ColClass, atlas.ColNet, atlas.ColArea, atlas.ColGyrus,
	atlas.ColYeo7, atlas.ColYeo17,
}

// atlasStage stores the spatial and categorical attributes gated on an
// atlas reference: coordinates, nominal assortativities, Euclidean edge
// lengths, and hemispheric asymmetry.
func atlasStage(g *bgraph.Graph, opts Options, w *attrWriter) error {
	a := g.Atlas()
	if a == nil {
		return nil
	}
	names := g.Names()

	x, y, z, err := a.Coordinates(names)
	if err != nil {
		return err
	}
	w.vertex(VAttrX, x)
	w.vertex(VAttrY, y)
	w.vertex(VAttrZ, z)

	for _, col := range nominalColumns {
		if !a.HasColumn(col) {
			continue
		}
		labels, err := a.Membership(col, names)
		if err != nil {
			return err
		}
		r, err := metrics.NominalAssortativity(g, labels)
		if err != nil {
			return err
		}
		w.graph(AttrAssort+"."+col, r)
	}

	if a.HasColumn(atlas.ColLobe) {
		lobes, err := a.Membership(atlas.ColLobe, names)
		if err != nil {
			return err
		}
		w.ints(VAttrLobe, lobes)
		r, err := metrics.NominalAssortativity(g, lobes)
		if err != nil {
			return err
		}
		w.graph(AttrAssortLobe, r)

		if a.HasColumn(atlas.ColHemi) {
			combined, err := lobeHemiLabels(a, names)
			if err != nil {
				return err
			}
			r, err := metrics.NominalAssortativity(g, combined)
			if err != nil {
				return err
			}
			w.graph(AttrAssortLobeHemi, r)
		}
	}

	coords := make([][3]float64, len(names))
	for i := range coords {
		coords[i] = [3]float64{x[i], y[i], z[i]}
	}
	edgeDist, meanDist, err := metrics.EdgeSpatialDistances(g, coords)
	if err != nil {
		return err
	}
	w.edge(EAttrDist, edgeDist)
	w.graph(AttrSpatialDist, meanDist)
	disp, dispStrength, err := metrics.SpatialDispersion(g, edgeDist)
	if err != nil {
		return err
	}
	w.vertex(VAttrDist, disp)
	w.vertex(VAttrDistStrength, dispStrength)

	if a.HasColumn(atlas.ColHemi) {
		hemi, err := a.Values(atlas.ColHemi, names)
		if err != nil {
			return err
		}
		adj := opts.Adjacency
		if adj == nil {
			adj = g.AdjacencyMatrix()
		}
		asymm, vAsymm, err := metrics.EdgeAsymmetry(g, adj, hemi)
		if err != nil {
			return err
		}
		w.graph(AttrAsymm, asymm)
		w.vertex(VAttrAsymm, vAsymm)
	}
	return w.err
}

// lobeHemiLabels builds combined lobe-by-hemisphere labels so assortativity
// can distinguish, say, left frontal from right frontal.
func lobeHemiLabels(a *atlas.Atlas, names []string) ([]int, error) {
	lobes, err := a.Values(atlas.ColLobe, names)
	if err != nil {
		return nil, err
	}
	hemi, err := a.Values(atlas.ColHemi, names)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]int)
	out := make([]int, len(names))
	for i := range names {
		key := lobes[i] + "/" + hemi[i]
		id, ok := ids[key]
		if !ok {
			id = len(ids) + 1
			ids[key] = id
		}
		out[i] = id
	}
	return out, nil
}

// colorStage assigns group colors for the partitions stored earlier. A
// partition with at most one group carries no visual information and is
// left uncolored.
func colorStage(g *bgraph.Graph, w *attrWriter) error {
	for _, attr := range []string{VAttrComp, VAttrComm, wt(VAttrComm), VAttrLobe} {
		membership, ok := g.VertexInts(attr)
		if !ok || !multiGroup(membership) {
			continue
		}
		if err := colorize.Assign(g, attr, membership); err != nil {
			return err
		}
	}
	return w.err
}

// multiGroup reports whether membership has at least two distinct groups.
func multiGroup(membership []int) bool {
	if len(membership) == 0 {
		return false
	}
	first := membership[0]
	for _, m := range membership[1:] {
		if m != first {
			return true
		}
	}
	return false
}

// attrWriter batches attribute stores and keeps the first length error.
// Metric slices are sized from the graph, so errors indicate a bug rather
// than bad input, but they still surface instead of being dropped.
type attrWriter struct {
	g   *bgraph.Graph
	err error
}

func (w *attrWriter) graph(name string, v any) {
	w.g.SetGraphAttr(name, v)
}

func (w *attrWriter) vertex(name string, v []float64) {
	if w.err == nil {
		w.err = w.g.SetVertexAttr(name, v)
	}
}

func (w *attrWriter) ints(name string, v []int) {
	if w.err == nil {
		w.err = w.g.SetVertexInts(name, v)
	}
}

func (w *attrWriter) edge(name string, v []float64) {
	if w.err == nil {
		w.err = w.g.SetEdgeAttr(name, v)
	}
}

func meanOf(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
