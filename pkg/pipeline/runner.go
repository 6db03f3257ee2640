package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cverad/connectome/pkg/atlas"
	"github.com/cverad/connectome/pkg/augment"
	"github.com/cverad/connectome/pkg/bgraph"
	"github.com/cverad/connectome/pkg/cache"
	"github.com/cverad/connectome/pkg/errors"
	"github.com/cverad/connectome/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can safely share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil keyer gets a DefaultKeyer, a nil cache
// a NullCache (caching disabled), a nil logger the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Close releases the cache backend.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the complete load → augment → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r = &Runner{Cache: r.Cache, Keyer: r.Keyer, Logger: opts.Logger}

	result := &Result{
		Artifacts: make(map[string][]byte),
		CacheInfo: CacheInfo{ArtifactHits: make(map[string]bool)},
	}

	loadStart := time.Now()
	g, raw, err := r.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.GraphHash = cache.Hash(raw)
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.VertexCount = g.Order()
	result.Stats.EdgeCount = g.Size()

	r.Logger.Info("loaded graph",
		"vertices", g.Order(),
		"edges", g.Size(),
		"weighted", g.Weighted(),
		"duration", result.Stats.LoadTime)

	augStart := time.Now()
	g, data, warns, hit, err := r.augmentWithCache(ctx, g, result.GraphHash, opts)
	if err != nil {
		return nil, fmt.Errorf("augment: %w", err)
	}
	result.Graph = g
	result.Warnings = warns
	result.Stats.AugmentTime = time.Since(augStart)
	result.CacheInfo.AnalysisHit = hit

	for _, w := range warns {
		r.Logger.Warn("degraded computation", "code", w.Code, "reason", w.Message)
	}
	r.Logger.Info("augmented graph",
		"attrs", len(g.GraphAttrNames()),
		"cached", hit,
		"duration", result.Stats.AugmentTime)

	exportStart := time.Now()
	if err := r.export(ctx, g, data, result, opts); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Stats.ExportTime = time.Since(exportStart)

	r.Logger.Info("exported outputs",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// Load reads the input and builds the graph model.
// It returns the raw input bytes for content hashing.
func (r *Runner) Load(opts Options) (*bgraph.Graph, []byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	raw := opts.Raw
	if raw == nil {
		data, err := os.ReadFile(opts.Input)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, nil, errors.New(errors.ErrCodeFileNotFound, "input %q not found", opts.Input)
			}
			return nil, nil, err
		}
		raw = data
	}

	if opts.InputFormat == InputJSON {
		g, err := bgraph.Read(bytes.NewReader(raw))
		if err != nil {
			return nil, nil, err
		}
		return g, raw, nil
	}

	m, err := bgraph.ReadMatrix(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, err
	}
	a, err := resolveAtlas(opts.Atlas)
	if err != nil {
		return nil, nil, err
	}

	names := bgraph.DefaultNames(len(m))
	if a != nil {
		if a.Len() != len(m) {
			return nil, nil, errors.New(errors.ErrCodeInvalidMatrix,
				"matrix is %dx%d but atlas %q has %d regions", len(m), len(m), a.Name(), a.Len())
		}
		names = a.RegionNames()
	}

	gopts := []bgraph.Option{}
	if opts.Directed {
		gopts = append(gopts, bgraph.WithDirected())
	}
	if opts.Binarize {
		m = bgraph.Binarize(m)
	} else {
		gopts = append(gopts, bgraph.WithWeighted())
	}
	if opts.Random {
		gopts = append(gopts, bgraph.WithType(bgraph.TypeRandom))
	}
	if a != nil {
		gopts = append(gopts, bgraph.WithAtlas(a))
	}
	g, err := bgraph.FromMatrix(names, m, gopts...)
	if err != nil {
		return nil, nil, err
	}
	return g, raw, nil
}

// resolveAtlas maps an atlas reference to a region table: empty means none,
// a builtin name loads the embedded table, anything else is a file path.
func resolveAtlas(ref string) (*atlas.Atlas, error) {
	if ref == "" {
		return nil, nil
	}
	if a, err := atlas.Builtin(ref); err == nil {
		return a, nil
	}
	return atlas.Load(ref)
}

// analysisEnvelope is the cached form of an augmented graph. Warnings ride
// along because they are part of the analysis outcome, not of the graph.
type analysisEnvelope struct {
	Graph    json.RawMessage  `json:"graph"`
	Warnings []errors.Warning `json:"warnings,omitempty"`
}

// augmentWithCache returns the annotated graph together with its canonical
// serialization. Callers must use the returned bytes rather than
// re-marshaling: the serialization is the identity of the analysis, and a
// graph reloaded from cache does not re-marshal byte-identically.
func (r *Runner) augmentWithCache(ctx context.Context, g *bgraph.Graph, graphHash string, opts Options) (*bgraph.Graph, []byte, []errors.Warning, bool, error) {
	key := r.Keyer.AnalysisKey(graphHash, cache.AnalysisKeyOpts{
		CommunityMethod: opts.CommunityMethod,
		Transform:       string(opts.Transform),
		Seed:            opts.Seed,
		Atlas:           opts.Atlas,
	})

	if !opts.Refresh {
		if data, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
			var env analysisEnvelope
			if err := json.Unmarshal(data, &env); err == nil {
				if cached, err := bgraph.Read(bytes.NewReader(env.Graph)); err == nil {
					return cached, env.Graph, env.Warnings, true, nil
				}
			}
			// Corrupt entry: fall through and recompute.
			_ = r.Cache.Delete(ctx, key)
		}
	}

	warns, err := augment.Augment(ctx, g, augment.Options{
		CommunityMethod: opts.CommunityMethod,
		Transform:       opts.Transform,
		Workers:         opts.Workers,
		Seed:            opts.Seed,
		Logger:          r.Logger,
	})
	if err != nil {
		return nil, nil, warns, false, err
	}

	data, err := bgraph.Marshal(g)
	if err != nil {
		return nil, nil, warns, false, err
	}
	if env, err := json.Marshal(analysisEnvelope{Graph: data, Warnings: warns}); err == nil {
		if err := r.Cache.Set(ctx, key, env, opts.TTL); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		}
	}
	return g, data, warns, false, nil
}

func (r *Runner) export(ctx context.Context, g *bgraph.Graph, data []byte, result *Result, opts Options) error {
	resultHash := cache.Hash(data)

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(resultHash, format+":"+opts.Partition)
		if !opts.Refresh {
			if cached, ok, err := r.Cache.Get(ctx, key); err == nil && ok {
				result.Artifacts[format] = cached
				result.CacheInfo.ArtifactHits[format] = true
				continue
			}
		}

		var artifact []byte
		switch format {
		case FormatJSON:
			artifact = data
		case FormatDOT:
			artifact = []byte(render.ToDOT(g, render.Options{
				Partition:     opts.Partition,
				Labels:        opts.Labels,
				WeightedEdges: g.Weighted(),
			}))
		case FormatSVG:
			dot := render.ToDOT(g, render.Options{
				Partition:     opts.Partition,
				Labels:        opts.Labels,
				WeightedEdges: g.Weighted(),
			})
			svg, err := render.RenderSVG(ctx, dot)
			if err != nil {
				return err
			}
			artifact = svg
		}
		result.Artifacts[format] = artifact
		if err := r.Cache.Set(ctx, key, artifact, opts.TTL); err != nil {
			r.Logger.Warn("cache write failed", "err", err)
		}
	}
	return nil
}
