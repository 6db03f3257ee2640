// Package pipeline composes the load → augment → export stages behind one
// Runner shared by the CLI and the HTTP API.
//
// # Architecture
//
// The pipeline has three stages:
//
//  1. Load: read a connectivity matrix (or a previously exported JSON
//     graph) and build the graph model, attaching an atlas when given
//  2. Augment: compute the full attribute battery on the graph
//  3. Export: serialize the annotated graph as JSON, DOT, or SVG
//
// Augmentation results and rendered artifacts are cached keyed by the
// content hash of the input and the analysis options, so re-analyzing the
// same matrix is free.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Input:   "subject01.txt",
//	    Atlas:   "dk",
//	    Formats: []string{"json", "svg"},
//	})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/cverad/connectome/pkg/augment"
	"github.com/cverad/connectome/pkg/bgraph"
	"github.com/cverad/connectome/pkg/bgraph/community"
	"github.com/cverad/connectome/pkg/bgraph/transform"
	"github.com/cverad/connectome/pkg/errors"
)

// Default values shared by CLI and API.
const (
	// DefaultTTL is how long cached analyses and artifacts live.
	DefaultTTL = 24 * time.Hour

	// DefaultPartition is the grouping used to color rendered output.
	DefaultPartition = "comm"
)

// Output format constants.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// Input format constants.
const (
	InputMatrix = "matrix"
	InputJSON   = "json"
)

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options
	Input       string `json:"input,omitempty"`        // path to the input file
	InputFormat string `json:"input_format,omitempty"` // "matrix" (default) or "json"
	Atlas       string `json:"atlas,omitempty"`        // builtin atlas name or file path
	Directed    bool   `json:"directed,omitempty"`
	Binarize    bool   `json:"binarize,omitempty"` // drop weights on matrix input
	Random      bool   `json:"random,omitempty"`   // mark as a randomized null network

	// Analysis options
	CommunityMethod string         `json:"community_method,omitempty"`
	Transform       transform.Kind `json:"transform,omitempty"`
	Workers         int            `json:"workers,omitempty"`
	Seed            int64          `json:"seed,omitempty"`

	// Export options
	Formats   []string `json:"formats,omitempty"`
	Partition string   `json:"partition,omitempty"`
	Labels    bool     `json:"labels,omitempty"`

	// Cache options
	Refresh bool          `json:"refresh,omitempty"` // bypass cached analyses
	TTL     time.Duration `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// Raw carries in-memory matrix bytes instead of reading Input from
	// disk; used by the API, which receives the matrix in the request body.
	Raw []byte `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and fills defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" && o.Raw == nil {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	if o.InputFormat == "" {
		o.InputFormat = InputMatrix
	}
	if o.InputFormat != InputMatrix && o.InputFormat != InputJSON {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", o.InputFormat)
	}
	if o.CommunityMethod == "" {
		o.CommunityMethod = community.Louvain
	}
	if !community.Valid(o.CommunityMethod) {
		return errors.New(errors.ErrCodeInvalidMethod,
			"unknown community method %q, valid methods: %v", o.CommunityMethod, community.Methods())
	}
	if o.Transform == "" {
		o.Transform = transform.Reciprocal
	}
	if !transform.Valid(o.Transform) {
		return errors.New(errors.ErrCodeInvalidTransform,
			"unknown weight transform %q, valid transforms: %v", o.Transform, transform.Kinds())
	}
	if o.Seed == 0 {
		o.Seed = augment.DefaultSeed
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unknown output format %q", f)
		}
	}
	if o.Partition == "" {
		o.Partition = DefaultPartition
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the annotated graph.
	Graph *bgraph.Graph

	// GraphHash is the content hash of the raw input.
	GraphHash string

	// Warnings collects the non-fatal anomalies from augmentation.
	Warnings []errors.Warning

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	VertexCount int
	EdgeCount   int
	LoadTime    time.Duration
	AugmentTime time.Duration
	ExportTime  time.Duration
}

// CacheInfo tracks cache hits per pipeline stage.
type CacheInfo struct {
	AnalysisHit  bool
	ArtifactHits map[string]bool
}
