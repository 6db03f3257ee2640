package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cverad/connectome/pkg/cache"
	"github.com/cverad/connectome/pkg/errors"
)

const pathMatrix = `# 4-vertex weighted path
0 2 0 0
2 0 2 0
0 2 0 2
0 0 2 0
`

func writeMatrix(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "subject.txt")
	require.NoError(t, os.WriteFile(path, []byte(pathMatrix), 0644))
	return path
}

func TestOptionsValidation(t *testing.T) {
	var o Options
	err := o.ValidateAndSetDefaults()
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	o = Options{Input: "x", Formats: []string{"png"}}
	err = o.ValidateAndSetDefaults()
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))

	o = Options{Input: "x", CommunityMethod: "nope"}
	err = o.ValidateAndSetDefaults()
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidMethod))

	o = Options{Input: "x"}
	require.NoError(t, o.ValidateAndSetDefaults())
	assert.Equal(t, []string{FormatJSON}, o.Formats)
	assert.Equal(t, DefaultPartition, o.Partition)
	assert.Equal(t, DefaultTTL, o.TTL)
}

func TestExecuteMatrixInput(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	res, err := runner.Execute(context.Background(), Options{
		Input:   writeMatrix(t),
		Formats: []string{FormatJSON, FormatDOT},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, res.Stats.VertexCount)
	assert.Equal(t, 3, res.Stats.EdgeCount)
	assert.NotEmpty(t, res.GraphHash)
	assert.Empty(t, res.Warnings)

	_, ok := res.Graph.GraphAttrFloat("density")
	assert.True(t, ok)
	_, ok = res.Graph.GraphAttrFloat("Lp.wt")
	assert.True(t, ok)

	assert.Contains(t, string(res.Artifacts[FormatJSON]), `"nodes"`)
	assert.True(t, strings.HasPrefix(string(res.Artifacts[FormatDOT]), "graph connectome {"))
	assert.False(t, res.CacheInfo.AnalysisHit)
}

func TestExecuteUsesCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := NewRunner(c, nil, nil)
	opts := Options{Input: writeMatrix(t)}

	first, err := runner.Execute(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.AnalysisHit)

	second, err := runner.Execute(context.Background(), Options{Input: opts.Input})
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.AnalysisHit)
	assert.True(t, second.CacheInfo.ArtifactHits[FormatJSON])
	assert.Equal(t, first.Artifacts[FormatJSON], second.Artifacts[FormatJSON])

	// The cached graph carries the full attribute set.
	_, ok := second.Graph.GraphAttrFloat("mod")
	assert.True(t, ok)

	third, err := runner.Execute(context.Background(), Options{Input: opts.Input, Refresh: true})
	require.NoError(t, err)
	assert.False(t, third.CacheInfo.AnalysisHit)
}

func TestExecuteRawInput(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	res, err := runner.Execute(context.Background(), Options{Raw: []byte(pathMatrix)})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Stats.VertexCount)
}

func TestLoadJSONRoundTrip(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	res, err := runner.Execute(context.Background(), Options{Raw: []byte(pathMatrix)})
	require.NoError(t, err)

	g, _, err := runner.Load(Options{Raw: res.Artifacts[FormatJSON], InputFormat: InputJSON})
	require.NoError(t, err)
	assert.Equal(t, 4, g.Order())
	assert.True(t, g.Weighted())
	_, ok := g.GraphAttrFloat("density")
	assert.True(t, ok)
}

func TestLoadAtlasSizeMismatch(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, _, err := runner.Load(Options{Raw: []byte(pathMatrix), Atlas: "dk"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidMatrix))
}

func TestLoadMissingFile(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	_, _, err := runner.Load(Options{Input: filepath.Join(t.TempDir(), "absent.txt")})
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestLoadBinarize(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	g, _, err := runner.Load(Options{Raw: []byte(pathMatrix), Binarize: true})
	require.NoError(t, err)
	assert.False(t, g.Weighted())
}
