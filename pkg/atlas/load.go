package atlas

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// atlasFile is the JSON wire format for atlas tables:
//
//	{
//	  "name": "dk",
//	  "regions": [
//	    {"name": "lPCUN", "lobe": "Parietal", "hemi": "L",
//	     "class": "association", "x": -7.6, "y": -56.1, "z": 48.4},
//	    ...
//	  ]
//	}
type atlasFile struct {
	Name    string   `json:"name"`
	Regions []Region `json:"regions"`
}

// Read decodes an atlas table from r. The reader is not closed.
func Read(r io.Reader) (*Atlas, error) {
	var f atlasFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode atlas: %w", err)
	}
	if f.Name == "" {
		f.Name = "custom"
	}
	return NewAtlas(f.Name, f.Regions)
}

// Load reads an atlas table from a JSON file. If path has no extension it is
// treated as a built-in atlas name (see [Builtin]).
func Load(path string) (*Atlas, error) {
	if filepath.Ext(path) == "" {
		return Builtin(strings.ToLower(path))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	a, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("atlas %s: %w", path, err)
	}
	return a, nil
}
