// Package atlas provides brain-atlas region tables: the side table mapping a
// vertex name to categorical region metadata (lobe, hemisphere, anatomical
// class, network labels) and 3D stereotaxic coordinates.
//
// An atlas is immutable after load. Graphs reference an atlas by pointer;
// presence of that reference gates the spatial and categorical attribute
// branch of augmentation.
//
// Categorical columns differ between atlases: a functional parcellation has
// network labels, an anatomical one has gyrus and class columns. Callers
// should query [Atlas.Columns] and iterate the intersection instead of
// hardcoding a closed column list.
package atlas

import (
	"sort"

	"github.com/cverad/connectome/pkg/errors"
)

// Categorical column names shared across atlas files. Not all atlases carry
// all columns; Columns reports the ones actually present.
const (
	ColLobe  = "lobe"
	ColHemi  = "hemi"
	ColClass = "class"
	ColNet   = "network"
	ColArea  = "area"
	ColGyrus = "gyrus"
	ColYeo7  = "Yeo_7network"
	ColYeo17 = "Yeo_17network"
)

// Region holds the metadata for one atlas region.
// Empty categorical fields mean the column is absent for this atlas.
type Region struct {
	Name  string  `json:"name"`
	Lobe  string  `json:"lobe,omitempty"`
	Hemi  string  `json:"hemi,omitempty"`
	Class string  `json:"class,omitempty"`
	Net   string  `json:"network,omitempty"`
	Area  string  `json:"area,omitempty"`
	Gyrus string  `json:"gyrus,omitempty"`
	Yeo7  string  `json:"Yeo_7network,omitempty"`
	Yeo17 string  `json:"Yeo_17network,omitempty"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Z     float64 `json:"z"`
}

// column extracts the named categorical value from a region.
func (r Region) column(col string) string {
	switch col {
	case ColLobe:
		return r.Lobe
	case ColHemi:
		return r.Hemi
	case ColClass:
		return r.Class
	case ColNet:
		return r.Net
	case ColArea:
		return r.Area
	case ColGyrus:
		return r.Gyrus
	case ColYeo7:
		return r.Yeo7
	case ColYeo17:
		return r.Yeo17
	}
	return ""
}

// Atlas is an immutable region table keyed by region name.
type Atlas struct {
	name    string
	regions map[string]Region
	order   []string
	columns []string
}

// NewAtlas builds an atlas from a region list. Region order is preserved for
// deterministic iteration. Duplicate region names are an error.
func NewAtlas(name string, regions []Region) (*Atlas, error) {
	a := &Atlas{
		name:    name,
		regions: make(map[string]Region, len(regions)),
		order:   make([]string, 0, len(regions)),
	}
	present := make(map[string]bool)
	for _, r := range regions {
		if r.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "atlas %s: region with empty name", name)
		}
		if _, dup := a.regions[r.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "atlas %s: duplicate region %q", name, r.Name)
		}
		a.regions[r.Name] = r
		a.order = append(a.order, r.Name)
		for _, col := range []string{ColLobe, ColHemi, ColClass, ColNet, ColArea, ColGyrus, ColYeo7, ColYeo17} {
			if r.column(col) != "" {
				present[col] = true
			}
		}
	}
	for col := range present {
		a.columns = append(a.columns, col)
	}
	sort.Strings(a.columns)
	return a, nil
}

// Name returns the atlas name (e.g. "dk", "aal90").
func (a *Atlas) Name() string { return a.name }

// Len returns the number of regions.
func (a *Atlas) Len() int { return len(a.order) }

// RegionNames returns region names in table order.
// Callers must not modify the returned slice.
func (a *Atlas) RegionNames() []string { return a.order }

// Lookup returns the region metadata for a vertex name.
func (a *Atlas) Lookup(name string) (Region, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Columns reports which categorical columns this atlas actually carries.
// The capability query lets callers iterate only over supplied columns.
func (a *Atlas) Columns() []string { return a.columns }

// HasColumn reports whether a categorical column is present.
func (a *Atlas) HasColumn(col string) bool {
	for _, c := range a.columns {
		if c == col {
			return true
		}
	}
	return false
}

// Membership maps a categorical column onto integer group ids for the given
// vertex names, preserving caller order. Distinct column values get ids in
// first-encountered order starting at 1. Vertices missing from the atlas get
// REGION_NOT_FOUND.
func (a *Atlas) Membership(col string, names []string) ([]int, error) {
	if !a.HasColumn(col) {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "atlas %s: no column %q (have %v)", a.name, col, a.columns)
	}
	ids := make(map[string]int)
	out := make([]int, len(names))
	for i, name := range names {
		r, ok := a.regions[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeRegionNotFound, "atlas %s: region %q", a.name, name)
		}
		val := r.column(col)
		id, seen := ids[val]
		if !seen {
			id = len(ids) + 1
			ids[val] = id
		}
		out[i] = id
	}
	return out, nil
}

// Values returns the raw categorical values of a column for the given vertex
// names, preserving caller order. Missing vertices get REGION_NOT_FOUND.
func (a *Atlas) Values(col string, names []string) ([]string, error) {
	if !a.HasColumn(col) {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "atlas %s: no column %q (have %v)", a.name, col, a.columns)
	}
	out := make([]string, len(names))
	for i, name := range names {
		r, ok := a.regions[name]
		if !ok {
			return nil, errors.New(errors.ErrCodeRegionNotFound, "atlas %s: region %q", a.name, name)
		}
		out[i] = r.column(col)
	}
	return out, nil
}

// Coordinates returns the x/y/z coordinate arrays for the given vertex names,
// preserving caller order. Missing vertices get REGION_NOT_FOUND.
func (a *Atlas) Coordinates(names []string) (x, y, z []float64, err error) {
	x = make([]float64, len(names))
	y = make([]float64, len(names))
	z = make([]float64, len(names))
	for i, name := range names {
		r, ok := a.regions[name]
		if !ok {
			return nil, nil, nil, errors.New(errors.ErrCodeRegionNotFound, "atlas %s: region %q", a.name, name)
		}
		x[i], y[i], z[i] = r.X, r.Y, r.Z
	}
	return x, y, z, nil
}
