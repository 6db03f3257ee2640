package atlas

import (
	"github.com/cverad/connectome/pkg/errors"
)

// Builtin returns a bundled atlas table by name. Bundled atlases cover the
// common parcellations used in the test fixtures and the CLI demo; larger or
// site-specific parcellations load from JSON files via [Load].
func Builtin(name string) (*Atlas, error) {
	switch name {
	case "dk":
		return NewAtlas("dk", dkRegions)
	case "dosenbach160":
		return NewAtlas("dosenbach160", dosenbachRegions)
	}
	return nil, errors.New(errors.ErrCodeAtlasNotFound, "no built-in atlas %q (have: dk, dosenbach160)", name)
}

// Builtins lists the bundled atlas names.
func Builtins() []string {
	return []string{"dk", "dosenbach160"}
}

// dkRegions is an abbreviated Desikan-Killiany cortical parcellation:
// bilateral regions from each lobe with MNI centroid coordinates.
var dkRegions = []Region{
	{Name: "lSFG", Lobe: "Frontal", Hemi: "L", Class: "association", Gyrus: "superior frontal", X: -12.6, Y: 22.9, Z: 42.4},
	{Name: "rSFG", Lobe: "Frontal", Hemi: "R", Class: "association", Gyrus: "superior frontal", X: 13.0, Y: 24.7, Z: 42.1},
	{Name: "lPREC", Lobe: "Frontal", Hemi: "L", Class: "primary", Gyrus: "precentral", X: -36.6, Y: -10.1, Z: 42.6},
	{Name: "rPREC", Lobe: "Frontal", Hemi: "R", Class: "primary", Gyrus: "precentral", X: 36.8, Y: -9.9, Z: 42.3},
	{Name: "lSTG", Lobe: "Temporal", Hemi: "L", Class: "association", Gyrus: "superior temporal", X: -52.1, Y: -21.1, Z: 0.4},
	{Name: "rSTG", Lobe: "Temporal", Hemi: "R", Class: "association", Gyrus: "superior temporal", X: 53.0, Y: -19.2, Z: -0.4},
	{Name: "lHIPP", Lobe: "Temporal", Hemi: "L", Class: "paralimbic", Gyrus: "parahippocampal", X: -24.0, Y: -7.5, Z: -27.5},
	{Name: "rHIPP", Lobe: "Temporal", Hemi: "R", Class: "paralimbic", Gyrus: "parahippocampal", X: 25.0, Y: -6.6, Z: -27.8},
	{Name: "lSPC", Lobe: "Parietal", Hemi: "L", Class: "association", Gyrus: "superior parietal", X: -22.8, Y: -60.5, Z: 45.2},
	{Name: "rSPC", Lobe: "Parietal", Hemi: "R", Class: "association", Gyrus: "superior parietal", X: 22.4, Y: -60.1, Z: 45.9},
	{Name: "lPCUN", Lobe: "Parietal", Hemi: "L", Class: "association", Gyrus: "precuneus", X: -7.6, Y: -56.1, Z: 48.4},
	{Name: "rPCUN", Lobe: "Parietal", Hemi: "R", Class: "association", Gyrus: "precuneus", X: 7.9, Y: -55.5, Z: 48.4},
	{Name: "lLOG", Lobe: "Occipital", Hemi: "L", Class: "association", Gyrus: "lateral occipital", X: -30.7, Y: -87.3, Z: -1.0},
	{Name: "rLOG", Lobe: "Occipital", Hemi: "R", Class: "association", Gyrus: "lateral occipital", X: 31.2, Y: -86.5, Z: -0.5},
	{Name: "lCING", Lobe: "Cingulate", Hemi: "L", Class: "paralimbic", Gyrus: "posterior cingulate", X: -7.5, Y: -37.0, Z: 30.0},
	{Name: "rCING", Lobe: "Cingulate", Hemi: "R", Class: "paralimbic", Gyrus: "posterior cingulate", X: 7.5, Y: -36.2, Z: 30.2},
	{Name: "lINS", Lobe: "Insula", Hemi: "L", Class: "paralimbic", Gyrus: "insula", X: -35.0, Y: -3.8, Z: 1.6},
	{Name: "rINS", Lobe: "Insula", Hemi: "R", Class: "paralimbic", Gyrus: "insula", X: 35.7, Y: -2.8, Z: 1.6},
}

// dosenbachRegions is a small functional parcellation subset carrying network
// labels (including the Yeo columns) rather than gyral anatomy.
var dosenbachRegions = []Region{
	{Name: "mPFC", Lobe: "Frontal", Hemi: "L", Net: "default", Yeo7: "Default", Yeo17: "DefaultA", X: -1, Y: 54, Z: 21},
	{Name: "PCC", Lobe: "Cingulate", Hemi: "L", Net: "default", Yeo7: "Default", Yeo17: "DefaultB", X: -2, Y: -51, Z: 27},
	{Name: "lAG", Lobe: "Parietal", Hemi: "L", Net: "default", Yeo7: "Default", Yeo17: "DefaultC", X: -44, Y: -65, Z: 33},
	{Name: "rAG", Lobe: "Parietal", Hemi: "R", Net: "default", Yeo7: "Default", Yeo17: "DefaultC", X: 47, Y: -61, Z: 32},
	{Name: "dACC", Lobe: "Cingulate", Hemi: "L", Net: "cingulo-opercular", Yeo7: "SalVentAttn", Yeo17: "SalVentAttnA", X: -1, Y: 10, Z: 46},
	{Name: "lAI", Lobe: "Insula", Hemi: "L", Net: "cingulo-opercular", Yeo7: "SalVentAttn", Yeo17: "SalVentAttnB", X: -36, Y: 16, Z: 4},
	{Name: "rAI", Lobe: "Insula", Hemi: "R", Net: "cingulo-opercular", Yeo7: "SalVentAttn", Yeo17: "SalVentAttnB", X: 38, Y: 16, Z: 4},
	{Name: "lDLPFC", Lobe: "Frontal", Hemi: "L", Net: "fronto-parietal", Yeo7: "Cont", Yeo17: "ContA", X: -43, Y: 22, Z: 34},
	{Name: "rDLPFC", Lobe: "Frontal", Hemi: "R", Net: "fronto-parietal", Yeo7: "Cont", Yeo17: "ContA", X: 43, Y: 22, Z: 34},
	{Name: "lIPS", Lobe: "Parietal", Hemi: "L", Net: "fronto-parietal", Yeo7: "DorsAttn", Yeo17: "DorsAttnA", X: -25, Y: -58, Z: 52},
	{Name: "rIPS", Lobe: "Parietal", Hemi: "R", Net: "fronto-parietal", Yeo7: "DorsAttn", Yeo17: "DorsAttnA", X: 25, Y: -58, Z: 52},
	{Name: "V1", Lobe: "Occipital", Hemi: "L", Net: "occipital", Yeo7: "Vis", Yeo17: "VisCent", X: -2, Y: -82, Z: 2},
}
