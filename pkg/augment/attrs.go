package augment

// Attribute names written by Augment. Weighted variants carry the ".wt"
// suffix; the unweighted name always refers to the binarized topology.
//
// Graph-level attributes.
const (
	AttrDensity      = "density"
	AttrCp           = "Cp"            // mean local clustering coefficient
	AttrTransitivity = "transitivity"  // global (triangle-based) transitivity
	AttrLp           = "Lp"            // characteristic path length
	AttrEGlobal      = "E.global"      // global efficiency
	AttrMod          = "mod"           // modularity of the detected partition
	AttrCommMethod   = "comm.method"   // community method actually used
	AttrDiameter     = "diameter"
	AttrNumTri       = "num.tri"
	AttrAssort       = "assort"        // degree assortativity
	AttrCompSizes    = "comp.sizes"
	AttrMaxComp      = "max.comp"
	AttrVulnerability = "vulnerability"
	AttrNumHubs      = "num.hubs"
	AttrRich         = "rich"          // rich-club curve
	AttrStrength     = "strength"      // mean vertex strength
	AttrSpatialDist  = "spatial.dist"  // mean Euclidean edge length
	AttrAsymm        = "asymm"         // hemispheric edge asymmetry
	AttrHubScore     = "hub.score"     // HITS principal eigenvalue
	AttrAuthScore    = "authority.score"
	AttrAssortLobe     = "assort.lobe"
	AttrAssortLobeHemi = "assort.lobe.hemi"
)

// Vertex-level attributes.
const (
	VAttrDegree       = "degree"
	VAttrStrength     = "strength"
	VAttrKnn          = "knn.wt"
	VAttrComp         = "comp"
	VAttrComm         = "comm"
	VAttrBtwn         = "btwn.cent"
	VAttrEv           = "ev.cent"
	VAttrLev          = "lev.cent"
	VAttrKCore        = "k.core"
	VAttrSCore        = "s.core"
	VAttrTransitivity = "transitivity"
	VAttrELocal       = "E.local"
	VAttrENodal       = "E.nodal"
	VAttrVulnerability = "vulnerability"
	VAttrEccentricity = "eccentricity"
	VAttrLp           = "Lp"
	VAttrHubs         = "hubs"
	VAttrPC           = "PC"
	VAttrGC           = "GC"
	VAttrZScore       = "z.score"
	VAttrHubScore     = "hub.score"
	VAttrAuthScore    = "authority.score"
	VAttrX            = "x"
	VAttrY            = "y"
	VAttrZ            = "z"
	VAttrDist         = "dist"          // mean incident edge length
	VAttrDistStrength = "dist.strength" // dist weighted by degree
	VAttrAsymm        = "asymm"
	VAttrLobe         = "lobe"
)

// Edge-level attributes.
const (
	EAttrBtwn = "btwn"
	EAttrDist = "dist"
)

// wt appends the weighted-variant suffix to an attribute name.
func wt(name string) string { return name + ".wt" }
