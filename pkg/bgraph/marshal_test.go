package bgraph

import (
	"bytes"
	"testing"

	"github.com/cverad/connectome/pkg/atlas"
)

func TestMarshalRoundTrip(t *testing.T) {
	a, _ := atlas.Builtin("dk")
	g, err := New([]string{"lSFG", "rSFG", "lPCUN"}, WithWeighted(), WithAtlas(a))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.AddEdge("lSFG", "rSFG", 0.8)
	g.AddEdge("lSFG", "lPCUN", 0.3)
	g.SetGraphAttr("density", 2.0/3.0)
	g.SetVertexAttr("degree", []float64{2, 1, 1})
	g.SetVertexInts("comm", []int{1, 1, 2})
	g.SetVertexStrings("color.comm", []string{"red", "red", "gray"})
	g.SetEdgeStrings("color.comm", []string{"red", "gray"})

	data, err := Marshal(g)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.Order() != 3 || got.Size() != 2 {
		t.Fatalf("topology = %d/%d, want 3/2", got.Order(), got.Size())
	}
	if !got.Weighted() || got.Directed() {
		t.Error("flags lost in round trip")
	}
	if got.Atlas() == nil || got.Atlas().Name() != "dk" {
		t.Error("atlas reference lost in round trip")
	}
	if w := got.Edge(0).Weight; w != 0.8 {
		t.Errorf("weight = %g, want 0.8", w)
	}
	if d, ok := got.GraphAttrFloat("density"); !ok || d != 2.0/3.0 {
		t.Errorf("density = %v/%v", d, ok)
	}
	if m, ok := got.VertexInts("comm"); !ok || m[2] != 2 {
		t.Errorf("comm = %v/%v", m, ok)
	}
	if c, ok := got.EdgeStrings("color.comm"); !ok || c[1] != "gray" {
		t.Errorf("edge colors = %v/%v", c, ok)
	}
}

func TestReadRejectsUnknownEdgeEndpoint(t *testing.T) {
	src := `{"nodes":[{"name":"a"}],"edges":[{"from":"a","to":"zzz"}]}`
	if _, err := Read(bytes.NewReader([]byte(src))); err == nil {
		t.Fatal("Read accepted edge with unknown endpoint")
	}
}

func TestReadEmptyGraph(t *testing.T) {
	src := `{"nodes":[],"edges":[]}`
	g, err := Read(bytes.NewReader([]byte(src)))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if g.Order() != 0 || g.Size() != 0 {
		t.Errorf("got %d/%d, want empty", g.Order(), g.Size())
	}
}
