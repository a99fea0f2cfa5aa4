package spine_test

import (
	"errors"
	"math"
	"testing"

	"github.com/Faultbox/midgard-spine/pkg/spine"
	"github.com/Faultbox/midgard-spine/pkg/spine/spinetest"
)

func classifyMesh(t *testing.T, sk *spine.Skeleton, m *spinetest.Mesh) spine.MeshAttachment {
	t.Helper()
	a, err := sk.Classify(m.Pointer())
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	mesh, ok := a.(spine.MeshAttachment)
	if !ok {
		t.Fatalf("expected MeshAttachment, got %T", a)
	}
	return mesh
}

func classifyRegion(t *testing.T, sk *spine.Skeleton, r *spinetest.Region) spine.RegionAttachment {
	t.Helper()
	a, err := sk.Classify(r.Pointer())
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	region, ok := a.(spine.RegionAttachment)
	if !ok {
		t.Fatalf("expected RegionAttachment, got %T", a)
	}
	return region
}

func TestMeshUVsMatchWorldVerticesLen(t *testing.T) {
	_, sk := newSkeleton(t)

	for _, vertices := range []int{0, 1, 3, 4, 64, 1000} {
		verts := make([]float32, vertices*2)
		for i := range verts {
			verts[i] = float32(i)
		}
		mesh := classifyMesh(t, sk, spinetest.NewMesh("m", spinetest.MeshSpec{Vertices: verts}))

		if got := len(mesh.UVs()); got != mesh.WorldVerticesLen() {
			t.Errorf("%d vertices: len(UVs)=%d, WorldVerticesLen=%d", vertices, got, mesh.WorldVerticesLen())
		}
		if got := len(mesh.RegionUVs()); got != mesh.WorldVerticesLen() {
			t.Errorf("%d vertices: len(RegionUVs)=%d", vertices, got)
		}
		if mesh.WorldVerticesLen() != vertices*2 {
			t.Errorf("expected WorldVerticesLen %d, got %d", vertices*2, mesh.WorldVerticesLen())
		}
	}
}

func TestRegionUVsAlwaysEight(t *testing.T) {
	_, sk := newSkeleton(t)
	page := spinetest.NewPage("atlas.png", 256, 256, 7)

	fixtures := []*spinetest.Region{
		spinetest.NewRegion("empty", 0, 0, nil),
		spinetest.NewRegion("big", 1e6, 1e6, nil),
		spinetest.NewRegion("atlas", 32, 16, page.Region("atlas", 0.25, 0.5, 0.5, 0.75)),
	}
	for _, fx := range fixtures {
		r := classifyRegion(t, sk, fx)
		if got := len(r.UVs()); got != 8 {
			t.Errorf("%s: expected 8 UVs, got %d", r.Name(), got)
		}
		if got := len(r.Offsets()); got != 8 {
			t.Errorf("%s: expected 8 offsets, got %d", r.Name(), got)
		}
	}
}

func TestEmptyTriangles(t *testing.T) {
	_, sk := newSkeleton(t)
	mesh := classifyMesh(t, sk, spinetest.NewMesh("m", spinetest.MeshSpec{Vertices: []float32{0, 0, 1, 1}}))

	tris := mesh.Triangles()
	if len(tris) != 0 {
		t.Errorf("expected empty triangle view, got %d indices", len(tris))
	}
	for range tris {
		t.Error("iterated an empty view")
	}
	if len(mesh.Edges()) != 0 || len(mesh.Bones()) != 0 {
		t.Error("expected empty edges and bones")
	}
	if mesh.Weighted() {
		t.Error("expected unweighted mesh")
	}
}

func TestViewsReadLengthAtCallTime(t *testing.T) {
	_, sk := newSkeleton(t)
	fx := spinetest.NewMesh("m", spinetest.MeshSpec{
		Vertices:  []float32{0, 0, 1, 0, 1, 1, 0, 1},
		UVs:       []float32{0, 0, 1, 0, 1, 1, 0, 1},
		Triangles: []uint16{0, 1, 2, 2, 3, 0},
	})
	mesh := classifyMesh(t, sk, fx)

	if len(mesh.Triangles()) != 6 {
		t.Fatalf("expected 6 indices, got %d", len(mesh.Triangles()))
	}
	fx.SetTrianglesCount(3)
	fx.SetWorldVerticesLength(6)
	if len(mesh.Triangles()) != 3 {
		t.Errorf("expected 3 indices after native update, got %d", len(mesh.Triangles()))
	}
	if len(mesh.UVs()) != 6 {
		t.Errorf("expected 6 UVs after native update, got %d", len(mesh.UVs()))
	}
}

func TestViewsAliasNativeMemory(t *testing.T) {
	_, sk := newSkeleton(t)
	mesh := classifyMesh(t, sk, spinetest.NewMesh("m", spinetest.MeshSpec{
		Vertices: []float32{0, 0, 1, 0},
		UVs:      []float32{0.1, 0.2, 0.3, 0.4},
	}))

	a, b := mesh.UVs(), mesh.UVs()
	if &a[0] != &b[0] {
		t.Error("expected both views to share native memory")
	}
	if a[2] != 0.3 {
		t.Errorf("expected uv 0.3, got %f", a[2])
	}
}

func TestAtlasRegion(t *testing.T) {
	_, sk := newSkeleton(t)
	page := spinetest.NewPage("hero.png", 512, 256, 42)
	atlas := page.Region("hero/head", 0.5, 0.25, 0.75, 0.5)

	region := classifyRegion(t, sk, spinetest.NewRegion("head", 8, 8, atlas))
	if !region.HasRegion() {
		t.Fatal("expected linked atlas region")
	}
	ar := region.Region()
	if ar.Name() != "hero/head" {
		t.Errorf("expected region name 'hero/head', got %q", ar.Name())
	}
	u, v, u2, v2 := ar.UV()
	if u != 0.5 || v != 0.25 || u2 != 0.75 || v2 != 0.5 {
		t.Errorf("unexpected UV rect (%f,%f,%f,%f)", u, v, u2, v2)
	}
	x, y, w, h := ar.Bounds()
	if x != 256 || y != 64 || w != 128 || h != 64 {
		t.Errorf("unexpected bounds (%d,%d,%d,%d)", x, y, w, h)
	}
	pg := ar.Page()
	if pg.Name() != "hero.png" || pg.Texture() != 42 {
		t.Errorf("unexpected page %q texture %d", pg.Name(), pg.Texture())
	}
	if pw, ph := pg.Size(); pw != 512 || ph != 256 {
		t.Errorf("unexpected page size %dx%d", pw, ph)
	}
	if uvs := region.UVs(); uvs[2] != 0.5 || uvs[3] != 0.25 {
		t.Errorf("expected upper-left UV (0.5,0.25), got (%f,%f)", uvs[2], uvs[3])
	}
}

func TestMissingAtlasRegionPanics(t *testing.T) {
	_, sk := newSkeleton(t)
	region := classifyRegion(t, sk, spinetest.NewRegion("orphan", 1, 1, nil))
	mesh := classifyMesh(t, sk, spinetest.NewMesh("orphan-mesh", spinetest.MeshSpec{}))

	if region.HasRegion() || mesh.HasRegion() {
		t.Fatal("expected no linked atlas region")
	}
	assertPanics(t, "region.Region", func() { region.Region() })
	assertPanics(t, "mesh.Region", func() { mesh.Region() })
}

func TestMeshValidate(t *testing.T) {
	_, sk := newSkeleton(t)
	spec := spinetest.MeshSpec{
		Vertices:  []float32{0, 0, 1, 0, 1, 1},
		Triangles: []uint16{0, 1, 2},
	}

	tests := []struct {
		name    string
		corrupt func(m *spinetest.Mesh)
		limit   int
		wantErr bool
	}{
		{"valid", func(*spinetest.Mesh) {}, 1024, false},
		{"over limit", func(*spinetest.Mesh) {}, 4, true},
		{"negative length", func(m *spinetest.Mesh) { m.SetWorldVerticesLength(-2) }, 1024, true},
		{"odd length", func(m *spinetest.Mesh) { m.SetWorldVerticesLength(5) }, 1024, true},
		{"null uvs", func(m *spinetest.Mesh) { m.DropUVs() }, 1024, true},
		{"partial triangle", func(m *spinetest.Mesh) { m.SetTrianglesCount(2) }, 1024, true},
		{"index out of range", func(m *spinetest.Mesh) { m.SetWorldVerticesLength(4) }, 1024, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := spinetest.NewMesh("m", spec)
			tt.corrupt(fx)
			err := classifyMesh(t, sk, fx).Validate(tt.limit)
			if tt.wantErr {
				if !errors.Is(err, spine.ErrCorruptHandle) {
					t.Errorf("expected ErrCorruptHandle, got %v", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func assertPanics(t *testing.T, name string, fn func()) any {
	t.Helper()
	var recovered any
	func() {
		defer func() { recovered = recover() }()
		fn()
	}()
	if recovered == nil {
		t.Errorf("%s: expected panic", name)
	}
	return recovered
}

func allFinite(vs []float32) bool {
	for _, v := range vs {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return false
		}
	}
	return true
}
