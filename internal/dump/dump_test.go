package dump

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-spine/pkg/spine"
	"github.com/Faultbox/midgard-spine/pkg/spine/spinetest"
)

func fixture(t *testing.T) (*spine.Skeleton, *spinetest.Mesh) {
	t.Helper()
	fx := spinetest.NewSkeleton()
	root := fx.AddBone("root", nil, spinetest.Affine{A: 1, D: 1, X: 10})
	page := spinetest.NewPage("hero.png", 64, 64, 1)

	head := fx.AddSlot("head", root)
	head.SetAttachment(spinetest.NewRegion("head", 2, 2, page.Region("head", 0, 0, 0.5, 0.5)))

	mesh := spinetest.NewMesh("cape", spinetest.MeshSpec{
		Vertices:  []float32{0, 0, 1, 0, 0, 1},
		Triangles: []uint16{0, 1, 2},
	})
	cape := fx.AddSlot("cape", root)
	cape.SetAttachment(mesh)
	cape.SetBlendMode(spine.BlendAdditive)

	fx.AddSlot("empty", root)
	return fx.Wrap(t, &spinetest.Runtime{}), mesh
}

func TestBuild(t *testing.T) {
	sk, _ := fixture(t)
	r := Build(sk, Options{})

	if r.Bones != 1 {
		t.Errorf("expected 1 bone, got %d", r.Bones)
	}
	if len(r.Slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(r.Slots))
	}

	head := r.Slots[0].Attachment
	if head == nil || head.Type != "region" {
		t.Fatalf("expected region attachment, got %+v", head)
	}
	if head.Page != "hero.png" || head.Region != "head" {
		t.Errorf("unexpected atlas link %q/%q", head.Page, head.Region)
	}
	if len(head.World) != 8 || head.World[0] != 9 {
		t.Errorf("unexpected region world vertices %v", head.World)
	}

	cape := r.Slots[1]
	if cape.Blend != "additive" {
		t.Errorf("expected additive blend, got %s", cape.Blend)
	}
	if cape.Attachment.Triangles != 1 || cape.Attachment.UVs != 6 {
		t.Errorf("unexpected mesh report %+v", cape.Attachment)
	}
	if cape.Attachment.Region != "" {
		t.Errorf("expected no region for unlinked mesh, got %q", cape.Attachment.Region)
	}
	if w := cape.Attachment.World; len(w) != 6 || w[2] != 11 {
		t.Errorf("unexpected mesh world vertices %v", w)
	}

	if r.Slots[2].Attachment != nil {
		t.Error("expected empty slot to have no attachment")
	}
}

func TestBuildCheckedRecordsCorruption(t *testing.T) {
	sk, mesh := fixture(t)
	mesh.SetWorldVerticesLength(7)

	r := Build(sk, Options{Checked: true, LengthLimit: 1024})
	cape := r.Slots[1].Attachment
	if cape.Error == "" {
		t.Fatal("expected validation error for odd world vertices length")
	}
	if cape.World != nil {
		t.Error("expected no world vertices for corrupt mesh")
	}
	// Other slots are unaffected.
	if r.Slots[0].Attachment.Error != "" {
		t.Errorf("unexpected region error %s", r.Slots[0].Attachment.Error)
	}
}

func TestWrite(t *testing.T) {
	sk, _ := fixture(t)
	var buf bytes.Buffer
	if err := Build(sk, Options{}).Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "name: head") {
		t.Errorf("expected slot name in output:\n%s", out)
	}

	var back Report
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(back.Slots) != 3 {
		t.Errorf("expected 3 slots after decoding, got %d", len(back.Slots))
	}
}
