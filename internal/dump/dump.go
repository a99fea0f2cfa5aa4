// Package dump describes a posed skeleton slot by slot, for inspection
// and diffing.
package dump

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-spine/pkg/spine"
)

// Report describes one skeleton in draw order.
type Report struct {
	Bones int          `yaml:"bones"`
	X     float32      `yaml:"x"`
	Y     float32      `yaml:"y"`
	Slots []SlotReport `yaml:"slots"`
}

// SlotReport describes one slot.
type SlotReport struct {
	Name       string            `yaml:"name"`
	Bone       string            `yaml:"bone"`
	Blend      string            `yaml:"blend"`
	Attachment *AttachmentReport `yaml:"attachment,omitempty"`
}

// AttachmentReport describes the attachment shown by a slot.
type AttachmentReport struct {
	Name      string    `yaml:"name"`
	Type      string    `yaml:"type"`
	Path      string    `yaml:"path,omitempty"`
	Region    string    `yaml:"region,omitempty"`
	Page      string    `yaml:"page,omitempty"`
	UVs       int       `yaml:"uvs,omitempty"`
	Triangles int       `yaml:"triangles,omitempty"`
	Weighted  bool      `yaml:"weighted,omitempty"`
	World     []float32 `yaml:"world,flow,omitempty"`
	Error     string    `yaml:"error,omitempty"`
}

// Options controls how vertices are projected.
type Options struct {
	// Checked uses the validating projection and records failures in
	// AttachmentReport.Error instead of trusting native lengths.
	Checked     bool
	LengthLimit int
}

// Build walks sk in draw order.
func Build(sk *spine.Skeleton, opts Options) *Report {
	x, y := sk.Position()
	r := &Report{Bones: sk.BoneCount(), X: x, Y: y}
	for slot := range sk.DrawOrder() {
		sr := SlotReport{
			Name:  slot.Name(),
			Bone:  slot.Bone().Name(),
			Blend: slot.BlendMode().String(),
		}
		if a, ok := slot.Attachment(); ok {
			sr.Attachment = attachment(slot, a, opts)
		}
		r.Slots = append(r.Slots, sr)
	}
	return r
}

func attachment(slot spine.Slot, a spine.Attachment, opts Options) *AttachmentReport {
	ar := &AttachmentReport{Name: a.Name(), Type: a.Type().String()}

	switch att := a.(type) {
	case spine.RegionAttachment:
		ar.Path = att.Path()
		if att.HasRegion() {
			ar.Region = att.Region().Name()
			ar.Page = att.Region().Page().Name()
		}
		ar.UVs = len(att.UVs())
		ar.World = make([]float32, 2*spine.RegionVertexCount)
		if opts.Checked {
			if err := att.ComputeWorldVerticesChecked(slot.Bone(), ar.World, 0, 2); err != nil {
				ar.World, ar.Error = nil, err.Error()
			}
		} else {
			att.ComputeWorldVertices(slot.Bone(), ar.World, 0, 2)
		}

	case spine.MeshAttachment:
		ar.Path = att.Path()
		if opts.Checked {
			if err := att.Validate(opts.LengthLimit); err != nil {
				ar.Error = err.Error()
				return ar
			}
		}
		if att.HasRegion() {
			ar.Region = att.Region().Name()
			ar.Page = att.Region().Page().Name()
		}
		ar.UVs = len(att.UVs())
		ar.Triangles = len(att.Triangles()) / 3
		ar.Weighted = att.Weighted()
		n := att.WorldVerticesLen()
		ar.World = make([]float32, n)
		if opts.Checked {
			if err := att.ComputeWorldVerticesChecked(slot, 0, n, ar.World, 0, 2); err != nil {
				ar.World, ar.Error = nil, err.Error()
			}
		} else {
			att.ComputeWorldVertices(slot, 0, n, ar.World, 0, 2)
		}
	}
	return ar
}

// Write encodes r as YAML.
func (r *Report) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}
