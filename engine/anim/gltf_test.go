package anim

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestClipsFromDocumentUsesLongestSampler(t *testing.T) {
	accessors := []*gltf.Accessor{{}, {}, {}}
	accessors[0].Max = append(accessors[0].Max, 1.25)
	accessors[1].Max = append(accessors[1].Max, 2.5)
	accessors[2].Max = append(accessors[2].Max, 0.8)
	doc := &gltf.Document{
		Accessors: accessors,
		Animations: []*gltf.Animation{
			{
				Name: stateBite,
				Samplers: []*gltf.AnimationSampler{
					{Input: 0, Output: 1},
					{Input: 1, Output: 0},
				},
			},
			{
				Samplers: []*gltf.AnimationSampler{
					{Input: 2, Output: 0},
				},
			},
		},
	}

	clips, err := ClipsFromDocument(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clips[stateBite].Length != 2.5 {
		t.Fatalf("expected 2.5s for %s, got %v", stateBite, clips[stateBite].Length)
	}
	if got := clips["animation.1"].Length; got < 0.79 || got > 0.81 {
		t.Fatalf("expected unnamed clip of 0.8s, got %v", got)
	}
}

// keyframe times without a max are read from the buffer, honouring the accessor's offset into a shared view
func TestClipsFromDocumentReadsKeyframesAtAccessorOffset(t *testing.T) {
	values := []float32{9, 9, 0.5, 1.5}
	data := make([]byte, 4*len(values))
	for i, value := range values {
		binary.LittleEndian.PutUint32(data[4*i:], math.Float32bits(value))
	}
	doc := &gltf.Document{
		Buffers:     []*gltf.Buffer{{ByteLength: uint32(len(data)), Data: data}},
		BufferViews: []*gltf.BufferView{{Buffer: 0, ByteLength: uint32(len(data))}},
		Accessors: []*gltf.Accessor{{
			BufferView:    gltf.Index(0),
			ByteOffset:    8,
			Count:         2,
			Type:          gltf.AccessorScalar,
			ComponentType: gltf.ComponentFloat,
		}},
		Animations: []*gltf.Animation{
			{Name: stateBite, Samplers: []*gltf.AnimationSampler{{Input: 0, Output: 0}}},
		},
	}

	clips, err := ClipsFromDocument(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := clips[stateBite].Length; got != 1.5 {
		t.Fatalf("expected 1.5s read behind the shared data, got %v", got)
	}
}

func TestClipsFromDocumentRejectsBadInput(t *testing.T) {
	doc := &gltf.Document{
		Animations: []*gltf.Animation{
			{Name: "broken", Samplers: []*gltf.AnimationSampler{{Input: 3}}},
		},
	}
	if _, err := ClipsFromDocument(doc); err == nil {
		t.Fatalf("expected an error for a missing accessor")
	}
}

func TestApplyClipLengthsKeepsExplicitLengths(t *testing.T) {
	controller, err := NewController(stateCrawl, NewStateDef(stateCrawl, 0.5, true), NewStateDef(stateBite, 0, false))
	if err != nil {
		t.Fatalf("controller: %v", err)
	}
	controller.ApplyClipLengths(map[string]Clip{
		stateCrawl: {Name: stateCrawl, Length: 3},
		stateBite:  {Name: stateBite, Length: 2},
	})
	crawl, _ := controller.State(stateCrawl)
	bite, _ := controller.State(stateBite)
	if crawl.Length != 0.5 || bite.Length != 2 {
		t.Fatalf("expected crawl 0.5 and bite 2, got %v and %v", crawl.Length, bite.Length)
	}
}

func TestLoadClipsGLTFMissingFile(t *testing.T) {
	if _, err := LoadClipsGLTF("does-not-exist.glb"); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
