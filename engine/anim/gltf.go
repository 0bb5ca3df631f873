package anim

import (
	"fmt"

	"github.com/memmaker/giantworm/engine/util"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

type Clip struct {
	Name   string
	Length float64 // seconds
}

// LoadClipsGLTF reads the animations of a .gltf/.glb file and returns their lengths by name.
func LoadClipsGLTF(filename string) (map[string]Clip, error) {
	doc, err := gltf.Open(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "anim: open %s", filename)
	}
	clips, err := ClipsFromDocument(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "anim: read clips of %s", filename)
	}
	util.LogAnimationInfo(fmt.Sprintf("[LoadClipsGLTF] %d clip(s) in %s", len(clips), filename))
	return clips, nil
}

// ClipsFromDocument computes the length of every animation as its last keyframe time.
func ClipsFromDocument(doc *gltf.Document) (map[string]Clip, error) {
	clips := make(map[string]Clip, len(doc.Animations))
	for animIndex, anim := range doc.Animations {
		name := anim.Name
		if name == "" {
			name = fmt.Sprintf("animation.%d", animIndex)
		}
		var length float64
		for _, sampler := range anim.Samplers {
			end, err := lastKeyframeTime(doc, sampler)
			if err != nil {
				return nil, errors.Wrapf(err, "animation %s", name)
			}
			if end > length {
				length = end
			}
		}
		clips[name] = Clip{Name: name, Length: length}
	}
	return clips, nil
}

func lastKeyframeTime(doc *gltf.Document, sampler *gltf.AnimationSampler) (float64, error) {
	if int(sampler.Input) >= len(doc.Accessors) {
		return 0, errors.Errorf("sampler input accessor %d out of range", sampler.Input)
	}
	inputAccessor := doc.Accessors[sampler.Input]
	if len(inputAccessor.Max) > 0 {
		return float64(inputAccessor.Max[0]), nil
	}
	if inputAccessor.BufferView == nil {
		return 0, errors.Errorf("sampler input accessor %d has neither max nor data", sampler.Input)
	}

	// the accessor's own ByteOffset matters when several accessors share a buffer view
	var inputBufferUntyped interface{}
	inputBufferUntyped, err := modeler.ReadAccessor(doc, inputAccessor, inputBufferUntyped)
	if err != nil {
		return 0, errors.Wrap(err, "read sampler input")
	}
	keyframes, ok := inputBufferUntyped.([]float32)
	if !ok {
		return 0, errors.Errorf("sampler input accessor %d is not float", sampler.Input)
	}
	var last float32
	for _, keyframe := range keyframes {
		if keyframe > last {
			last = keyframe
		}
	}
	return float64(last), nil
}

// ApplyClipLengths fills in the length of states that have none from the clip of the same name.
func (c *Controller) ApplyClipLengths(clips map[string]Clip) {
	for name, state := range c.states {
		if clip, ok := clips[name]; ok && state.Length == 0 {
			state.Length = clip.Length
		}
	}
}
