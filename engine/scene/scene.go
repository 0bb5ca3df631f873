package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/giantworm/engine/util"
)

// Updater components run first each frame. The animator is one.
type Updater interface {
	Update(deltaTime float64)
}

// LateUpdater components run after every Updater of the frame.
type LateUpdater interface {
	LateUpdate(deltaTime float64)
}

type GameObject struct {
	name        string
	active      bool
	transform   *util.Transform
	components  []any
	toggleCount int
}

func NewGameObject(name string, position mgl32.Vec3) *GameObject {
	transform := util.NewDefaultTransform(name)
	transform.SetPosition(position)
	return &GameObject{
		name:      name,
		active:    true,
		transform: transform,
	}
}

func (g *GameObject) Name() string {
	return g.name
}

func (g *GameObject) Transform() *util.Transform {
	return g.transform
}

func (g *GameObject) GetPosition() mgl32.Vec3 {
	return g.transform.GetPosition()
}

func (g *GameObject) ActiveSelf() bool {
	return g.active
}

// SetActive changes the active flag. Only real changes count as toggles.
func (g *GameObject) SetActive(active bool) {
	if g.active == active {
		return
	}
	g.active = active
	g.toggleCount++
}

func (g *GameObject) ToggleCount() int {
	return g.toggleCount
}

func (g *GameObject) AddComponent(component any) {
	if component == nil {
		return
	}
	g.components = append(g.components, component)
}

func (g *GameObject) String() string {
	return fmt.Sprintf("%s(active=%v)", g.name, g.active)
}

// GetComponent returns the first component of type T attached to obj.
func GetComponent[T any](obj *GameObject) (T, bool) {
	var zero T
	if obj == nil {
		return zero, false
	}
	for _, component := range obj.components {
		if cast, ok := component.(T); ok {
			return cast, true
		}
	}
	return zero, false
}

type Scene struct {
	objects []*GameObject
	byName  map[string]*GameObject
}

func NewScene() *Scene {
	return &Scene{byName: make(map[string]*GameObject)}
}

func (s *Scene) Add(obj *GameObject) {
	if obj == nil {
		return
	}
	if _, exists := s.byName[obj.name]; exists {
		util.LogSystemError(fmt.Sprintf("[Scene] Duplicate object name %s, lookup keeps the first one", obj.name))
	} else {
		s.byName[obj.name] = obj
	}
	s.objects = append(s.objects, obj)
}

func (s *Scene) Find(name string) (*GameObject, bool) {
	obj, ok := s.byName[name]
	return obj, ok
}

func (s *Scene) Objects() []*GameObject {
	objects := make([]*GameObject, 0, len(s.objects))
	return append(objects, s.objects...)
}

// Update runs one frame: Update on all components of active objects, then LateUpdate.
func (s *Scene) Update(deltaTime float64) {
	for _, obj := range s.objects {
		if !obj.active {
			continue
		}
		for _, component := range obj.components {
			if updater, ok := component.(Updater); ok {
				updater.Update(deltaTime)
			}
		}
	}
	for _, obj := range s.objects {
		if !obj.active {
			continue
		}
		for _, component := range obj.components {
			if lateUpdater, ok := component.(LateUpdater); ok {
				lateUpdater.LateUpdate(deltaTime)
			}
		}
	}
}
