package composite

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/gekko3d/composite/deferred/rt/core"
	"github.com/gekko3d/composite/deferred/rt/shade"
	"github.com/gekko3d/composite/deferred/rt/texture"
)

// Scene describes one composite job: where the targets live and the camera,
// lights and cascades they were rendered with. Relative paths are resolved
// against the scene file's directory.
type Scene struct {
	Inputs   SceneInputs   `yaml:"inputs"`
	Camera   SceneCamera   `yaml:"camera"`
	Global   SceneLight    `yaml:"global_light"`
	Lights   []SceneLight  `yaml:"lights"`
	Cascades SceneCascades `yaml:"cascades"`
	Settings Settings      `yaml:"settings"`
	Time     float32       `yaml:"time"`

	dir string
}

type SceneInputs struct {
	Attributes  [4]string `yaml:"attributes"`
	Depth       string    `yaml:"depth"`
	LightRT0    string    `yaml:"light_rt0"`
	LightRT1    string    `yaml:"light_rt1"`
	Matcap      string    `yaml:"matcap"`
	Environment string    `yaml:"environment"`
	Shadows     []string  `yaml:"shadows"` // one depth image per cascade
}

// SceneCamera angles are in degrees.
type SceneCamera struct {
	Position mgl32.Vec3 `yaml:"position"`
	Yaw      float32    `yaml:"yaw"`
	Pitch    float32    `yaml:"pitch"`
	FovY     float32    `yaml:"fov_y"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// SceneLight is a point light (Position) or, for the global light, a
// direction of travel. Color is rgb plus an intensity in w; point lights
// read a zero intensity as 1 and the global light ignores it.
type SceneLight struct {
	Position  mgl32.Vec3 `yaml:"position"`
	Direction mgl32.Vec3 `yaml:"direction"`
	Color     mgl32.Vec4 `yaml:"color"`
}

type SceneCascades struct {
	Distances  [core.CascadeCount]float32 `yaml:"distances"`
	Resolution int                        `yaml:"resolution"`
	// Matrices are column-major world to cascade clip transforms. When empty
	// they are fitted from the distances and the global light.
	Matrices []mgl32.Mat4 `yaml:"matrices"`
}

func DefaultScene() Scene {
	cam := core.NewCameraState()
	global := core.DefaultGlobalLight()
	return Scene{
		Camera: SceneCamera{
			Position: cam.Position,
			FovY:     mgl32.RadToDeg(cam.FovY),
			Near:     cam.Near,
			Far:      cam.Far,
		},
		Global: SceneLight{
			Direction: global.Direction,
			Color:     global.Color,
		},
		Cascades: SceneCascades{
			Distances:  [core.CascadeCount]float32{10, 30, 80, 200},
			Resolution: 2048,
		},
		Settings: DefaultSettings(),
	}
}

// ParseScene decodes YAML over the defaults. dir anchors relative paths.
func ParseScene(data []byte, dir string) (*Scene, error) {
	s := DefaultScene()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	s.dir = dir
	return &s, nil
}

func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScene(data, filepath.Dir(path))
}

func (s *Scene) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

func (s *Scene) CameraState() *core.CameraState {
	return &core.CameraState{
		Position: s.Camera.Position,
		Yaw:      mgl32.DegToRad(s.Camera.Yaw),
		Pitch:    mgl32.DegToRad(s.Camera.Pitch),
		FovY:     mgl32.DegToRad(s.Camera.FovY),
		Near:     s.Camera.Near,
		Far:      s.Camera.Far,
	}
}

func (s *Scene) GlobalLight() core.GlobalLight {
	return core.GlobalLight{Direction: s.Global.Direction, Color: s.Global.Color}
}

// LightList packs the fill light, the global light and the extra lights in
// slot order.
func (s *Scene) LightList() (*core.LightList, error) {
	lights := core.NewLightList()
	fill := s.Settings.Shade.FillLightColor.Vec4(1)
	if err := lights.Append(s.Camera.Position, fill); err != nil {
		return nil, err
	}
	if err := lights.Append(s.Global.Direction, s.Global.Color); err != nil {
		return nil, err
	}
	for i, l := range s.Lights {
		color := l.Color
		if color.W() == 0 {
			color[3] = 1
		}
		if err := lights.Append(l.Position, color); err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
	}
	return lights, nil
}

// CascadeSet returns the explicit matrices when given, otherwise fits them
// to view.
func (s *Scene) CascadeSet(view core.View) (core.CascadeSet, error) {
	c := s.Cascades
	switch len(c.Matrices) {
	case 0:
		return core.BuildCascades(view, s.Global.Direction, c.Distances, c.Resolution)
	case core.CascadeCount:
		var m [core.CascadeCount]mgl32.Mat4
		copy(m[:], c.Matrices)
		return core.NewCascadeSet(m, c.Distances)
	default:
		return core.CascadeSet{}, fmt.Errorf("scene gives %d cascade matrices, want %d", len(c.Matrices), core.CascadeCount)
	}
}

// Frame builds the shared constants for a width x height target. Textures
// are left for Load to attach.
func (s *Scene) Frame(width, height int) (*shade.Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, texture.ErrEmptyImage
	}
	view := s.CameraState().View(float32(width) / float32(height))
	lights, err := s.LightList()
	if err != nil {
		return nil, err
	}
	cascades, err := s.CascadeSet(view)
	if err != nil {
		return nil, err
	}
	return &shade.Frame{
		View:     view,
		Lights:   lights,
		Global:   s.GlobalLight(),
		Cascades: cascades,
		Time:     s.Time,
	}, nil
}

// Load reads every referenced file and assembles the pass inputs.
func (s *Scene) Load(logger Logger) (Inputs, *shade.Frame, error) {
	if logger == nil {
		logger = NewNopLogger()
	}
	var in Inputs
	var err error

	if s.Inputs.Depth == "" {
		return in, nil, fmt.Errorf("depth: %w", ErrMissingInput)
	}
	if in.Depth, err = texture.LoadEXR(s.resolve(s.Inputs.Depth)); err != nil {
		return in, nil, err
	}
	for i, name := range s.Inputs.Attributes {
		if name == "" {
			return in, nil, fmt.Errorf("rt%d: %w", i, ErrMissingInput)
		}
		if in.Attributes[i], err = texture.LoadEXR(s.resolve(name)); err != nil {
			return in, nil, err
		}
	}
	for i, name := range []string{s.Inputs.LightRT0, s.Inputs.LightRT1} {
		if name == "" {
			continue
		}
		if in.LightRT[i], err = texture.LoadEXR(s.resolve(name)); err != nil {
			return in, nil, err
		}
	}

	frame, err := s.Frame(in.Depth.Width, in.Depth.Height)
	if err != nil {
		return in, nil, err
	}

	if s.Inputs.Matcap != "" {
		if frame.Matcap, err = texture.LoadPNG(s.resolve(s.Inputs.Matcap), 0, 0); err != nil {
			return in, nil, err
		}
	}
	if s.Inputs.Environment != "" {
		levels := s.Settings.Shade.EnvironmentLevels
		if frame.Environment, err = texture.LoadEnvironment(s.resolve(s.Inputs.Environment), levels); err != nil {
			return in, nil, err
		}
		logger.Debugf("environment: %d levels", frame.Environment.Levels())
	}
	if len(s.Inputs.Shadows) > 0 {
		if len(s.Inputs.Shadows) != core.CascadeCount {
			return in, nil, fmt.Errorf("scene gives %d shadow maps, want %d", len(s.Inputs.Shadows), core.CascadeCount)
		}
		layers := make([]*texture.Image, core.CascadeCount)
		for i, name := range s.Inputs.Shadows {
			if layers[i], err = texture.LoadEXR(s.resolve(name)); err != nil {
				return in, nil, err
			}
		}
		if frame.Shadows, err = texture.DepthArrayFromImages(layers); err != nil {
			return in, nil, err
		}
	} else if s.Settings.Shade.RenderShadows {
		logger.Warnf("shadows enabled but no shadow maps given; rendering unshadowed")
	}

	logger.Infof("loaded scene: %dx%d, %d lights", in.Depth.Width, in.Depth.Height, frame.Lights.Len())
	return in, frame, nil
}
