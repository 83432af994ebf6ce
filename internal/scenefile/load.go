package scenefile

import (
	"embed"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

//go:embed scenes/*.yaml
var embedded embed.FS

// Names lists the embedded scene names.
func Names() []string {
	entries, err := embedded.ReadDir("scenes")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Embedded returns the built-in scene with the given name (e.g. "cubes").
func Embedded(name string) (*Spec, error) {
	data, err := embedded.ReadFile("scenes/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("scenefile: load %s: %w", name, err)
	}
	return Parse(data, nil)
}

// LoadFile reads a scene file. Keys present in the file replace those of base;
// base itself is never modified. A nil base starts from an empty Spec.
func LoadFile(filename string, base *Spec) (*Spec, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("scenefile: load %s: %w", filename, err)
	}
	spec, err := Parse(data, base)
	if err != nil {
		return nil, fmt.Errorf("scenefile: %s: %w", filename, err)
	}
	return spec, nil
}

// Parse decodes YAML over a deep copy of base and validates the result.
func Parse(data []byte, base *Spec) (*Spec, error) {
	spec := &Spec{}
	if base != nil {
		if err := copier.CopyWithOption(spec, base, copier.Option{DeepCopy: true}); err != nil {
			return nil, fmt.Errorf("scenefile: copy base: %w", err)
		}
	}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, fmt.Errorf("scenefile: unmarshal: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Validate checks references and required fields without building anything.
func (s *Spec) Validate() error {
	switch s.Viewport.Mode {
	case "", ViewportWindow:
	case ViewportFixed:
		if s.Viewport.Width <= 0 || s.Viewport.Height <= 0 {
			return fmt.Errorf("scenefile: fixed viewport needs a positive size, got %dx%d", s.Viewport.Width, s.Viewport.Height)
		}
	default:
		return fmt.Errorf("scenefile: unknown viewport mode %q", s.Viewport.Mode)
	}
	if s.Camera.Fov <= 0 {
		return fmt.Errorf("scenefile: camera fov must be positive")
	}

	materials := make(map[string]bool, len(s.Materials))
	for _, m := range s.Materials {
		if m.Name == "" {
			return fmt.Errorf("scenefile: material without a name")
		}
		if materials[m.Name] {
			return fmt.Errorf("scenefile: duplicate material %q", m.Name)
		}
		switch m.Type {
		case "basic", "standard":
		default:
			return fmt.Errorf("scenefile: material %q: unknown type %q", m.Name, m.Type)
		}
		materials[m.Name] = true
	}

	names := make(map[string]bool)
	var check func(objs []ObjectSpec) error
	check = func(objs []ObjectSpec) error {
		for _, o := range objs {
			if o.Name != "" {
				if names[o.Name] {
					return fmt.Errorf("scenefile: duplicate object %q", o.Name)
				}
				names[o.Name] = true
			}
			switch o.Type {
			case "group", "axes", "ambient_light", "directional_light", "spot_light":
			case "mesh":
				if o.Geometry == nil {
					return fmt.Errorf("scenefile: mesh %q has no geometry", o.Name)
				}
				if !materials[o.Material] {
					return fmt.Errorf("scenefile: mesh %q: unknown material %q", o.Name, o.Material)
				}
			case "camera_helper":
				if o.Source == "" {
					return fmt.Errorf("scenefile: camera helper %q has no source", o.Name)
				}
			default:
				return fmt.Errorf("scenefile: object %q: unknown type %q", o.Name, o.Type)
			}
			if err := check(o.Children); err != nil {
				return err
			}
		}
		return nil
	}
	if err := check(s.Objects); err != nil {
		return err
	}

	for i, sl := range s.GUI {
		if sl.Object == "" || sl.Field == "" {
			return fmt.Errorf("scenefile: gui slider %d needs an object and a field", i)
		}
		if name, ok := strings.CutPrefix(sl.Object, "material:"); ok {
			if !materials[name] {
				return fmt.Errorf("scenefile: gui slider %d: unknown material %q", i, name)
			}
		} else if !names[sl.Object] {
			return fmt.Errorf("scenefile: gui slider %d: unknown object %q", i, sl.Object)
		}
		if sl.Max < sl.Min || sl.Step < 0 {
			return fmt.Errorf("scenefile: gui slider %d: bad range [%v, %v] step %v", i, sl.Min, sl.Max, sl.Step)
		}
	}
	return nil
}
