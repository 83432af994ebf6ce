package engineconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"scene-demos/internal/logger"
)

// EngineConfigPath is the path to the preferences file, relative to the process working directory.
const EngineConfigPath = "config/engine.yaml"

// EnvPrefix starts every environment override, e.g. DEMO_LOG_LEVEL.
const EnvPrefix = "DEMO_"

// EnginePrefs holds window, logging and debug-overlay preferences shared by both demos.
// Scene content lives in scene files, not here.
type EnginePrefs struct {
	Window Window        `yaml:"window"`
	Log    logger.Config `yaml:"log"`
	Debug  Debug         `yaml:"debug"`
}

// Window configures the host window. Width and Height are the initial size of a
// window-sized viewport; demos with a fixed viewport open at that size instead.
type Window struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
	HighDPI   bool   `yaml:"high_dpi"`
	MSAA      bool   `yaml:"msaa"`
	TargetFPS int    `yaml:"target_fps"`
}

// Debug toggles overlays.
type Debug struct {
	ShowFPS      bool `yaml:"show_fps"`
	ShowMemAlloc bool `yaml:"show_memalloc"`
	ShowElapsed  bool `yaml:"show_elapsed"`
	ShowLog      bool `yaml:"show_log"`
	ShowPanel    bool `yaml:"show_panel"`
}

// Default returns default preferences (resizable 1280x720 window, overlays off, panel on).
func Default() EnginePrefs {
	return EnginePrefs{
		Window: Window{
			Title:     "scene demos",
			Width:     1280,
			Height:    720,
			Resizable: true,
			HighDPI:   true,
			MSAA:      true,
			TargetFPS: 60,
		},
		Log: logger.DefaultConfig(),
		Debug: Debug{
			ShowPanel: true,
		},
	}
}

// Load reads preferences from path over Default(), then applies DEMO_* overrides
// looked up with getenv (os.Getenv when nil). A missing file is not an error; an
// unreadable or invalid one is.
func Load(path string, getenv func(string) string) (EnginePrefs, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	p := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return p, fmt.Errorf("engineconfig: read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &p); err != nil {
			return Default(), fmt.Errorf("engineconfig: parse %s: %w", path, err)
		}
	}
	if err := applyEnv(&p, getenv); err != nil {
		return p, err
	}
	return p, nil
}

// Save writes preferences to path, creating the directory if needed.
func Save(path string, p EnginePrefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func applyEnv(p *EnginePrefs, getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) error {
		v := getenv(EnvPrefix + key)
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("engineconfig: %s%s: %w", EnvPrefix, key, err)
		}
		*dst = b
		return nil
	}
	integer := func(key string, dst *int) error {
		v := getenv(EnvPrefix + key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("engineconfig: %s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
		return nil
	}

	str("LOG_LEVEL", &p.Log.Level)
	str("LOG_FILE", &p.Log.File)
	str("WINDOW_TITLE", &p.Window.Title)
	for key, dst := range map[string]*bool{
		"LOG_DEVELOPMENT": &p.Log.Development,
		"SHOW_FPS":        &p.Debug.ShowFPS,
		"SHOW_MEMALLOC":   &p.Debug.ShowMemAlloc,
		"SHOW_ELAPSED":    &p.Debug.ShowElapsed,
		"SHOW_LOG":        &p.Debug.ShowLog,
		"SHOW_PANEL":      &p.Debug.ShowPanel,
		"MSAA":            &p.Window.MSAA,
	} {
		if err := boolean(key, dst); err != nil {
			return err
		}
	}
	for key, dst := range map[string]*int{
		"WINDOW_WIDTH":  &p.Window.Width,
		"WINDOW_HEIGHT": &p.Window.Height,
		"TARGET_FPS":    &p.Window.TargetFPS,
	} {
		if err := integer(key, dst); err != nil {
			return err
		}
	}
	return nil
}
