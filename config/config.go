// Package config provides configuration loading and access for the simulator.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulator configuration.
type Config struct {
	Screen        ScreenConfig        `yaml:"screen" envPrefix:"SCREEN_"`
	Parameters    ParametersConfig    `yaml:"parameters" envPrefix:"PARAM_"`
	Sliders       SlidersConfig       `yaml:"sliders"`
	Extrapolation ExtrapolationConfig `yaml:"extrapolation" envPrefix:"EXTRAPOLATION_"`
	Stabilize     StabilizeConfig     `yaml:"stabilize" envPrefix:"STABILIZE_"`
	Output        OutputConfig        `yaml:"output" envPrefix:"OUTPUT_"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width" env:"WIDTH"`
	Height    int    `yaml:"height" env:"HEIGHT"`
	TargetFPS int    `yaml:"target_fps" env:"TARGET_FPS"`
	Title     string `yaml:"title"`
	Homepage  string `yaml:"homepage"`
}

// ParametersConfig holds the startup projection parameters.
type ParametersConfig struct {
	InitialPopulation  uint64  `yaml:"initial_population" env:"INITIAL_POPULATION"`
	Years              int     `yaml:"years" env:"YEARS"`
	MaxAge             int     `yaml:"max_age" env:"MAX_AGE"`
	MalesPer100Females int     `yaml:"males_per_100_females" env:"MALES_PER_100_FEMALES"`
	TargetTFR          float64 `yaml:"target_tfr" env:"TARGET_TFR"`
	InfantMortality    float64 `yaml:"infant_mortality_rate" env:"INFANT_MORTALITY_RATE"`
	StabilizeOnStart   bool    `yaml:"stabilize_on_start" env:"STABILIZE_ON_START"`
}

// SliderRange bounds a slider.
type SliderRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// SlidersConfig holds the ranges of the parameter sliders.
type SlidersConfig struct {
	InitialPopulation SliderRange `yaml:"initial_population"` // log10 of the count
	Years             SliderRange `yaml:"years"`
	MalesPer100       SliderRange `yaml:"males_per_100_females"`
	InfantMortality   SliderRange `yaml:"infant_mortality_rate"`
	TargetTFR         SliderRange `yaml:"target_tfr"`
	PlaybackSpeed     SliderRange `yaml:"playback_speed"`
}

// ExtrapolationConfig holds live extrapolation settings.
type ExtrapolationConfig struct {
	Speed     float64 `yaml:"speed" env:"SPEED"`           // simulated years per wall-clock second
	RateYears int     `yaml:"rate_years" env:"RATE_YEARS"` // trailing years averaged for crude rates
}

// StabilizeConfig holds fertility solver settings.
type StabilizeConfig struct {
	InitialStep   float64 `yaml:"initial_step" env:"INITIAL_STEP"`
	MaxIterations int     `yaml:"max_iterations" env:"MAX_ITERATIONS"`
	CollapseRatio float64 `yaml:"collapse_ratio" env:"COLLAPSE_RATIO"` // end year = first year at or below initial * ratio
	MinTFR        float64 `yaml:"min_tfr"`
	MaxTFR        float64 `yaml:"max_tfr"`
}

// OutputConfig holds result output settings.
type OutputConfig struct {
	File string `yaml:"file" env:"FILE"`
	Dir  string `yaml:"dir" env:"DIR"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FrameTime      float64 // 1 / TargetFPS
	MinLogPopSlide float32
	MaxLogPopSlide float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults,
// then applies LUE_* environment overrides.
// If path is empty, only embedded defaults and the environment are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	cfg.computeDerived()

	return cfg, nil
}

// ParseEnv applies LUE_* environment variables on top of target.
// Unset variables leave the existing values untouched.
func ParseEnv(target any) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: "LUE_"}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.FrameTime = 1.0 / float64(fps)

	c.Derived.MinLogPopSlide = float32(c.Sliders.InitialPopulation.Min)
	c.Derived.MaxLogPopSlide = float32(c.Sliders.InitialPopulation.Max)

	if c.Extrapolation.RateYears < 1 {
		c.Extrapolation.RateYears = 1
	}
	if c.Stabilize.MaxTFR <= c.Stabilize.MinTFR {
		c.Stabilize.MinTFR, c.Stabilize.MaxTFR = 0, 3
	}
	if c.Stabilize.CollapseRatio <= 0 || math.IsNaN(c.Stabilize.CollapseRatio) {
		c.Stabilize.CollapseRatio = 1.0 / 3.0
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
