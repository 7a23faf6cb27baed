// Package config loads tracker settings from a YAML file and the environment.
//
// Precedence, lowest first: built-in defaults, the YAML file, environment
// variables. With the prefix "ALMOSTOVER_", the variable
// ALMOSTOVER_DISTANCE_THRESHOLD sets the distance_threshold key.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/makinacorpus/almostover"
	"github.com/rs/zerolog"
)

// DefaultEnvPrefix is the environment variable prefix used by the example binaries.
const DefaultEnvPrefix = "ALMOSTOVER_"

// Settings is the file/environment form of almostover.Options.
type Settings struct {
	// DistanceThreshold is the near-miss distance in screen pixels.
	DistanceThreshold float64 `koanf:"distance_threshold" yaml:"distance_threshold" validate:"gte=0"`
	// SamplingPeriod is a Go duration string such as "50ms".
	SamplingPeriod time.Duration `koanf:"sampling_period" yaml:"sampling_period" validate:"gte=0"`
	// MovementTracking enables enter/move/leave events.
	MovementTracking bool `koanf:"movement_tracking" yaml:"movement_tracking"`
	// Metric is "planar" or "geodesic".
	Metric string `koanf:"metric" yaml:"metric" validate:"oneof=planar geodesic"`
	// Index is "none" or "rtree".
	Index string `koanf:"index" yaml:"index" validate:"oneof=none rtree"`
	// LogLevel is a zerolog level name.
	LogLevel string `koanf:"log_level" yaml:"log_level" validate:"oneof=trace debug info warn error disabled"`
}

// Defaults returns the settings matching almostover.DefaultOptions.
func Defaults() Settings {
	o := almostover.DefaultOptions()
	return Settings{
		DistanceThreshold: o.DistanceThreshold,
		SamplingPeriod:    o.SamplingPeriod,
		MovementTracking:  o.MovementTracking,
		Metric:            "planar",
		Index:             "none",
		LogLevel:          "info",
	}
}

var validate = validator.New()

// Load reads settings from the YAML file at path (skipped when path is
// empty) and then from environment variables starting with envPrefix
// (skipped when envPrefix is empty), on top of Defaults.
func Load(path, envPrefix string) (Settings, error) {
	k := koanf.New(".")

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := k.Load(rawBytes(data), yamlParser{}); err != nil {
			return Settings{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if envPrefix != "" {
		cb := func(s string) string {
			return strings.ToLower(strings.TrimPrefix(s, envPrefix))
		}
		if err := k.Load(env.Provider(envPrefix, ".", cb), nil); err != nil {
			return Settings{}, fmt.Errorf("load environment: %w", err)
		}
	}

	s := Defaults()
	if err := k.Unmarshal("", &s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks every field against its constraints.
func (s Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Options converts the settings into tracker options. A fresh R-tree is
// created when Index is "rtree".
func (s Settings) Options() almostover.Options {
	o := almostover.DefaultOptions()
	o.DistanceThreshold = s.DistanceThreshold
	o.SamplingPeriod = s.SamplingPeriod
	o.MovementTracking = s.MovementTracking
	if s.Metric == "geodesic" {
		o.Metric = almostover.Geodesic
	}
	if s.Index == "rtree" {
		o.Index = almostover.NewRTreeIndex()
	}
	return o
}

// Logger returns a zerolog logger writing to w at LogLevel.
func (s Settings) Logger(w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
