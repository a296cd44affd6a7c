// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration structs for
// instanced scenes and the instanced tool, and the functions
// that load, save and apply them.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/instanced/base/logx"
	"cogentcore.org/instanced/base/reflectx"
	"cogentcore.org/instanced/pipeline"
	"cogentcore.org/instanced/xyz"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config is the main config struct that contains all of
// the configuration options for the instanced tool.
type Config struct {

	// the configuration of the default pipeline
	Pipeline Pipeline `desc:"the configuration of the default pipeline"`

	// the configuration of transform composition
	Transform Transform `desc:"the configuration of transform composition"`

	// the configuration of logging
	Log Log `desc:"the configuration of logging"`

	// the object stream read and written by the commands
	Stream Stream `desc:"the object stream read and written by the commands"`

	// the configuration options for the grid command
	Grid Grid `desc:"the configuration options for the grid command"`

	// the configuration options for the dump command
	Dump Dump `desc:"the configuration options for the dump command"`

	// the configuration options for the simulate command
	Simulate Simulate `desc:"the configuration options for the simulate command"`
}

type Pipeline struct {

	// the name of the default pipeline
	Name string `default:"default" desc:"the name of the default pipeline"`

	// the number of stages; ignored when StageNames is set
	NumStages int `default:"3" desc:"the number of stages; ignored when StageNames is set"`

	// the names of the stages, in pipeline order
	StageNames []string `desc:"the names of the stages, in pipeline order"`
}

type Transform struct {

	// the number of composed transforms to cache; negative disables the cache
	CacheSize int `default:"4096" desc:"the number of composed transforms to cache; negative disables the cache"`
}

type Log struct {

	// the minimum level of log messages to print (debug, info, warn, error)
	Level string `default:"info" flag:"log-level" desc:"the minimum level of log messages to print (debug, info, warn, error)"`
}

type Stream struct {

	// the path of the object stream file
	Path string `default:"scene.xyzo" flag:"s,stream" desc:"the path of the object stream file"`
}

type Grid struct {

	// the number of rows of instances
	Rows int `default:"4" desc:"the number of rows of instances"`

	// the number of columns of instances
	Cols int `default:"4" desc:"the number of columns of instances"`

	// the distance between neighboring instances
	Spacing float32 `default:"2" desc:"the distance between neighboring instances"`
}

type Dump struct {

	// the output format (text or yaml)
	Format string `default:"text" flag:"f,format" desc:"the output format (text or yaml)"`

	// keep running and dump the stream again whenever it changes
	Watch bool `flag:"w,watch" desc:"keep running and dump the stream again whenever it changes"`
}

type Simulate struct {

	// the number of frames to run
	Frames int `default:"100" flag:"n,frames" desc:"the number of frames to run"`

	// the number of instances to animate
	Instances int `default:"64" desc:"the number of instances to animate"`
}

// Defaults fills the zero-valued fields of cfg from
// their `default:` field tags.
func Defaults(cfg *Config) error {
	return reflectx.SetFromDefaultTags(cfg)
}

// New returns a new [Config] with default values.
func New() *Config {
	cfg := &Config{}
	Defaults(cfg)
	return cfg
}

// Encoding is a config file format.
type Encoding int

const (
	TOML Encoding = iota
	YAML
)

// EncodingFor returns the encoding for the given file name,
// based on its extension.
func EncodingFor(file string) (Encoding, error) {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	}
	return TOML, fmt.Errorf("config: unsupported config file extension for %q", file)
}

// Open reads the given config file into cfg, choosing the
// encoding from the file extension. Fields not present in the
// file keep their current values.
func Open(cfg any, file string) error {
	enc, err := EncodingFor(file)
	if err != nil {
		return err
	}
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return Read(cfg, f, enc)
}

// Read decodes cfg from r with the given encoding.
func Read(cfg any, r io.Reader, enc Encoding) error {
	var err error
	switch enc {
	case TOML:
		err = toml.NewDecoder(r).Decode(cfg)
	case YAML:
		err = yaml.NewDecoder(r).Decode(cfg)
		if err == io.EOF {
			err = nil
		}
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Save writes cfg to the given file, choosing the encoding
// from the file extension.
func Save(cfg any, file string) error {
	enc, err := EncodingFor(file)
	if err != nil {
		return err
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	err = Write(cfg, f, enc)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Write encodes cfg to w with the given encoding.
func Write(cfg any, w io.Writer, enc Encoding) error {
	switch enc {
	case TOML:
		return toml.NewEncoder(w).Encode(cfg)
	case YAML:
		ye := yaml.NewEncoder(w)
		ye.SetIndent(2)
		if err := ye.Encode(cfg); err != nil {
			return err
		}
		return ye.Close()
	}
	return fmt.Errorf("config: unknown encoding %d", enc)
}

// NewPipeline returns the pipeline described by cfg.
func (p *Pipeline) NewPipeline() *pipeline.Pipeline {
	if len(p.StageNames) > 0 {
		return pipeline.NewPipelineNamed(p.Name, p.StageNames...)
	}
	return pipeline.NewPipeline(p.Name, p.NumStages)
}

// Apply makes cfg take effect: it replaces [pipeline.Default],
// sizes the transform compose cache and sets the log level.
func Apply(cfg *Config) error {
	pipeline.SetDefault(cfg.Pipeline.NewPipeline())
	if err := xyz.SetComposeCacheSize(cfg.Transform.CacheSize); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logx.SetLevel(logx.ParseLevel(cfg.Log.Level))
	return nil
}
