// Package config reads the persisted conversion preferences.
//
// The file is YAML. Every key is optional; keys that are present override
// the options they are applied to, absent keys leave them alone. Unknown
// keys are an error so that typos do not go unnoticed.
//
//	gsi:
//	  gsi16: true
//	  line_ending_with_blank: false
//	points:
//	  sort: true
//	  use_zero_heights: false
//	  write_code: true
//	  source_contains_code: false
//	zeiss:
//	  dialect: M5
//	  zenith_distance: true
//	ltop:
//	  eliminate_duplicates: true
//	  duplicate_distance: "0.03"
//	  eliminate_zero_coordinates: true
//	processing:
//	  parallel: true
//	  workers: 4
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/beetlebugorg/gsiconv/internal/convert"
	"github.com/beetlebugorg/gsiconv/internal/zeiss"
)

// Config mirrors the YAML file. Nil fields were not set.
type Config struct {
	GSI        GSI        `yaml:"gsi,omitempty"`
	Points     Points     `yaml:"points,omitempty"`
	Zeiss      Zeiss      `yaml:"zeiss,omitempty"`
	LTOP       LTOP       `yaml:"ltop,omitempty"`
	Processing Processing `yaml:"processing,omitempty"`
}

type GSI struct {
	GSI16               *bool `yaml:"gsi16,omitempty"`
	LineEndingWithBlank *bool `yaml:"line_ending_with_blank,omitempty"`
}

type Points struct {
	Sort               *bool `yaml:"sort,omitempty"`
	UseZeroHeights     *bool `yaml:"use_zero_heights,omitempty"`
	WriteCode          *bool `yaml:"write_code,omitempty"`
	SourceContainsCode *bool `yaml:"source_contains_code,omitempty"`
}

type Zeiss struct {
	Dialect        *string `yaml:"dialect,omitempty"`
	ZenithDistance *bool   `yaml:"zenith_distance,omitempty"`
}

type LTOP struct {
	EliminateDuplicates      *bool   `yaml:"eliminate_duplicates,omitempty"`
	DuplicateDistance        *string `yaml:"duplicate_distance,omitempty"`
	EliminateZeroCoordinates *bool   `yaml:"eliminate_zero_coordinates,omitempty"`
}

type Processing struct {
	Parallel *bool `yaml:"parallel,omitempty"`
	Workers  *int  `yaml:"workers,omitempty"`
}

// Default returns a configuration holding the values of
// convert.DefaultOptions.
func Default() *Config {
	opts := convert.DefaultOptions()
	dialect := opts.Dialect.String()
	return &Config{
		GSI: GSI{
			GSI16:               ptr(opts.GSI16),
			LineEndingWithBlank: ptr(opts.LineEndingWithBlank),
		},
		Points: Points{
			Sort:               ptr(opts.SortOutput),
			UseZeroHeights:     ptr(opts.UseZeroHeights),
			WriteCode:          ptr(opts.WriteCodeColumn),
			SourceContainsCode: ptr(opts.SourceContainsCode),
		},
		Zeiss: Zeiss{
			Dialect:        &dialect,
			ZenithDistance: ptr(opts.UseZenithDistance),
		},
		LTOP: LTOP{
			EliminateDuplicates:      ptr(opts.EliminateDuplicates),
			DuplicateDistance:        ptr(opts.DuplicateDistance),
			EliminateZeroCoordinates: ptr(opts.EliminateZeroCoordinates),
		},
		Processing: Processing{
			Parallel: ptr(opts.Parallel),
			Workers:  ptr(opts.Workers),
		},
	}
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML document. An empty document is an empty
// configuration.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Apply copies every set value into opts. An unknown Zeiss dialect leaves
// opts untouched.
func (c *Config) Apply(opts *convert.Options) error {
	dialect := opts.Dialect
	if c.Zeiss.Dialect != nil {
		d, err := zeiss.ParseDialect(*c.Zeiss.Dialect)
		if err != nil {
			return fmt.Errorf("config zeiss.dialect: %w", err)
		}
		dialect = d
	}
	if c.Processing.Workers != nil && *c.Processing.Workers < 0 {
		return fmt.Errorf("config processing.workers: %d is negative", *c.Processing.Workers)
	}

	opts.Dialect = dialect
	set(&opts.GSI16, c.GSI.GSI16)
	set(&opts.LineEndingWithBlank, c.GSI.LineEndingWithBlank)
	set(&opts.SortOutput, c.Points.Sort)
	set(&opts.UseZeroHeights, c.Points.UseZeroHeights)
	set(&opts.WriteCodeColumn, c.Points.WriteCode)
	set(&opts.SourceContainsCode, c.Points.SourceContainsCode)
	set(&opts.UseZenithDistance, c.Zeiss.ZenithDistance)
	set(&opts.EliminateDuplicates, c.LTOP.EliminateDuplicates)
	set(&opts.DuplicateDistance, c.LTOP.DuplicateDistance)
	set(&opts.EliminateZeroCoordinates, c.LTOP.EliminateZeroCoordinates)
	set(&opts.Parallel, c.Processing.Parallel)
	set(&opts.Workers, c.Processing.Workers)
	return nil
}

func ptr[T any](v T) *T { return &v }

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
