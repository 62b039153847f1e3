package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"
	"pkt.systems/mdpdf/pdf"
)

// fileConfig mirrors the geometry options plus the CLI defaults that
// make sense in a config file. Unknown keys are rejected so typos do
// not silently fall back to defaults.
type fileConfig struct {
	PageWidth    float64   `yaml:"page-width"`
	PageHeight   float64   `yaml:"page-height"`
	Margin       float64   `yaml:"margin"`
	FontSize     float64   `yaml:"font-size"`
	LineHeight   float64   `yaml:"line-height"`
	HeadingScale []float64 `yaml:"heading-scale"`
	Title        string    `yaml:"title"`
	Workers      int       `yaml:"workers"`
}

func loadConfigFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc fileConfig
	if err := yaml.UnmarshalWithOptions(data, &fc, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if max := len(pdf.DefaultConfig().HeadingScale); len(fc.HeadingScale) > max {
		return nil, fmt.Errorf("parse %s: heading-scale lists %d levels, at most %d supported", path, len(fc.HeadingScale), max)
	}
	return &fc, nil
}

// apply copies positive fields onto cfg. Zero and negative values keep
// the existing configuration.
func (fc *fileConfig) apply(cfg *pdf.Config) {
	if fc.PageWidth > 0 {
		cfg.PageWidth = fc.PageWidth
	}
	if fc.PageHeight > 0 {
		cfg.PageHeight = fc.PageHeight
	}
	if fc.Margin > 0 {
		cfg.Margin = fc.Margin
	}
	if fc.FontSize > 0 {
		cfg.FontSize = fc.FontSize
	}
	if fc.LineHeight > 0 {
		cfg.LineHeight = fc.LineHeight
	}
	for i, scale := range fc.HeadingScale {
		if scale > 0 {
			cfg.HeadingScale[i] = scale
		}
	}
}

// applyFlagOverrides copies the values of flags the user actually set
// onto cfg, so explicit flags win over the config file.
func applyFlagOverrides(cfg *pdf.Config, flags *pflag.FlagSet, values pdf.Config) {
	if flags.Changed("page-width") {
		cfg.PageWidth = values.PageWidth
	}
	if flags.Changed("page-height") {
		cfg.PageHeight = values.PageHeight
	}
	if flags.Changed("margin") {
		cfg.Margin = values.Margin
	}
	if flags.Changed("font-size") {
		cfg.FontSize = values.FontSize
	}
	if flags.Changed("line-height") {
		cfg.LineHeight = values.LineHeight
	}
	for i := range values.HeadingScale {
		if flags.Changed(fmt.Sprintf("h%d-scale", i+1)) {
			cfg.HeadingScale[i] = values.HeadingScale[i]
		}
	}
}
