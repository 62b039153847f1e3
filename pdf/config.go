package pdf

// Config holds page geometry and type settings for a render. All
// dimensions are in points (1/72 inch). Zero fields fall back to the
// defaults, so a partially filled Config is a valid override.
type Config struct {
	PageWidth    float64
	PageHeight   float64
	Margin       float64
	FontSize     float64
	LineHeight   float64
	HeadingScale [6]float64
}

// DefaultConfig returns the baseline geometry: A4 portrait, 40pt
// margin, 9pt monospace body with 1.6 leading.
func DefaultConfig() Config {
	return Config{
		PageWidth:  595,
		PageHeight: 842,
		Margin:     40,
		FontSize:   9,
		LineHeight: 1.6,
		HeadingScale: [6]float64{
			1.8,
			1.35,
			1.2,
			1.1,
			1.05,
			1.0,
		},
	}
}

func applyConfig(dst *Config, src Config) {
	if src.PageWidth > 0 {
		dst.PageWidth = src.PageWidth
	}
	if src.PageHeight > 0 {
		dst.PageHeight = src.PageHeight
	}
	if src.Margin > 0 {
		dst.Margin = src.Margin
	}
	if src.FontSize > 0 {
		dst.FontSize = src.FontSize
	}
	if src.LineHeight > 0 {
		dst.LineHeight = src.LineHeight
	}
	if src.HeadingScale != [6]float64{} {
		dst.HeadingScale = src.HeadingScale
	}
}
