// Package display abstracts the pixel-scale factor of the target display.
// The scale is resolved once at startup and injected into everything that
// builds image URLs; business logic never queries the host directly.
package display

import (
	"os"
	"strconv"
)

// MinScale and MaxScale bound the supported pixel densities (1x, 2x, 3x).
const (
	MinScale     = 1
	MaxScale     = 3
	DefaultScale = 1
)

// Provider reports the pixel scale factor of the display the instructions
// will be rendered on.
type Provider interface {
	Scale() int
}

// FixedProvider always reports the same scale factor.
type FixedProvider struct {
	scale int
}

// Fixed returns a provider that reports the given scale, clamped to the
// supported range.
func Fixed(scale int) *FixedProvider {
	return &FixedProvider{scale: Clamp(scale)}
}

// Scale returns the fixed scale factor.
func (p *FixedProvider) Scale() int {
	return p.scale
}

// EnvProvider reads the scale factor from the DISPLAY_SCALE environment
// variable, falling back to DefaultScale when unset or malformed.
type EnvProvider struct{}

// FromEnv returns an environment-backed provider.
func FromEnv() *EnvProvider {
	return &EnvProvider{}
}

// Scale returns the configured scale factor.
func (p *EnvProvider) Scale() int {
	v := os.Getenv("DISPLAY_SCALE")
	if v == "" {
		return DefaultScale
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return DefaultScale
	}
	return Clamp(n)
}

// Clamp bounds a scale factor to the supported range.
func Clamp(n int) int {
	if n < MinScale {
		return MinScale
	}
	if n > MaxScale {
		return MaxScale
	}
	return n
}
