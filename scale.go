package uibind

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
)

// epsilon is the machine epsilon for float64. Added before rounding so .5
// boundary cases bias consistently upward instead of flickering on binary
// rounding; the bias is deliberate and applied regardless of the sign of
// the scale delta.
const epsilon = 0x1p-52

// referenceDPI is the logical DPI at which the scale factor is 1.
const referenceDPI = 192.0

// ScaleAuto derives the factor from the primary display instead of a
// fixed number.
const ScaleAuto = "auto"

// DisplayDPIFunc reports the primary display's logical dots per inch.
type DisplayDPIFunc func() (float64, error)

// Rect is an integer rectangle scaled element-wise.
type Rect struct {
	X, Y, Width, Height int
}

// Scaler converts geometry values through the active scale factor.
//
// The factor resolves once per process: an explicit SCALE preference is
// parsed at construction; "auto" derives displayDPI/192 lazily on first
// use and caches the result. The cache write is atomic and idempotent
// (last writer wins; the value is deterministic for a given display
// state), so concurrent first calls need no lock.
type Scaler struct {
	explicit float64 // 0 means auto
	display  DisplayDPIFunc
	logger   *slog.Logger
	cached   atomic.Uint64 // math.Float64bits of the derived factor; 0 = unresolved
}

// newScaler parses the scale preference from the store. A present value
// that is neither "auto" nor a positive number is an invalid selection,
// not a silent default.
func newScaler(store *Store, display DisplayDPIFunc, logger *slog.Logger) (*Scaler, error) {
	s := &Scaler{display: display, logger: logger}

	raw := strings.ToLower(strings.TrimSpace(store.Get(KeyScale, ScaleAuto)))
	if raw == ScaleAuto {
		return s, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f <= 0 {
		return nil, fmt.Errorf("%w: %s=%q is not %q or a positive number",
			ErrInvalidSelection, KeyScale, raw, ScaleAuto)
	}
	s.explicit = f
	return s, nil
}

// Factor returns the active scale factor, deriving and caching it on
// first use when the preference is "auto".
func (s *Scaler) Factor() float64 {
	if s.explicit > 0 {
		return s.explicit
	}
	if bits := s.cached.Load(); bits != 0 {
		return math.Float64frombits(bits)
	}

	factor := 1.0
	switch {
	case s.display == nil:
		s.logger.Warn("no display probe configured; assuming scale factor 1")
	default:
		dpi, err := s.display()
		if err != nil {
			s.logger.Warn("display DPI probe failed; assuming scale factor 1", "error", err)
		} else if dpi <= 0 {
			s.logger.Warn("display reported non-positive DPI; assuming scale factor 1", "dpi", dpi)
		} else {
			factor = dpi / referenceDPI
		}
	}

	s.cached.Store(math.Float64bits(factor))
	return factor
}

// Invalidate clears a factor derived from "auto" so the next call
// re-queries the display. An explicit preference is unaffected.
func (s *Scaler) Invalidate() {
	s.cached.Store(0)
}

// Dim scales a single integer dimension, rounding with the upward bias so
// a 1-pixel dimension survives a 0.5 factor.
func (s *Scaler) Dim(v int) int {
	factor := s.Factor()
	if factor == 1 {
		return v
	}
	return scaleInt(v, factor)
}

// Rect scales x, y, width and height independently.
func (s *Scaler) Rect(r Rect) Rect {
	factor := s.Factor()
	if factor == 1 {
		return r
	}
	return Rect{
		X:      scaleInt(r.X, factor),
		Y:      scaleInt(r.Y, factor),
		Width:  scaleInt(r.Width, factor),
		Height: scaleInt(r.Height, factor),
	}
}

// Slice scales a sequence element-wise, preserving order. At factor 1 the
// input slice itself is returned; otherwise a fresh slice of equal length.
func (s *Scaler) Slice(vs []int) []int {
	factor := s.Factor()
	if factor == 1 {
		return vs
	}
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i] = scaleInt(v, factor)
	}
	return out
}

// Values scales multiple positional values, fixed-arity: callers
// destructure the result positionally.
func (s *Scaler) Values(vs ...int) []int {
	return s.Slice(vs)
}

// Float scales a floating value directly, with no rounding bias.
func (s *Scaler) Float(v float64) float64 {
	factor := s.Factor()
	if factor == 1 {
		return v
	}
	return v * factor
}

func scaleInt(v int, factor float64) int {
	return int(math.Round(float64(v)*factor + epsilon))
}
