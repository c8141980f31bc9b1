//go:build linux || darwin

package uibind_test

import (
	"errors"
	"os"
	"testing"

	"github.com/lixenwraith/uibind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qt6Registry() *uibind.Registry {
	registry := uibind.NewRegistry()
	registry.Register(uibind.APIQt6, &fakeDriver{
		info: uibind.DriverInfo{Version: "6.7.2", ToolkitVersion: "6.7.2"},
	})
	return registry
}

func scalerWithFactor(t *testing.T, prefix, scale string) *uibind.Scaler {
	t.Helper()
	os.Setenv(prefix+"SCALE", scale)

	env, err := newEnvBuilder(t, prefix, qt6Registry()).Build()
	require.NoError(t, err)
	return env.Scaler()
}

func TestScalerExplicit(t *testing.T) {
	t.Run("Integer Factor", func(t *testing.T) {
		s := scalerWithFactor(t, "SC1_", "2")

		assert.Equal(t, 2.0, s.Factor())
		assert.Equal(t, 20, s.Dim(10))
		assert.Equal(t,
			uibind.Rect{X: 20, Y: 40, Width: 60, Height: 80},
			s.Rect(uibind.Rect{X: 10, Y: 20, Width: 30, Height: 40}))
	})

	t.Run("Fractional Factor", func(t *testing.T) {
		s := scalerWithFactor(t, "SC2_", "1.5")

		assert.Equal(t, 15, s.Dim(10))
		assert.Equal(t, []int{3, 5, 8}, s.Values(2, 3, 5))
		assert.Equal(t, 3.0, s.Float(2))
	})

	t.Run("Halving Rounds Up At The Boundary", func(t *testing.T) {
		s := scalerWithFactor(t, "SC3_", "0.5")

		// 1*0.5 and 3*0.5 land exactly on .5; the bias keeps them from
		// collapsing to even.
		assert.Equal(t, 1, s.Dim(1))
		assert.Equal(t, 2, s.Dim(3))
		assert.Equal(t, 1, s.Dim(2))
	})

	t.Run("Factor One Is Identity", func(t *testing.T) {
		s := scalerWithFactor(t, "SC4_", "1")

		assert.Equal(t, 7, s.Dim(7))
		in := []int{1, 2, 3}
		out := s.Slice(in)
		require.NotEmpty(t, out)
		assert.Same(t, &in[0], &out[0], "identity scaling must not copy")

		r := uibind.Rect{X: 1, Y: 2, Width: 3, Height: 4}
		assert.Equal(t, r, s.Rect(r))
	})
}

func TestScalerAuto(t *testing.T) {
	t.Run("Derives Once From Display DPI", func(t *testing.T) {
		probes := 0
		env, err := newEnvBuilder(t, "SA1_", qt6Registry()).
			WithDisplayDPI(func() (float64, error) {
				probes++
				return 288, nil
			}).
			Build()
		require.NoError(t, err)

		s := env.Scaler()
		assert.Equal(t, 1.5, s.Factor())
		assert.Equal(t, 1.5, s.Factor())
		assert.Equal(t, 1, probes, "auto factor must be derived once and cached")

		s.Invalidate()
		assert.Equal(t, 1.5, s.Factor())
		assert.Equal(t, 2, probes)
	})

	t.Run("Probe Failure Falls Back To One", func(t *testing.T) {
		env, err := newEnvBuilder(t, "SA2_", qt6Registry()).
			WithDisplayDPI(func() (float64, error) {
				return 0, errors.New("no display")
			}).
			Build()
		require.NoError(t, err)

		assert.Equal(t, 1.0, env.Scaler().Factor())
	})

	t.Run("No Probe Falls Back To One", func(t *testing.T) {
		env, err := newEnvBuilder(t, "SA3_", qt6Registry()).Build()
		require.NoError(t, err)

		assert.Equal(t, 1.0, env.Scaler().Factor())
	})
}

func TestScalerInvalidPreference(t *testing.T) {
	for _, raw := range []string{"huge", "-2", "0"} {
		t.Run(raw, func(t *testing.T) {
			os.Setenv("SI1_SCALE", raw)

			_, err := newEnvBuilder(t, "SI1_", qt6Registry()).Build()
			assert.ErrorIs(t, err, uibind.ErrInvalidSelection)
		})
	}
}
