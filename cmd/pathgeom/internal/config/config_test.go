package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/tdewolff/test"
	"honnef.co/go/geom"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestResolveDefaults(t *testing.T) {
	res, err := Resolve(t.TempDir())
	test.Error(t, err)
	test.Float(t, res.Flatness, 0.1)
	test.T(t, res.Limit, geom.DefaultRecursionLimit)
	test.T(t, res.Winding, geom.NonZero)
	test.T(t, res.Width, 256)
	test.T(t, res.Height, 256)
	test.T(t, res.LogLevel, slog.LevelWarn)
	test.That(t, res.Transform == nil, "unexpected transform")
}

func TestResolveFile(t *testing.T) {
	dir := writeConfig(t, `
flatten:
  flatness: 0.5
  limit: 4
winding: even-odd
transform: [2, 0, 0, 2, 10, 5]
raster:
  width: 64
  height: 32
log_level: debug
`)
	res, err := Resolve(dir)
	test.Error(t, err)
	test.Float(t, res.Flatness, 0.5)
	test.T(t, res.Limit, 4)
	test.T(t, res.Winding, geom.EvenOdd)
	test.T(t, res.Width, 64)
	test.T(t, res.Height, 32)
	test.T(t, res.LogLevel, slog.LevelDebug)
	test.That(t, res.Transform != nil, "missing transform")
	test.T(t, res.Transform.Matrix(), [6]float64{2, 0, 0, 2, 10, 5})
	test.T(t, len(res.FlattenOptions()), 1)
}

func TestResolveWinding(t *testing.T) {
	tests := []struct {
		name string
		want geom.WindingRule
	}{
		{"", geom.NonZero},
		{"nonzero", geom.NonZero},
		{" NonZero ", geom.NonZero},
		{"non-zero", geom.NonZero},
		{"evenodd", geom.EvenOdd},
		{"EVEN-ODD", geom.EvenOdd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := (&Config{Winding: tt.name}).Resolve()
			test.Error(t, err)
			test.T(t, res.Winding, tt.want)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"flatness", Config{Flatten: FlattenConfig{Flatness: -1}}},
		{"limit", Config{Flatten: FlattenConfig{Limit: -1}}},
		{"raster", Config{Raster: RasterConfig{Width: -1}}},
		{"winding", Config{Winding: "sideways"}},
		{"transform", Config{Transform: []float64{1, 0, 0}}},
		{"log level", Config{LogLevel: "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cfg.Resolve()
			test.That(t, err != nil, "expected error")
		})
	}
}

func TestResolveShortTransform(t *testing.T) {
	res, err := (&Config{Transform: []float64{0, 1, -1, 0}}).Resolve()
	test.Error(t, err)
	test.That(t, res.Transform != nil, "missing transform")
	test.T(t, res.Transform.Type(), geom.TypeQuadrantRotation)
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	test.Error(t, err)
	test.T(t, *cfg, Config{})

	_, err = LoadOptional(writeConfig(t, "flatten: [1, 2"))
	test.That(t, err != nil, "expected parse error")
}
