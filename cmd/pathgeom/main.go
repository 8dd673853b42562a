// Command pathgeom inspects and converts SVG path data.
package main

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"

	"github.com/tdewolff/argp"
	"honnef.co/go/geom"
	"honnef.co/go/geom/cmd/pathgeom/internal/config"
)

type Main struct{}

type Flatten struct {
	Config   string  `short:"c" default:"." desc:"Directory containing pathgeom.yaml"`
	Flatness float64 `short:"f" desc:"Flatness, overriding the configuration"`
	Path     string  `index:"0" desc:"SVG path data"`
}

type Contains struct {
	Config string  `short:"c" default:"." desc:"Directory containing pathgeom.yaml"`
	X      float64 `short:"x" desc:"X coordinate"`
	Y      float64 `short:"y" desc:"Y coordinate"`
	Width  float64 `short:"W" desc:"Width of the rectangle to test"`
	Height float64 `short:"H" desc:"Height of the rectangle to test"`
	Path   string  `index:"0" desc:"SVG path data"`
}

type Bounds struct {
	Config string `short:"c" default:"." desc:"Directory containing pathgeom.yaml"`
	Path   string `index:"0" desc:"SVG path data"`
}

type Encode struct {
	Config string `short:"c" default:"." desc:"Directory containing pathgeom.yaml"`
	Single bool   `desc:"Store coordinates with 32-bit precision"`
	Output string `short:"o" desc:"Output file"`
	Path   string `index:"0" desc:"SVG path data"`
}

type Decode struct {
	Config string `short:"c" default:"." desc:"Directory containing pathgeom.yaml"`
	Input  string `index:"0" desc:"Input file"`
}

type Raster struct {
	Config string `short:"c" default:"." desc:"Directory containing pathgeom.yaml"`
	Output string `short:"o" desc:"Output PNG file"`
	Path   string `index:"0" desc:"SVG path data"`
}

func main() {
	root := argp.NewCmd(&Main{}, "Path geometry toolkit")
	root.AddCmd(&Flatten{}, "flatten", "Replace curves by lines")
	root.AddCmd(&Contains{}, "contains", "Test whether a point or rectangle is inside a path")
	root.AddCmd(&Bounds{}, "bounds", "Print the bounds of a path")
	root.AddCmd(&Encode{}, "encode", "Convert SVG path data to the binary path encoding")
	root.AddCmd(&Decode{}, "decode", "Convert the binary path encoding to SVG path data")
	root.AddCmd(&Raster{}, "raster", "Fill a path into a PNG image")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Main) Run() error {
	return argp.ShowUsage
}

// load resolves the configuration and sets up logging.
func load(dir string) (*config.Resolved, error) {
	cfg, err := config.Resolve(dir)
	if err != nil {
		return nil, err
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})
	geom.SetLogger(slog.New(h))
	return cfg, nil
}

// parse parses SVG path data, applying the configured winding rule and
// transform.
func parse(cfg *config.Resolved, d string) (*geom.Path64, error) {
	if d == "" {
		return nil, argp.ShowUsage
	}
	p, err := geom.ParseSVGPath[float64](d)
	if err != nil {
		return nil, err
	}
	if err := p.SetWindingRule(cfg.Winding); err != nil {
		return nil, err
	}
	if cfg.Transform != nil {
		p.Transform(cfg.Transform)
	}
	return p, nil
}

func create(name string) (io.WriteCloser, error) {
	if name == "" || name == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(name)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func (cmd *Flatten) Run() error {
	cfg, err := load(cmd.Config)
	if err != nil {
		return err
	}
	p, err := parse(cfg, cmd.Path)
	if err != nil {
		return err
	}
	flatness := cfg.Flatness
	if cmd.Flatness != 0 {
		flatness = cmd.Flatness
	}
	it, err := p.Flatten(flatness, cfg.FlattenOptions()...)
	if err != nil {
		return err
	}
	fmt.Println(geom.SVG(it))
	return nil
}

func (cmd *Contains) Run() error {
	cfg, err := load(cmd.Config)
	if err != nil {
		return err
	}
	p, err := parse(cfg, cmd.Path)
	if err != nil {
		return err
	}
	if cmd.Width > 0 && cmd.Height > 0 {
		r := geom.NewRectFromOrigin(geom.Pt(cmd.X, cmd.Y), geom.Sz(cmd.Width, cmd.Height))
		fmt.Println("contains:", p.ContainsRect(r))
		fmt.Println("intersects:", p.IntersectsRect(r))
		return nil
	}
	fmt.Println(p.Contains(cmd.X, cmd.Y))
	return nil
}

func (cmd *Bounds) Run() error {
	cfg, err := load(cmd.Config)
	if err != nil {
		return err
	}
	p, err := parse(cfg, cmd.Path)
	if err != nil {
		return err
	}
	fmt.Println("control:", p.ControlBounds())
	fmt.Println("tight:", p.Bounds())
	fmt.Println("pixels:", geom.RasterBounds(p.Iterator(nil)))
	return nil
}

func (cmd *Encode) Run() (err error) {
	cfg, err := load(cmd.Config)
	if err != nil {
		return err
	}
	p, err := parse(cfg, cmd.Path)
	if err != nil {
		return err
	}
	f, err := create(cmd.Output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	w := bufio.NewWriter(f)
	if cmd.Single {
		var p32 *geom.Path32
		if p32, err = geom.NewPathFrom[float32](p.Iterator(nil), nil); err != nil {
			return err
		}
		err = geom.WritePath(w, p32)
	} else {
		err = geom.WritePath(w, p)
	}
	if err != nil {
		return err
	}
	return w.Flush()
}

func (cmd *Decode) Run() error {
	if _, err := load(cmd.Config); err != nil {
		return err
	}
	var r io.Reader = os.Stdin
	if cmd.Input != "" && cmd.Input != "-" {
		f, err := os.Open(cmd.Input)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	p, err := geom.ReadPath[float64](bufio.NewReader(r))
	if err != nil {
		return err
	}
	fmt.Println(p)
	return nil
}

func (cmd *Raster) Run() (err error) {
	cfg, err := load(cmd.Config)
	if err != nil {
		return err
	}
	p, err := parse(cfg, cmd.Path)
	if err != nil {
		return err
	}
	img := geom.Rasterize(p.Iterator(nil), image.Rect(0, 0, cfg.Width, cfg.Height), cfg.FlattenOptions()...)
	f, err := create(cmd.Output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
