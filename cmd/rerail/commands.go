package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/beetlebugorg/rerail/pkg/rerail"
)

var errUsage = errors.New("invalid arguments")

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// viewportFlags registers the flags describing a single viewport.
func viewportFlags(fs *flag.FlagSet) *rerail.ViewportSpec {
	spec := &rerail.ViewportSpec{Width: 800, Height: 600, Zoom: 100}
	fs.Func("x", "world x of the left edge", int32Flag(&spec.LeftX))
	fs.Func("y", "world y of the top edge", int32Flag(&spec.TopY))
	fs.Func("width", "viewport width in pixels (default 800)", int32Flag(&spec.Width))
	fs.Func("height", "viewport height in pixels (default 600)", int32Flag(&spec.Height))
	fs.Func("zoom", "world units per pixel (default 100)", int32Flag(&spec.Zoom))
	return spec
}

func int32Flag(dst *int32) func(string) error {
	return func(s string) error {
		var v int32
		if _, err := fmt.Sscan(s, &v); err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// loadMap loads the single map file named by fs's remaining argument and
// applies the config file, if any.
func loadMap(fs *flag.FlagSet, configPath string) (*rerail.Map, error) {
	if fs.NArg() != 1 {
		fs.Usage()
		return nil, errUsage
	}
	m, err := rerail.LoadFile(fs.Arg(0))
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		cfg, err := rerail.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		m.SetConfig(cfg)
	}
	return m, nil
}

type mapInfo struct {
	Stations      int          `json:"stations"`
	Railways      int          `json:"railways"`
	BorderPoints  int          `json:"borderPoints"`
	RailwayPoints int          `json:"railwayPoints"`
	BorderEdges   int          `json:"borderEdges"`
	Bounds        *rerail.Rect `json:"bounds,omitempty"`
}

func summarize(m *rerail.Map) mapInfo {
	info := mapInfo{
		Stations:     m.StationCount(),
		Railways:     m.RailwayCount(),
		BorderPoints: m.BorderPointCount(),
	}
	var bounds *rerail.Rect
	grow := func(c rerail.Coord) {
		if bounds == nil {
			bounds = &rerail.Rect{Top: c.Y, Bottom: c.Y, Left: c.X, Right: c.X}
			return
		}
		bounds.Top = min(bounds.Top, c.Y)
		bounds.Bottom = max(bounds.Bottom, c.Y)
		bounds.Left = min(bounds.Left, c.X)
		bounds.Right = max(bounds.Right, c.X)
	}
	for _, r := range m.Railways() {
		info.RailwayPoints += len(r.Points)
		for _, p := range r.Points {
			grow(p.Coord)
		}
	}
	for _, bp := range m.BorderPoints() {
		info.BorderEdges += len(bp.Neighbors)
		grow(bp.Coord)
	}
	info.BorderEdges /= 2
	info.Bounds = bounds
	return info
}

func runInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)
	m, err := loadMap(fs, "")
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, summarize(m))
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 2 {
		fs.Usage()
		return errUsage
	}
	m, err := rerail.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := m.SaveFile(fs.Arg(1)); err != nil {
		return err
	}
	log.Printf("wrote %s: %d railways, %d stations, %d border points",
		fs.Arg(1), m.RailwayCount(), m.StationCount(), m.BorderPointCount())
	return nil
}

func runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("o", "", "output file (default stdout)")
	fs.Parse(args)
	m, err := loadMap(fs, "")
	if err != nil {
		return err
	}
	data, err := m.GeoJSON()
	if err != nil {
		return err
	}
	if *out == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(*out, data, 0o644)
}

type railwayEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func runRailways(args []string) error {
	fs := flag.NewFlagSet("railways", flag.ExitOnError)
	spec := viewportFlags(fs)
	configPath := fs.String("config", "", "presentation config (toml, yaml or json)")
	fs.Parse(args)
	m, err := loadMap(fs, *configPath)
	if err != nil {
		return err
	}
	vp, err := rerail.NewViewport(*spec)
	if err != nil {
		return err
	}
	list := m.RailwaysInViewport(vp)
	out := make([]railwayEntry, len(list.IDs))
	for i, id := range list.IDs {
		out[i] = railwayEntry{ID: id.String(), Name: list.Names[i]}
	}
	return writeJSON(os.Stdout, out)
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	spec := viewportFlags(fs)
	configPath := fs.String("config", "", "presentation config (toml, yaml or json)")
	fs.Parse(args)
	m, err := loadMap(fs, *configPath)
	if err != nil {
		return err
	}
	vp, err := rerail.NewViewport(*spec)
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, m.Render(vp, rerail.RenderOptions{}))
}

// tile is the file written for one cell of the grid.
type tile struct {
	Row       int                   `json:"row"`
	Col       int                   `json:"col"`
	Viewport  rerail.ViewportSpec   `json:"viewport"`
	Rendering *rerail.RenderingInfo `json:"rendering"`
}

func runTiles(args []string) error {
	fs := flag.NewFlagSet("tiles", flag.ExitOnError)
	var left, top, zoom, size int32 = 0, 0, 100, 256
	fs.Func("x", "world x of the grid's left edge", int32Flag(&left))
	fs.Func("y", "world y of the grid's top edge", int32Flag(&top))
	fs.Func("zoom", "world units per pixel (default 100)", int32Flag(&zoom))
	fs.Func("tile", "tile size in pixels (default 256)", int32Flag(&size))
	cols := fs.Int("cols", 4, "tiles per row")
	rows := fs.Int("rows", 4, "tile rows")
	outDir := fs.String("out", "tiles", "output directory")
	workers := fs.Int("workers", 0, "concurrent renders (0 = unlimited)")
	configPath := fs.String("config", "", "presentation config (toml, yaml or json)")
	fs.Parse(args)

	m, err := loadMap(fs, *configPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	// renders share the map; nothing edits it meanwhile
	g, ctx := errgroup.WithContext(context.Background())
	if *workers > 0 {
		g.SetLimit(*workers)
	}
	span := int64(size) * int64(zoom)
	if int64(left)+int64(*cols)*span > math.MaxInt32 || int64(top)+int64(*rows)*span > math.MaxInt32 {
		return fmt.Errorf("a %dx%d grid at zoom %d exceeds the coordinate range", *cols, *rows, zoom)
	}
	for row := range *rows {
		for col := range *cols {
			x := int64(left) + int64(col)*span
			y := int64(top) + int64(row)*span
			spec := rerail.ViewportSpec{
				LeftX:  int32(x),
				TopY:   int32(y),
				Width:  size,
				Height: size,
				Zoom:   zoom,
			}
			g.Go(func() error {
				return renderTile(ctx, m, *outDir, tile{Row: row, Col: col, Viewport: spec})
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	log.Printf("rendered %d tiles into %s", *rows * *cols, *outDir)
	return nil
}

func renderTile(ctx context.Context, m *rerail.Map, dir string, t tile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	vp, err := rerail.NewViewport(t.Viewport)
	if err != nil {
		return fmt.Errorf("tile %d,%d: %w", t.Row, t.Col, err)
	}
	t.Rendering = m.Render(vp, rerail.RenderOptions{})

	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("tile_%d_%d.json", t.Row, t.Col)))
	if err != nil {
		return err
	}
	if err := writeJSON(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	serial := fs.Bool("serial", false, "load files one at a time")
	fs.Parse(args)
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	opts := rerail.DefaultLoadOptions()
	opts.Parallel = !*serial
	opts.ErrorLog = os.Stderr
	maps, errs := rerail.LoadFiles(fs.Args(), opts)
	for _, mf := range maps {
		info := summarize(mf.Map)
		log.Printf("%s: ok (%d railways, %d stations, %d border points)",
			mf.Path, info.Railways, info.Stations, info.BorderPoints)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%d of %d files failed", len(errs), fs.NArg())
	}
	return nil
}
