// Command pathcovdemo rasterizes a set of demo shapes on the CPU, writes
// them to a PNG and reports which GPU tessellation ops the same shapes
// would record.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/gogpu/pathcov"
	"github.com/gogpu/pathcov/geom"
	"github.com/gogpu/pathcov/maskcache"
	"github.com/gogpu/pathcov/maskfilter"
	"github.com/gogpu/pathcov/raster"
	"github.com/gogpu/pathcov/tessellate"
)

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		output  = flag.String("output", "demo.png", "output file")
		verbose = flag.Bool("v", false, "log path selection")
	)
	flag.Parse()

	if *verbose {
		pathcov.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	dst := image.NewRGBA(image.Rect(0, 0, *width, *height))
	d := &raster.DrawBase{
		Clip:    geom.IRectWH(*width, *height),
		CTM:     geom.Identity(),
		Chooser: raster.RGBAChooser{Dst: dst},
	}
	blurs := maskcache.New(maskcache.DefaultOptions())

	drawBackground(d, *width, *height)
	drawShapes(d, blurs)
	drawStrokes(d)

	if err := savePNG(*output, dst); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)

	reportOps(*width, *height)
}

func drawBackground(d *raster.DrawBase, w, h int) {
	const steps = 100
	p := pathcov.NewPaint()
	p.AntiAlias = false
	for i := range steps {
		t := float64(i) / steps
		p.Color = rgb(0.1+t*0.4, 0.2+t*0.3, 0.4+t*0.2, 1)
		y := float64(h) * t
		d.DrawRect(geom.RectXYWH(0, y, float64(w), float64(h)/steps+1), p, nil, nil)
	}
}

func drawShapes(d *raster.DrawBase, blurs *maskcache.Cache) {
	p := pathcov.NewPaint()
	for i, c := range []color.NRGBA{rgb(1, 0.3, 0.3, 0.8), rgb(0.3, 1, 0.3, 0.8), rgb(0.3, 0.3, 1, 0.8)} {
		p.Color = c
		cx := 150 + 50*float64(i)
		d.DrawRRect(geom.RRectFromOval(geom.RectLTRB(cx-60, 90, cx+60, 210)), p)
	}

	shadow := pathcov.NewPaint()
	shadow.Color = rgb(0, 0, 0, 0.6)
	shadow.MaskFilter = maskfilter.NewBlur(pathcov.BlurNormal, 6, true).WithCache(blurs)
	card := geom.RRectFromRectXY(geom.RectLTRB(420, 80, 620, 220), 16, 16)
	d.DrawRRect(card.Offset(6, 8), shadow)
	p.Color = rgb(1, 1, 0.9, 1)
	d.DrawRRect(card, p)

	p.Color = rgb(1, 0.8, 0.2, 0.9)
	d.DrawPath(star(650, 420, 110, 45, 7), p, nil, false, false, nil)
}

func drawStrokes(d *raster.DrawBase) {
	wave := geom.NewPath()
	wave.MoveTo(60, 420)
	for i := range 4 {
		x := 60 + float64(i)*110
		wave.CubicTo(x+35, 340, x+75, 500, x+110, 420)
	}
	p := pathcov.NewPaint()
	p.Style = pathcov.StyleStroke
	p.StrokeWidth = 8
	p.Cap = pathcov.CapRound
	p.Join = pathcov.JoinRound
	p.Color = rgb(0.9, 0.9, 1, 1)
	d.DrawPath(wave, p, nil, false, false, nil)

	dashed := p.Clone()
	dashed.StrokeWidth = 3
	dashed.Cap = pathcov.CapButt
	dashed.PathEffect = pathcov.NewDash(18, 8)
	dashed.Color = rgb(1, 0.5, 0.5, 1)
	line := geom.NewPath()
	line.MoveTo(60, 540)
	line.LineTo(520, 540)
	d.DrawPath(line, dashed, nil, false, false, nil)

	hair := pathcov.NewPaint()
	hair.Style = pathcov.StyleStroke
	hair.Color = rgb(1, 1, 1, 0.7)
	d.DrawPath(star(650, 420, 130, 60, 7), hair, nil, false, false, nil)
}

// reportOps records the demo geometry for the GPU and logs the chosen ops.
func reportOps(w, h int) {
	r := tessellate.NewPathRenderer(tessellate.DefaultCaps(), tessellate.DefaultConfig())
	rec := tessellate.NewRecording(r.Caps, r.Config)
	surface := geom.RectLTRB(0, 0, float64(w), float64(h))
	fill := func(p *geom.Path) tessellate.DrawArgs {
		return tessellate.DrawArgs{Path: p, Matrix: geom.Identity(), Color: tessellate.Color{1, 1, 1, 1}, AAType: tessellate.AAMSAA, SurfaceBounds: surface}
	}

	oval := geom.NewPath()
	oval.AddOval(geom.RectLTRB(90, 90, 210, 210), geom.Clockwise)
	big := star(400, 300, 280, 120, 9)
	small := star(650, 420, 110, 45, 7)
	stroke := fill(small)
	stroke.Stroke = &tessellate.StrokeStyle{Width: 8, Join: tessellate.JoinRound, Cap: tessellate.CapRound}

	for _, args := range []tessellate.DrawArgs{fill(oval), fill(big), fill(small), stroke} {
		if !r.CanDraw(args) {
			continue
		}
		r.DrawPath(rec, args)
	}
	for _, op := range rec.Ops() {
		log.Printf("GPU op %v bounds %v", op.Kind(), op.Bounds())
	}
	fs := tessellate.NewFlushState(r.Caps)
	rec.Flush(fs)
	log.Printf("GPU flush: %d draws, %d pipelines, %d vertex bytes, %d instance bytes",
		len(fs.Draws), len(fs.Pipelines()), len(fs.Vertices), len(fs.Instances))
}

// star returns a closed star with n points.
func star(cx, cy, outer, inner float64, n int) *geom.Path {
	pts := make([]geom.Point, 0, 2*n)
	for i := range 2 * n {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i)*math.Pi/float64(n) - math.Pi/2
		pts = append(pts, geom.Pt(cx+r*math.Cos(a), cy+r*math.Sin(a)))
	}
	p := geom.NewPath()
	p.AddPoly(pts, true)
	return p
}

func rgb(r, g, b, a float64) color.NRGBA {
	return color.NRGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: uint8(a * 255)}
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
