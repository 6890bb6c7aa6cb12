package chart

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"asset-dashboard/internal/data"
	"asset-dashboard/internal/model"
	"asset-dashboard/internal/summary"
)

// Kind selects one of the two dashboard charts.
type Kind string

const (
	KindSchedule Kind = "schedule"
	KindPrice    Kind = "price"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindSchedule, KindPrice:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown chart %q", s)
	}
}

const (
	XAxisLabel = "Hour of Day"
	YAxisLabel = "Value"

	width  = 1024
	height = 400
)

// Series is one named line of a chart.
type Series struct {
	Name   string          `json:"name"`
	Points []summary.Point `json:"points"`
}

// Data is a chart description that can be rendered or returned as JSON.
type Data struct {
	Kind   Kind     `json:"kind"`
	Title  string   `json:"title"`
	XLabel string   `json:"x_label"`
	YLabel string   `json:"y_label"`
	Ticks  []int    `json:"ticks"`
	Series []Series `json:"series"`
}

// Empty reports whether the chart has no points.
func (d Data) Empty() bool {
	for _, s := range d.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

// Build describes the chart of the given kind for a summary result.
func Build(kind Kind, res *summary.Result) Data {
	cols, suffix := columns(kind)
	d := Data{
		Kind:   kind,
		XLabel: XAxisLabel,
		YLabel: YAxisLabel,
		Ticks:  []int{},
		Series: make([]Series, 0, len(cols)),
	}

	var points map[string][]summary.Point
	if res != nil {
		if kind == KindSchedule {
			points = res.Schedule
		} else {
			points = res.Price
		}
	}

	for _, c := range cols {
		pts := points[c]
		if pts == nil {
			pts = []summary.Point{}
		}
		d.Series = append(d.Series, Series{Name: c, Points: pts})
	}

	if res.Empty() {
		d.Title = fmt.Sprintf("Hourly Data for Asset (%s)", suffix)
		return d
	}

	date := res.Selection.Date
	if t, err := data.ParseTimestamp(date); err == nil {
		date = t.Format(model.DateLayout)
	}
	d.Title = fmt.Sprintf("Hourly Data for %s on %s (%s)", res.Selection.AssetName, date, suffix)
	for _, p := range d.Series[0].Points {
		d.Ticks = append(d.Ticks, p.X)
	}
	return d
}

func columns(kind Kind) ([]string, string) {
	if kind == KindPrice {
		return []string{model.ColDAPrice, model.ColRTPrice}, model.ColDAPrice + " vs " + model.ColRTPrice
	}
	return []string{model.ColDASchedule, model.ColRTMetered}, model.ColDASchedule + " vs " + model.ColRTMetered
}

var palette = []drawing.Color{gochart.ColorBlue, gochart.ColorGreen}

func lineStyle(col drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    3,
	}
}

// RenderSVG draws d as a lines+markers chart.
func RenderSVG(w io.Writer, d Data) error {
	return render(w, d, gochart.SVG)
}

// RenderPNG draws d as a PNG image.
func RenderPNG(w io.Writer, d Data) error {
	return render(w, d, gochart.PNG)
}

func render(w io.Writer, d Data, rp gochart.RendererProvider) error {
	series := make([]gochart.Series, 0, len(d.Series))
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for i, s := range d.Series {
		if len(s.Points) == 0 {
			continue
		}
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for j, p := range s.Points {
			xs[j] = float64(p.X)
			ys[j] = p.Y
			yMin = math.Min(yMin, p.Y)
			yMax = math.Max(yMax, p.Y)
		}
		// go-chart wants at least two values per series
		if len(xs) == 1 {
			xs = append(xs, xs[0])
			ys = append(ys, ys[0])
		}
		series = append(series, gochart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style:   lineStyle(palette[i%len(palette)]),
		})
	}
	if len(series) == 0 {
		// invisible baseline so an empty chart still renders its axes and title
		series = append(series, gochart.ContinuousSeries{
			XValues: []float64{0, 25},
			YValues: []float64{0, 0},
			Style:   gochart.Style{StrokeColor: drawing.ColorTransparent, StrokeWidth: 1},
		})
	}

	// explicit ranges keep go-chart from rejecting flat or empty data
	if math.IsInf(yMin, 1) {
		yMin, yMax = 0, 1
	}
	if yMax-yMin < 1e-9 {
		yMin, yMax = yMin-1, yMax+1
	}
	pad := (yMax - yMin) * 0.05
	yRange := &gochart.ContinuousRange{Min: yMin - pad, Max: yMax + pad}

	// go-chart derives the x range from the ticks when any are set, so the
	// unlabeled 0 and 25 bounds keep it at 0..25 even for a single hour.
	ticks := make([]gochart.Tick, 0, len(d.Ticks)+2)
	ticks = append(ticks, gochart.Tick{Value: 0})
	for _, x := range d.Ticks {
		ticks = append(ticks, gochart.Tick{Value: float64(x), Label: strconv.Itoa(x)})
	}
	ticks = append(ticks, gochart.Tick{Value: 25})

	ch := gochart.Chart{
		Title:      d.Title,
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:  d.XLabel,
			Range: &gochart.ContinuousRange{Min: 0, Max: 25},
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Name:  d.YLabel,
			Range: yRange,
		},
		Series: series,
	}
	if !d.Empty() {
		ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	}

	var buf bytes.Buffer
	if err := ch.Render(rp, &buf); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
