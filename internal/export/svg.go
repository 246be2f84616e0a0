package export

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/viz"
)

const background = "#0a0a0a"

// BodiesToSVG draws bodies as filled circles seen through cam. Bodies are
// painted far to near so nearer ones overlap. Bodies that project off the
// image are skipped.
func BodiesToSVG(w io.Writer, bodies dynamo.Bodies, cam *viz.Camera, width, height int) error {
	type dot struct {
		x, y, depth float64
		r           float64
		color       string
	}

	dots := make([]dot, 0, len(bodies))
	for _, b := range bodies {
		x, y, depth, ok := cam.Project(b.Position, width, height)
		if !ok {
			continue
		}
		dots = append(dots, dot{
			x:     float64(x),
			y:     float64(y),
			depth: depth,
			r:     math.Max(1, b.Radius*cam.Scale*cam.Zoom),
			color: viz.BodyColor(b.Color),
		})
	}
	sort.SliceStable(dots, func(i, j int) bool { return dots[i].depth < dots[j].depth })

	var sb strings.Builder
	header(&sb, width, height)
	for _, d := range dots {
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", d.x, d.y, d.r, d.color)
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// SeriesToSVG draws values as a polyline against their index, scaled to
// fill the image with 10% padding. Fewer than two points, or any
// non-finite value, is an error.
func SeriesToSVG(w io.Writer, values []float64, width, height int, stroke string) error {
	if len(values) < 2 {
		return fmt.Errorf("need at least 2 points, got %d", len(values))
	}

	lo, hi := values[0], values[0]
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("non-finite value at index %d", i)
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	span := hi - lo
	if span == 0 {
		span = 1
	}
	lo -= span * 0.1
	span *= 1.2

	var sb strings.Builder
	header(&sb, width, height)
	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="`, stroke)

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-lo)/span*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func header(sb *strings.Builder, width, height int) {
	fmt.Fprintf(sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)
}
