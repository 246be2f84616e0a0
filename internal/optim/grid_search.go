package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/nbody/internal/config"
	"github.com/san-kum/nbody/internal/dynamo"
	"github.com/san-kum/nbody/internal/experiment"
)

// Setter writes one searched value into a config.
type Setter func(cfg *config.Config, v float64)

// Fields are the config values a grid search may vary.
var Fields = map[string]Setter{
	"dt":          func(c *config.Config, v float64) { c.Run.Dt = v },
	"g":           func(c *config.Config, v float64) { c.Physics.G = v },
	"time_scale":  func(c *config.Config, v float64) { c.Physics.TimeScale = v },
	"restitution": func(c *config.Config, v float64) { c.Physics.Restitution = v },
	"softening":   func(c *config.Config, v float64) { c.Physics.Softening = v },
}

// Point is one evaluated grid cell. Diverged runs score +Inf.
type Point struct {
	Params map[string]float64
	Value  float64
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("%d params but %d ranges", len(params), len(ranges))
	}
	for i, name := range params {
		if _, ok := Fields[name]; !ok {
			return nil, fmt.Errorf("unknown search field %q", name)
		}
		if len(ranges[i]) == 0 {
			return nil, fmt.Errorf("empty range for %q", name)
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// ParseAxis reads "name=v1,v2,...".
func ParseAxis(s string) (string, []float64, error) {
	name, list, ok := strings.Cut(s, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("axis %q: want name=v1,v2", s)
	}
	var vals []float64
	for _, f := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("axis %q: %w", s, err)
		}
		vals = append(vals, v)
	}
	return name, vals, nil
}

// Search runs one experiment per grid cell on a copy of base and
// minimizes the named metric. Cells whose config fails validation are an
// error; cells that diverge score +Inf. All evaluated points are returned
// sorted best first.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, reg *experiment.Registry, metricName string) ([]Point, error) {
	var points []Point
	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, reg, metricName, &points)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Value < points[j].Value })
	return points, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	reg *experiment.Registry,
	metricName string,
	points *[]Point,
) error {
	if depth == len(g.paramNames) {
		val, err := g.evaluate(ctx, current, base, reg, metricName)
		if err != nil {
			return err
		}
		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}
		*points = append(*points, Point{Params: params, Value: val})
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[paramName] = val
		if err := g.searchRecursive(ctx, depth+1, current, base, reg, metricName, points); err != nil {
			return err
		}
	}
	delete(current, paramName)
	return nil
}

func (g *GridSearch) evaluate(ctx context.Context, params map[string]float64, base *config.Config, reg *experiment.Registry, metricName string) (float64, error) {
	cfg := *base
	for name, v := range params {
		Fields[name](&cfg, v)
	}

	exp, err := experiment.New(&cfg, reg)
	if err != nil {
		return 0, err
	}

	result, err := exp.Run(ctx)
	if errors.Is(err, dynamo.ErrInvalidState) {
		return math.Inf(1), nil
	}
	if err != nil {
		return 0, err
	}

	val, ok := result.Metrics[metricName]
	if !ok {
		return 0, fmt.Errorf("unknown metric %q", metricName)
	}
	if math.IsNaN(val) {
		return math.Inf(1), nil
	}
	return val, nil
}
