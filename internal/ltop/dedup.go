package ltop

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dhconnelly/rtreego"
)

// DefaultDuplicateDistance is the distance in meters under which two points
// with the same number are treated as one.
const DefaultDuplicateDistance = 0.03

// pointTolerance gives indexed points a non-degenerate box.
const pointTolerance = 1e-9

// RyPoint is a prepared output line together with the point it describes.
type RyPoint struct {
	Number string
	X      float64
	Y      float64
	Z      float64
	Line   string
}

// NewRyPoint builds a point from coordinate text. Blank coordinates read as
// zero; text that is not a number is reported and also reads as zero.
func NewRyPoint(number, x, y, z, line string) (RyPoint, error) {
	p := RyPoint{Number: strings.TrimSpace(number), Line: line}
	var bad []string
	for _, c := range []struct {
		raw string
		dst *float64
	}{{x, &p.X}, {y, &p.Y}, {z, &p.Z}} {
		raw := strings.TrimSpace(c.raw)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			bad = append(bad, raw)
			continue
		}
		*c.dst = v
	}
	if len(bad) > 0 {
		return p, fmt.Errorf("point %s: non-numeric coordinates %q", p.Number, bad)
	}
	return p, nil
}

func (p RyPoint) location() rtreego.Point {
	return rtreego.Point{p.X, p.Y, p.Z}
}

// Distance returns the 3D distance between p and q.
func (p RyPoint) Distance(q RyPoint) float64 {
	dx, dy, dz := p.X-q.X, p.Y-q.Y, p.Z-q.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// indexed wraps a survivor for the R-tree.
type indexed struct {
	point RyPoint
}

// Bounds implements rtreego.Spatial.
func (e indexed) Bounds() rtreego.Rect {
	return e.point.location().ToRect(pointTolerance)
}

// ParseDuplicateDistance reads the duplicate threshold. Blank, negative or
// non-numeric input falls back to DefaultDuplicateDistance; only the last
// is reported.
func ParseDuplicateDistance(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultDuplicateDistance, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return DefaultDuplicateDistance, fmt.Errorf("duplicate distance %q: not a number", raw)
	}
	if v < 0 {
		return DefaultDuplicateDistance, nil
	}
	return v, nil
}

// EliminateDuplicates drops every point that lies closer than threshold to
// an earlier kept point with the same number, compared case-insensitively.
// The first point of each cluster wins.
//
// The kept lines are returned sorted by point number, case-insensitive and
// stable, with blank lines removed.
func EliminateDuplicates(points []RyPoint, threshold float64) []string {
	tree := rtreego.NewTree(3, 25, 50)
	kept := make([]RyPoint, 0, len(points))

	for _, p := range points {
		if threshold > 0 && isDuplicate(tree, p, threshold) {
			continue
		}
		tree.Insert(indexed{point: p})
		kept = append(kept, p)
	}

	SortByNumber(kept)

	lines := make([]string, 0, len(kept))
	for _, p := range kept {
		if strings.TrimSpace(p.Line) == "" {
			continue
		}
		lines = append(lines, p.Line)
	}
	return lines
}

func isDuplicate(tree *rtreego.Rtree, p RyPoint, threshold float64) bool {
	for _, s := range tree.SearchIntersect(p.location().ToRect(threshold)) {
		other := s.(indexed).point
		if strings.EqualFold(other.Number, p.Number) && p.Distance(other) < threshold {
			return true
		}
	}
	return false
}

// SortByNumber orders points by number, ignoring case. Equal numbers keep
// their input order.
func SortByNumber(points []RyPoint) {
	keys := make([]string, len(points))
	for i, p := range points {
		keys[i] = strings.ToLower(p.Number)
	}
	sort.Stable(byKey{points: points, keys: keys})
}

type byKey struct {
	points []RyPoint
	keys   []string
}

func (s byKey) Len() int           { return len(s.points) }
func (s byKey) Less(i, j int) bool { return s.keys[i] < s.keys[j] }
func (s byKey) Swap(i, j int) {
	s.points[i], s.points[j] = s.points[j], s.points[i]
	s.keys[i], s.keys[j] = s.keys[j], s.keys[i]
}
