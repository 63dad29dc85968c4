package geo

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePoint parses "x,y" into a Point2D.
func ParsePoint(s string) (Point2D, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return Point2D{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return Point2D{}, fmt.Errorf("point %q: x: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return Point2D{}, fmt.Errorf("point %q: y: %w", s, err)
	}
	return Point2D{x, y}, nil
}

func (p Point2D) String() string {
	return strconv.FormatFloat(p.X, 'f', -1, 64) + "," + strconv.FormatFloat(p.Y, 'f', -1, 64)
}
