package datastructure

import (
	"fmt"
	"math"
)

// Coordinate is a vertex key. Two coordinates are the same vertex iff both components are equal,
// so Coordinate is used directly as a map key.
// For geographic graphs X is the latitude and Y the longitude.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewCoordinate(x, y float64) Coordinate {
	return Coordinate{X: x, Y: y}
}

func (c Coordinate) GetX() float64 {
	return c.X
}

func (c Coordinate) GetY() float64 {
	return c.Y
}

// IsDefined is false when a component is NaN. NaN never equals itself, so such a coordinate can't be a map key.
func (c Coordinate) IsDefined() bool {
	return !math.IsNaN(c.X) && !math.IsNaN(c.Y)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%v, %v)", c.X, c.Y)
}

// Less orders coordinates by X then Y.
func (c Coordinate) Less(o Coordinate) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	return c.Y < o.Y
}

// EuclideanDistance straight-line distance in coordinate units.
func (c Coordinate) EuclideanDistance(o Coordinate) float64 {
	return math.Hypot(c.X-o.X, c.Y-o.Y)
}

type BoundingBox struct {
	minX, minY, maxX, maxY float64
}

func NewBoundingBox(minX, minY, maxX, maxY float64) BoundingBox {
	return BoundingBox{minX: minX, minY: minY, maxX: maxX, maxY: maxY}
}

func (bb BoundingBox) GetMin() Coordinate {
	return NewCoordinate(bb.minX, bb.minY)
}

func (bb BoundingBox) GetMax() Coordinate {
	return NewCoordinate(bb.maxX, bb.maxY)
}

func (bb BoundingBox) Contains(c Coordinate) bool {
	return c.X >= bb.minX && c.X <= bb.maxX && c.Y >= bb.minY && c.Y <= bb.maxY
}
