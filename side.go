package tod

import (
	"fmt"
	"math"
)

// Side is the direction an entity appears to face.
type Side uint8

const (
	SideLeft  Side = iota // facing toward negative X
	SideRight             // facing toward positive X
	SideFront             // facing the viewer (positive Y)
	SideBack              // facing away from the viewer (negative Y)
)

// numSides is the number of valid Side values.
const numSides = 4

// Valid reports whether s is one of the four defined sides.
func (s Side) Valid() bool {
	return s < numSides
}

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	case SideFront:
		return "front"
	case SideBack:
		return "back"
	default:
		return fmt.Sprintf("Side(%d)", uint8(s))
	}
}

// SideForVector returns the dominant facing for a displacement. Vertical
// wins only when strictly larger than horizontal, so diagonals resolve to
// LEFT or RIGHT. The zero vector has no direction; it resolves to RIGHT and
// callers should not rely on that.
func SideForVector(v Vec2) Side {
	ax, ay := math.Abs(v.X), math.Abs(v.Y)
	if ax < ay {
		if v.Y < 0 {
			return SideBack
		}
		return SideFront
	}
	if v.X < 0 {
		return SideLeft
	}
	return SideRight
}

