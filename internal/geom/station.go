package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// StationSegment returns the tick mark drawn across a railway at cur.
//
// The tick has the given length, is centered at cur and runs perpendicular to
// the local direction of the line, taken as the difference of the unit
// vectors towards next and towards prev. A missing neighbor is replaced by
// the reverse of the other one, so line ends get a plain perpendicular.
//
// ok is false when neither neighbor is usable (both nil or both equal to
// cur); there is no direction to be perpendicular to.
func StationSegment(prev *Coord, cur Coord, next *Coord, length int32) (a, b Coord, ok bool) {
	toPrev, hasPrev := unitTowards(cur, prev)
	toNext, hasNext := unitTowards(cur, next)

	switch {
	case !hasPrev && !hasNext:
		return Coord{}, Coord{}, false
	case !hasPrev:
		toPrev = r2.Scale(-1, toNext)
	case !hasNext:
		toNext = r2.Scale(-1, toPrev)
	}

	along := r2.Sub(toNext, toPrev)
	if r2.Norm(along) < 1e-9 {
		// the line folds back onto itself at cur
		along = toNext
	}
	along = r2.Unit(along)
	perp := r2.Vec{X: -along.Y, Y: along.X}
	half := r2.Scale(float64(length)/2, perp)

	center := r2.Vec{X: float64(cur.X), Y: float64(cur.Y)}
	return roundVec(r2.Sub(center, half)), roundVec(r2.Add(center, half)), true
}

func unitTowards(from Coord, to *Coord) (r2.Vec, bool) {
	if to == nil || *to == from {
		return r2.Vec{}, false
	}
	v := r2.Vec{
		X: float64(int64(to.X) - int64(from.X)),
		Y: float64(int64(to.Y) - int64(from.Y)),
	}
	return r2.Unit(v), true
}

func roundVec(v r2.Vec) Coord {
	return Coord{X: clampInt32(math.Round(v.X)), Y: clampInt32(math.Round(v.Y))}
}

func clampInt32(f float64) int32 {
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32
	case f < math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}
