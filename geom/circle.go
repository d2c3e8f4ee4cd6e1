package geom

import "math"

// MakeCircle returns a regular polygon with the given number of vertices
// inscribed in a circle of radius around center, counter-clockwise,
// starting on the positive X axis.
func MakeCircle(center Point, radius Coord, steps int) Polygon {
	if steps < 3 {
		steps = 3
	}
	poly := make(Polygon, 0, steps)
	angle := 2.0 * math.Pi / float64(steps)
	for i := range steps {
		poly = append(poly, onCircle(center, radius, angle*float64(i)))
	}
	return poly
}

func onCircle(center Point, radius Coord, angle float64) Point {
	r := float64(radius)
	return Point{
		X: center.X + Coord(math.Round(r*math.Cos(angle))),
		Y: center.Y + Coord(math.Round(r*math.Sin(angle))),
	}
}

// MakeWheel returns a single closed toolpath made of 2*semiSpokes radial
// spokes between innerRadius and outerRadius. Consecutive spokes are joined
// alternately by an outer and an inner arc, each arc approximated by
// arcSegments segments.
func MakeWheel(center Point, innerRadius, outerRadius Coord, semiSpokes, arcSegments int) Polygon {
	if semiSpokes < 1 {
		semiSpokes = 1
	}
	if arcSegments < 1 {
		arcSegments = 1
	}
	spokes := semiSpokes * 2
	step := 2.0 * math.Pi / float64(spokes)
	arcStep := step / float64(arcSegments)

	wheel := make(Polygon, 0, spokes*(arcSegments+1))
	for i := range spokes {
		angle := step * float64(i)
		arcRadius := outerRadius
		if i%2 == 0 {
			wheel = append(wheel, onCircle(center, innerRadius, angle), onCircle(center, outerRadius, angle))
		} else {
			wheel = append(wheel, onCircle(center, outerRadius, angle), onCircle(center, innerRadius, angle))
			arcRadius = innerRadius
		}
		for k := 1; k < arcSegments; k++ {
			wheel = append(wheel, onCircle(center, arcRadius, angle+arcStep*float64(k)))
		}
	}
	return wheel
}

// GenerateCircularOutset returns concentric circles growing outward from
// innerRadius, one line width apart, as long as the next line still fits
// inside outerRadius. The second result is the outer edge of the last line,
// which is innerRadius when nothing fits.
func GenerateCircularOutset(center Point, innerRadius, outerRadius, lineWidth Coord, steps int) (Shape, Coord) {
	var outset Shape
	if lineWidth <= 0 {
		return outset, innerRadius
	}
	semi := lineWidth / 2
	radius := innerRadius + semi
	for radius+semi <= outerRadius {
		outset = append(outset, MakeCircle(center, radius, steps))
		radius += lineWidth
	}
	return outset, radius - semi
}

// GenerateCircularInset returns concentric circles shrinking inward from
// outerRadius, one line width apart, until the centre is filled.
func GenerateCircularInset(center Point, outerRadius, lineWidth Coord, steps int) Shape {
	var inset Shape
	if lineWidth <= 0 {
		return inset
	}
	semi := lineWidth / 2
	for radius := outerRadius - semi; radius >= semi && radius > 0; radius -= lineWidth {
		inset = append(inset, MakeCircle(center, radius, steps))
	}
	return inset
}
