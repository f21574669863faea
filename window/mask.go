package window

// CornerMask describes a window region with rounded bottom corners and square
// top corners, built as the union of a rounded rectangle covering the whole
// window and a plain rectangle covering everything above the bottom corners.
// Coordinates are window relative.
type CornerMask struct {
	Rounded  Rect
	Diameter int32
	Square   Rect
}

// BottomRoundedMask computes the mask for a window filling client. The radius
// is clamped to half the smaller side; a non-positive radius yields a mask with
// no rounding.
func BottomRoundedMask(client Rect, radius int32) CornerMask {
	// region edges are exclusive, grow by one to keep the last row and column
	width := client.Width() + 1
	height := client.Height() + 1

	if radius > width/2 {
		radius = width / 2
	}
	if radius > height/2 {
		radius = height / 2
	}
	if radius < 0 {
		radius = 0
	}

	return CornerMask{
		Rounded:  Rect{Left: 0, Top: 0, Right: width, Bottom: height},
		Diameter: 2 * radius,
		Square:   Rect{Left: 0, Top: 0, Right: width, Bottom: height - radius},
	}
}
