package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
)

// Point is an integer pixel coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PointF is a sub-pixel coordinate used by lines and curves.
type PointF struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Drawing functions return a copy of the source with the shape composited
// source-over in the given colour. Shapes are clipped to the image; parts
// outside contribute nothing. Each pixel is blended at most once per shape,
// so translucent colours do not darken where strokes overlap.

// coverage accumulates per-pixel shape coverage in [0,1] before compositing.
type coverage struct {
	w, h int
	cov  []float64
}

func newCoverage(b image.Rectangle) *coverage {
	return &coverage{w: b.Dx(), h: b.Dy(), cov: make([]float64, b.Dx()*b.Dy())}
}

func (c *coverage) mark(x, y int, amount float64) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	if i := y*c.w + x; amount > c.cov[i] {
		c.cov[i] = amount
	}
}

func (c *coverage) span(x0, x1, y int) {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	for x := max(x0, 0); x <= min(x1, c.w-1); x++ {
		c.mark(x, y, 1)
	}
}

// composite blends col over a copy of img wherever coverage is non-zero.
func (c *coverage) composite(img image.Image, col Color) *image.NRGBA {
	out := ToNRGBA(img)
	for i, amount := range c.cov {
		if amount > 0 {
			blendPixel(out.Pix[i*4:i*4+4:i*4+4], col.NRGBA(), amount)
		}
	}
	return out
}

// blendPixel composites src over the 4-byte NRGBA pixel d, scaling the
// source alpha by amount.
func blendPixel(d []uint8, src color.NRGBA, amount float64) {
	sa := float64(src.A) / 255 * amount
	if sa <= 0 {
		return
	}
	if sa >= 1 {
		d[0], d[1], d[2], d[3] = src.R, src.G, src.B, 255
		return
	}
	da := float64(d[3]) / 255
	oa := sa + da*(1-sa)
	mix := func(s, dst uint8) uint8 {
		return clampUint8((float64(s)*sa + float64(dst)*da*(1-sa)) / oa)
	}
	d[0], d[1], d[2] = mix(src.R, d[0]), mix(src.G, d[1]), mix(src.B, d[2])
	d[3] = clampUint8(oa * 255)
}

// bresenham marks the pixels of the segment between two integer points.
func (c *coverage) bresenham(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.mark(x0, y0, 1)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func round(v float64) int {
	return int(math.Round(v))
}

// DrawLine draws a one-pixel line between the rounded endpoints.
func DrawLine(img image.Image, start, end PointF, col Color) *image.NRGBA {
	c := newCoverage(img.Bounds())
	c.bresenham(round(start.X), round(start.Y), round(end.X), round(end.Y))
	return c.composite(img, col)
}

// DrawAntialiasedLine draws a line with Xiaolin Wu's algorithm: each step
// along the major axis splits coverage between the two nearest pixels on
// the minor axis.
func DrawAntialiasedLine(img image.Image, start, end Point, col Color) *image.NRGBA {
	c := newCoverage(img.Bounds())
	x0, y0, x1, y1 := start.X, start.Y, end.X, end.Y

	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0, x1, y1 = y0, x0, y1, x1
	}
	if x0 > x1 {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}
	plot := func(x, y int, amount float64) {
		if steep {
			c.mark(y, x, amount)
		} else {
			c.mark(x, y, amount)
		}
	}

	gradient := 1.0
	if dx := x1 - x0; dx != 0 {
		gradient = float64(y1-y0) / float64(dx)
	}
	for x := x0; x <= x1; x++ {
		y := float64(y0) + gradient*float64(x-x0)
		yi := math.Floor(y)
		f := y - yi
		plot(x, int(yi), 1-f)
		plot(x, int(yi)+1, f)
	}
	return c.composite(img, col)
}

func checkRect(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: rectangle %dx%d", ErrInvalidDimension, width, height)
	}
	return nil
}

// DrawHollowRect outlines the width x height rectangle whose top-left pixel is (x, y).
func DrawHollowRect(img image.Image, x, y, width, height int, col Color) (*image.NRGBA, error) {
	if err := checkRect(width, height); err != nil {
		return nil, err
	}
	c := newCoverage(img.Bounds())
	right, bottom := x+width-1, y+height-1
	c.span(x, right, y)
	c.span(x, right, bottom)
	for yy := y; yy <= bottom; yy++ {
		c.mark(x, yy, 1)
		c.mark(right, yy, 1)
	}
	return c.composite(img, col), nil
}

// DrawFilledRect fills the width x height rectangle whose top-left pixel is (x, y).
func DrawFilledRect(img image.Image, x, y, width, height int, col Color) (*image.NRGBA, error) {
	if err := checkRect(width, height); err != nil {
		return nil, err
	}
	c := newCoverage(img.Bounds())
	for yy := y; yy < y+height; yy++ {
		c.span(x, x+width-1, yy)
	}
	return c.composite(img, col), nil
}

// midpointCircle walks one octant of a circle and hands each point to visit,
// which is expected to apply the eight-way symmetry.
func midpointCircle(radius int, visit func(x, y int)) {
	x, y := 0, radius
	p := 1 - radius
	for x <= y {
		visit(x, y)
		x++
		if p < 0 {
			p += 2*x + 1
		} else {
			y--
			p += 2*(x-y) + 1
		}
	}
}

func checkRadii(rx, ry int) error {
	if rx < 0 || ry < 0 {
		return fmt.Errorf("%w: radius (%d,%d)", ErrInvalidParameter, rx, ry)
	}
	return nil
}

// DrawHollowCircle draws the outline of a circle with the midpoint algorithm.
func DrawHollowCircle(img image.Image, center Point, radius int, col Color) (*image.NRGBA, error) {
	if err := checkRadii(radius, radius); err != nil {
		return nil, err
	}
	c := newCoverage(img.Bounds())
	cx, cy := center.X, center.Y
	midpointCircle(radius, func(x, y int) {
		c.mark(cx+x, cy+y, 1)
		c.mark(cx+y, cy+x, 1)
		c.mark(cx-y, cy+x, 1)
		c.mark(cx-x, cy+y, 1)
		c.mark(cx-x, cy-y, 1)
		c.mark(cx-y, cy-x, 1)
		c.mark(cx+y, cy-x, 1)
		c.mark(cx+x, cy-y, 1)
	})
	return c.composite(img, col), nil
}

// DrawFilledCircle fills a circle, boundary included.
func DrawFilledCircle(img image.Image, center Point, radius int, col Color) (*image.NRGBA, error) {
	if err := checkRadii(radius, radius); err != nil {
		return nil, err
	}
	c := newCoverage(img.Bounds())
	cx, cy := center.X, center.Y
	midpointCircle(radius, func(x, y int) {
		c.span(cx-x, cx+x, cy+y)
		c.span(cx-x, cx+x, cy-y)
		c.span(cx-y, cx+y, cy+x)
		c.span(cx-y, cx+y, cy-x)
	})
	return c.composite(img, col), nil
}

// midpointEllipse walks one quadrant of an axis-aligned ellipse with radii
// a (horizontal) and b (vertical), handing each point to visit.
func midpointEllipse(a, b int, visit func(x, y int)) {
	a2, b2 := float64(a*a), float64(b*b)
	x, y := 0, b
	dx, dy := 0.0, 2*a2*float64(y)

	d1 := b2 - a2*float64(b) + a2/4
	for dx < dy {
		visit(x, y)
		x++
		dx += 2 * b2
		if d1 < 0 {
			d1 += dx + b2
		} else {
			y--
			dy -= 2 * a2
			d1 += dx - dy + b2
		}
	}

	fx, fy := float64(x)+0.5, float64(y-1)
	d2 := b2*fx*fx + a2*fy*fy - a2*b2
	for y >= 0 {
		visit(x, y)
		y--
		dy -= 2 * a2
		if d2 > 0 {
			d2 += a2 - dy
		} else {
			x++
			dx += 2 * b2
			d2 += dx - dy + a2
		}
	}
}

// DrawHollowEllipse outlines an axis-aligned ellipse.
func DrawHollowEllipse(img image.Image, center Point, widthRadius, heightRadius int, col Color) (*image.NRGBA, error) {
	if err := checkRadii(widthRadius, heightRadius); err != nil {
		return nil, err
	}
	c := newCoverage(img.Bounds())
	cx, cy := center.X, center.Y
	midpointEllipse(widthRadius, heightRadius, func(x, y int) {
		c.mark(cx+x, cy+y, 1)
		c.mark(cx-x, cy+y, 1)
		c.mark(cx+x, cy-y, 1)
		c.mark(cx-x, cy-y, 1)
	})
	return c.composite(img, col), nil
}

// DrawFilledEllipse fills an axis-aligned ellipse, boundary included.
func DrawFilledEllipse(img image.Image, center Point, widthRadius, heightRadius int, col Color) (*image.NRGBA, error) {
	if err := checkRadii(widthRadius, heightRadius); err != nil {
		return nil, err
	}
	c := newCoverage(img.Bounds())
	cx, cy := center.X, center.Y
	midpointEllipse(widthRadius, heightRadius, func(x, y int) {
		c.span(cx-x, cx+x, cy+y)
		c.span(cx-x, cx+x, cy-y)
	})
	return c.composite(img, col), nil
}

// closedRing drops a trailing point that repeats the first one.
func closedRing(points []Point) []Point {
	if n := len(points); n > 1 && points[0] == points[n-1] {
		return points[:n-1]
	}
	return points
}

func (c *coverage) outline(points []Point) {
	for i, p := range points {
		q := points[(i+1)%len(points)]
		c.bresenham(p.X, p.Y, q.X, q.Y)
	}
}

// DrawHollowPolygon draws the closed outline through points. The last point
// is joined back to the first.
func DrawHollowPolygon(img image.Image, points []Point, col Color) (*image.NRGBA, error) {
	points = closedRing(points)
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: polygon needs at least 2 distinct points, got %d", ErrInvalidParameter, len(points))
	}
	c := newCoverage(img.Bounds())
	c.outline(points)
	return c.composite(img, col), nil
}

// DrawFilledPolygon fills the polygon through points with the even-odd
// rule, sampling each row at integer y, and draws its outline.
func DrawFilledPolygon(img image.Image, points []Point, col Color) (*image.NRGBA, error) {
	points = closedRing(points)
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: polygon needs at least 3 distinct points, got %d", ErrInvalidParameter, len(points))
	}

	c := newCoverage(img.Bounds())
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	minY = max(minY, 0)
	maxY = min(maxY, c.h-1)

	var xs []float64
	for y := minY; y <= maxY; y++ {
		xs = xs[:0]
		for i, p := range points {
			q := points[(i+1)%len(points)]
			if p.Y == q.Y {
				continue
			}
			lo, hi := p, q
			if lo.Y > hi.Y {
				lo, hi = hi, lo
			}
			// Half-open so shared vertices are counted once.
			if y < lo.Y || y >= hi.Y {
				continue
			}
			t := float64(y-lo.Y) / float64(hi.Y-lo.Y)
			xs = append(xs, float64(lo.X)+t*float64(hi.X-lo.X))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			c.span(int(math.Ceil(xs[i])), int(math.Floor(xs[i+1])), y)
		}
	}
	c.outline(points)
	return c.composite(img, col), nil
}

// DrawCubicBezier approximates the cubic Bézier curve from start to end with
// straight segments. Longer control polygons get more segments.
func DrawCubicBezier(img image.Image, start, end, control1, control2 PointF, col Color) *image.NRGBA {
	dist := func(a, b PointF) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }
	at := func(t float64) PointF {
		u := 1 - t
		a, b, c3, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
		return PointF{
			X: a*start.X + b*control1.X + c3*control2.X + d*end.X,
			Y: a*start.Y + b*control1.Y + c3*control2.Y + d*end.Y,
		}
	}

	length := dist(start, control1) + dist(control1, control2) + dist(control2, end)
	segments := max(int(math.Sqrt(length*length+800)/8), 1)

	c := newCoverage(img.Bounds())
	prev := start
	for i := 1; i <= segments; i++ {
		next := at(float64(i) / float64(segments))
		c.bresenham(round(prev.X), round(prev.Y), round(next.X), round(next.Y))
		prev = next
	}
	return c.composite(img, col)
}

// crossStencil is the 3x3 plus-shaped marker centred on the target pixel.
var crossStencil = [3][3]bool{
	{false, true, false},
	{true, true, true},
	{false, true, false},
}

// DrawCross draws a 3x3 plus marker centred at (center.X, center.Y).
func DrawCross(img image.Image, center Point, col Color) *image.NRGBA {
	c := newCoverage(img.Bounds())
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if crossStencil[dy+1][dx+1] {
				c.mark(center.X+dx, center.Y+dy, 1)
			}
		}
	}
	return c.composite(img, col)
}
