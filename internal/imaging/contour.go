package imaging

import (
	"encoding/json"
	"image"
)

// BorderType classifies a traced border.
type BorderType int

const (
	// BorderOuter is the outer boundary of a foreground component.
	BorderOuter BorderType = iota
	// BorderHole is the boundary of a background hole inside a component.
	BorderHole
)

func (t BorderType) String() string {
	if t == BorderHole {
		return "hole"
	}
	return "outer"
}

// MarshalJSON writes the border type as "outer" or "hole".
func (t BorderType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Contour is one traced border.
type Contour struct {
	// Points lists the border pixels in tracing order.
	Points []Point `json:"points"`

	// BorderType is BorderOuter or BorderHole.
	BorderType BorderType `json:"border_type"`

	// Parent indexes the enclosing contour in the result slice, or -1.
	Parent int `json:"parent"`
}

// neighbours lists the 8-neighbourhood clockwise (y grows downward),
// starting west.
var neighbours = [8]image.Point{
	{-1, 0}, {-1, -1}, {0, -1}, {1, -1},
	{1, 0}, {1, 1}, {0, 1}, {-1, 1},
}

func neighbourIndex(d image.Point) int {
	for i, n := range neighbours {
		if n == d {
			return i
		}
	}
	return 0
}

// FindContours traces every border in a binary image with the Suzuki-Abe
// border following algorithm. Pixels with non-zero luminance are foreground.
//
// Contours are returned in raster order of their starting pixel. A parent
// always precedes its children, so Parent indexes are smaller than the
// child's own index.
//
// # Algorithm
//
// The image is scanned row by row. A foreground pixel with background on its
// left starts an outer border; a foreground pixel with background on its
// right starts a hole border. Each new border receives a sequential label
// and is followed around by examining neighbours clockwise to find the
// first step and counter-clockwise afterwards, relabelling visited pixels
// so that no border is traced twice. The parent of a new border is derived
// from the most recently crossed border (LNBD) and the two border types.
func FindContours(img image.Image) []Contour {
	gray := ToGray(img)
	w, h := gray.Rect.Dx(), gray.Rect.Dy()

	labels := make([]int, w*h)
	for i := range labels {
		if gray.Pix[(i/w)*gray.Stride+i%w] > 0 {
			labels[i] = 1
		}
	}
	at := func(p image.Point) int {
		if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
			return 0
		}
		return labels[p.Y*w+p.X]
	}
	set := func(p image.Point, v int) { labels[p.Y*w+p.X] = v }

	var contours []Contour
	nbd := 1

	for y := 0; y < h; y++ {
		lnbd := 1
		for x := 0; x < w; x++ {
			cur := image.Pt(x, y)
			v := at(cur)
			if v == 0 {
				continue
			}

			var border BorderType
			var from image.Point
			start := false
			switch {
			case v == 1 && at(image.Pt(x-1, y)) == 0:
				border, from, start = BorderOuter, image.Pt(x-1, y), true
			case v >= 1 && at(image.Pt(x+1, y)) == 0:
				border, from, start = BorderHole, image.Pt(x+1, y), true
				if v > 1 {
					lnbd = v
				}
			}

			if start {
				nbd++
				parent := -1
				if lnbd > 1 {
					idx := lnbd - 2
					if (border == BorderOuter) != (contours[idx].BorderType == BorderOuter) {
						parent = idx
					} else {
						parent = contours[idx].Parent
					}
				}

				points := followBorder(cur, from, nbd, w, at, set)
				contours = append(contours, Contour{Points: points, BorderType: border, Parent: parent})
			}

			if lv := at(cur); lv != 1 {
				if lv < 0 {
					lv = -lv
				}
				lnbd = lv
			}
		}
	}
	return contours
}

// followBorder traces one border starting at cur, entered from the
// background pixel from, labelling visited pixels with nbd.
func followBorder(cur, from image.Point, nbd, w int, at func(image.Point) int, set func(image.Point, int)) []Point {
	// Clockwise search from the entry direction for the first foreground neighbour.
	first := neighbourIndex(from.Sub(cur))
	p1, found := image.Point{}, false
	for k := 0; k < 8; k++ {
		q := cur.Add(neighbours[(first+k)%8])
		if at(q) != 0 {
			p1, found = q, true
			break
		}
	}
	if !found {
		set(cur, -nbd)
		return []Point{{X: cur.X, Y: cur.Y}}
	}

	var points []Point
	p2, p3 := p1, cur
	for {
		points = append(points, Point{X: p3.X, Y: p3.Y})

		// Counter-clockwise search starting just after p2.
		base := neighbourIndex(p2.Sub(p3))
		var p4 image.Point
		rightExamined := false
		for k := 1; k <= 8; k++ {
			d := neighbours[(base-k+8)%8]
			q := p3.Add(d)
			if at(q) != 0 {
				p4 = q
				break
			}
			if d == (image.Point{1, 0}) {
				rightExamined = true
			}
		}

		if p3.X+1 == w || rightExamined {
			set(p3, -nbd)
		} else if at(p3) == 1 {
			set(p3, nbd)
		}

		if p4 == cur && p3 == p1 {
			return points
		}
		p2, p3 = p3, p4
	}
}
