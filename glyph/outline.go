package glyph

// Outline is an owned copy of one glyph's raw outline as read from the font
// engine: y up, origin as stored in the font, coordinates in layout units.
//
// Points holds every point of every contour in font order; Ends holds the
// inclusive index of the last point of each contour, the same table FreeType
// exposes as outline.contours.
type Outline struct {
	Rune     rune    `json:"rune"`
	Index    uint32  `json:"index"`
	Points   []Point `json:"points"`
	Ends     []int   `json:"ends"`
	Advance  float64 `json:"advance"`
	BearingY float64 `json:"bearingY"`
}

// Empty reports whether the glyph has no outline points.
func (o Outline) Empty() bool { return len(o.Points) == 0 }

// Contours splits Points along Ends. Malformed end indices are clipped.
func (o Outline) Contours() [][]Point {
	var out [][]Point
	start := 0
	for _, end := range o.Ends {
		if end >= len(o.Points) {
			end = len(o.Points) - 1
		}
		if end < start {
			continue
		}
		out = append(out, o.Points[start:end+1])
		start = end + 1
	}
	return out
}

// Clone returns a deep copy.
func (o Outline) Clone() Outline {
	c := o
	if o.Points != nil {
		c.Points = append([]Point(nil), o.Points...)
	}
	if o.Ends != nil {
		c.Ends = append([]int(nil), o.Ends...)
	}
	return c
}
