package glyph

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// sfntBackend serves fonts golang/freetype cannot parse (CFF flavoured
// OpenType). sfnt reports segments with y pointing down; they are flattened
// into FreeType style point lists with y pointing up.
type sfntBackend struct {
	font *sfnt.Font
	buf  sfnt.Buffer
}

func openSFNT(data []byte) (backend, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("sfnt: %w", err)
	}
	return &sfntBackend{font: f}, nil
}

func (b *sfntBackend) name() string { return BackendSFNT }

func (b *sfntBackend) family() string {
	name, err := b.font.Name(&b.buf, sfnt.NameIDFamily)
	if err != nil {
		return ""
	}
	return name
}

func (b *sfntBackend) load(r rune, ppem fixed.Int26_6) (Outline, error) {
	idx, err := b.font.GlyphIndex(&b.buf, r)
	if err != nil {
		return Outline{Rune: r}, fmt.Errorf("glyph: 查找字符 %q 失败: %w", r, err)
	}
	if idx == 0 {
		return missing(r)
	}
	adv, err := b.font.GlyphAdvance(&b.buf, idx, ppem, font.HintingNone)
	if err != nil {
		return Outline{Rune: r}, fmt.Errorf("glyph: 读取字符 %q 的 advance 失败: %w", r, err)
	}
	segs, err := b.font.LoadGlyph(&b.buf, idx, ppem, nil)
	if err != nil {
		return Outline{Rune: r}, fmt.Errorf("glyph: 加载字形 %q 失败: %w", r, err)
	}

	o := Outline{Rune: r, Index: uint32(idx), Advance: nonNegative(adv)}
	o.Points, o.Ends = flattenSegments(segs)
	if len(o.Points) > 0 {
		top := math.Inf(-1)
		for _, p := range o.Points {
			top = math.Max(top, p.Y)
		}
		o.BearingY = top
	}
	return o, nil
}

// flattenSegments copies the segment arguments (on-curve and control points)
// into one point list, one contour per MoveTo. An explicit closing point that
// repeats the contour start is dropped, since contours are implicitly closed.
func flattenSegments(segs sfnt.Segments) ([]Point, []int) {
	var (
		pts   []Point
		ends  []int
		start = -1
	)
	finish := func() {
		if start < 0 || len(pts) == start {
			return
		}
		if last := len(pts) - 1; last > start && pts[last] == pts[start] {
			pts = pts[:last]
		}
		ends = append(ends, len(pts)-1)
	}
	for _, seg := range segs {
		n := 1
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			finish()
			start = len(pts)
		case sfnt.SegmentOpQuadTo:
			n = 2
		case sfnt.SegmentOpCubeTo:
			n = 3
		}
		if start < 0 {
			start = len(pts)
		}
		for _, a := range seg.Args[:n] {
			pts = append(pts, Point{X: float64(a.X), Y: -float64(a.Y)})
		}
	}
	finish()
	return pts, ends
}
