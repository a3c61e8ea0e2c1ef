package glyph

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// ttBackend reads glyf outlines through golang/freetype. GlyphBuf is the
// single glyph slot: every Load overwrites Points and Ends.
type ttBackend struct {
	font *truetype.Font
	buf  truetype.GlyphBuf
}

func openTrueType(data []byte) (backend, error) {
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("truetype: %w", err)
	}
	return &ttBackend{font: f}, nil
}

func (b *ttBackend) name() string { return BackendTrueType }

func (b *ttBackend) family() string { return b.font.Name(truetype.NameIDFontFamily) }

func (b *ttBackend) load(r rune, size fixed.Int26_6) (Outline, error) {
	idx := b.font.Index(r)
	if idx == 0 {
		return missing(r)
	}
	if err := b.buf.Load(b.font, size, idx, font.HintingNone); err != nil {
		return Outline{Rune: r}, fmt.Errorf("glyph: 加载字形 %q 失败: %w", r, err)
	}

	o := Outline{
		Rune:     r,
		Index:    uint32(idx),
		Advance:  nonNegative(b.buf.AdvanceWidth),
		BearingY: float64(b.buf.Bounds.Max.Y),
	}
	if len(b.buf.Ends) == 0 {
		return o, nil
	}

	// Ends 是开区间下标，最后一个等于轮廓点数；之后的点（如果有）不属于任何轮廓。
	n := b.buf.Ends[len(b.buf.Ends)-1]
	if n > len(b.buf.Points) {
		n = len(b.buf.Points)
	}
	o.Points = make([]Point, n)
	for i, p := range b.buf.Points[:n] {
		o.Points[i] = Point{X: float64(p.X), Y: float64(p.Y)}
	}
	o.Ends = make([]int, len(b.buf.Ends))
	for i, end := range b.buf.Ends {
		o.Ends[i] = end - 1
	}
	return o, nil
}

// nonNegative converts a 26.6 metric into layout units, clamping at zero.
func nonNegative(v fixed.Int26_6) float64 {
	if v < 0 {
		return 0
	}
	return float64(v)
}
