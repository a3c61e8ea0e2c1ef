package layout

import (
	"testing"

	"github.com/ByLCY/glyphpath/glyph"
)

func TestAssembleTranslatesEachPlacement(t *testing.T) {
	box := glyph.Build(glyph.Outline{
		Points: []glyph.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
		Ends:   []int{3},
	})
	placed := []Placement{
		{Char: 'a', Path: box, Offset: Offset{X: 100, Y: 0}},
		{Char: ' ', Offset: Offset{X: 200, Y: 0}},
		{Char: 'b', Path: box, Offset: Offset{X: 50, Y: 1000}},
	}
	cp := Assemble(placed)
	if len(cp.Contours) != 2 {
		t.Fatalf("expected 2 contours, got %d", len(cp.Contours))
	}
	if got := cp.Contours[0][0].Start; got != (glyph.Point{X: 100, Y: 0}) {
		t.Fatalf("first contour start: %+v", got)
	}
	if got := cp.Contours[1][2].End; got != (glyph.Point{X: 50, Y: 990}) {
		t.Fatalf("second contour corner: %+v", got)
	}
	if box.Contours[0][0].Start != (glyph.Point{}) {
		t.Fatalf("Assemble mutated the source glyph path")
	}
	if !cp.Closed() || cp.SegmentCount() != 8 {
		t.Fatalf("unexpected composite: closed=%v segments=%d", cp.Closed(), cp.SegmentCount())
	}

	b, ok := cp.Bounds()
	if !ok {
		t.Fatalf("bounds missing")
	}
	if b != (Rect{MinX: 50, MinY: -10, MaxX: 110, MaxY: 1000}) {
		t.Fatalf("unexpected bounds %+v", b)
	}
	if b.W() != 60 || b.H() != 1010 {
		t.Fatalf("unexpected size %gx%g", b.W(), b.H())
	}
}

func TestAssembleEmpty(t *testing.T) {
	cp := Assemble(nil)
	if !cp.Empty() {
		t.Fatalf("expected empty composite")
	}
	if _, ok := cp.Bounds(); ok {
		t.Fatalf("empty composite should have no bounds")
	}
}
