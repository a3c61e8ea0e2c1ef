package job

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ByLCY/glyphpath/fonts"
	"github.com/ByLCY/glyphpath/glyph"
	"github.com/ByLCY/glyphpath/layout"
	canvasrenderer "github.com/ByLCY/glyphpath/renderer/canvas"
)

const sampleJob = `
job Notes {
  font {
    src: "builtin:gomono"
    size: 10pt
  }
  layout {
    char-spacing: 0.5pt
    word-spacing: 0.25em
    max-width: 6000
    line-spacing: 1200u
    margin: 0
    markers: true
  }
  output {
    format: pdf
    path: "out/notes.pdf"
    padding: 1mm
    fill: none
    stroke: #F00
    stroke-width: 1pt
  }
  meta {
    author: "ada"
    keywords: ["a", "b"]
  }
  vars {
    who: "world"
  }
  text { "hello ${who}" }
  text {
    "second"
    "third"
  }
}
`

func TestDecodeFullJob(t *testing.T) {
	j, err := Load(strings.NewReader(sampleJob))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if j.Name != "Notes" {
		t.Fatalf("name mismatch: %s", j.Name)
	}
	wantFont := Font{Src: "builtin:gomono", Size: 640}
	if diff := cmp.Diff(wantFont, j.Font); diff != "" {
		t.Fatalf("font mismatch (-want +got):\n%s", diff)
	}
	wantLayout := layout.Params{
		CharSpacing: 32,
		WordSpacing: 160,
		MaxWidth:    6000,
		LineSpacing: 1200,
		Margin:      0,
		Markers:     true,
	}
	if diff := cmp.Diff(wantLayout, j.Layout); diff != "" {
		t.Fatalf("layout mismatch (-want +got):\n%s", diff)
	}
	if j.Output.Format != canvasrenderer.FormatPDF || j.Output.Path != "out/notes.pdf" {
		t.Fatalf("output mismatch: %+v", j.Output)
	}
	if j.Output.Fill != "none" || j.Output.Stroke != "#F00" {
		t.Fatalf("colors mismatch: %+v", j.Output)
	}
	if d := j.Output.StrokeWidth - layout.PtToMm; d > 1e-9 || d < -1e-9 {
		t.Fatalf("stroke width should be 1pt in mm, got %g", j.Output.StrokeWidth)
	}
	if d := j.Output.Padding - layout.MmToPt*layout.UnitsPerPt; d > 1e-6 || d < -1e-6 {
		t.Fatalf("padding should be 1mm in layout units, got %g", j.Output.Padding)
	}
	if diff := cmp.Diff([]string{"a", "b"}, j.Meta.Keywords); diff != "" {
		t.Fatalf("keywords mismatch (-want +got):\n%s", diff)
	}
	if j.Text != "hello ${who}\nsecond\nthird" {
		t.Fatalf("text mismatch: %q", j.Text)
	}
	if j.Vars["who"] != "world" {
		t.Fatalf("vars mismatch: %v", j.Vars)
	}
}

func TestDecodeKeepsDefaults(t *testing.T) {
	j, err := Load(strings.NewReader("job Empty {}\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Defaults()
	want.Name = "Empty"
	if diff := cmp.Diff(want, j); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
	if j.Layout != layout.DefaultParams() || j.Font.Size != 560 {
		t.Fatalf("unexpected defaults: %+v", j)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"unknown section":   "job X {\n page { }\n}\n",
		"unknown key":       "job X {\n layout { gap: 1 }\n}\n",
		"bad length":        "job X {\n layout { max-width: \"wide\" }\n}\n",
		"duplicate section": "job X {\n layout { }\n layout { }\n}\n",
		"em font size":      "job X {\n font { size: 2em }\n}\n",
		"zero font size":    "job X {\n font { size: 0 }\n}\n",
		"unknown font key":  "job X {\n font { hinting: full }\n}\n",
		"bad color":         "job X {\n output { fill: red }\n}\n",
		"bad format":        "job X {\n output { format: png }\n}\n",
		"bad bool":          "job X {\n layout { markers: maybe }\n}\n",
		"text assignment":   "job X {\n text { a: 1 }\n}\n",
		"syntax":            "job X {\n",
	}
	for name, input := range cases {
		if _, err := Load(strings.NewReader(input)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestParseSize(t *testing.T) {
	cases := map[string]int{"560": 560, "20pt": 1280, "0.5in": 2304}
	for in, want := range cases {
		got, err := ParseSize(in)
		if err != nil || int(got) != want {
			t.Fatalf("ParseSize(%q) = %d, %v; want %d", in, got, err, want)
		}
	}
	for _, bad := range []string{"-1", "1em", "big", "99999999999", "40000000pt"} {
		if got, err := ParseSize(bad); err == nil {
			t.Fatalf("ParseSize(%q) = %d, should fail", bad, got)
		}
	}
	if got, err := ParseSize("2147483647"); err != nil || got != math.MaxInt32 {
		t.Fatalf("largest 26.6 size: %d, %v", got, err)
	}
	if _, err := ParseSize("-2pt"); err == nil || !strings.Contains(err.Error(), "-2pt") {
		t.Fatalf("error should echo the parsed length: %v", err)
	}
}

func TestParseColor(t *testing.T) {
	if _, none, err := ParseColor("none"); err != nil || !none {
		t.Fatalf("none: %v %v", none, err)
	}
	for _, ok := range []string{"#fff", "#0F62FE", "#0F62FE80"} {
		if c, _, err := ParseColor(ok); err != nil || c == nil {
			t.Fatalf("ParseColor(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"red", "#12", "#GGGGGG", "0F62FE"} {
		if _, _, err := ParseColor(bad); err == nil {
			t.Fatalf("ParseColor(%q) should fail", bad)
		}
	}
}

func TestRunRendersSVG(t *testing.T) {
	j := Defaults()
	j.Text = "hello ${who}"
	j.Vars["who"] = "world"

	art, err := Run(j, fonts.NewResolver(""))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(string(art.Data), "<svg") {
		t.Fatalf("expected svg output")
	}
	if art.Result.Lines != 1 || len(art.Result.Placements) != 10 {
		t.Fatalf("unexpected layout: lines=%d placements=%d", art.Result.Lines, len(art.Result.Placements))
	}
	if art.Composite.Empty() || !art.Composite.Closed() {
		t.Fatalf("composite should be non-empty and closed")
	}
	if art.Backend != glyph.BackendTrueType || art.Family == "" {
		t.Fatalf("unexpected face info: backend=%s family=%q", art.Backend, art.Family)
	}
	if len(art.Unresolved) != 0 {
		t.Fatalf("unexpected unresolved placeholders: %v", art.Unresolved)
	}
}

type captureRenderer struct {
	got layout.CompositePath
}

func (c *captureRenderer) Render(p layout.CompositePath) ([]byte, error) {
	c.got = p
	return []byte("ok"), nil
}

func TestRunWithCustomRenderer(t *testing.T) {
	j := Defaults()
	j.Text = "ab ${missing}"
	cr := &captureRenderer{}
	art, err := RunWith(j, fonts.NewResolver(""), cr)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if string(art.Data) != "ok" {
		t.Fatalf("custom renderer output not returned")
	}
	if diff := cmp.Diff(art.Composite, cr.got); diff != "" {
		t.Fatalf("renderer received a different composite (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"missing"}, art.Unresolved); diff != "" {
		t.Fatalf("unresolved mismatch (-want +got):\n%s", diff)
	}
}

func TestRunFontErrors(t *testing.T) {
	j := Defaults()
	j.Font.Src = "builtin:nope"
	j.Text = "x"
	if _, err := Run(j, fonts.NewResolver("")); !errors.Is(err, glyph.ErrFontLoad) {
		t.Fatalf("expected ErrFontLoad, got %v", err)
	}
	if _, err := RunWith(j, nil, &captureRenderer{}); err == nil {
		t.Fatalf("expected error without a font loader")
	}
}
