package layout

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteDebugJSON(t *testing.T) {
	res := mustLayout(t, newStub(), []string{"ab", "a?"}, testParams(300))
	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteDebugJSON(res, path); err != nil {
		t.Fatalf("WriteDebugJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var decoded struct {
		Lines      int `json:"lines"`
		Placements []struct {
			Char     string `json:"char"`
			Line     int    `json:"line"`
			Contours int    `json:"contours"`
			Segments int    `json:"segments"`
		} `json:"placements"`
		Diagnostics []Diagnostic `json:"diagnostics"`
		Bounds      *Rect        `json:"bounds"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v\n%s", err, data)
	}
	if decoded.Lines != 2 || len(decoded.Placements) != 4 {
		t.Fatalf("unexpected debug output: %s", data)
	}
	if decoded.Placements[0].Char != "a" || decoded.Placements[0].Contours != 1 || decoded.Placements[0].Segments != 4 {
		t.Fatalf("unexpected first placement: %+v", decoded.Placements[0])
	}
	if decoded.Placements[3].Char != "?" || decoded.Placements[3].Contours != 0 || decoded.Placements[3].Segments != 0 {
		t.Fatalf("unexpected missing placement: %+v", decoded.Placements[3])
	}
	if len(decoded.Diagnostics) != 1 || decoded.Bounds == nil {
		t.Fatalf("expected diagnostics and bounds: %s", data)
	}
}

func TestWriteDebugJSONNil(t *testing.T) {
	if err := WriteDebugJSON(nil, filepath.Join(t.TempDir(), "x.json")); err != nil {
		t.Fatalf("nil result should be a no-op: %v", err)
	}
}
