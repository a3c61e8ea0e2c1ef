package layout

import (
	"encoding/json"
	"os"
)

type debugPlacement struct {
	Char     string `json:"char"`
	Contours int    `json:"contours"`
	Segments int    `json:"segments"`
	Placement
}

type debugResult struct {
	Lines       int              `json:"lines"`
	Words       []WordMetrics    `json:"words"`
	Placements  []debugPlacement `json:"placements"`
	Diagnostics []Diagnostic     `json:"diagnostics,omitempty"`
	Bounds      *Rect            `json:"bounds,omitempty"`
}

// MarshalDebug 将排版结果（不含几何数据）编码为缩进 JSON。
func MarshalDebug(res *Result) ([]byte, error) {
	if res == nil {
		return []byte("null"), nil
	}
	out := debugResult{
		Lines:       res.Lines,
		Words:       res.Words,
		Diagnostics: res.Diagnostics,
		Placements:  make([]debugPlacement, len(res.Placements)),
	}
	for i, pl := range res.Placements {
		out.Placements[i] = debugPlacement{Char: string(pl.Char), Contours: len(pl.Path.Contours),
			Segments: pl.Path.SegmentCount(), Placement: pl}
	}
	if b, ok := res.Composite().Bounds(); ok {
		out.Bounds = &b
	}
	return json.MarshalIndent(out, "", "  ")
}

// WriteDebugJSON 将排版结果输出为 JSON，便于调试或可视化。
func WriteDebugJSON(res *Result, path string) error {
	if res == nil {
		return nil
	}
	data, err := MarshalDebug(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
