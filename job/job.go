// Package job decodes job files into typesetting jobs and runs them:
// font → glyph face → word layout → composite path → SVG/PDF.
package job

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tdewolff/canvas"
	"golang.org/x/image/math/fixed"

	"github.com/ByLCY/glyphpath/binding"
	"github.com/ByLCY/glyphpath/dsl"
	"github.com/ByLCY/glyphpath/layout"
	canvasrenderer "github.com/ByLCY/glyphpath/renderer/canvas"
)

// Defaults used when a job file omits a value.
const (
	DefaultFont       = "builtin:goregular"
	DefaultSize       = fixed.Int26_6(20 * 28)
	DefaultOutputPath = "output.svg"
)

// Font 描述字体来源与字号。
type Font struct {
	Src  string
	Size fixed.Int26_6 // 26.6 定点字号，同时决定排版单位的尺度
}

// Output 描述输出文件。
type Output struct {
	Format      canvasrenderer.Format
	Path        string
	Padding     float64 // 排版单位
	Fill        string  // #RRGGBB，"none" 表示不填充
	Stroke      string
	StrokeWidth float64 // mm
}

// Job 是一次完整的排版任务。
type Job struct {
	Name   string
	Font   Font
	Layout layout.Params
	Output Output
	Meta   canvasrenderer.Meta
	Vars   binding.Vars
	Text   string
}

// Defaults 返回默认任务：内置 Go Regular 字体、默认间距、输出 output.svg。
func Defaults() *Job {
	return &Job{
		Font:   Font{Src: DefaultFont, Size: DefaultSize},
		Layout: layout.DefaultParams(),
		Output: Output{
			Format:  canvasrenderer.FormatSVG,
			Path:    DefaultOutputPath,
			Padding: canvasrenderer.DefaultPadding,
			Fill:    "#000000",
			Stroke:  "#000000",
		},
		Vars: binding.Vars{},
	}
}

// Load 解析并解码任务文件。
func Load(r io.Reader) (*Job, error) {
	doc, err := dsl.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("解析任务文件失败: %w", err)
	}
	return Decode(doc)
}

// Decode 将 DSL 文档解码为 Job，未出现的字段保留默认值。
// 长度字段的 em 单位以字号换算，因此 font 段落总是最先解码。
func Decode(doc *dsl.Document) (*Job, error) {
	if doc == nil {
		return nil, fmt.Errorf("文档为空")
	}
	j := Defaults()
	j.Name = doc.Name

	if s := doc.Section("font"); s != nil {
		if err := j.decodeFont(s); err != nil {
			return nil, err
		}
	}
	seen := map[string]bool{}
	for _, s := range doc.Sections {
		if s.Name != "text" && seen[s.Name] {
			return nil, fmt.Errorf("%s: 重复的段落 %q", s.Pos, s.Name)
		}
		seen[s.Name] = true

		var err error
		switch s.Name {
		case "font":
		case "layout":
			err = j.decodeLayout(s)
		case "output":
			err = j.decodeOutput(s)
		case "meta":
			err = j.decodeMeta(s)
		case "vars":
			for _, a := range s.Block.Assignments() {
				j.Vars[a.Key] = a.Value.Text()
			}
		case "text":
			err = j.decodeText(s)
		default:
			err = fmt.Errorf("%s: 未知的段落 %q", s.Pos, s.Name)
		}
		if err != nil {
			return nil, err
		}
	}
	return j, nil
}

func (j *Job) decodeFont(s *dsl.Section) error {
	return eachAssignment(s, func(a *dsl.Assignment) error {
		switch a.Key {
		case "src":
			j.Font.Src = a.Value.Text()
		case "size":
			size, err := ParseSize(a.Value.Text())
			if err != nil {
				return err
			}
			j.Font.Size = size
		default:
			return errUnknownKey
		}
		return nil
	})
}

func (j *Job) decodeLayout(s *dsl.Section) error {
	return eachAssignment(s, func(a *dsl.Assignment) error {
		var dst *float64
		switch a.Key {
		case "char-spacing":
			dst = &j.Layout.CharSpacing
		case "word-spacing":
			dst = &j.Layout.WordSpacing
		case "max-width":
			dst = &j.Layout.MaxWidth
		case "line-spacing":
			dst = &j.Layout.LineSpacing
		case "margin":
			dst = &j.Layout.Margin
		case "markers":
			b, err := strconv.ParseBool(a.Value.Text())
			if err != nil {
				return fmt.Errorf("markers 需要布尔值: %w", err)
			}
			j.Layout.Markers = b
			return nil
		default:
			return errUnknownKey
		}
		v, err := j.units(a.Value.Text())
		if err != nil {
			return err
		}
		*dst = v
		return nil
	})
}

func (j *Job) decodeOutput(s *dsl.Section) error {
	return eachAssignment(s, func(a *dsl.Assignment) error {
		text := a.Value.Text()
		switch a.Key {
		case "format":
			f, err := canvasrenderer.ParseFormat(text)
			if err != nil {
				return err
			}
			j.Output.Format = f
		case "path":
			j.Output.Path = text
		case "padding":
			v, err := j.units(text)
			if err != nil {
				return err
			}
			j.Output.Padding = v
		case "fill", "stroke":
			if _, _, err := ParseColor(text); err != nil {
				return err
			}
			if a.Key == "fill" {
				j.Output.Fill = text
			} else {
				j.Output.Stroke = text
			}
		case "stroke-width":
			l, err := layout.ParseLength(text)
			if err != nil {
				return err
			}
			j.Output.StrokeWidth = layout.UnitsToMM(l.ToUnits(float64(j.Font.Size)))
		default:
			return errUnknownKey
		}
		return nil
	})
}

func (j *Job) decodeMeta(s *dsl.Section) error {
	return eachAssignment(s, func(a *dsl.Assignment) error {
		switch a.Key {
		case "title":
			j.Meta.Title = a.Value.Text()
		case "subject":
			j.Meta.Subject = a.Value.Text()
		case "author":
			j.Meta.Author = a.Value.Text()
		case "creator":
			j.Meta.Creator = a.Value.Text()
		case "keywords":
			j.Meta.Keywords = a.Value.Strings()
		default:
			return errUnknownKey
		}
		return nil
	})
}

// decodeText 拼接 text 段落中的字符串；多个 text 段落按出现顺序追加。
func (j *Job) decodeText(s *dsl.Section) error {
	if as := s.Block.Assignments(); len(as) > 0 {
		return fmt.Errorf("%s: text 段落只能包含字符串", as[0].Pos)
	}
	parts := s.Block.Texts()
	if j.Text != "" {
		parts = append([]string{j.Text}, parts...)
	}
	j.Text = strings.Join(parts, "\n")
	return nil
}

// units 将长度换算为排版单位，em 以当前字号为基准。
func (j *Job) units(value string) (float64, error) {
	l, err := layout.ParseLength(value)
	if err != nil {
		return 0, err
	}
	return l.ToUnits(float64(j.Font.Size)), nil
}

var errUnknownKey = errors.New("未知的字段")

func eachAssignment(s *dsl.Section, fn func(a *dsl.Assignment) error) error {
	for _, a := range s.Block.Assignments() {
		if err := fn(a); err != nil {
			if errors.Is(err, errUnknownKey) {
				return fmt.Errorf("%s: %s 段落中未知的字段 %q", a.Pos, s.Name, a.Key)
			}
			return fmt.Errorf("%s: %s.%s: %w", a.Pos, s.Name, a.Key, err)
		}
	}
	return nil
}

// ParseSize 解析字号：无单位时为 26.6 原始值（560 即 8.75pt），也接受 pt/mm 等绝对单位。
func ParseSize(value string) (fixed.Int26_6, error) {
	l, err := layout.ParseLength(value)
	if err != nil {
		return 0, err
	}
	if l.Unit == layout.UnitEM {
		return 0, fmt.Errorf("字号不能使用 em 单位")
	}
	units := math.Round(l.ToUnits(0))
	if units <= 0 {
		return 0, fmt.Errorf("字号必须为正数: %s", l)
	}
	if units > math.MaxInt32 {
		return 0, fmt.Errorf("字号过大: %s", l)
	}
	return fixed.Int26_6(units), nil
}

// ParseColor 解析 #RGB、#RRGGBB、#RRGGBBAA 或 none。
func ParseColor(value string) (c color.Color, none bool, err error) {
	v := strings.TrimSpace(value)
	if strings.EqualFold(v, "none") {
		return nil, true, nil
	}
	hex := strings.TrimPrefix(v, "#")
	if len(hex) == len(v) || (len(hex) != 3 && len(hex) != 6 && len(hex) != 8) {
		return nil, false, fmt.Errorf("无效的颜色 %q", value)
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return nil, false, fmt.Errorf("无效的颜色 %q", value)
	}
	return canvas.Hex(v), false, nil
}
