package layout

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ByLCY/glyphpath/glyph"
)

// GlyphSource 提供单个字符的原始轮廓，*glyph.Face 即为默认实现。
type GlyphSource interface {
	Outline(r rune) (glyph.Outline, error)
}

// CleanText 清理输入：换行视为空格，并去掉首尾空白。
func CleanText(text string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(text))
}

// SplitWords 按空白切分单词，换行不做特殊处理。
func SplitWords(text string) []string {
	return strings.Fields(CleanText(text))
}

// Layout 从左到右依次放置每个单词的字符，超过 MaxWidth 时整词换行。
//
// 换行条件：x + 词宽 + 待插入词间距 > MaxWidth，且光标已越过行首边距。
// 因此单个超长单词会独占一行完整放置，不会在词内拆分。
// 缺字会替换为零宽空字形并记录到 Diagnostics；GlyphSource 的其它错误会中止排版。
func Layout(src GlyphSource, words []string, p Params) (*Result, error) {
	if src == nil {
		return nil, fmt.Errorf("layout: 缺少字形来源 GlyphSource")
	}
	e := &engine{
		src:    src,
		p:      p,
		x:      p.Margin,
		glyphs: map[rune]measured{},
		res:    &Result{},
		log:    Logger(),
	}
	if len(words) == 0 {
		return e.res, nil
	}
	e.log.Debug("layout start", slog.Int("words", len(words)),
		slog.Float64("charSpacing", p.CharSpacing), slog.Float64("wordSpacing", p.WordSpacing),
		slog.Float64("maxWidth", p.MaxWidth), slog.Float64("lineSpacing", p.LineSpacing))
	e.mark()

	for i, w := range words {
		if err := e.placeWord(i, w, i == len(words)-1); err != nil {
			return nil, err
		}
	}
	e.res.Lines = e.line + 1
	return e.res, nil
}

type measured struct {
	path    glyph.Path
	width   float64
	missing bool
}

// engine 保存一次排版调用内按顺序演进的状态。
type engine struct {
	src GlyphSource
	p   Params

	x         float64 // 当前行的笔位置
	line      int     // 行号
	baseline  float64 // 当前行基线 y
	justBroke bool    // 刚刚换行、尚未放置下一个词

	glyphs map[rune]measured
	res    *Result
	log    *slog.Logger
}

// measure 读取并归一化一个字符；结果按字符缓存，同一次调用内宽度保持一致。
func (e *engine) measure(r rune) (measured, error) {
	if m, ok := e.glyphs[r]; ok {
		return m, nil
	}
	o, err := e.src.Outline(r)
	var m measured
	switch {
	case errors.Is(err, glyph.ErrGlyphMissing):
		m = measured{missing: true}
	case err != nil:
		return measured{}, fmt.Errorf("layout: 读取字符 %q 的轮廓失败: %w", r, err)
	case o.Empty():
		m = measured{width: max(o.Advance, 0)}
	default:
		path := glyph.Build(o)
		m = measured{path: path, width: path.Width}
	}
	e.glyphs[r] = m
	return m, nil
}

func (e *engine) atLineStart() bool { return e.x <= e.p.Margin }

func (e *engine) placeWord(wi int, word string, last bool) error {
	runes := []rune(word)
	glyphs := make([]measured, len(runes))
	width := 0.0
	for i, r := range runes {
		m, err := e.measure(r)
		if err != nil {
			return err
		}
		glyphs[i] = m
		width += m.width + e.p.CharSpacing
	}
	if len(runes) > 0 {
		width -= e.p.CharSpacing
	}

	pending := 0.0
	if !e.atLineStart() && !e.justBroke {
		pending = e.p.WordSpacing
	}
	e.log.Debug("measure word", slog.String("word", word), slog.Float64("width", width), slog.Float64("x", e.x))

	wrapped := false
	if e.x+width+pending > e.p.MaxWidth && !e.atLineStart() {
		e.log.Debug("line break", slog.Float64("x", e.x), slog.Float64("width", width),
			slog.Float64("pending", pending), slog.Float64("maxWidth", e.p.MaxWidth))
		e.breakLine()
		wrapped = true
	}

	e.res.Words = append(e.res.Words, WordMetrics{
		Text:    word,
		Width:   width,
		X:       e.x,
		Line:    e.line,
		Pending: pending,
		Wrapped: wrapped,
	})
	for i, r := range runes {
		m := glyphs[i]
		if m.missing {
			e.res.Diagnostics = append(e.res.Diagnostics, Diagnostic{
				Kind:    DiagMissingGlyph,
				Char:    string(r),
				Word:    wi,
				Index:   i,
				Message: fmt.Sprintf("字体缺少字符 %q (U+%04X)，已替换为零宽空字形", r, r),
			})
		}
		e.res.Placements = append(e.res.Placements, Placement{
			Char:   r,
			Word:   wi,
			Index:  i,
			Line:   e.line,
			Width:  m.width,
			Offset: Offset{X: e.x, Y: e.baseline},
			Path:   m.path,
		})
		e.x += m.width
		if i < len(runes)-1 {
			e.x += e.p.CharSpacing
		}
	}

	if !last {
		e.x += e.p.WordSpacing
		e.justBroke = false
	}
	return nil
}

func (e *engine) breakLine() {
	e.line++
	e.baseline = float64(e.line) * e.p.LineSpacing
	e.x = e.p.Margin
	e.justBroke = true
	e.log.Debug("new line", slog.Int("line", e.line), slog.Float64("baseline", e.baseline))
	e.mark()
}

// mark 在当前行起点（x=0，基线处）添加十字标记。
func (e *engine) mark() {
	if !e.p.Markers {
		return
	}
	e.res.Markers = append(e.res.Markers, Cross(0, e.baseline, MarkerSize)...)
}

// Cross 返回以 (x, y) 为中心的十字，每一笔都是往返的两段闭合轮廓。
func Cross(x, y, size float64) []glyph.Contour {
	stroke := func(a, b glyph.Point) glyph.Contour {
		return glyph.Contour{{Start: a, End: b}, {Start: b, End: a}}
	}
	return []glyph.Contour{
		stroke(glyph.Point{X: x - size, Y: y}, glyph.Point{X: x + size, Y: y}),
		stroke(glyph.Point{X: x, Y: y - size}, glyph.Point{X: x, Y: y + size}),
	}
}
