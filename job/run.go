package job

import (
	"fmt"
	"log/slog"

	"github.com/ByLCY/glyphpath/binding"
	"github.com/ByLCY/glyphpath/glyph"
	"github.com/ByLCY/glyphpath/layout"
	"github.com/ByLCY/glyphpath/renderer"
	canvasrenderer "github.com/ByLCY/glyphpath/renderer/canvas"
)

// FontLoader 根据字体来源返回字体数据，*fonts.Resolver 即为默认实现。
type FontLoader interface {
	Load(src string) ([]byte, string, error)
}

// Artifact 是一次任务的全部产物。
type Artifact struct {
	Result     *layout.Result
	Composite  layout.CompositePath
	Data       []byte // 渲染后的文件内容
	FontName   string // 字体来源解析出的名称
	Family     string
	Backend    string
	Unresolved []string // 无法替换的 ${...} 占位符
}

// Renderer 根据输出配置创建渲染器。
func (j *Job) Renderer() (renderer.Renderer, error) {
	fill, fillNone, err := ParseColor(j.Output.Fill)
	if err != nil {
		return nil, fmt.Errorf("output.fill: %w", err)
	}
	stroke, strokeNone, err := ParseColor(j.Output.Stroke)
	if err != nil {
		return nil, fmt.Errorf("output.stroke: %w", err)
	}
	opts := canvasrenderer.Options{
		Format:      j.Output.Format,
		Padding:     j.Output.Padding,
		Fill:        fill,
		FillNone:    fillNone,
		Stroke:      stroke,
		StrokeWidth: j.Output.StrokeWidth,
		Meta:        j.Meta,
	}
	if strokeNone {
		opts.StrokeWidth = 0
	}
	if opts.Padding == 0 {
		opts.Padding = -1 // 0 在渲染器中表示默认留白
	}
	if opts.Meta.Title == "" {
		opts.Meta.Title = j.Name
	}
	if opts.Meta.Creator == "" {
		opts.Meta.Creator = "glyphpath"
	}
	return canvasrenderer.NewRenderer(opts), nil
}

// Run 串联字体加载、排版、合并与渲染。
func Run(j *Job, loader FontLoader) (*Artifact, error) {
	r, err := j.Renderer()
	if err != nil {
		return nil, err
	}
	return RunWith(j, loader, r)
}

// RunWith 与 Run 相同，但使用调用方提供的渲染器。
func RunWith(j *Job, loader FontLoader, r renderer.Renderer) (*Artifact, error) {
	if j == nil {
		return nil, fmt.Errorf("任务为空")
	}
	if loader == nil || r == nil {
		return nil, fmt.Errorf("缺少字体加载器或渲染器")
	}
	log := layout.Logger()

	data, name, err := loader.Load(j.Font.Src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", glyph.ErrFontLoad, err)
	}
	face, err := glyph.Open(data, glyph.Options{Size: j.Font.Size})
	if err != nil {
		return nil, fmt.Errorf("打开字体 %s 失败: %w", name, err)
	}
	defer face.Close()
	log.Debug("font opened", slog.String("font", name), slog.String("family", face.Family()),
		slog.String("backend", face.Backend()), slog.Int("size", int(face.Size())))

	text, unresolved := binding.Expand(j.Text, j.Vars)
	for _, p := range unresolved {
		log.Warn("unresolved placeholder", slog.String("path", p))
	}

	res, err := layout.Layout(face, layout.SplitWords(text), j.Layout)
	if err != nil {
		return nil, fmt.Errorf("排版失败: %w", err)
	}
	for _, d := range res.Diagnostics {
		log.Warn(d.Message, slog.String("kind", d.Kind), slog.Int("word", d.Word), slog.Int("index", d.Index))
	}

	composite := res.Composite()
	out, err := r.Render(composite)
	if err != nil {
		return nil, fmt.Errorf("渲染失败: %w", err)
	}
	return &Artifact{
		Result:     res,
		Composite:  composite,
		Data:       out,
		FontName:   name,
		Family:     face.Family(),
		Backend:    face.Backend(),
		Unresolved: unresolved,
	}, nil
}
