package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ByLCY/glyphpath/binding"
	"github.com/ByLCY/glyphpath/fonts"
	"github.com/ByLCY/glyphpath/job"
	"github.com/ByLCY/glyphpath/layout"
	canvasrenderer "github.com/ByLCY/glyphpath/renderer/canvas"
)

func main() {
	input := flag.String("in", "", "任务文件路径（为空时仅使用命令行参数）")
	text := flag.String("text", "", "要排版的文本；为空且未指定任务文件中的文本时从标准输入读取")
	fontSrc := flag.String("font", "", "字体来源：builtin:goregular、system:DejaVuSans 或文件路径")
	size := flag.String("size", "", "字号，26.6 原始值（560）或带单位（20pt）")
	output := flag.String("out", "", "输出路径，默认 output.svg")
	format := flag.String("format", "", "输出格式：svg、pdf 或 path")
	debug := flag.String("debug", "", "布局调试 JSON 输出路径")
	dataJSON := flag.String("data", "", "用于替换 ${...} 占位符的 JSON 数据")
	charSpacing := flag.String("char-spacing", "", "字符间距")
	wordSpacing := flag.String("word-spacing", "", "单词间距")
	maxWidth := flag.String("max-width", "", "最大行宽")
	lineSpacing := flag.String("line-spacing", "", "行距")
	margin := flag.String("margin", "", "行首边距")
	markers := flag.Bool("markers", false, "在每行起点输出十字标记")
	verbose := flag.Bool("v", false, "输出排版调试日志")
	listFonts := flag.Bool("list-fonts", false, "列出内置字体")
	flag.Parse()

	if *listFonts {
		for _, name := range fonts.Builtins() {
			fmt.Println("builtin:" + name)
		}
		return
	}
	if *verbose {
		layout.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	j, baseDir, err := loadJob(*input)
	if err != nil {
		log.Fatalf("加载任务失败: %v", err)
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	overrides := []struct {
		name  string
		value string
		dst   *float64
	}{
		{"char-spacing", *charSpacing, &j.Layout.CharSpacing},
		{"word-spacing", *wordSpacing, &j.Layout.WordSpacing},
		{"max-width", *maxWidth, &j.Layout.MaxWidth},
		{"line-spacing", *lineSpacing, &j.Layout.LineSpacing},
		{"margin", *margin, &j.Layout.Margin},
	}
	if set["font"] {
		j.Font.Src = *fontSrc
	}
	if set["size"] {
		if j.Font.Size, err = job.ParseSize(*size); err != nil {
			log.Fatalf("-size: %v", err)
		}
	}
	for _, o := range overrides {
		if !set[o.name] {
			continue
		}
		l, err := layout.ParseLength(o.value)
		if err != nil {
			log.Fatalf("-%s: %v", o.name, err)
		}
		*o.dst = l.ToUnits(float64(j.Font.Size))
	}
	if set["markers"] {
		j.Layout.Markers = *markers
	}
	if set["format"] {
		if j.Output.Format, err = canvasrenderer.ParseFormat(*format); err != nil {
			log.Fatalf("-format: %v", err)
		}
		if !set["out"] && j.Output.Path == job.DefaultOutputPath && j.Output.Format == canvasrenderer.FormatPDF {
			j.Output.Path = "output.pdf"
		}
	}
	if set["out"] {
		j.Output.Path = *output
	}
	if *dataJSON != "" {
		vars, err := binding.DecodeJSON([]byte(*dataJSON))
		if err != nil {
			log.Fatalf("%v", err)
		}
		j.Vars = j.Vars.Merge(vars)
	}
	if set["text"] {
		j.Text = *text
	} else if strings.TrimSpace(j.Text) == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("读取标准输入失败: %v", err)
		}
		j.Text = string(data)
	}

	if err := run(j, fonts.NewResolver(baseDir), *debug); err != nil {
		log.Fatalf("生成失败: %v", err)
	}
	fmt.Printf("已生成 %s：%s\n", strings.ToUpper(string(j.Output.Format)), j.Output.Path)
}

// loadJob 读取任务文件；未指定时返回默认任务，相对字体路径以当前目录为基准。
func loadJob(path string) (*job.Job, string, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, "", err
		}
		return job.Defaults(), wd, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("无法打开任务文件 %s: %w", path, err)
	}
	defer file.Close()

	j, err := job.Load(file)
	if err != nil {
		return nil, "", err
	}
	return j, filepath.Dir(path), nil
}

// run 串联排版与渲染，并写出结果文件。
func run(j *job.Job, resolver *fonts.Resolver, debugPath string) error {
	art, err := job.Run(j, resolver)
	if err != nil {
		return err
	}

	if debugPath != "" {
		if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
			return fmt.Errorf("创建调试目录失败: %w", err)
		}
		if err := layout.WriteDebugJSON(art.Result, debugPath); err != nil {
			return fmt.Errorf("输出调试 JSON 失败: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(j.Output.Path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(j.Output.Path, art.Data, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	for _, d := range art.Result.Diagnostics {
		fmt.Fprintf(os.Stderr, "警告: %s\n", d.Message)
	}
	return nil
}
