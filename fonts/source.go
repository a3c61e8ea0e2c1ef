// Package fonts resolves font source strings into font bytes.
//
// Supported forms:
//
//	builtin:goregular   字体随程序内置（Go 字体家族，见 Builtins）
//	embed:goregular     builtin: 的别名
//	system:DejaVuSans   通过系统字体目录查找
//	path/to/font.ttf    相对 BaseDir 或绝对路径
package fonts

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/flopp/go-findfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

// ErrNotFound 表示字体来源无法解析为任何字体文件。
var ErrNotFound = errors.New("fonts: 找不到字体")

var builtins = map[string][]byte{
	"goregular":   goregular.TTF,
	"gobold":      gobold.TTF,
	"goitalic":    goitalic.TTF,
	"gomedium":    gomedium.TTF,
	"gomono":      gomono.TTF,
	"gosmallcaps": gosmallcaps.TTF,
}

// Builtins 返回内置字体名称（已排序）。
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolver 按来源字符串读取字体。BaseDir 为空时不允许相对路径。
type Resolver struct {
	BaseDir string
	// Find 用于 system: 来源，默认为 findfont.Find。
	Find func(name string) (string, error)
}

// NewResolver returns a resolver rooted at baseDir.
func NewResolver(baseDir string) *Resolver {
	return &Resolver{BaseDir: baseDir, Find: findfont.Find}
}

// Load 返回字体数据以及便于日志展示的名称。
func (r *Resolver) Load(src string) ([]byte, string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, "", fmt.Errorf("%w: 缺少 src", ErrNotFound)
	}
	if name, ok := cutPrefix(src, "builtin:", "built-in:", "embed:"); ok {
		data, ok := builtins[strings.ToLower(name)]
		if !ok {
			return nil, "", fmt.Errorf("%w: 内置字体 %s 不存在（可选：%s）", ErrNotFound, name, strings.Join(Builtins(), ", "))
		}
		return data, "builtin:" + strings.ToLower(name), nil
	}
	if name, ok := cutPrefix(src, "system:"); ok {
		find := r.Find
		if find == nil {
			find = findfont.Find
		}
		path, err := find(name)
		if err != nil {
			return nil, "", fmt.Errorf("%w: 系统字体 %s: %v", ErrNotFound, name, err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("读取系统字体 %s 失败: %w", path, err)
		}
		return data, path, nil
	}

	path := src
	if r.BaseDir == "" && !filepath.IsAbs(path) {
		return nil, "", fmt.Errorf("未指定资源目录时不允许直接使用字体路径：%s（请改用 builtin: 或 system:）", src)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.BaseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, "", fmt.Errorf("读取字体 %s 失败: %w", path, err)
	}
	return data, path, nil
}

func cutPrefix(s string, prefixes ...string) (string, bool) {
	for _, p := range prefixes {
		if rest, ok := strings.CutPrefix(s, p); ok {
			return rest, true
		}
	}
	return "", false
}
