// Package glyph loads fonts and reads glyph outlines as owned values.
//
// A Face wraps exactly one font engine glyph slot. Loading a character
// overwrites the slot, so every load+read pair runs under the face's lock and
// the data is copied out before the lock is released. Callers never hold a
// reference into the engine's buffers.
package glyph

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/image/math/fixed"
)

var (
	// ErrFontLoad 表示字体文件无法读取、解析，或字号无法设置。
	ErrFontLoad = errors.New("glyph: 字体加载失败")
	// ErrGlyphMissing 表示字体中没有该字符的映射。
	ErrGlyphMissing = errors.New("glyph: 字体缺少该字符")
	// ErrClosed 表示 Face 已经释放。
	ErrClosed = errors.New("glyph: face 已关闭")
)

// Backend names reported by Face.Backend.
const (
	BackendTrueType = "truetype"
	BackendSFNT     = "sfnt"
)

// Options 配置 Face 的字号。轮廓总是以不做 hinting 的方式读取。
type Options struct {
	// Size 为字号，语义同 FreeType set_char_size：26.6 定点的 pt 数（72 dpi）。
	// 例如 20*28 = 560 表示 8.75pt。
	Size fixed.Int26_6
}

// backend 是对字体引擎单一字形槽的抽象，load 在 Face 锁内调用，必须返回独立副本。
type backend interface {
	name() string
	family() string
	load(r rune, size fixed.Int26_6) (Outline, error)
}

// Face 是一个以固定字号加载的字体，独占一个字形槽。
type Face struct {
	mu   sync.Mutex
	be   backend
	size fixed.Int26_6

	backendName string
	familyName  string
}

// Open 解析字体数据并设置字号。TrueType（glyf）字体使用 golang/freetype，
// 其余 OpenType（CFF）字体回退到 x/image/font/sfnt。
func Open(data []byte, opts Options) (*Face, error) {
	if opts.Size <= 0 {
		return nil, fmt.Errorf("%w: 无效字号 %d", ErrFontLoad, opts.Size)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: 字体数据为空", ErrFontLoad)
	}
	be, err := openFirst(data, openTrueType, openSFNT)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFontLoad, err)
	}
	return newFace(be, opts), nil
}

type opener func(data []byte) (backend, error)

// openFirst 依次尝试各个后端，返回第一个成功的；全部失败时合并所有错误。
func openFirst(data []byte, openers ...opener) (backend, error) {
	var errs []error
	for _, open := range openers {
		be, err := open(data)
		if err == nil {
			return be, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, errors.New("没有可用的字体后端")
	}
	return nil, errors.Join(errs...)
}

func newFace(be backend, opts Options) *Face {
	return &Face{
		be:          be,
		size:        opts.Size,
		backendName: be.name(),
		familyName:  be.family(),
	}
}

// Outline 读取字符 r 的轮廓。没有轮廓点的字形（空格等）返回空 Outline 与其 advance；
// 字体缺字时返回包装了 ErrGlyphMissing 的错误以及零宽空 Outline。
func (f *Face) Outline(r rune) (Outline, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.be == nil {
		return Outline{Rune: r}, ErrClosed
	}
	return f.be.load(r, f.size)
}

// Size returns the configured character size.
func (f *Face) Size() fixed.Int26_6 { return f.size }

// Backend returns which font engine serves this face.
func (f *Face) Backend() string { return f.backendName }

// Family returns the font family name, or "" when the font has none.
func (f *Face) Family() string { return f.familyName }

// Close 释放 Face，之后的 Outline 调用返回 ErrClosed。可重复调用。
func (f *Face) Close() error {
	f.mu.Lock()
	f.be = nil
	f.mu.Unlock()
	return nil
}

func missing(r rune) (Outline, error) {
	return Outline{Rune: r}, fmt.Errorf("%w: %q (U+%04X)", ErrGlyphMissing, r, r)
}
