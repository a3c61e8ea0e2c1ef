package layout

// Params 配置排版引擎，所有数值均为排版单位（字体 26.6 定点的原始值）。
// 数值不做校验：负数或过大的间距由调用方负责，单个超长单词总会整词放置，因此排版必然终止。
type Params struct {
	CharSpacing float64 // 同一单词内相邻字符之间的额外间距
	WordSpacing float64 // 单词之间的额外间距
	MaxWidth    float64 // 行宽阈值，超过则换行
	LineSpacing float64 // 相邻行基线之间的垂直距离
	Margin      float64 // 每行起始的左边距
	Markers     bool    // 在每行起点输出十字调试标记
}

// Default spacing values (layout units).
const (
	DefaultCharSpacing = 40
	DefaultWordSpacing = 200
	DefaultMaxWidth    = 8000
	DefaultLineSpacing = 1000
	DefaultMargin      = 50
	MarkerSize         = 10
)

// DefaultParams 返回默认排版参数。
func DefaultParams() Params {
	return Params{
		CharSpacing: DefaultCharSpacing,
		WordSpacing: DefaultWordSpacing,
		MaxWidth:    DefaultMaxWidth,
		LineSpacing: DefaultLineSpacing,
		Margin:      DefaultMargin,
	}
}
