// Package binding expands ${name} placeholders in job text.
package binding

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// Vars 为占位符的取值来源：job 的 vars 段落与 -data JSON 合并后的结果。
// 值可以是标量、map[string]any 或 []any，路径形如 user.name、items[0].title。
type Vars map[string]any

// DecodeJSON 解析 JSON 对象为 Vars。
func DecodeJSON(data []byte) (Vars, error) {
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("解析 data JSON 失败: %w", err)
	}
	return Vars(v), nil
}

// Merge 返回合并后的副本，other 中的同名顶层键覆盖 v。
func (v Vars) Merge(other Vars) Vars {
	out := make(Vars, len(v)+len(other))
	for k, val := range v {
		out[k] = val
	}
	for k, val := range other {
		out[k] = val
	}
	return out
}

// Expand 替换 text 中的占位符，并按出现顺序返回无法解析的路径。
// 无法解析的占位符保持原样写入结果。
func Expand(text string, vars Vars) (string, []string) {
	var unresolved []string
	out := placeholder.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if val, ok := vars.Lookup(path); ok {
			return format(val)
		}
		unresolved = append(unresolved, path)
		return match
	})
	return out, unresolved
}

// Lookup 按点分路径取值，支持 name[0] 形式的数组下标。
func (v Vars) Lookup(path string) (any, bool) {
	if path == "" || v == nil {
		return nil, false
	}
	var current any = map[string]any(v)
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := splitSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			m, isMap := current.(map[string]any)
			if !isMap {
				return nil, false
			}
			if current, ok = m[name]; !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			arr, isArr := current.([]any)
			if !isArr || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
		}
	}
	return current, true
}

// splitSegment 拆分 items[1][2] 为名称与下标。
func splitSegment(segment string) (string, []int, bool) {
	i := strings.IndexByte(segment, '[')
	if i == -1 {
		return segment, nil, true
	}
	name, rest := segment[:i], segment[i:]
	var indexes []int
	for rest != "" {
		end := strings.IndexByte(rest, ']')
		if rest[0] != '[' || end == -1 {
			return "", nil, false
		}
		idx, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, idx)
		rest = rest[end+1:]
	}
	return name, indexes, true
}

func format(val any) string {
	switch x := val.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
