package binding

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnresolvedPath reports a placeholder path that does not exist in the
// bound data.
var ErrUnresolvedPath = errors.New("unresolved path")

var exprPattern = regexp.MustCompile(`\[\[(.+?)\]\]`)

// Interpolate 将文本中的 [[ path.to.value ]] 替换为 data 中的值。
// 无法解析的占位符保持原样，其路径通过 missing 返回。
func Interpolate(text string, data any) (out string, missing []string) {
	if data == nil || !strings.Contains(text, "[[") {
		return text, nil
	}
	out = exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-2])
		if path == "" {
			return match
		}
		val, err := Lookup(data, path)
		if err != nil {
			missing = append(missing, path)
			return match
		}
		return format(val)
	})
	return out, missing
}

// HasPlaceholder reports whether text contains a [[ ... ]] expression.
func HasPlaceholder(text string) bool {
	return exprPattern.MatchString(text)
}

// format 渲染绑定值；整数值的 float64（JSON 数字）不带小数部分。
func format(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// step is one hop of a path: a map key or a list index.
type step struct {
	key   string
	index int
	list  bool
}

// splitPath reads "a.b[0][1].c" into steps.
func splitPath(path string) ([]step, error) {
	var steps []step
	for _, segment := range strings.Split(path, ".") {
		name, rest, _ := strings.Cut(segment, "[")
		if name == "" && rest == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrUnresolvedPath, path)
		}
		if name != "" {
			steps = append(steps, step{key: name})
		}
		for rest != "" {
			raw, after, ok := strings.Cut(rest, "]")
			if !ok {
				return nil, fmt.Errorf("%w: unclosed index in %q", ErrUnresolvedPath, path)
			}
			idx, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: bad index %q in %q", ErrUnresolvedPath, raw, path)
			}
			steps = append(steps, step{index: idx, list: true})
			rest = strings.TrimPrefix(after, "[")
			if rest != "" && !strings.HasPrefix(after, "[") {
				return nil, fmt.Errorf("%w: trailing %q in %q", ErrUnresolvedPath, after, path)
			}
		}
	}
	return steps, nil
}

// Lookup resolves path against JSON-shaped data (maps and slices).
func Lookup(data any, path string) (any, error) {
	steps, err := splitPath(path)
	if err != nil {
		return nil, err
	}
	current := data
	for i, s := range steps {
		var ok bool
		if s.list {
			var items []any
			items, ok = current.([]any)
			if ok && s.index >= 0 && s.index < len(items) {
				current = items[s.index]
			} else {
				ok = false
			}
		} else {
			var m map[string]any
			if m, ok = current.(map[string]any); ok {
				current, ok = m[s.key]
			}
		}
		if !ok {
			return nil, fmt.Errorf("%w: %q stops at step %d", ErrUnresolvedPath, path, i+1)
		}
	}
	return current, nil
}
