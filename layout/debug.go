package layout

import (
	"encoding/json"
	"os"
)

type debugDirective struct {
	Kind      string         `json:"kind"`
	Directive FrameDirective `json:"directive"`
}

type debugTemplate struct {
	ID     string           `json:"id"`
	Frames []debugDirective `json:"frames"`
}

// MarshalDebugJSON 将页面模板模型输出为缩进 JSON，便于调试。
func MarshalDebugJSON(t *Templates) ([]byte, error) {
	out := make([]debugTemplate, 0, len(t.order))
	for _, id := range t.order {
		dt := debugTemplate{ID: id, Frames: []debugDirective{}}
		for _, d := range t.byID[id] {
			dt.Frames = append(dt.Frames, debugDirective{Kind: d.Kind().String(), Directive: d})
		}
		out = append(out, dt)
	}
	return json.MarshalIndent(out, "", "  ")
}

// WriteDebugJSON writes MarshalDebugJSON's output to path.
func WriteDebugJSON(t *Templates, path string) error {
	if t == nil {
		return nil
	}
	data, err := MarshalDebugJSON(t)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
