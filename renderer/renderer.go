package renderer

import "github.com/ByLCY/rml2csv/dsl"

// Renderer 将报表标记树输出为最终格式，例如纯文本或 PDF。
// Render 返回生成的数据以及可能的错误。
type Renderer interface {
	Render(doc *dsl.Node) ([]byte, error)
}
