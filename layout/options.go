package layout

// BuildOptions 配置页面模板构建阶段所需的依赖。
type BuildOptions struct {
	// Style resolves draw styles; nil selects the default stub.
	Style StyleSheet
}

func (o BuildOptions) style() StyleSheet {
	if o.Style == nil {
		return NewDrawStyle()
	}
	return o.Style
}
