package components

// DialogueComponent NPC 对话数据
type DialogueComponent struct {
	Lines         []string
	Index         int  // 当前显示的行
	Open          bool // 对话框是否打开
	InteractRange float64
	InRange       bool // 当前角色是否在交互范围内
}

// CurrentLine 返回当前行，未打开时返回空串
func (d *DialogueComponent) CurrentLine() string {
	if !d.Open || d.Index < 0 || d.Index >= len(d.Lines) {
		return ""
	}
	return d.Lines[d.Index]
}

// HintComponent 屏幕提示文字，Remaining 归零后移除
type HintComponent struct {
	Text      string
	Remaining float64 // 剩余显示时间（秒）
}
