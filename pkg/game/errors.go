package game

import "errors"

var (
	// ErrModelNotFound 模型资源不存在
	ErrModelNotFound = errors.New("model not found")

	// ErrClipIndexOutOfRange 动画绑定引用了模型中不存在的片段序号
	ErrClipIndexOutOfRange = errors.New("clip index out of range")

	// ErrSessionTerminal 会话已终止，不再接受状态修改
	ErrSessionTerminal = errors.New("session is terminal")
)
