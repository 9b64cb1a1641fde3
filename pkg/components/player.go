package components

// PlayerComponent 标记由玩家控制的角色实体
type PlayerComponent struct {
	// MeshName 加载的模型名称（用于日志和调试显示）
	MeshName string
}
