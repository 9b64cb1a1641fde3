package components

// ObstacleKind 障碍物类别（只影响渲染）
type ObstacleKind int

const (
	// ObstacleWall 围墙上的桩
	ObstacleWall ObstacleKind = iota
	// ObstacleProp 场地内的道具
	ObstacleProp
)

// ObstacleComponent 静态障碍物
// 创建后不再移动或销毁；碰撞半径统一由 CollisionSystem 持有
type ObstacleComponent struct {
	Kind ObstacleKind
}
