package components

import "github.com/gonewx/arena/pkg/utils"

// CameraComponent 跟随镜头
// 每帧由 CameraSystem 根据玩家位置重新计算，不做平滑
type CameraComponent struct {
	Distance float64 // 镜头到角色的水平距离
	Height   float64 // 镜头高于角色的高度
	FOV      float64 // 垂直视场角（度）

	Position utils.Vec3 // 镜头位置
	LookAt   utils.Vec3 // 注视点（角色位置）
}
