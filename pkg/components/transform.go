package components

import "github.com/gonewx/arena/pkg/utils"

// TransformComponent 实体在世界中的位置和朝向
// 朝向是绕竖直轴（Y）的弧度角
type TransformComponent struct {
	Position utils.Vec3
	Facing   float64
}
