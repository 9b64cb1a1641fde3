package components

import "image/color"

// RenderShape 渲染时使用的几何形状
type RenderShape int

const (
	// ShapeBox 立方体（敌人、障碍物）
	ShapeBox RenderShape = iota
	// ShapeCapsule 胶囊体（玩家角色）
	ShapeCapsule
)

// RenderableComponent 渲染器需要的外观信息
type RenderableComponent struct {
	Shape  RenderShape
	Color  color.RGBA
	Width  float64 // 水平尺寸（直径或边长）
	Height float64 // 竖直尺寸
}
