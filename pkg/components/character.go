package components

import "github.com/gonewx/arena/pkg/utils"

// CharacterComponent 玩家角色的控制参数和每帧计算结果
//
// 参数部分在创建时由配置填充，状态部分由 CharacterControllerSystem 每帧写入，
// 镜头系统和渲染系统只读取。
type CharacterComponent struct {
	// 参数
	MoveSpeed          float64 // 移动速度（单位/秒）
	TurnFraction       float64 // 每参考帧向目标朝向逼近的比例
	ReferenceFrameRate float64 // 参考帧率
	ColliderRadius     float64 // 与障碍物碰撞的半径

	// 每帧状态
	DesiredFacing float64    // 视角输入给出的朝向（镜头绕角色的方位）
	TargetFacing  float64    // 根据移动方向得出的目标朝向
	LastMove      utils.Vec3 // 本帧尝试的位移
	Blocked       bool       // 本帧位移是否被障碍物拒绝
}
