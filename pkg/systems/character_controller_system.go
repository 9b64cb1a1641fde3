package systems

import (
	"math"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/ecs"
	"github.com/gonewx/arena/pkg/game"
	"github.com/gonewx/arena/pkg/utils"
)

// 动画片段名称
const (
	ClipIdle   = "Idle"
	ClipWalk   = "Walk"
	ClipRun    = "Run"
	ClipAttack = "Attack"
)

// CharacterControllerSystem 玩家角色控制器
//
// 每帧根据输入计算视角朝向、移动向量和目标朝向，
// 平滑转身，经碰撞索引检查后提交位移，最后选择动画片段。
//
// 坐标约定：视角为 0 时"前进"沿 -Z 移动，镜头位于角色 +Z 一侧。
type CharacterControllerSystem struct {
	entityManager *ecs.EntityManager
	collision     *CollisionSystem
	animation     *AnimationSystem
}

// NewCharacterControllerSystem 创建角色控制器
func NewCharacterControllerSystem(em *ecs.EntityManager, collision *CollisionSystem, animation *AnimationSystem) *CharacterControllerSystem {
	return &CharacterControllerSystem{
		entityManager: em,
		collision:     collision,
		animation:     animation,
	}
}

// DesiredFacing 视角输入 [-1, 1] 映射为朝向角，满量程各转半圈
func DesiredFacing(look float64) float64 {
	return look * math.Pi
}

// MovementVector 按激活的移动标志累加位移
//
// 每个方向贡献 step 长度，方向相对 desired（视角朝向）而不是角色当前朝向。
// 前进与平移同时按下时不做归一化，斜向移动更快。
func MovementVector(in *game.InputState, desired, step float64) utils.Vec3 {
	sin, cos := math.Sincos(desired)
	var move utils.Vec3
	if in.Forward {
		move.X -= sin * step
		move.Z -= cos * step
	}
	if in.Back {
		move.X += sin * step
		move.Z += cos * step
	}
	if in.Left {
		move.X -= cos * step
		move.Z += sin * step
	}
	if in.Right {
		move.X += cos * step
		move.Z -= sin * step
	}
	return move
}

// TargetFacing 根据激活的移动标志给出目标朝向
// 按 前/后/左/右 顺序求值，最后一个激活的标志生效；没有标志时返回 fallback
func TargetFacing(in *game.InputState, desired, fallback float64) float64 {
	target := fallback
	if in.Forward {
		target = desired + math.Pi
	}
	if in.Back {
		target = desired
	}
	if in.Left {
		target = desired - math.Pi/2
	}
	if in.Right {
		target = desired + math.Pi/2
	}
	return target
}

// StepFacing 沿最短方向向目标朝向逼近 fraction 比例，结果规整到 (-π, π]
func StepFacing(current, target, fraction float64) float64 {
	delta := utils.ShortestAngleDelta(current, target)
	return utils.WrapAngle(current + delta*fraction)
}

// TurnFraction 把每参考帧的逼近比例换算为 dt 秒的逼近比例
func TurnFraction(perFrame, refRate, dt float64) float64 {
	return utils.ExpApproachFraction(perFrame, refRate, dt)
}

// Update 更新一个角色
//
// 参数:
//   - id: 角色实体
//   - in: 本帧输入（已轮询）
//   - attack: 本帧是否触发攻击（调用方已消费的边沿事件）
//   - dt: 帧时间（秒）
func (s *CharacterControllerSystem) Update(id ecs.EntityID, in *game.InputState, attack bool, dt float64) {
	character, ok := ecs.GetComponent[*components.CharacterComponent](s.entityManager, id)
	if !ok {
		return
	}
	transform, ok := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
	if !ok {
		return
	}

	desired := DesiredFacing(in.Look)
	character.DesiredFacing = desired

	move := MovementVector(in, desired, character.MoveSpeed*dt)
	character.LastMove = move
	character.Blocked = false

	if !move.IsZero() {
		character.TargetFacing = TargetFacing(in, desired, character.TargetFacing)
		fraction := TurnFraction(character.TurnFraction, character.ReferenceFrameRate, dt)
		transform.Facing = StepFacing(transform.Facing, character.TargetFacing, fraction)

		candidate := transform.Position.Add(move)
		if s.collision != nil && s.collision.WouldCollide(candidate, character.ColliderRadius) {
			character.Blocked = true
		} else {
			transform.Position = candidate
		}
	}

	s.selectAnimation(id, in, attack)
}

// selectAnimation 攻击优先；攻击片段播放期间不切换移动动画
func (s *CharacterControllerSystem) selectAnimation(id ecs.EntityID, in *game.InputState, attack bool) {
	if s.animation == nil {
		return
	}

	if attack {
		s.animation.Play(id, ClipAttack, components.LoopOnce)
		return
	}
	if s.animation.IsPlaying(id, ClipAttack) {
		return
	}

	if in.AnyMovement() {
		if !s.animation.IsPlaying(id, ClipWalk) {
			s.animation.Play(id, ClipWalk, components.LoopRepeat)
		}
		return
	}
	s.animation.Play(id, ClipIdle, components.LoopRepeat)
}
