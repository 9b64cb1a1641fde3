package components

// EnemyComponent 游荡敌人
//
// 敌人没有生命值，被攻击命中即移除；身份由 EntityID 决定，
// 不依赖其在集合中的下标。
type EnemyComponent struct {
	// Phase 游荡相位（弧度），每个敌人不同，保证运动确定且互不同步
	Phase float64

	// ContactRadius 对玩家造成接触伤害的距离
	ContactRadius float64
}
