package utils

import "math"

// WrapAngle 把角度规整到 (-π, π]
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// ShortestAngleDelta 从 from 转到 to 的最短有符号角差，范围 (-π, π]
func ShortestAngleDelta(from, to float64) float64 {
	return WrapAngle(to - from)
}

// ExpApproachFraction 把"每参考帧逼近 perFrame 比例"换算成 dt 秒内的逼近比例
//
// 参考帧率下 dt = 1/refRate 时结果正好等于 perFrame；
// 帧率变化时逼近速度保持不变：1 - (1-perFrame)^(dt*refRate)
func ExpApproachFraction(perFrame, refRate, dt float64) float64 {
	if dt <= 0 || perFrame <= 0 {
		return 0
	}
	if perFrame >= 1 {
		return 1
	}
	return 1 - math.Pow(1-perFrame, dt*refRate)
}
