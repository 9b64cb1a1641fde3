package systems

import (
	"math"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/utils"
)

// nearPlane 近裁剪面距离
const nearPlane = 0.1

// Projector 透视投影：世界坐标 -> 屏幕坐标
// 由镜头组件和屏幕尺寸构造，每帧重建
type Projector struct {
	eye     utils.Vec3
	right   utils.Vec3
	up      utils.Vec3
	forward utils.Vec3

	focal  float64
	width  float64
	height float64
}

// NewProjector 根据镜头创建投影器
func NewProjector(camera *components.CameraComponent, screenWidth, screenHeight int) *Projector {
	forward := camera.LookAt.Sub(camera.Position).Normalize()
	if forward.IsZero() {
		forward = utils.Vec3{Z: -1}
	}
	right := forward.Cross(utils.Vec3{Y: 1}).Normalize()
	if right.IsZero() {
		// 垂直俯视时任取一个水平方向
		right = utils.Vec3{X: 1}
	}
	up := right.Cross(forward)

	fov := camera.FOV * math.Pi / 180
	return &Projector{
		eye:     camera.Position,
		right:   right,
		up:      up,
		forward: forward,
		focal:   float64(screenHeight) / 2 / math.Tan(fov/2),
		width:   float64(screenWidth),
		height:  float64(screenHeight),
	}
}

// ToView 世界坐标转换到镜头空间（x 向右，y 向上，z 为深度）
func (p *Projector) ToView(world utils.Vec3) utils.Vec3 {
	d := world.Sub(p.eye)
	return utils.Vec3{X: d.Dot(p.right), Y: d.Dot(p.up), Z: d.Dot(p.forward)}
}

// ViewToScreen 镜头空间点投影到屏幕，深度不大于近裁剪面时返回 false
func (p *Projector) ViewToScreen(v utils.Vec3) (x, y float64, ok bool) {
	if v.Z <= nearPlane {
		return 0, 0, false
	}
	x = p.width/2 + v.X*p.focal/v.Z
	y = p.height/2 - v.Y*p.focal/v.Z
	return x, y, true
}

// Project 世界坐标投影到屏幕
func (p *Projector) Project(world utils.Vec3) (x, y, depth float64, ok bool) {
	v := p.ToView(world)
	x, y, ok = p.ViewToScreen(v)
	return x, y, v.Z, ok
}

// ScaleAt 深度 depth 处一个世界单位对应的像素数
func (p *Projector) ScaleAt(depth float64) float64 {
	if depth <= nearPlane {
		return 0
	}
	return p.focal / depth
}

// ProjectSegment 投影线段，先按近裁剪面裁剪
// 整段都在镜头后方时返回 false
func (p *Projector) ProjectSegment(a, b utils.Vec3) (x0, y0, x1, y1 float64, ok bool) {
	va, vb := p.ToView(a), p.ToView(b)
	if va.Z <= nearPlane && vb.Z <= nearPlane {
		return 0, 0, 0, 0, false
	}
	if va.Z <= nearPlane {
		va = clipToNear(vb, va)
	} else if vb.Z <= nearPlane {
		vb = clipToNear(va, vb)
	}
	x0, y0, _ = p.ViewToScreen(va)
	x1, y1, _ = p.ViewToScreen(vb)
	return x0, y0, x1, y1, true
}

// clipToNear 把 behind 沿线段移动到近裁剪面稍前方，front 必须在裁剪面之前
func clipToNear(front, behind utils.Vec3) utils.Vec3 {
	t := (front.Z - nearPlane*1.001) / (front.Z - behind.Z)
	return front.Add(behind.Sub(front).Scale(t))
}
