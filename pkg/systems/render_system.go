package systems

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/arena/pkg/components"
	"github.com/gonewx/arena/pkg/ecs"
	"github.com/gonewx/arena/pkg/utils"
)

var (
	backgroundColor = color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
	groundColor     = color.RGBA{R: 0x55, G: 0x8b, B: 0x2f, A: 0xff}
	gridColor       = color.RGBA{R: 0x44, G: 0x72, B: 0x26, A: 0xff}
	shadowColor     = color.RGBA{A: 0x50}
	facingColor     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// gridSpacing 地面网格线间距（世界单位）
const gridSpacing = 5.0

// RenderSystem 把场景中的实体投影到屏幕
//
// 渲染只读取组件，不修改任何游戏状态。
// 实体以面向镜头的矩形绘制，按深度从远到近排序（画家算法）。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	halfExtent    float64

	drawList []drawItem // 复用，避免每帧分配
}

type drawItem struct {
	id    ecs.EntityID
	depth float64
}

// NewRenderSystem 创建渲染系统
// halfExtent: 地面范围（±halfExtent）
func NewRenderSystem(em *ecs.EntityManager, halfExtent float64) *RenderSystem {
	return &RenderSystem{
		entityManager: em,
		halfExtent:    halfExtent,
	}
}

// Draw 从镜头视角绘制地面和所有可渲染实体
func (s *RenderSystem) Draw(screen *ebiten.Image, camera *components.CameraComponent) {
	screen.Fill(backgroundColor)
	if camera == nil {
		return
	}

	bounds := screen.Bounds()
	proj := NewProjector(camera, bounds.Dx(), bounds.Dy())

	s.drawGround(screen, proj)

	s.drawList = s.drawList[:0]
	entities := ecs.GetEntitiesWith2[*components.RenderableComponent, *components.TransformComponent](s.entityManager)
	for _, id := range entities {
		transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
		depth := proj.ToView(transform.Position).Z
		if depth <= nearPlane {
			continue
		}
		s.drawList = append(s.drawList, drawItem{id: id, depth: depth})
	}
	sort.SliceStable(s.drawList, func(i, j int) bool {
		return s.drawList[i].depth > s.drawList[j].depth
	})

	for _, item := range s.drawList {
		s.drawEntity(screen, proj, item.id)
	}
}

func (s *RenderSystem) drawGround(screen *ebiten.Image, proj *Projector) {
	e := s.halfExtent
	corners := []utils.Vec3{{X: -e, Z: -e}, {X: e, Z: -e}, {X: e, Z: e}, {X: -e, Z: e}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		if x0, y0, x1, y1, ok := proj.ProjectSegment(a, b); ok {
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, groundColor, true)
		}
	}

	for v := -e; v <= e; v += gridSpacing {
		if x0, y0, x1, y1, ok := proj.ProjectSegment(utils.Vec3{X: v, Z: -e}, utils.Vec3{X: v, Z: e}); ok {
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, gridColor, true)
		}
		if x0, y0, x1, y1, ok := proj.ProjectSegment(utils.Vec3{X: -e, Z: v}, utils.Vec3{X: e, Z: v}); ok {
			vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, gridColor, true)
		}
	}
}

func (s *RenderSystem) drawEntity(screen *ebiten.Image, proj *Projector, id ecs.EntityID) {
	transform, _ := ecs.GetComponent[*components.TransformComponent](s.entityManager, id)
	renderable, _ := ecs.GetComponent[*components.RenderableComponent](s.entityManager, id)

	// 实体位置是几何中心，底部贴地
	base := transform.Position
	base.Y -= renderable.Height / 2

	bx, by, depth, ok := proj.Project(base)
	if !ok {
		return
	}
	scale := proj.ScaleAt(depth)
	w := renderable.Width * scale
	h := renderable.Height * scale

	vector.FillCircle(screen, float32(bx), float32(by), float32(w*0.6), shadowColor, true)

	switch renderable.Shape {
	case components.ShapeCapsule:
		body := h - w/2
		vector.FillRect(screen, float32(bx-w/2), float32(by-body), float32(w), float32(body), renderable.Color, true)
		vector.FillCircle(screen, float32(bx), float32(by-body), float32(w/2), renderable.Color, true)
		s.drawFacing(screen, proj, transform)
	default:
		vector.FillRect(screen, float32(bx-w/2), float32(by-h), float32(w), float32(h), renderable.Color, true)
		vector.StrokeRect(screen, float32(bx-w/2), float32(by-h), float32(w), float32(h), 1, darken(renderable.Color), true)
	}
}

// drawFacing 从角色中心沿朝向画一条短线
func (s *RenderSystem) drawFacing(screen *ebiten.Image, proj *Projector, transform *components.TransformComponent) {
	sin, cos := math.Sincos(transform.Facing)
	tip := transform.Position.Add(utils.Vec3{X: sin * 1.5, Z: cos * 1.5})
	if x0, y0, x1, y1, ok := proj.ProjectSegment(transform.Position, tip); ok {
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 2, facingColor, true)
	}
}

func darken(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
}
