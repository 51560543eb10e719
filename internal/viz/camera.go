package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/hadron/internal/vecmath"
)

const maxPitch = math.Pi/2 - 0.01

// Camera orbits a target point and projects world positions onto a canvas
// through a perspective transform.
type Camera struct {
	Target     mgl64.Vec3
	Distance   float64
	Yaw, Pitch float64
	FOV        float64 // vertical, degrees
	Near, Far  float64
	Zoom       float64
}

// NewCamera looks at the origin from 50 units down +z with an 85 degree
// field of view.
func NewCamera() *Camera {
	return &Camera{Distance: 50, FOV: 85, Near: 0.01, Far: 1000, Zoom: 1}
}

func (c *Camera) RotateYaw(a float64) { c.Yaw = math.Mod(c.Yaw+a, 2*math.Pi) }

func (c *Camera) RotatePitch(a float64) {
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+a))
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) Eye() mgl64.Vec3 {
	d := c.Distance / c.Zoom
	dir := mgl64.Vec3{
		math.Sin(c.Yaw) * math.Cos(c.Pitch),
		math.Sin(c.Pitch),
		math.Cos(c.Yaw) * math.Cos(c.Pitch),
	}
	return c.Target.Add(dir.Mul(d))
}

func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye(), c.Target, mgl64.Vec3{0, 1, 0})
}

func (c *Camera) Projection(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// Project maps p to sub-pixel coordinates on a sw x sh surface with y
// growing downward. It returns the window depth and whether the point
// lies in front of the camera and on screen.
func (c *Camera) Project(p vecmath.Vector3, sw, sh int) (int, int, float64, bool) {
	if sw <= 0 || sh <= 0 {
		return 0, 0, 0, false
	}
	obj := toVec3(p)
	view := c.View()

	if eye := view.Mul4x1(obj.Vec4(1)); eye.Z() >= -c.Near {
		return 0, 0, 0, false
	}

	win := mgl64.Project(obj, view, c.Projection(float64(sw)/float64(sh)), 0, 0, sw, sh)
	x := int(math.Floor(win.X()))
	y := sh - 1 - int(math.Floor(win.Y()))
	return x, y, win.Z(), x >= 0 && x < sw && y >= 0 && y < sh
}

func toVec3(v vecmath.Vector3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}

type Edge struct {
	Start, End vecmath.Vector3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                    { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e vecmath.Vector3) { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p vecmath.Vector3)   { w.Edges = append(w.Edges, Edge{p, p}) }
func (w *Wireframe) Clear()                       { w.Edges = w.Edges[:0] }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe far to near. An edge is kept when either end
// is visible; the canvas clips the rest.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.SubWidth(), c.SubHeight()
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, sw, sh)
		x2, y2, d2, v2 := cam.Project(e.End, sw, sh)
		if !v1 && !v2 {
			continue
		}
		if !v1 {
			x1, y1 = x2, y2
		}
		if !v2 {
			x2, y2 = x1, y1
		}
		proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth > proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}

// BoxWireframe outlines the axis-aligned box between lo and hi.
func BoxWireframe(lo, hi vecmath.Vector3) *Wireframe {
	w := NewWireframe()
	v := []vecmath.Vector3{
		{X: lo.X, Y: lo.Y, Z: lo.Z}, {X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z}, {X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z}, {X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z}, {X: lo.X, Y: hi.Y, Z: hi.Z},
	}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		w.AddEdge(v[e[0]], v[e[1]])
	}
	return w
}

func AxesWireframe(l vecmath.Real) *Wireframe {
	w := NewWireframe()
	w.AddEdge(vecmath.Zero, vecmath.V(l, 0, 0))
	w.AddEdge(vecmath.Zero, vecmath.V(0, l, 0))
	w.AddEdge(vecmath.Zero, vecmath.V(0, 0, l))
	return w
}
