package parts

import (
	"image"
	"image/color"
	"math"

	"github.com/ivlev/showreel/internal/gfx"
	"github.com/ivlev/showreel/internal/params"
)

type vec3 = params.Vec3

func sub(a, b vec3) vec3 { return vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func dot(a, b vec3) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func cross(a, b vec3) vec3 {
	return vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v vec3) vec3 {
	l := math.Sqrt(dot(v, v))
	if l == 0 {
		return v
	}
	return vec3{v[0] / l, v[1] / l, v[2] / l}
}

// mat4 is a row-major affine transform applied to column vectors.
type mat4 [4][4]float64

func identity() mat4 {
	return mat4{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

func (m mat4) mul(n mat4) mat4 {
	var out mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				out[i][j] += m[i][k] * n[k][j]
			}
		}
	}
	return out
}

func (m mat4) apply(p vec3) vec3 {
	var out vec3
	for i := 0; i < 3; i++ {
		out[i] = m[i][0]*p[0] + m[i][1]*p[1] + m[i][2]*p[2] + m[i][3]
	}
	return out
}

func (m mat4) scale(s float64) mat4 {
	return m.mul(mat4{{s, 0, 0, 0}, {0, s, 0, 0}, {0, 0, s, 0}, {0, 0, 0, 1}})
}

func (m mat4) translate(v vec3) mat4 {
	return m.mul(mat4{{1, 0, 0, v[0]}, {0, 1, 0, v[1]}, {0, 0, 1, v[2]}, {0, 0, 0, 1}})
}

func (m mat4) rotateX(rad float64) mat4 {
	c, s := math.Cos(rad), math.Sin(rad)
	return m.mul(mat4{{1, 0, 0, 0}, {0, c, -s, 0}, {0, s, c, 0}, {0, 0, 0, 1}})
}

func (m mat4) rotateY(rad float64) mat4 {
	c, s := math.Cos(rad), math.Sin(rad)
	return m.mul(mat4{{c, 0, s, 0}, {0, 1, 0, 0}, {-s, 0, c, 0}, {0, 0, 0, 1}})
}

// projector is a Z-up look-at camera with a perspective projection.
type projector struct {
	eye       vec3
	right, up vec3
	forward   vec3
	focal     float64 // 1 / tan(fov/2)
	aspect    float64
	near, far float64
	width     float64
	height    float64
}

func newProjector(eye, center vec3, fovDeg, near, far float64, bounds image.Rectangle) projector {
	f := normalize(sub(center, eye))
	worldUp := vec3{0, 0, 1}
	if math.Abs(dot(f, worldUp)) > 0.999 {
		worldUp = vec3{0, 1, 0}
	}
	r := normalize(cross(f, worldUp))
	u := cross(r, f)
	return projector{
		eye:     eye,
		right:   r,
		up:      u,
		forward: f,
		focal:   1 / math.Tan(fovDeg*math.Pi/360),
		aspect:  float64(bounds.Dx()) / float64(bounds.Dy()),
		near:    near,
		far:     far,
		width:   float64(bounds.Dx()),
		height:  float64(bounds.Dy()),
	}
}

// view returns p in camera space: x right, y up, z depth along the view.
func (pr projector) view(p vec3) vec3 {
	d := sub(p, pr.eye)
	return vec3{dot(d, pr.right), dot(d, pr.up), dot(d, pr.forward)}
}

func (pr projector) screen(v vec3) (int, int) {
	nx := v[0] * pr.focal / (v[2] * pr.aspect)
	ny := v[1] * pr.focal / v[2]
	x := (nx + 1) / 2 * pr.width
	y := (1 - ny) / 2 * pr.height
	return int(math.Round(x)), int(math.Round(y))
}

// segment draws the world space line a-b clipped to the near and far planes.
// It reports whether any part was visible.
func (pr projector) segment(frame *image.RGBA, a, b vec3, c color.RGBA) bool {
	va, vb := pr.view(a), pr.view(b)
	var ok bool
	if va, vb, ok = clipDepth(va, vb, pr.near, pr.far); !ok {
		return false
	}
	x0, y0 := pr.screen(va)
	x1, y1 := pr.screen(vb)
	const limit = 1 << 15
	if absInt(x0) > limit || absInt(y0) > limit || absInt(x1) > limit || absInt(y1) > limit {
		return false
	}
	gfx.Line(frame, x0, y0, x1, y1, c)
	return true
}

func clipDepth(a, b vec3, near, far float64) (vec3, vec3, bool) {
	if (a[2] < near && b[2] < near) || (a[2] > far && b[2] > far) {
		return a, b, false
	}
	at := func(p, q vec3, z float64) vec3 {
		t := (z - p[2]) / (q[2] - p[2])
		return vec3{p[0] + (q[0]-p[0])*t, p[1] + (q[1]-p[1])*t, z}
	}
	if a[2] < near {
		a = at(a, b, near)
	} else if b[2] < near {
		b = at(b, a, near)
	}
	if a[2] > far {
		a = at(a, b, far)
	} else if b[2] > far {
		b = at(b, a, far)
	}
	return a, b, true
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
