package mesh

import (
	"fmt"
	"math"
	"strings"
)

// Analysis captures the dimensional and geometric features of a model,
// used to narrate received meshes.
type Analysis struct {
	Name      string
	Vertices  int
	Triangles int

	// axis aligned bounding box
	Width  float64
	Height float64
	Depth  float64
	Center [3]float64

	SurfaceArea float64
	Watertight  bool
	Volume      float64 // zero unless watertight
}

func Analyze(m *Mesh, name string) Analysis {
	a := Analysis{
		Name:      name,
		Vertices:  len(m.Vertices),
		Triangles: len(m.Triangles),
	}

	if len(m.Vertices) > 0 {
		var lo, hi [3]float64
		for i := range lo {
			lo[i], hi[i] = math.Inf(1), math.Inf(-1)
		}
		for _, v := range m.Vertices {
			for i := range v {
				lo[i] = math.Min(lo[i], float64(v[i]))
				hi[i] = math.Max(hi[i], float64(v[i]))
			}
		}
		a.Width, a.Height, a.Depth = hi[0]-lo[0], hi[1]-lo[1], hi[2]-lo[2]
		for i := range a.Center {
			a.Center[i] = (lo[i] + hi[i]) / 2
		}
	}

	if m.Validate() != nil {
		return a
	}
	for _, t := range m.Triangles {
		a.SurfaceArea += area(m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]])
	}
	a.Watertight = watertight(m)
	if a.Watertight {
		a.Volume = math.Abs(volume(m))
	}
	return a
}

// Describe renders the analysis as a narration script for the voice-over
// collaborator.
func (a Analysis) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "This is %s. ", a.Name)
	fmt.Fprintf(&b, "The model contains %d vertices and %d triangular faces. ", a.Vertices, a.Triangles)
	fmt.Fprintf(&b, "Its dimensions are: width %.2f units, height %.2f units, and depth %.2f units. ",
		a.Width, a.Height, a.Depth)
	if a.Watertight {
		fmt.Fprintf(&b, "This is a watertight solid with a volume of %.2f cubic units. ", a.Volume)
	} else {
		b.WriteString("This is a surface model, not a solid. ")
	}
	fmt.Fprintf(&b, "The total surface area is %.2f square units.", a.SurfaceArea)
	return b.String()
}

func area(v0, v1, v2 Vec3) float64 {
	c := cross(sub(v1, v0), sub(v2, v0))
	return math.Sqrt(c[0]*c[0]+c[1]*c[1]+c[2]*c[2]) / 2
}

// volume sums signed tetrahedron volumes against the origin, only
// meaningful for a closed surface.
func volume(m *Mesh) (v float64) {
	for _, t := range m.Triangles {
		v0, v1, v2 := m.Vertices[t[0]], m.Vertices[t[1]], m.Vertices[t[2]]
		c := cross([3]float64{float64(v1[0]), float64(v1[1]), float64(v1[2])},
			[3]float64{float64(v2[0]), float64(v2[1]), float64(v2[2])})
		v += (float64(v0[0])*c[0] + float64(v0[1])*c[1] + float64(v0[2])*c[2]) / 6
	}
	return v
}

// watertight reports whether every undirected edge is shared by exactly
// two triangles.
func watertight(m *Mesh) bool {
	if len(m.Triangles) == 0 {
		return false
	}
	edges := map[[2]int32]int{}
	for _, t := range m.Triangles {
		for i := range t {
			a, b := t[i], t[(i+1)%3]
			if a > b {
				a, b = b, a
			}
			edges[[2]int32{a, b}]++
		}
	}
	for _, n := range edges {
		if n != 2 {
			return false
		}
	}
	return true
}

func sub(a, b Vec3) [3]float64 {
	return [3]float64{
		float64(a[0]) - float64(b[0]),
		float64(a[1]) - float64(b[1]),
		float64(a[2]) - float64(b[2]),
	}
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
