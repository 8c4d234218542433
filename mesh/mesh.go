// Package mesh holds the triangle-mesh model and its wire payload codec.
package mesh

import (
	"github.com/pkg/errors"
)

type Vec3 [3]float32

// Triangle indexes three vertices of the owning mesh.
type Triangle [3]int32

// Mesh is the unit of transfer: vertex positions plus triangular faces
// referencing them by index. Vertex order is significant.
type Mesh struct {
	Vertices  []Vec3
	Triangles []Triangle
}

// Validate checks the triangle index invariant: every index in
// [0, len(Vertices)). A violating mesh is well formed but invalid, it is
// the caller's mistake and not a transport error.
func (m *Mesh) Validate() error {
	n := int32(len(m.Vertices))
	for i, t := range m.Triangles {
		for _, idx := range t {
			if idx < 0 || idx >= n {
				return errors.Errorf("triangle %d references vertex %d of %d", i, idx, n)
			}
		}
	}
	return nil
}
