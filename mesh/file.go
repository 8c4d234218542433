package mesh

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// ReadFile loads a mesh exported by the viewer: a JSON object with
// flattened "vertices" and "triangles" arrays, same layout as the wire
// payload but without type tag or timestamp.
func ReadFile(path string) (*Mesh, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var f struct {
		Vertices  []float32 `json:"vertices"`
		Triangles []int32   `json:"triangles"`
	}
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, errors.WithStack(err)
	}
	if len(f.Vertices)%3 != 0 || len(f.Triangles)%3 != 0 {
		return nil, errors.Errorf("flattened arrays not multiples of 3 (%d, %d)", len(f.Vertices), len(f.Triangles))
	}

	m := &Mesh{
		Vertices:  make([]Vec3, len(f.Vertices)/3),
		Triangles: make([]Triangle, len(f.Triangles)/3),
	}
	for i := range m.Vertices {
		m.Vertices[i] = Vec3(f.Vertices[i*3 : i*3+3])
	}
	for i := range m.Triangles {
		m.Triangles[i] = Triangle(f.Triangles[i*3 : i*3+3])
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
