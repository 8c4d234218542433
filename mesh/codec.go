package mesh

import (
	"encoding/json"
	"math"
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrNotFinite reports a mesh whose components cannot be represented
	// at wire precision (NaN or infinity). Policy is reject, not clamp.
	ErrNotFinite = errors.New("mesh component not finite")

	// ErrMalformedPayload reports a reconstructed payload that does not
	// decode back into a valid mesh.
	ErrMalformedPayload = errors.New("malformed mesh payload")
)

// payloadType tags the payload so the AR device can dispatch on it.
const payloadType = "mesh"

// payload is the self-describing wire schema, fixed by the AR device:
// vertices flattened 3 floats per vertex, triangles flattened 3 indices
// per triangle, ts epoch seconds.
type payload struct {
	Type      string    `json:"type"`
	Vertices  []float32 `json:"vertices"`
	Triangles []int32   `json:"triangles"`
	TS        float64   `json:"ts"`
}

// Marshal serializes m into one payload. The payload length is unbounded
// here, fitting it onto the wire is the fragmenter's concern.
func Marshal(m *Mesh, capturedAt time.Time) ([]byte, error) {
	p := payload{
		Type:      payloadType,
		Vertices:  make([]float32, 0, len(m.Vertices)*3),
		Triangles: make([]int32, 0, len(m.Triangles)*3),
		TS:        float64(capturedAt.UnixNano()) / float64(time.Second),
	}
	for _, v := range m.Vertices {
		for _, c := range v {
			if f := float64(c); math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, errors.WithStack(ErrNotFinite)
			}
		}
		p.Vertices = append(p.Vertices, v[0], v[1], v[2])
	}
	for _, t := range m.Triangles {
		p.Triangles = append(p.Triangles, t[0], t[1], t[2])
	}

	b, err := json.Marshal(p)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return b, nil
}

// Unmarshal is the exact inverse of Marshal, used on the receiver once a
// message is reassembled.
func Unmarshal(b []byte) (*Mesh, time.Time, error) {
	var p payload
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, time.Time{}, errors.WithMessage(ErrMalformedPayload, err.Error())
	}
	if p.Type != payloadType {
		return nil, time.Time{}, errors.WithMessagef(ErrMalformedPayload, "payload type %q", p.Type)
	}
	if len(p.Vertices)%3 != 0 {
		return nil, time.Time{}, errors.WithMessagef(ErrMalformedPayload, "vertex array length %d", len(p.Vertices))
	}
	if len(p.Triangles)%3 != 0 {
		return nil, time.Time{}, errors.WithMessagef(ErrMalformedPayload, "triangle array length %d", len(p.Triangles))
	}

	m := &Mesh{
		Vertices:  make([]Vec3, len(p.Vertices)/3),
		Triangles: make([]Triangle, len(p.Triangles)/3),
	}
	for i := range m.Vertices {
		m.Vertices[i] = Vec3(p.Vertices[i*3 : i*3+3])
	}
	for i := range m.Triangles {
		m.Triangles[i] = Triangle(p.Triangles[i*3 : i*3+3])
	}
	if err := m.Validate(); err != nil {
		return nil, time.Time{}, errors.WithMessage(ErrMalformedPayload, err.Error())
	}

	capturedAt := time.Unix(0, int64(p.TS*float64(time.Second)))
	return m, capturedAt, nil
}
