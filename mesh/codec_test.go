package mesh

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func randMesh(r *rand.Rand, nv, nt int) *Mesh {
	m := &Mesh{
		Vertices:  make([]Vec3, nv),
		Triangles: make([]Triangle, nt),
	}
	for i := range m.Vertices {
		m.Vertices[i] = Vec3{
			r.Float32()*200 - 100,
			r.Float32()*200 - 100,
			r.Float32()*200 - 100,
		}
	}
	for i := range m.Triangles {
		m.Triangles[i] = Triangle{
			int32(r.Intn(nv)), int32(r.Intn(nv)), int32(r.Intn(nv)),
		}
	}
	return m
}

func Test_RoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for _, n := range []int{1, 17, 1000, 10000} {
		m := randMesh(r, n, n)
		at := time.Unix(1700000000, 123456000)

		b, err := Marshal(m, at)
		require.NoError(t, err)

		m2, at2, err := Unmarshal(b)
		require.NoError(t, err)
		require.Equal(t, m, m2)
		require.WithinDuration(t, at, at2, time.Microsecond)
	}
}

func Test_RoundTrip_Empty(t *testing.T) {
	b, err := Marshal(&Mesh{}, time.Now())
	require.NoError(t, err)

	// empty arrays, not null
	var raw map[string]any
	require.NoError(t, json.Unmarshal(b, &raw))
	require.Equal(t, []any{}, raw["vertices"])
	require.Equal(t, []any{}, raw["triangles"])
	require.Equal(t, "mesh", raw["type"])

	m, _, err := Unmarshal(b)
	require.NoError(t, err)
	require.Empty(t, m.Vertices)
	require.Empty(t, m.Triangles)
}

func Test_Marshal_NotFinite(t *testing.T) {
	for _, c := range []float32{
		float32(math.NaN()),
		float32(math.Inf(1)),
		float32(math.Inf(-1)),
	} {
		m := &Mesh{Vertices: []Vec3{{0, c, 0}}}
		_, err := Marshal(m, time.Now())
		require.ErrorIs(t, err, ErrNotFinite)
	}
}

func Test_Unmarshal_Malformed(t *testing.T) {
	for _, b := range [][]byte{
		nil,
		[]byte("not json"),
		[]byte(`{"type":"pose","vertices":[],"triangles":[],"ts":0}`),
		[]byte(`{"type":"mesh","vertices":[0,0],"triangles":[],"ts":0}`),
		[]byte(`{"type":"mesh","vertices":[],"triangles":[0],"ts":0}`),
		// triangle index out of range
		[]byte(`{"type":"mesh","vertices":[0,0,0],"triangles":[0,0,1],"ts":0}`),
		// negative index
		[]byte(`{"type":"mesh","vertices":[0,0,0],"triangles":[0,0,-1],"ts":0}`),
	} {
		_, _, err := Unmarshal(b)
		require.ErrorIs(t, err, ErrMalformedPayload, "payload %q", b)
	}
}

func Test_Validate(t *testing.T) {
	m := &Mesh{
		Vertices:  []Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}},
		Triangles: []Triangle{{0, 1, 2}},
	}
	require.NoError(t, m.Validate())

	m.Triangles = append(m.Triangles, Triangle{0, 1, 3})
	require.Error(t, m.Validate())
}
