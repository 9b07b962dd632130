package mesh

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/rs/zerolog"

	"github.com/wadu-bvh/rtbvh/pkg/geom"
	"github.com/wadu-bvh/rtbvh/pkg/vmath"
)

const (
	stlHeaderSize   = 80
	stlRecordSize   = 50 // 12 (normal) + 3*12 (vertices) + 2 (attribute bytes)
	stlNormalBytes  = 12
	stlVertexBytes  = 12
	stlAttrByteSize = 2
)

// LoadSTL reads a binary STL mesh. The facet normal stored in each record
// is used when it is non-degenerate; otherwise the geometric normal is
// computed from the triangle's winding as a fallback, matching what most
// STL writers intend.
func LoadSTL(r io.Reader, log zerolog.Logger) (*Mesh, error) {
	header := make([]byte, stlHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("stl: reading header: %w", err)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("stl: reading triangle count: %w", err)
	}

	triangles := make([]geom.Triangle, 0, count)
	record := make([]byte, stlRecordSize)

	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(r, record); err != nil {
			return nil, fmt.Errorf("stl: reading facet %d: %w", i, err)
		}

		facetNormal := readVec3(record[0:stlNormalBytes])
		v1 := readVec3(record[12:24])
		v2 := readVec3(record[24:36])
		v3 := readVec3(record[36:48])

		normal := facetNormal
		if normal.Length() < 1e-6 {
			e1 := v2.Sub(v1)
			e2 := v3.Sub(v1)
			normal = e1.Cross(e2).Normalize()
			if normal.Length() < 1e-6 {
				log.Warn().Uint32("facet", i).Msg("degenerate triangle skipped")
				continue
			}
		}

		triangles = append(triangles, geom.NewTriangle(
			geom.NewVertex(v1, normal),
			geom.NewVertex(v2, normal),
			geom.NewVertex(v3, normal),
		))
	}

	log.Debug().Int("triangles", len(triangles)).Msg("loaded STL mesh")
	return &Mesh{Triangles: triangles}, nil
}

func readVec3(b []byte) vmath.Vec3 {
	x := readFloat32(b[0:4])
	y := readFloat32(b[4:8])
	z := readFloat32(b[8:12])
	return vmath.NewVec3(x, y, z)
}

func readFloat32(b []byte) float32 {
	bits := binary.LittleEndian.Uint32(b)
	return math.Float32frombits(bits)
}
