package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wadu-bvh/rtbvh/pkg/geom"
	"github.com/wadu-bvh/rtbvh/pkg/vmath"
)

// objIndex is a parsed face-vertex reference: position/uv/normal indices
// into the file's running vertex tables, already resolved to 0-based and
// absolute (negative relative indices are rewritten at parse time).
type objIndex struct {
	pos    int
	uv     int // -1 if absent
	normal int // -1 if absent
}

// LoadOBJ reads a Wavefront OBJ mesh. Faces with more than three vertices
// are fan-triangulated around the first vertex. Faces lacking normals are
// left with a zero normal for smoothNormals to fill in afterward. Malformed
// v, vn, vt and f lines are logged and skipped.
func LoadOBJ(r io.Reader, log zerolog.Logger) (*Mesh, error) {
	var positions []vmath.Vec3
	var normals []vmath.Vec3
	var uvs []vmath.Vec2
	var triangles []geom.Triangle

	needsNormals := false

	scanner := bufio.NewScanner(r)
	lineNo := 0
lines:
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				log.Warn().Int("line", lineNo).Err(err).Msg("invalid vertex line skipped")
				continue
			}
			positions = append(positions, v)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				log.Warn().Int("line", lineNo).Err(err).Msg("invalid normal line skipped")
				continue
			}
			normals = append(normals, n)
		case "vt":
			uv, err := parseVec2(fields[1:])
			if err != nil {
				log.Warn().Int("line", lineNo).Err(err).Msg("invalid texture coordinate line skipped")
				continue
			}
			uvs = append(uvs, uv)
		case "f":
			refs := make([]objIndex, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				idx, err := parseFaceRef(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					log.Warn().Int("line", lineNo).Err(err).Msg("invalid face line skipped")
					continue lines
				}
				refs = append(refs, idx)
			}
			if len(refs) < 3 {
				log.Warn().Int("line", lineNo).Msg("face with fewer than 3 vertices skipped")
				continue
			}
			for i := 1; i < len(refs)-1; i++ {
				tri, ok := buildTriangle(refs[0], refs[i], refs[i+1], positions, normals, uvs)
				if !ok {
					needsNormals = true
				}
				triangles = append(triangles, tri)
			}
		default:
			// group (g), object (o), material directives, etc. are not
			// meaningful to the geometry core and are ignored.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj: scanning: %w", err)
	}

	if needsNormals {
		triangles = smoothNormals(triangles)
	}

	log.Debug().Int("triangles", len(triangles)).Msg("loaded OBJ mesh")
	return &Mesh{Triangles: triangles}, nil
}

func buildTriangle(a, b, c objIndex, positions, normals []vmath.Vec3, uvs []vmath.Vec2) (geom.Triangle, bool) {
	haveNormals := a.normal >= 0 && b.normal >= 0 && c.normal >= 0

	var na, nb, nc vmath.Vec3
	if haveNormals {
		na, nb, nc = normals[a.normal], normals[b.normal], normals[c.normal]
	}

	v1 := geom.NewVertex(positions[a.pos], na)
	v2 := geom.NewVertex(positions[b.pos], nb)
	v3 := geom.NewVertex(positions[c.pos], nc)

	if a.uv >= 0 {
		v1 = v1.WithUV(uvs[a.uv])
	}
	if b.uv >= 0 {
		v2 = v2.WithUV(uvs[b.uv])
	}
	if c.uv >= 0 {
		v3 = v3.WithUV(uvs[c.uv])
	}

	return geom.NewTriangle(v1, v2, v3), haveNormals
}

func parseVec3(fields []string) (vmath.Vec3, error) {
	if len(fields) < 3 {
		return vmath.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return vmath.Vec3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return vmath.Vec3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 32)
	if err != nil {
		return vmath.Vec3{}, err
	}
	return vmath.NewVec3(float32(x), float32(y), float32(z)), nil
}

func parseVec2(fields []string) (vmath.Vec2, error) {
	if len(fields) < 2 {
		return vmath.Vec2{}, fmt.Errorf("expected 2 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return vmath.Vec2{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return vmath.Vec2{}, err
	}
	return vmath.NewVec2(float32(x), float32(y)), nil
}

// parseFaceRef parses one "v", "v/vt", "v//vn", or "v/vt/vn" face token.
// 1-based indices are converted to 0-based; negative indices are resolved
// relative to the current table lengths, per the OBJ spec.
func parseFaceRef(tok string, numPos, numUV, numNormal int) (objIndex, error) {
	parts := strings.Split(tok, "/")

	ref := objIndex{uv: -1, normal: -1}

	p, err := strconv.Atoi(parts[0])
	if err != nil {
		return objIndex{}, fmt.Errorf("bad vertex index %q: %w", parts[0], err)
	}
	ref.pos, err = resolveIndex(p, numPos)
	if err != nil {
		return objIndex{}, err
	}

	if len(parts) >= 2 && parts[1] != "" {
		u, err := strconv.Atoi(parts[1])
		if err != nil {
			return objIndex{}, fmt.Errorf("bad uv index %q: %w", parts[1], err)
		}
		ref.uv, err = resolveIndex(u, numUV)
		if err != nil {
			return objIndex{}, err
		}
	}

	if len(parts) >= 3 && parts[2] != "" {
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return objIndex{}, fmt.Errorf("bad normal index %q: %w", parts[2], err)
		}
		ref.normal, err = resolveIndex(n, numNormal)
		if err != nil {
			return objIndex{}, err
		}
	}

	return ref, nil
}

func resolveIndex(raw, count int) (int, error) {
	switch {
	case raw > 0:
		if raw > count {
			return 0, fmt.Errorf("index %d out of range (table has %d entries)", raw, count)
		}
		return raw - 1, nil
	case raw < 0:
		idx := count + raw
		if idx < 0 {
			return 0, fmt.Errorf("negative index %d out of range (table has %d entries)", raw, count)
		}
		return idx, nil
	default:
		return 0, fmt.Errorf("index 0 is not valid in OBJ (1-based)")
	}
}
