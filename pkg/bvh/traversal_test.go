package bvh

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wadu-bvh/rtbvh/pkg/geom"
	"github.com/wadu-bvh/rtbvh/pkg/vmath"
)

func squareAt(z float32) geom.Triangle {
	n := vmath.NewVec3(0, 0, 1)
	return geom.NewTriangle(
		geom.NewVertex(vmath.NewVec3(-5, -5, z), n),
		geom.NewVertex(vmath.NewVec3(5, -5, z), n),
		geom.NewVertex(vmath.NewVec3(-5, 5, z), n),
	)
}

func TestIntersectSingleTriangleDirectHit(t *testing.T) {
	tree, err := Build([]geom.Triangle{squareAt(0)})
	require.NoError(t, err)

	r := geom.NewRay(vmath.NewVec3(0, 0, 5), vmath.NewVec3(0, 0, -1))
	hit, ok := tree.Intersect(r)
	require.True(t, ok)
	assert.InDelta(t, float32(5), hit.T, 1e-3)

	assert.InDelta(t, float32(0), hit.Point.X, 1e-3)
	assert.InDelta(t, float32(0), hit.Point.Y, 1e-3)
	assert.InDelta(t, float32(0), hit.Point.Z, 1e-3)
	assert.InDelta(t, float32(1), hit.Normal.Z, 1e-3)
}

func TestIntersectInterpolatesUVWhenVerticesHaveIt(t *testing.T) {
	n := vmath.NewVec3(0, 0, 1)
	tri := geom.NewTriangle(
		geom.NewVertex(vmath.NewVec3(-5, -5, 0), n).WithUV(vmath.NewVec2(0, 0)),
		geom.NewVertex(vmath.NewVec3(5, -5, 0), n).WithUV(vmath.NewVec2(1, 0)),
		geom.NewVertex(vmath.NewVec3(-5, 5, 0), n).WithUV(vmath.NewVec2(0, 1)),
	)
	tree, err := Build([]geom.Triangle{tri})
	require.NoError(t, err)

	r := geom.NewRay(vmath.NewVec3(-5, -5, 5), vmath.NewVec3(0, 0, -1))
	hit, ok := tree.Intersect(r)
	require.True(t, ok)
	assert.InDelta(t, float32(0), hit.UV.X, 1e-3)
	assert.InDelta(t, float32(0), hit.UV.Y, 1e-3)
}

func TestIntersectMiss(t *testing.T) {
	tree, err := Build([]geom.Triangle{squareAt(0)})
	require.NoError(t, err)

	r := geom.NewRay(vmath.NewVec3(100, 100, 5), vmath.NewVec3(0, 0, -1))
	_, ok := tree.Intersect(r)
	assert.False(t, ok)
}

func TestIntersectReturnsNearestOfOccludingPair(t *testing.T) {
	tree, err := Build([]geom.Triangle{squareAt(0), squareAt(-10)})
	require.NoError(t, err)

	r := geom.NewRay(vmath.NewVec3(0, 0, 5), vmath.NewVec3(0, 0, -1))
	hit, ok := tree.Intersect(r)
	require.True(t, ok)
	assert.InDelta(t, float32(5), hit.T, 1e-3)
}

func TestIntersectFindsFarTriangleWhenNearOneIsOffRay(t *testing.T) {
	near := squareAt(0)
	far := geom.NewTriangle(
		geom.NewVertex(vmath.NewVec3(95, 95, -20), vmath.NewVec3(0, 0, 1)),
		geom.NewVertex(vmath.NewVec3(105, 95, -20), vmath.NewVec3(0, 0, 1)),
		geom.NewVertex(vmath.NewVec3(95, 105, -20), vmath.NewVec3(0, 0, 1)),
	)

	tree, err := Build([]geom.Triangle{near, far})
	require.NoError(t, err)

	r := geom.NewRay(vmath.NewVec3(100, 100, 5), vmath.NewVec3(0, 0, -1))
	hit, ok := tree.Intersect(r)
	require.True(t, ok)
	assert.InDelta(t, float32(25), hit.T, 1e-3)
}

func TestIntersectManyTrianglesFindsNearestAmongScattered(t *testing.T) {
	var tris []geom.Triangle
	for i := 0; i < 200; i++ {
		tris = append(tris, squareAt(float32(-i)))
	}
	tree, err := Build(tris)
	require.NoError(t, err)

	r := geom.NewRay(vmath.NewVec3(0, 0, 50), vmath.NewVec3(0, 0, -1))
	hit, ok := tree.Intersect(r)
	require.True(t, ok)
	assert.InDelta(t, float32(50), hit.T, 1e-3)
}

func TestIntersectGrazingEdgeIsConsistentWithDirectTriangleTest(t *testing.T) {
	tri := squareAt(0)
	tree, err := Build([]geom.Triangle{tri})
	require.NoError(t, err)

	r := geom.NewRay(vmath.NewVec3(-5, -5, 5), vmath.NewVec3(0, 0, -1))

	directT, _, _, directOK := tri.Intersect(r)
	hit, ok := tree.Intersect(r)

	assert.Equal(t, directOK, ok)
	if directOK {
		assert.InDelta(t, directT, hit.T, 1e-4)
	}
}

func TestIntersectAgreesWithBruteForceOnScatteredScene(t *testing.T) {
	var tris []geom.Triangle
	for i := 0; i < 150; i++ {
		tris = append(tris, squareAt(float32(i)*2.7-100))
	}
	tree, err := Build(tris)
	require.NoError(t, err)

	rays := []geom.Ray{
		geom.NewRay(vmath.NewVec3(0, 0, 500), vmath.NewVec3(0, 0, -1)),
		geom.NewRay(vmath.NewVec3(3, -2, 500), vmath.NewVec3(0, 0, -1)),
		geom.NewRay(vmath.NewVec3(500, 500, 0), vmath.NewVec3(-1, -1, 0).Normalize()),
	}

	for _, r := range rays {
		bruteBest := float32(0)
		bruteFound := false
		for _, tri := range tree.Triangles {
			if t, _, _, ok := tri.Intersect(r); ok && (!bruteFound || t < bruteBest) {
				bruteBest = t
				bruteFound = true
			}
		}

		hit, ok := tree.Intersect(r)
		assert.Equal(t, bruteFound, ok)
		if bruteFound {
			assert.InDelta(t, bruteBest, hit.T, 1e-2)
		}
	}
}

// TestIntersectAgreesWithBruteForceOnLargeRandomScene builds a hierarchy
// over 10,000 randomly placed triangles and fires 1,000 random rays at it,
// checking every result against a brute-force linear scan. The generator
// is seeded fixed so a failure is always reproducible.
func TestIntersectAgreesWithBruteForceOnLargeRandomScene(t *testing.T) {
	rng := rand.New(rand.NewSource(20260730))

	const numTriangles = 10000
	tris := make([]geom.Triangle, numTriangles)
	for i := range tris {
		center := vmath.NewVec3(
			randRange(rng, -500, 500),
			randRange(rng, -500, 500),
			randRange(rng, -500, 500),
		)
		n := vmath.NewVec3(0, 0, 1)
		tris[i] = geom.NewTriangle(
			geom.NewVertex(center, n),
			geom.NewVertex(center.Add(vmath.NewVec3(1, 0, 0)), n),
			geom.NewVertex(center.Add(vmath.NewVec3(0, 1, 0)), n),
		)
	}

	tree, err := Build(tris)
	require.NoError(t, err)

	const numRays = 1000
	for i := 0; i < numRays; i++ {
		origin := vmath.NewVec3(
			randRange(rng, -500, 500),
			randRange(rng, -500, 500),
			600,
		)
		dir := vmath.NewVec3(
			randRange(rng, -0.2, 0.2),
			randRange(rng, -0.2, 0.2),
			-1,
		).Normalize()
		r := geom.NewRay(origin, dir)

		bruteBest := float32(0)
		bruteFound := false
		for _, tri := range tree.Triangles {
			if t, _, _, ok := tri.Intersect(r); ok && (!bruteFound || t < bruteBest) {
				bruteBest = t
				bruteFound = true
			}
		}

		hit, ok := tree.Intersect(r)
		require.Equal(t, bruteFound, ok)
		if bruteFound {
			assert.InDelta(t, bruteBest, hit.T, 1e-1)
		}
	}
}

func randRange(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}
