package bvh

import "errors"

// ErrEmptyScene is returned by Build when given zero triangles; a BVH over
// an empty scene has no meaningful root bounds.
var ErrEmptyScene = errors.New("bvh: cannot build over an empty scene")
