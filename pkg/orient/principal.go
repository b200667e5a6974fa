package orient

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

// principalAxisNormal estimates a support normal for a solid with no
// dominant flat face: the axis along which the point cloud disperses
// least. It is the eigenvector of the smallest eigenvalue of the
// cloud's covariance matrix, with a deterministic sign pointing
// weakly downward so it behaves like an outward resting-face normal.
func principalAxisNormal(points []mgl64.Vec3) mgl64.Vec3 {
	down := mgl64.Vec3{0, -1, 0}
	if len(points) == 0 {
		return down
	}

	var mean mgl64.Vec3
	for _, p := range points {
		mean = mean.Add(p)
	}
	mean = mean.Mul(1 / float64(len(points)))

	var cov [9]float64 // 3x3 row-major
	for _, p := range points {
		d := p.Sub(mean)
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				cov[r*3+c] += d[r] * d[c]
			}
		}
	}
	n := float64(len(points))
	for i := range cov {
		cov[i] /= n
	}

	var eigen mat.EigenSym
	if ok := eigen.Factorize(mat.NewSymDense(3, cov[:]), true); !ok {
		return down
	}

	// Eigenvalues come out in ascending order; column 0 is the axis
	// of least variance.
	var vecs mat.Dense
	eigen.VectorsTo(&vecs)
	axis := mgl64.Vec3{vecs.At(0, 0), vecs.At(1, 0), vecs.At(2, 0)}
	if l := axis.Len(); l > 0 {
		axis = axis.Mul(1 / l)
	} else {
		return down
	}

	return orientDownward(axis)
}

// orientDownward fixes the sign of an axis so repeated runs choose the
// same direction: negative Y wins, with X then Z breaking exact ties.
func orientDownward(axis mgl64.Vec3) mgl64.Vec3 {
	switch {
	case axis.Y() > 0:
		return axis.Mul(-1)
	case axis.Y() < 0:
		return axis
	case axis.X() < 0:
		return axis.Mul(-1)
	case axis.X() > 0:
		return axis
	case axis.Z() < 0:
		return axis.Mul(-1)
	}
	return axis
}
