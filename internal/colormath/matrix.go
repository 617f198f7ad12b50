/*
DESCRIPTION
  matrix.go collects the small gonum-backed linear-algebra helpers shared
  by the colour-science modules: camera-RGB <-> XYZ <-> sRGB matrices and
  the Bradford chromatic-adaptation transform used by white-balance and
  color-calibration. Grounded on the teacher repo's own use of
  gonum.org/v1/gonum for numeric work (go.mod require), generalised here
  from scalar signal processing to 3x3 colour matrices.

LICENSE
  Copyright (C) 2026 the Pixelpipe Authors. All Rights Reserved.
*/

package colormath

import "gonum.org/v1/gonum/mat"

// Mat3 is a row-major 3x3 matrix, the shape every colour transform in this
// package operates on.
type Mat3 [9]float64

// bradford is the Bradford cone-response matrix used for chromatic
// adaptation between reference illuminants.
var bradford = Mat3{
	0.8951, 0.2664, -0.1614,
	-0.7502, 1.7135, 0.0367,
	0.0389, -0.0685, 1.0296,
}

var bradfordInv = mustInverse(bradford)

// ToGonum returns m as a *mat.Dense for use with gonum's linear-algebra
// routines.
func (m Mat3) ToGonum() *mat.Dense {
	return mat.NewDense(3, 3, m[:])
}

// FromGonum reads back a 3x3 *mat.Dense into a Mat3.
func FromGonum(d *mat.Dense) Mat3 {
	var m Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i*3+j] = d.At(i, j)
		}
	}
	return m
}

// Mul returns the matrix product a*b.
func Mul(a, b Mat3) Mat3 {
	var out mat.Dense
	out.Mul(a.ToGonum(), b.ToGonum())
	return FromGonum(&out)
}

// Apply returns a*v for column vector v = (x, y, z).
func (m Mat3) Apply(x, y, z float64) (float64, float64, float64) {
	return m[0]*x + m[1]*y + m[2]*z,
		m[3]*x + m[4]*y + m[5]*z,
		m[6]*x + m[7]*y + m[8]*z
}

func mustInverse(m Mat3) Mat3 {
	var inv mat.Dense
	err := inv.Inverse(m.ToGonum())
	if err != nil {
		// The Bradford matrix is fixed and known non-singular; a
		// failure here indicates a build-time typo, not a runtime
		// condition callers can recover from.
		panic("colormath: bradford matrix is unexpectedly singular: " + err.Error())
	}
	return FromGonum(&inv)
}

// Diag returns the 3x3 diagonal matrix with d on the diagonal.
func Diag(d [3]float64) Mat3 {
	return Mat3{
		d[0], 0, 0,
		0, d[1], 0,
		0, 0, d[2],
	}
}

// BradfordCAT returns the 3x3 chromatic-adaptation matrix transforming
// XYZ tristimulus values under the source white point srcXYZ to the
// destination white point dstXYZ, using the Bradford cone-response
// transform.
func BradfordCAT(srcXYZ, dstXYZ [3]float64) Mat3 {
	srcLMS := apply3(bradford, srcXYZ)
	dstLMS := apply3(bradford, dstXYZ)
	var ratio [3]float64
	for i := range ratio {
		if srcLMS[i] == 0 {
			ratio[i] = 1
			continue
		}
		ratio[i] = dstLMS[i] / srcLMS[i]
	}
	return Mul(Mul(bradfordInv, Diag(ratio)), bradford)
}

func apply3(m Mat3, v [3]float64) [3]float64 {
	x, y, z := m.Apply(v[0], v[1], v[2])
	return [3]float64{x, y, z}
}

// D65XYZ is the CIE standard illuminant D65 white point in XYZ, the
// pipeline's reference illuminant (GLOSSARY: D65).
var D65XYZ = [3]float64{0.95047, 1.0, 1.08883}

// SRGBFromXYZ is the linear sRGB <- XYZ (D65) matrix, IEC 61966-2-1.
var SRGBFromXYZ = Mat3{
	3.2406, -1.5372, -0.4986,
	-0.9689, 1.8758, 0.0415,
	0.0557, -0.2040, 1.0570,
}
