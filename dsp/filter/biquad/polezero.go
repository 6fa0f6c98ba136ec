package biquad

import "math/cmplx"

// Poles returns the z-plane poles of the section denominator:
//
//	A0 + A1*z^-1 + A2*z^-2 = 0
func (c Coefficients) Poles() [2]complex128 {
	return quadraticRoots(c.A0, c.A1, c.A2)
}

// Zeros returns the z-plane zeros of the section numerator:
//
//	B0 + B1*z^-1 + B2*z^-2 = 0
func (c Coefficients) Zeros() [2]complex128 {
	return quadraticRoots(c.B0, c.B1, c.B2)
}

// IsStable reports whether both poles lie strictly inside the unit circle.
func (c Coefficients) IsStable() bool {
	if c.A0 == 0 {
		return false
	}

	for _, p := range c.Poles() {
		if cmplx.Abs(p) >= 1 {
			return false
		}
	}

	return true
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	if a == 0 {
		if b == 0 {
			return [2]complex128{}
		}

		return [2]complex128{complex(-c/b, 0), 0}
	}

	discriminant := complex(b*b-4*a*c, 0)
	sqrtDiscriminant := cmplx.Sqrt(discriminant)
	den := complex(2*a, 0)

	return [2]complex128{
		(-complex(b, 0) + sqrtDiscriminant) / den,
		(-complex(b, 0) - sqrtDiscriminant) / den,
	}
}
