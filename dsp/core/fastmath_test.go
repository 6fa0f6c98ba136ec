//go:build !fastmath

package core

const dbTolerance = 1e-10
