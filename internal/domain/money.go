package domain

import "github.com/shopspring/decimal"

// Tolerance absorbe el redondeo en comparaciones monetarias y de cantidades.
var Tolerance = decimal.New(1, -2) // 0.01

// WithinTolerance indica si |a - b| < tol. Con tol cero se usa Tolerance.
func WithinTolerance(a, b, tol decimal.Decimal) bool {
	if tol.IsZero() {
		tol = Tolerance
	}
	return a.Sub(b).Abs().LessThan(tol)
}
