package md

import (
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"botcoin/internal/errors"
)

// Slope fits a least-squares line to the last window prices, indexed 0..window-1,
// and returns its gradient.
func Slope(prices []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, errors.Newf(errors.CodeInvalidParameter, "window must be positive, got %d", window)
	}
	if window > len(prices) {
		return 0, errors.Newf(errors.CodeInsufficientHistory, "need %d points, have %d", window, len(prices))
	}
	if window == 1 {
		return 0, nil
	}

	ys := prices[len(prices)-window:]
	xs := make([]float64, window)
	for i := range xs {
		xs[i] = float64(i)
	}
	_, beta := stat.LinearRegression(xs, ys, nil, false)
	return beta, nil
}

// Estimator computes slopes rounded to Precision decimal places.
// A negative Precision keeps the full value.
type Estimator struct {
	Precision int32
}

func (e Estimator) Estimate(prices []float64, window int) (float64, error) {
	slope, err := Slope(prices, window)
	if err != nil {
		return 0, err
	}
	if e.Precision < 0 {
		return slope, nil
	}
	return decimal.NewFromFloat(slope).Round(e.Precision).InexactFloat64(), nil
}
