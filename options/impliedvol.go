package options

import (
	"errors"
	"fmt"
	"math"

	"github.com/volexlabs/volscope/models"
)

// Sentinel errors for volatility reconstruction. Every failure wraps
// ErrUnresolved, so callers that only care whether a row gets an IV can test
// with errors.Is(err, ErrUnresolved) and skip.
var (
	ErrUnresolved       = errors.New("implied volatility unresolved")
	ErrDegenerateInput  = fmt.Errorf("%w: degenerate input", ErrUnresolved)
	ErrPriceOutOfBounds = fmt.Errorf("%w: price outside attainable range", ErrUnresolved)
	ErrNoConvergence    = fmt.Errorf("%w: no convergence", ErrUnresolved)
)

// Solver domain and iteration caps. The vol bounds cover everything a crypto
// options venue will realistically print; the caps make termination
// unconditional.
const (
	minVol         = 1e-4
	maxVol         = 5.0
	maxNewtonIters = 60
	maxBisectIters = 100
	vegaFloor      = 1e-10
	volWidthTol    = 1e-7
)

// VolQuery asks for the volatility implied by an observed option price. Price
// must be in the same currency as Spot; convert exchange quotes expressed in
// the underlying before calling.
type VolQuery struct {
	Price        float64
	Spot         float64
	Strike       float64
	TimeToExpiry float64
	Type         models.OptionType
}

// ImpliedVol inverts the pricing model at the observed price. It runs a
// Newton-Raphson loop from a Brenner-Subrahmanyam seed and falls back to
// bisection over [minVol, maxVol] when Newton leaves the bracket or the vega
// denominator collapses. On failure it returns NaN and a wrapped
// ErrUnresolved sentinel, never a panic.
func (e *Engine) ImpliedVol(q VolQuery) (float64, error) {
	if !(q.Price > 0) || !(q.Spot > 0) || !(q.Strike > 0) || !(q.TimeToExpiry > 0) {
		return math.NaN(), ErrDegenerateInput
	}
	lower, upper := e.priceBounds(q)
	if q.Price <= lower || q.Price >= upper {
		return math.NaN(), ErrPriceOutOfBounds
	}

	in := Input{Spot: q.Spot, Strike: q.Strike, TimeToExpiry: q.TimeToExpiry, Type: q.Type}
	tol := priceTolerance(q.Price)

	v := math.Sqrt(2*math.Pi/q.TimeToExpiry) * q.Price / q.Spot
	if !(v >= minVol) {
		v = minVol
	} else if v > maxVol {
		v = maxVol
	}
	for i := 0; i < maxNewtonIters; i++ {
		in.Volatility = v
		diff := e.Price(in) - q.Price
		if math.Abs(diff) <= tol {
			return v, nil
		}
		vega := e.rawVega(in)
		if !(vega > vegaFloor) {
			break
		}
		next := v - diff/vega
		if !(next > minVol && next < maxVol) {
			break
		}
		v = next
	}
	return e.bisectVol(in, q.Price, tol)
}

// bisectVol assumes price is strictly increasing in volatility, which holds
// whenever vega is positive, i.e. for any unexpired contract.
func (e *Engine) bisectVol(in Input, target, tol float64) (float64, error) {
	lo, hi := minVol, maxVol
	in.Volatility = lo
	if e.Price(in)-target >= 0 {
		return math.NaN(), ErrPriceOutOfBounds
	}
	in.Volatility = hi
	if e.Price(in)-target <= 0 {
		return math.NaN(), ErrPriceOutOfBounds
	}
	for i := 0; i < maxBisectIters; i++ {
		mid := (lo + hi) / 2
		in.Volatility = mid
		diff := e.Price(in) - target
		if math.Abs(diff) <= tol || hi-lo < volWidthTol {
			return mid, nil
		}
		if diff < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return math.NaN(), ErrNoConvergence
}

// priceBounds returns the open no-arbitrage interval for the contract value.
// Prices at or outside these bounds have no finite positive volatility.
func (e *Engine) priceBounds(q VolQuery) (lower, upper float64) {
	disc := math.Exp(-e.RiskFreeRate * q.TimeToExpiry)
	if q.Type == models.Call {
		return math.Max(q.Spot-q.Strike*disc, 0), q.Spot
	}
	return math.Max(q.Strike*disc-q.Spot, 0), q.Strike * disc
}

// rawVega is dPrice/dVol per unit of volatility, the Newton denominator. The
// reported Greek scales this by 0.01.
func (e *Engine) rawVega(in Input) float64 {
	return in.Spot * e.norm.Pdf(e.d1(in)) * math.Sqrt(in.TimeToExpiry)
}

// priceTolerance scales the convergence test to the quote size so large USD
// premiums are not held to an absolute tolerance below float precision.
func priceTolerance(target float64) float64 {
	return 1e-8 * math.Max(1, math.Abs(target))
}
