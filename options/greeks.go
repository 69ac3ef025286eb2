package options

import (
	"math"
	"time"

	gaussian "github.com/chobie/go-gaussian"

	"github.com/volexlabs/volscope/models"
)

const (
	// DefaultRiskFreeRate is the annualized rate used when none is configured.
	DefaultRiskFreeRate = 0.05
	// DefaultDayCount is the number of days per year used both for converting
	// time to expiry into year fractions and for scaling theta to per-day.
	DefaultDayCount = 365.25
)

// Input holds everything the pricing model needs for one contract. Spot,
// Strike and derived prices share one currency; Volatility is a decimal
// fraction (0.65 for a 65% quote); TimeToExpiry is in years.
type Input struct {
	Spot         float64
	Strike       float64
	TimeToExpiry float64
	Volatility   float64
	Type         models.OptionType
}

// Greeks are the first-order sensitivities of an option price. Vega is per
// one percentage point of volatility, theta per calendar day.
type Greeks struct {
	Delta float64
	Gamma float64
	Vega  float64
	Theta float64
}

// Undefined returns Greeks with every field NaN, the reported value for
// contracts the model cannot price (expired, zero vol, bad quotes).
func Undefined() Greeks {
	nan := math.NaN()
	return Greeks{Delta: nan, Gamma: nan, Vega: nan, Theta: nan}
}

// Defined reports whether all four sensitivities carry usable values.
func (g Greeks) Defined() bool {
	return !math.IsNaN(g.Delta) && !math.IsNaN(g.Gamma) && !math.IsNaN(g.Vega) && !math.IsNaN(g.Theta)
}

// Engine evaluates the Black-Scholes model under an explicit configuration.
// The zero value is not usable; construct with NewEngine.
type Engine struct {
	RiskFreeRate float64
	DayCount     float64
	norm         *gaussian.Gaussian
}

func NewEngine(riskFreeRate, dayCount float64) *Engine {
	if dayCount <= 0 {
		dayCount = DefaultDayCount
	}
	return &Engine{
		RiskFreeRate: riskFreeRate,
		DayCount:     dayCount,
		norm:         gaussian.NewGaussian(0, 1),
	}
}

// TimeToExpiry returns the year fraction between asOf and expiry under the
// engine's day count. Negative when the contract has already settled.
func (e *Engine) TimeToExpiry(asOf, expiry time.Time) float64 {
	return expiry.Sub(asOf).Seconds() / (e.DayCount * 86400)
}

// Price returns the Black-Scholes theoretical value in the spot currency, or
// NaN for degenerate inputs.
func (e *Engine) Price(in Input) float64 {
	if degenerate(in) {
		return math.NaN()
	}
	sqrtT := math.Sqrt(in.TimeToExpiry)
	d1 := e.d1(in)
	d2 := d1 - in.Volatility*sqrtT
	disc := math.Exp(-e.RiskFreeRate * in.TimeToExpiry)
	if in.Type == models.Call {
		return in.Spot*e.norm.Cdf(d1) - in.Strike*disc*e.norm.Cdf(d2)
	}
	return in.Strike*disc*e.norm.Cdf(-d2) - in.Spot*e.norm.Cdf(-d1)
}

// Compute derives delta, gamma, vega and theta in closed form. Degenerate
// inputs yield Undefined rather than an error so a scan can keep moving.
func (e *Engine) Compute(in Input) Greeks {
	if degenerate(in) {
		return Undefined()
	}
	sqrtT := math.Sqrt(in.TimeToExpiry)
	d1 := e.d1(in)
	d2 := d1 - in.Volatility*sqrtT
	nd1 := e.norm.Pdf(d1)
	disc := math.Exp(-e.RiskFreeRate * in.TimeToExpiry)

	var g Greeks
	g.Gamma = nd1 / (in.Spot * in.Volatility * sqrtT)
	g.Vega = in.Spot * nd1 * sqrtT * 0.01
	annualTheta := -in.Spot * nd1 * in.Volatility / (2 * sqrtT)
	if in.Type == models.Call {
		g.Delta = e.norm.Cdf(d1)
		annualTheta -= e.RiskFreeRate * in.Strike * disc * e.norm.Cdf(d2)
	} else {
		g.Delta = e.norm.Cdf(d1) - 1
		annualTheta += e.RiskFreeRate * in.Strike * disc * e.norm.Cdf(-d2)
	}
	g.Theta = annualTheta / e.DayCount
	return g
}

func (e *Engine) d1(in Input) float64 {
	return (math.Log(in.Spot/in.Strike) + (e.RiskFreeRate+0.5*in.Volatility*in.Volatility)*in.TimeToExpiry) /
		(in.Volatility * math.Sqrt(in.TimeToExpiry))
}

// degenerate is written with negated comparisons so NaN inputs land on the
// degenerate side instead of flowing into the model.
func degenerate(in Input) bool {
	return !(in.TimeToExpiry > 0) || !(in.Volatility > 0) || !(in.Spot > 0) || !(in.Strike > 0)
}
