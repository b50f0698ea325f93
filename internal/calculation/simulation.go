package calculation

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"
	"sync"

	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// GoalSimulationConfig holds configuration for goal Monte Carlo simulations
type GoalSimulationConfig struct {
	NumSimulations   int
	Seed             uint64
	AnnualVolatility decimal.Decimal // Standard deviation of the annual return, e.g. 0.15
	Workers          int             // 0 uses GOMAXPROCS
}

// DefaultGoalSimulationConfig returns 1000 paths at 15% annual volatility
func DefaultGoalSimulationConfig() GoalSimulationConfig {
	return GoalSimulationConfig{
		NumSimulations:   1000,
		Seed:             1,
		AnnualVolatility: decimal.NewFromFloat(0.15),
	}
}

// GoalPercentiles are ending-value percentiles across all paths
type GoalPercentiles struct {
	P10 decimal.Decimal `json:"p10"`
	P25 decimal.Decimal `json:"p25"`
	P50 decimal.Decimal `json:"p50"`
	P75 decimal.Decimal `json:"p75"`
	P90 decimal.Decimal `json:"p90"`
}

// GoalSimulationResult summarizes the distribution of a goal's value at its horizon
type GoalSimulationResult struct {
	GoalName             string          `json:"goalName"`
	NumSimulations       int             `json:"numSimulations"`
	HorizonMonths        int             `json:"horizonMonths"`
	Target               decimal.Decimal `json:"target"`
	ExpectedReturnAnnual decimal.Decimal `json:"expectedReturnAnnual"`
	AnnualVolatility     decimal.Decimal `json:"annualVolatility"`
	DeterministicValue   decimal.Decimal `json:"deterministicValue"`
	MeanEndingValue      decimal.Decimal `json:"meanEndingValue"`
	SuccessRate          decimal.Decimal `json:"successRate"` // Fraction of paths reaching the target
	Percentiles          GoalPercentiles `json:"percentiles"`
}

// GoalSimulator runs stochastic projections of a goal around the tiered expected return
type GoalSimulator struct {
	engine *PlanningEngine
	config GoalSimulationConfig
}

// NewGoalSimulator creates a simulator bound to the engine's return assumptions
func NewGoalSimulator(engine *PlanningEngine, config GoalSimulationConfig) *GoalSimulator {
	if engine == nil {
		engine = NewPlanningEngine()
	}
	return &GoalSimulator{engine: engine, config: config}
}

// Run simulates the goal NumSimulations times. Path i always draws from the same
// seeded stream, so results do not depend on worker scheduling.
func (gs *GoalSimulator) Run(ctx context.Context, goal domain.Goal) (*GoalSimulationResult, error) {
	if gs.config.NumSimulations <= 0 {
		return nil, fmt.Errorf("number of simulations must be positive, got %d", gs.config.NumSimulations)
	}
	if gs.config.AnnualVolatility.IsNegative() {
		return nil, fmt.Errorf("annual volatility cannot be negative")
	}

	annual := gs.engine.Assumptions.AnnualRateFor(goal.MonthsToAchieve)
	mu := annual.InexactFloat64() / 12
	sigma := gs.config.AnnualVolatility.InexactFloat64() / math.Sqrt(12)
	savings := goal.CurrentSavings.InexactFloat64()
	sip := goal.SIP.InexactFloat64()
	target := goal.TargetAmount.InexactFloat64()

	workers := gs.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	endings := make([]float64, gs.config.NumSimulations)
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				src := rand.NewPCG(gs.config.Seed, uint64(id))
				endings[id] = simulatePath(savings, sip, mu, sigma, goal.MonthsToAchieve, src)
			}
		}()
	}

	var cancelled error
	for i := 0; i < gs.config.NumSimulations; i++ {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
		case jobs <- i:
			continue
		}
		break
	}
	close(jobs)
	wg.Wait()
	if cancelled != nil {
		return nil, cancelled
	}

	successes := 0
	for _, v := range endings {
		if v >= target {
			successes++
		}
	}
	sort.Float64s(endings)

	gs.engine.Logger.Debugf("simulated goal %q: %d paths, %d reached target", goal.Name, len(endings), successes)

	return &GoalSimulationResult{
		GoalName:             goal.Name,
		NumSimulations:       gs.config.NumSimulations,
		HorizonMonths:        goal.MonthsToAchieve,
		Target:               goal.TargetAmount,
		ExpectedReturnAnnual: annual.Mul(hundred).Round(2),
		AnnualVolatility:     gs.config.AnnualVolatility,
		DeterministicValue:   FutureValue(goal.CurrentSavings, goal.SIP, MonthlyRate(annual), goal.MonthsToAchieve).Round(2),
		MeanEndingValue:      decimal.NewFromFloat(stat.Mean(endings, nil)).Round(2),
		SuccessRate:          decimal.NewFromInt(int64(successes)).Div(decimal.NewFromInt(int64(len(endings)))).Round(4),
		Percentiles: GoalPercentiles{
			P10: quantile(0.10, endings),
			P25: quantile(0.25, endings),
			P50: quantile(0.50, endings),
			P75: quantile(0.75, endings),
			P90: quantile(0.90, endings),
		},
	}, nil
}

// simulatePath contributes at the start of each month and then applies that month's return
func simulatePath(savings, sip, mu, sigma float64, months int, src rand.Source) float64 {
	value := savings
	if sigma == 0 {
		for m := 0; m < months; m++ {
			value = (value + sip) * (1 + mu)
		}
		return value
	}
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: src}
	for m := 0; m < months; m++ {
		value = (value + sip) * (1 + dist.Rand())
	}
	return value
}

func quantile(p float64, sorted []float64) decimal.Decimal {
	return decimal.NewFromFloat(stat.Quantile(p, stat.Empirical, sorted, nil)).Round(2)
}
