// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

// Package tour orders recommended exhibits into a walkable, time-bounded tour.
//
// The search is a genetic algorithm over variable-length visit orders:
// score-weighted random seeding plus one greedy individual, binary
// tournament selection, elitism of one, order-preserving crossover and
// swap/remove/insert mutation. It is an anytime search: it stops after a
// fixed number of generations, after a plateau without improvement, or when
// the context ends, and always returns the best order found so far,
// trimmed to fit the time budget.
package tour

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/curator/internal/recommend"
)

// improvementEpsilon is the smallest fitness gain that resets the plateau counter.
const improvementEpsilon = 1e-9

// Request is one tour planning call.
type Request struct {
	Recommendations []recommend.Recommendation
	Profile         *recommend.UserProfile
	// BudgetMinutes caps the tour length. Zero uses the time slot default.
	BudgetMinutes int
	// Start is where the visitor enters. Nil uses recommend.Entrance.
	Start *recommend.Location
}

// Optimizer plans tours. It holds only configuration and is safe for
// concurrent use; every call seeds its own random source.
type Optimizer struct {
	cfg      recommend.TourConfig
	seed     int64
	recorder recommend.Recorder
}

// NewOptimizer creates an optimizer. A zero seed uses recommend.DefaultSeed.
//
//nolint:gocritic // hugeParam: config is copied once at construction
func NewOptimizer(cfg recommend.TourConfig, seed int64, rec recommend.Recorder) *Optimizer {
	if seed == 0 {
		seed = recommend.DefaultSeed
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.PopulationSize < 2 {
		cfg.PopulationSize = 2
	}
	return &Optimizer{cfg: cfg, seed: seed, recorder: recommend.OrNop(rec)}
}

// DefaultBudget returns the tour length for a time slot.
func DefaultBudget(slot recommend.TimeSlot) int {
	return recommend.Slots[slot].BudgetMinutes
}

// Optimize returns the best tour found. It never fails: an empty request
// yields an empty tour, and a budget the top recommendation cannot fit on
// its own is reported through Tour.BudgetInfeasible.
//
//nolint:gocritic // hugeParam: request is read-only
func (o *Optimizer) Optimize(ctx context.Context, req Request) recommend.Tour {
	budget := req.BudgetMinutes
	if budget <= 0 && req.Profile != nil {
		budget = DefaultBudget(req.Profile.Selections.TimeSlot)
	}

	out := recommend.Tour{
		Stops:         []recommend.TourStop{},
		BudgetMinutes: budget,
	}

	stops := make([]stop, 0, len(req.Recommendations))
	for i := range req.Recommendations {
		r := req.Recommendations[i]
		ex := r.Exhibit()
		if ex == nil {
			continue
		}
		visit := float64(ex.DurationMinutes)
		if visit < 1 {
			visit = 1
		}
		stops = append(stops, stop{rec: r, loc: ex.Location, visit: visit, score: r.Score})
	}
	if len(stops) == 0 {
		return out
	}

	start := recommend.Entrance
	if req.Start != nil {
		start = *req.Start
	}
	speedFactor, restInterval := 1.0, 0
	if req.Profile != nil {
		speedFactor = req.Profile.WalkingSpeedFactor
		restInterval = req.Profile.RestIntervalMinutes
	}
	p := newPlan(stops, start, o.cfg, speedFactor, budget, restInterval)

	// The highest-scored recommendation must fit on its own.
	top := 0
	for i := range stops {
		if stops[i].score > stops[top].score {
			top = i
		}
	}
	var (
		best        individual
		generations int
	)
	if p.fitsAlone(top) {
		best, generations = o.search(ctx, p)
		best = p.repair(best)
	} else {
		// Infeasible budgets get at most the best single exhibit that fits.
		out.BudgetInfeasible = true
		best = individual{}
		fallback := ""
		if j := p.bestFittingAlone(); j >= 0 {
			best = individual{j}
			fallback = stops[j].rec.ExhibitID
		}
		o.recorder.Record(recommend.Event{
			Name:     "tour.budget_infeasible",
			Severity: recommend.SeverityWarn,
			Fields: map[string]any{
				"budget_minutes": budget,
				"exhibit_id":     stops[top].rec.ExhibitID,
				"visit_minutes":  int(stops[top].visit),
				"fallback_id":    fallback,
			},
		})
	}
	ev := p.evaluate(best)

	out.Stops, out.RestStops = p.build(best)
	out.TotalMinutes = recommend.Round(ev.minutes, 2)
	out.TotalDistance = recommend.Round(ev.distance, 2)
	out.Fitness = recommend.Round(ev.fitness, 6)
	out.Generations = generations

	o.recorder.Record(recommend.Event{
		Name:     "tour.optimized",
		Severity: recommend.SeverityDebug,
		Fields: map[string]any{
			"stops":         len(out.Stops),
			"generations":   generations,
			"fitness":       out.Fitness,
			"total_minutes": out.TotalMinutes,
		},
	})
	return out
}

// search runs the genetic algorithm and returns the fittest individual ever
// seen and the number of generations evolved.
func (o *Optimizer) search(ctx context.Context, p *plan) (individual, int) {
	//nolint:gosec // G404: math/rand is acceptable for search heuristics (not security)
	rng := rand.New(rand.NewSource(o.seed))

	pop := make([]individual, o.cfg.PopulationSize)
	pop[0] = p.greedyIndividual()
	for i := 1; i < len(pop); i++ {
		pop[i] = p.randomIndividual(rng)
	}

	fitness := o.evaluateAll(p, pop)
	bestIdx := argmax(fitness)
	best, bestFit := pop[bestIdx].clone(), fitness[bestIdx]

	stall, gen := 0, 0
	for gen < o.cfg.Generations {
		if err := ctx.Err(); err != nil {
			o.recorder.Record(recommend.Event{
				Name:     "tour.interrupted",
				Severity: recommend.SeverityInfo,
				Fields:   map[string]any{"generation": gen, "reason": err.Error()},
			})
			break
		}
		if o.cfg.PlateauGenerations > 0 && stall >= o.cfg.PlateauGenerations {
			break
		}

		next := make([]individual, 0, len(pop))
		next = append(next, pop[argmax(fitness)].clone())
		for len(next) < len(pop) {
			a := pop[tournament(rng, fitness)]
			b := pop[tournament(rng, fitness)]
			child := crossover(rng, a, b)
			if rng.Float64() < o.cfg.MutationRate {
				child = mutate(rng, child, len(p.stops))
			}
			next = append(next, child)
		}
		pop = next
		fitness = o.evaluateAll(p, pop)
		gen++

		if i := argmax(fitness); fitness[i] > bestFit+improvementEpsilon {
			best, bestFit = pop[i].clone(), fitness[i]
			stall = 0
		} else {
			stall++
		}
	}
	return best, gen
}

// evaluateAll computes the fitness of every individual on a bounded worker
// pool. Each worker owns a contiguous chunk and writes results by index, so
// the output does not depend on scheduling.
func (o *Optimizer) evaluateAll(p *plan, pop []individual) []float64 {
	fitness := make([]float64, len(pop))
	workers := o.cfg.Workers
	chunkSize := (len(pop) + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < len(pop); start += chunkSize {
		end := start + chunkSize
		if end > len(pop) {
			end = len(pop)
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				fitness[i] = p.evaluate(pop[i]).fitness
			}
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers never return errors

	return fitness
}

// argmax returns the first index of the largest value.
func argmax(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
