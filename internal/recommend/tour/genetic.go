// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package tour

import (
	"math/rand"
)

// samplingSmoothing keeps zero-score exhibits selectable during seeding.
const samplingSmoothing = 0.05

// individual is a visit order: distinct indices into plan.stops.
type individual []int

func (ind individual) clone() individual {
	return append(individual(nil), ind...)
}

// randomIndividual draws a random-size subset, sampling without replacement
// with probability proportional to score. Draw order is the visit order.
func (p *plan) randomIndividual(rng *rand.Rand) individual {
	n := len(p.stops)
	size := 1 + rng.Intn(n)

	weights := make([]float64, n)
	var total float64
	for i := range p.stops {
		weights[i] = p.stops[i].score + samplingSmoothing
		total += weights[i]
	}

	ind := make(individual, 0, size)
	for len(ind) < size && total > 0 {
		r := rng.Float64() * total
		pick := -1
		for i, w := range weights {
			if w == 0 {
				continue
			}
			pick = i
			if r < w {
				break
			}
			r -= w
		}
		if pick < 0 {
			break
		}
		ind = append(ind, pick)
		total -= weights[pick]
		weights[pick] = 0
	}
	return ind
}

// greedyIndividual repeatedly walks to the unvisited exhibit with the best
// score per minute (travel plus visit) that still fits the budget.
func (p *plan) greedyIndividual() individual {
	n := len(p.stops)
	used := make([]bool, n)
	ind := make(individual, 0, n)

	for {
		prev := p.start()
		if len(ind) > 0 {
			prev = ind[len(ind)-1]
		}
		best, bestRate := -1, -1.0
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			cost := p.dist[prev][i]/p.speed + p.stops[i].visit
			rate := p.stops[i].score / cost
			if rate <= bestRate {
				continue
			}
			if p.evaluate(append(ind.clone(), i)).minutes > p.budget {
				continue
			}
			best, bestRate = i, rate
		}
		if best < 0 {
			return ind
		}
		used[best] = true
		ind = append(ind, best)
	}
}

// tournament returns the fitter of two random individuals.
func tournament(rng *rand.Rand, fitness []float64) int {
	a := rng.Intn(len(fitness))
	b := rng.Intn(len(fitness))
	if fitness[b] > fitness[a] {
		return b
	}
	return a
}

// crossover is an order-preserving (OX-style) operator for variable-length
// orders. A slice of p1 keeps its position; the remaining slots, up to
// len(p1), are filled with p2's exhibits in p2's order, skipping duplicates.
func crossover(rng *rand.Rand, p1, p2 individual) individual {
	if len(p1) == 0 {
		return p2.clone()
	}
	if len(p2) == 0 {
		return p1.clone()
	}

	a := rng.Intn(len(p1))
	b := a + rng.Intn(len(p1)-a)
	segment := p1[a : b+1]

	inSegment := make(map[int]bool, len(segment))
	for _, g := range segment {
		inSegment[g] = true
	}
	filler := make(individual, 0, len(p2))
	for _, g := range p2 {
		if !inSegment[g] {
			filler = append(filler, g)
		}
	}

	room := len(p1) - len(segment)
	if room > len(filler) {
		room = len(filler)
	}
	head := a
	if head > room {
		head = room
	}

	child := make(individual, 0, len(segment)+room)
	child = append(child, filler[:head]...)
	child = append(child, segment...)
	child = append(child, filler[head:room]...)
	return child
}

// mutate applies one of swap, remove or insert. Operators that cannot apply
// to the current order fall through to one that can.
func mutate(rng *rand.Rand, ind individual, n int) individual {
	unused := make([]int, 0, n)
	present := make(map[int]bool, len(ind))
	for _, g := range ind {
		present[g] = true
	}
	for i := 0; i < n; i++ {
		if !present[i] {
			unused = append(unused, i)
		}
	}

	op := rng.Intn(3)
	switch {
	case op == 0 && len(ind) >= 2:
		i, j := rng.Intn(len(ind)), rng.Intn(len(ind))
		ind[i], ind[j] = ind[j], ind[i]
		return ind
	case op == 1 && len(ind) >= 1:
		i := rng.Intn(len(ind))
		return append(ind[:i], ind[i+1:]...)
	case len(unused) > 0:
		g := unused[rng.Intn(len(unused))]
		pos := rng.Intn(len(ind) + 1)
		ind = append(ind, 0)
		copy(ind[pos+1:], ind[pos:])
		ind[pos] = g
		return ind
	case len(ind) >= 2:
		i, j := rng.Intn(len(ind)), rng.Intn(len(ind))
		ind[i], ind[j] = ind[j], ind[i]
		return ind
	default:
		return ind
	}
}

// repair drops the stop with the lowest score per visit minute until the
// order fits the budget. Ties drop the later stop.
func (p *plan) repair(ind individual) individual {
	ind = ind.clone()
	for len(ind) > 0 && p.evaluate(ind).minutes > p.budget {
		worst := 0
		worstRate := p.stops[ind[0]].score / p.stops[ind[0]].visit
		for k := 1; k < len(ind); k++ {
			rate := p.stops[ind[k]].score / p.stops[ind[k]].visit
			if rate <= worstRate {
				worst, worstRate = k, rate
			}
		}
		ind = append(ind[:worst], ind[worst+1:]...)
	}
	return ind
}
