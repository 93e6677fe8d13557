// Curator - Museum Exhibit Recommendation and Tour Planning
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curator

package tour

import (
	"math"

	"github.com/tomtom215/curator/internal/recommend"
)

// Distance is the walking distance between two floor-plan points: the
// straight-line distance plus a fixed charge for changing floors.
func Distance(a, b recommend.Location, floorPenalty float64) float64 {
	d := math.Hypot(a.X-b.X, a.Y-b.Y)
	if a.Floor != b.Floor {
		d += floorPenalty
	}
	return d
}

// stop is one tour candidate with precomputed travel data.
type stop struct {
	rec   recommend.Recommendation
	loc   recommend.Location
	visit float64
	score float64
}

// plan holds the per-request travel model. Index len(stops) in dist is the start.
type plan struct {
	stops        []stop
	dist         [][]float64
	speed        float64
	budget       float64
	restInterval float64
	restMinutes  float64
	overtime     float64
	distPenalty  float64
}

func newPlan(stops []stop, start recommend.Location, cfg recommend.TourConfig, speedFactor float64, budget, restInterval int) *plan {
	n := len(stops)
	locs := make([]recommend.Location, n+1)
	for i := range stops {
		locs[i] = stops[i].loc
	}
	locs[n] = start

	dist := make([][]float64, n+1)
	for i := range dist {
		dist[i] = make([]float64, n+1)
	}
	for i := 0; i <= n; i++ {
		for j := i + 1; j <= n; j++ {
			d := Distance(locs[i], locs[j], cfg.FloorChangePenalty)
			dist[i][j] = d
			dist[j][i] = d
		}
	}

	if speedFactor <= 0 {
		speedFactor = 1
	}
	return &plan{
		stops:        stops,
		dist:         dist,
		speed:        cfg.WalkingSpeed * speedFactor,
		budget:       float64(budget),
		restInterval: float64(restInterval),
		restMinutes:  float64(cfg.RestMinutes),
		overtime:     cfg.OvertimePenalty,
		distPenalty:  cfg.DistancePenalty,
	}
}

func (p *plan) start() int {
	return len(p.stops)
}

// evaluation is the simulated walk of one visit order.
type evaluation struct {
	minutes  float64
	distance float64
	score    float64
	fitness  float64
}

// evaluate walks seq from the start, inserting rests whenever accumulated
// visit time reaches the rest interval (never after the final stop):
//
//	fitness = sum(score) - overtime * max(0, minutes - budget) - distPenalty * distance
func (p *plan) evaluate(seq []int) evaluation {
	var ev evaluation
	var sinceRest float64
	prev := p.start()

	for k, i := range seq {
		d := p.dist[prev][i]
		ev.distance += d
		ev.minutes += d/p.speed + p.stops[i].visit
		ev.score += p.stops[i].score
		sinceRest += p.stops[i].visit
		if p.restInterval > 0 && sinceRest >= p.restInterval && k < len(seq)-1 {
			ev.minutes += p.restMinutes
			sinceRest = 0
		}
		prev = i
	}

	over := math.Max(0, ev.minutes-p.budget)
	ev.fitness = ev.score - p.overtime*over - p.distPenalty*ev.distance
	return ev
}

// fitsAlone reports whether stop i can be visited on its own within budget.
func (p *plan) fitsAlone(i int) bool {
	return p.dist[p.start()][i]/p.speed+p.stops[i].visit <= p.budget
}

// bestFittingAlone returns the highest-scored stop that fits the budget on
// its own, or -1.
func (p *plan) bestFittingAlone() int {
	best := -1
	for i := range p.stops {
		if !p.fitsAlone(i) {
			continue
		}
		if best < 0 || p.stops[i].score > p.stops[best].score {
			best = i
		}
	}
	return best
}

// build renders seq as tour stops and rest stops.
func (p *plan) build(seq []int) ([]recommend.TourStop, []recommend.RestStop) {
	stops := make([]recommend.TourStop, 0, len(seq))
	var rests []recommend.RestStop

	var clock, sinceRest float64
	prev := p.start()
	for k, i := range seq {
		d := p.dist[prev][i]
		travel := d / p.speed
		clock += travel
		s := p.stops[i]
		stops = append(stops, recommend.TourStop{
			Sequence:         k,
			ExhibitID:        s.rec.ExhibitID,
			Name:             s.rec.Name,
			Location:         s.loc,
			ArrivalMinute:    recommend.Round(clock, 2),
			TravelMinutes:    recommend.Round(travel, 2),
			VisitMinutes:     int(s.visit),
			DistanceFromPrev: recommend.Round(d, 2),
			Score:            s.score,
		})
		clock += s.visit
		sinceRest += s.visit
		if p.restInterval > 0 && sinceRest >= p.restInterval && k < len(seq)-1 {
			rests = append(rests, recommend.RestStop{
				AfterSequence: k,
				Minutes:       int(p.restMinutes),
				Reason:        "planned rest",
			})
			clock += p.restMinutes
			sinceRest = 0
		}
		prev = i
	}
	return stops, rests
}
