package utils

import (
	"fmt"
	"time"
)

// Stats for performance monitoring of a running game
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	Restarts             int
	StartTime            time.Time
	lastFrame            time.Time
}

func NewStats() *Stats {
	now := time.Now()
	return &Stats{StartTime: now, lastFrame: now}
}

// Update records one generation with the given population
func (s *Stats) Update(population int) {
	s.UpdateAt(population, time.Now())
}

// UpdateAt is Update with an explicit clock reading
func (s *Stats) UpdateAt(population int, now time.Time) {
	s.TotalGenerations++
	if duration := now.Sub(s.lastFrame); duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}
	s.lastFrame = now

	// Simple moving average for population
	if s.TotalGenerations == 1 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

// Runtime is the time since the stats were created
func (s *Stats) Runtime() time.Duration {
	return time.Since(s.StartTime)
}

// Summary is a one-line report for the end of a run
func (s *Stats) Summary() string {
	return fmt.Sprintf("%d generations in %.1fs, %d restarts, %.1f avg population",
		s.TotalGenerations, s.Runtime().Seconds(), s.Restarts, s.AveragePopulation)
}
