package services

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/architect/ear-training/internal/training/models"
	"github.com/architect/ear-training/internal/training/repository"
)

// Concepts below this accuracy over the trailing 30 days count as weak
// points; the five weakest are reported.
const (
	weakPointThreshold = 70
	weakPointLimit     = 5
	weakPointWindow    = 30 // days
	trendDays          = 7
)

// StatsService builds the read-only statistics views over the result log.
type StatsService struct {
	results repository.ResultStore
}

func NewStatsService(results repository.ResultStore) *StatsService {
	return &StatsService{results: results}
}

// now is swappable in tests that pin the calendar.
var now = time.Now

// Statistics assembles the full statistics read model.
func (s *StatsService) Statistics() (*models.StatisticsData, error) {
	all, err := s.results.All()
	if err != nil {
		return nil, err
	}

	trend := s.accuracyTrend(all)
	weekly := 0
	if len(trend) > 0 {
		sum := 0
		for _, p := range trend {
			sum += p.Accuracy
		}
		weekly = int(math.Round(float64(sum) / float64(len(trend))))
	}

	return &models.StatisticsData{
		TotalResults:   len(all),
		WeeklyAccuracy: weekly,
		// Week-average approximation, not a true per-day count.
		DailyAverage:  int(math.Round(float64(len(all)) / float64(trendDays))),
		AccuracyTrend: trend,
		ModeStats:     modeStats(all),
		WeakPoints:    s.weakPoints(),
	}, nil
}

// ModeStats returns per-mode totals over the full result log.
func (s *StatsService) ModeStats() ([]models.ModeStats, error) {
	all, err := s.results.All()
	if err != nil {
		return nil, err
	}
	return modeStats(all), nil
}

func modeStats(all []models.TrainingResult) []models.ModeStats {
	stats := make([]models.ModeStats, 0, len(models.Modes))
	for _, mode := range models.Modes {
		var subset []models.TrainingResult
		for _, r := range all {
			if r.Mode == mode {
				subset = append(subset, r)
			}
		}
		stat := models.ModeStats{Mode: mode, Total: len(subset)}
		for _, r := range subset {
			if r.Correct {
				stat.Correct++
			}
		}
		stat.Accuracy = repository.Accuracy(subset)
		stats = append(stats, stat)
	}
	return stats
}

// accuracyTrend buckets results into the trailing 7 local calendar days,
// today included. Days without results report 0.
func (s *StatsService) accuracyTrend(all []models.TrainingResult) []models.TrendPoint {
	trend := make([]models.TrendPoint, 0, trendDays)
	today := now()

	for i := trendDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		dayEnd := dayStart.AddDate(0, 0, 1)

		var dayResults []models.TrainingResult
		for _, r := range all {
			if !r.Timestamp.Before(dayStart) && r.Timestamp.Before(dayEnd) {
				dayResults = append(dayResults, r)
			}
		}

		trend = append(trend, models.TrendPoint{
			Date:     fmt.Sprintf("%d/%d", day.Month(), day.Day()),
			Accuracy: repository.Accuracy(dayResults),
		})
	}
	return trend
}

// weakPoints groups trailing-30-day results by answer concept and reports
// the weakest concepts under the accuracy threshold, weakest first.
func (s *StatsService) weakPoints() []models.WeakPoint {
	recent, err := s.results.Recent(weakPointWindow)
	if err != nil {
		return []models.WeakPoint{}
	}

	type tally struct{ correct, total int }
	byConcept := make(map[string]*tally)
	order := make([]string, 0)
	for _, r := range recent {
		t, ok := byConcept[r.Answer]
		if !ok {
			t = &tally{}
			byConcept[r.Answer] = t
			order = append(order, r.Answer)
		}
		t.total++
		if r.Correct {
			t.correct++
		}
	}

	points := make([]models.WeakPoint, 0, len(byConcept))
	for _, concept := range order {
		t := byConcept[concept]
		accuracy := int(math.Round(float64(t.correct) / float64(t.total) * 100))
		if accuracy < weakPointThreshold {
			points = append(points, models.WeakPoint{Item: concept, Accuracy: accuracy})
		}
	}

	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Accuracy < points[j].Accuracy
	})
	if len(points) > weakPointLimit {
		points = points[:weakPointLimit]
	}
	return points
}
