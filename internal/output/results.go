// Package output accumulates and renders call file execution results.
package output

import (
	"time"
)

type FileResult struct {
	Filename  string
	CallCount int
	Duration  time.Duration
	Error     error
}

type Summary struct {
	FileResults    []FileResult
	ExecutedFiles  int
	ExecutedCalls  int
	SucceededFiles int
	FailedFiles    int
	TotalDuration  time.Duration
}

func NewSummary(expectedFiles int) *Summary {
	return &Summary{
		FileResults: make([]FileResult, 0, expectedFiles),
	}
}

func (s *Summary) Add(result FileResult) {
	s.FileResults = append(s.FileResults, result)
	s.ExecutedFiles++
	s.ExecutedCalls += result.CallCount

	if result.Error != nil {
		s.FailedFiles++
	} else {
		s.SucceededFiles++
	}
}

func (s *Summary) SetTotalDuration(duration time.Duration) {
	s.TotalDuration = duration
}

func (s *Summary) CallsPerSecond() float64 {
	if s.TotalDuration == 0 {
		return 0
	}
	return float64(s.ExecutedCalls) / s.TotalDuration.Seconds()
}

func (s *Summary) SuccessPercentage() float64 {
	if s.ExecutedFiles == 0 {
		return 0
	}
	return (float64(s.SucceededFiles) / float64(s.ExecutedFiles)) * 100
}

func (s *Summary) FailurePercentage() float64 {
	if s.ExecutedFiles == 0 {
		return 0
	}
	return (float64(s.FailedFiles) / float64(s.ExecutedFiles)) * 100
}

type AggregatedStats struct {
	TotalExecutedFiles   int
	TotalExecutedCalls   int
	TotalSucceededFiles  int
	TotalFailedFiles     int
	TotalDuration        time.Duration
	SuccessfulIterations int
	IterationCount       int
}

func (a AggregatedStats) FailedIterations() int {
	return a.IterationCount - a.SuccessfulIterations
}

func (a AggregatedStats) IterationSuccessRate() float64 {
	if a.IterationCount == 0 {
		return 0
	}
	return float64(a.SuccessfulIterations) / float64(a.IterationCount) * 100
}

func (a AggregatedStats) OverallCallsPerSecond() float64 {
	if a.TotalDuration == 0 {
		return 0
	}
	return float64(a.TotalExecutedCalls) / a.TotalDuration.Seconds()
}

func (a AggregatedStats) AvgFilesPerIteration() float64 {
	if a.IterationCount == 0 {
		return 0
	}
	return float64(a.TotalExecutedFiles) / float64(a.IterationCount)
}

func (a AggregatedStats) AvgCallsPerIteration() float64 {
	if a.IterationCount == 0 {
		return 0
	}
	return float64(a.TotalExecutedCalls) / float64(a.IterationCount)
}

func (a AggregatedStats) AvgDurationPerIteration() time.Duration {
	if a.IterationCount == 0 {
		return 0
	}
	return a.TotalDuration / time.Duration(a.IterationCount)
}

func CalculateAggregatedStats(allResults []*Summary) AggregatedStats {
	var stats AggregatedStats
	stats.IterationCount = len(allResults)

	for _, results := range allResults {
		stats.TotalExecutedFiles += results.ExecutedFiles
		stats.TotalExecutedCalls += results.ExecutedCalls
		stats.TotalSucceededFiles += results.SucceededFiles
		stats.TotalFailedFiles += results.FailedFiles
		stats.TotalDuration += results.TotalDuration

		if results.FailedFiles == 0 {
			stats.SuccessfulIterations++
		}
	}

	return stats
}
