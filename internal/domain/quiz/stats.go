package quiz

import (
	"sort"

	"github.com/Manirmaths/Naijaprep/internal/domain/ledger"
)

// TopicStats is a user's historical accuracy on one topic.
type TopicStats struct {
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
}

// Ratio is correct/total with a zero-total guard.
func (s TopicStats) Ratio() float64 {
	return float64(s.Correct) / float64(max(1, s.Total))
}

// TopicSummary pairs a topic with its stats for ordered output.
type TopicSummary struct {
	Topic string `json:"topic"`
	TopicStats
}

// Aggregate folds ledger observations into per-topic stats. Only observed
// topics appear in the result.
func Aggregate(observations []ledger.Observation) map[string]TopicStats {
	stats := make(map[string]TopicStats)
	for _, o := range observations {
		s := stats[o.Topic]
		s.Total++
		if o.Correct {
			s.Correct++
		}
		stats[o.Topic] = s
	}

	for topic, s := range stats {
		s.Percentage = 100 * s.Ratio()
		stats[topic] = s
	}
	return stats
}

// SortedTopics returns the stats ordered by topic name.
func SortedTopics(stats map[string]TopicStats) []TopicSummary {
	out := make([]TopicSummary, 0, len(stats))
	for topic, s := range stats {
		out = append(out, TopicSummary{Topic: topic, TopicStats: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Topic < out[j].Topic })
	return out
}

// WeakestTopic returns the topic with the lowest accuracy ratio. Ties go
// to the lexicographically smallest topic name.
func WeakestTopic(stats map[string]TopicStats) (string, bool) {
	var (
		weakest string
		lowest  float64
		found   bool
	)
	for topic, s := range stats {
		r := s.Ratio()
		if !found || r < lowest || (r == lowest && topic < weakest) {
			weakest, lowest, found = topic, r, true
		}
	}
	return weakest, found
}
