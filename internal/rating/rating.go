// Package rating aggregates review scores.
package rating

import "github.com/quochao170402/cekspek/internal/domain"

// Stars lists the possible scores in display order.
var Stars = [...]int{1, 2, 3, 4, 5}

type Summary struct {
	Total        int         `json:"total"`
	Average      float64     `json:"average"`
	Distribution map[int]int `json:"distribution"`
}

// Average is the arithmetic mean of the ratings, or 0 without reviews.
func Average(reviews []domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// Distribution counts reviews per score. Every score from 1 to 5 is present.
func Distribution(reviews []domain.Review) map[int]int {
	dist := make(map[int]int, len(Stars))
	for _, s := range Stars {
		dist[s] = 0
	}
	for _, r := range reviews {
		if _, ok := dist[r.Rating]; ok {
			dist[r.Rating]++
		}
	}
	return dist
}

func Summarize(reviews []domain.Review) Summary {
	return Summary{
		Total:        len(reviews),
		Average:      Average(reviews),
		Distribution: Distribution(reviews),
	}
}

// AveragesByPhone groups reviews by phone and averages each group.
// Phones without reviews are absent from the result.
func AveragesByPhone(reviews []domain.Review) map[int64]float64 {
	type acc struct{ total, count int }
	sums := make(map[int64]*acc)
	for _, r := range reviews {
		a, ok := sums[r.PhoneID]
		if !ok {
			a = &acc{}
			sums[r.PhoneID] = a
		}
		a.total += r.Rating
		a.count++
	}
	out := make(map[int64]float64, len(sums))
	for id, a := range sums {
		out[id] = float64(a.total) / float64(a.count)
	}
	return out
}
