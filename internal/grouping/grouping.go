// Package grouping arranges a benefit list into ordered priority buckets
// for presentation. The bucket scheme is injected: the catalog's editorial
// priority enum is the canonical one, and the display vocabulary
// (critical, financial, life-improving, optional) is only available through
// a caller-supplied scheme since the catalog never defined a mapping
// between the two.
package grouping

import (
	"github.com/spigell/vetnav/internal/benefits"
)

// Scheme maps a record's priority value to a display bucket. Bucket
// returns false for priorities the scheme does not recognise.
type Scheme struct {
	Name   string
	Order  []string
	Bucket func(priority string) (string, bool)
}

// Editorial is the canonical scheme: the four-level editorial priority
// enum, each value its own bucket.
var Editorial = Scheme{
	Name:  "editorial",
	Order: benefits.ValidPriorities,
	Bucket: func(priority string) (string, bool) {
		for _, p := range benefits.ValidPriorities {
			if priority == p {
				return priority, true
			}
		}
		return "", false
	},
}

// Grouped is an ordered partition of a benefit list. Records with an
// unrecognised priority appear in no bucket; Dropped counts them so the
// caller can surface the loss instead of silently hiding it.
type Grouped struct {
	Order   []string
	Buckets map[string][]*benefits.Benefit
	Dropped int
}

// Group partitions the list under the given scheme, preserving input order
// within each bucket.
func Group(b *benefits.Benefits, scheme Scheme) *Grouped {
	g := &Grouped{
		Order:   scheme.Order,
		Buckets: make(map[string][]*benefits.Benefit, len(scheme.Order)),
	}

	for _, benefit := range b.Items {
		bucket, ok := scheme.Bucket(benefit.Priority)
		if !ok {
			g.Dropped++
			continue
		}
		g.Buckets[bucket] = append(g.Buckets[bucket], benefit)
	}

	return g
}

// Total returns the number of records across all buckets.
func (g *Grouped) Total() int {
	total := 0
	for _, bucket := range g.Buckets {
		total += len(bucket)
	}
	return total
}
