package blueprint

import (
	"math"

	"marketeer/internal/types"
)

// MinDurationSec is the floor every requested duration is clamped up to.
const MinDurationSec = 5

// Schedule partitions [0, durationSec] across the blueprint's beats in
// proportion to their weights. The returned beats are gap-free and
// non-overlapping; the final beat's end is pinned to the total duration so
// rounding error never accumulates into a short or long plan.
func Schedule(bp Blueprint, durationSec int) ([]types.Beat, int) {
	if durationSec < MinDurationSec {
		durationSec = MinDurationSec
	}

	totalWeight := 0.0
	for _, tpl := range bp.Beats {
		totalWeight += tpl.Weight
	}
	if totalWeight == 0 {
		totalWeight = 1.0
	}

	beats := make([]types.Beat, 0, len(bp.Beats))
	cursor := 0.0
	for idx, tpl := range bp.Beats {
		var end float64
		if idx == len(bp.Beats)-1 {
			end = float64(durationSec)
		} else {
			end = cursor + tpl.Weight/totalWeight*float64(durationSec)
		}
		beats = append(beats, types.Beat{
			Index:  idx,
			Title:  tpl.Title,
			Goal:   tpl.Goal,
			TStart: round2(cursor),
			TEnd:   round2(end),
		})
		// Advance with the unrounded end so rounding never drifts.
		cursor = end
	}
	return beats, durationSec
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
