// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

/*
Package scoring implements the score calculation engine for the catalogue.

Two families of scores exist:

  - Editorial rollups: season scores are the mean of their episode scores,
    and series scores are the mean of their season scores. Every level is
    rounded to one decimal before feeding the next.
  - Public score: a weighted blend of the editorial base score and community
    ratings, where the base score carries the weight of [BaseScoreWeight]
    synthetic votes.

The [Aggregator] orchestrates recomputation: it serializes concurrent
recomputes per content item, persists results through the catalogue store,
and writes the blended score through the Redis cache.
*/
package scoring

import "math"

// BaseScoreWeight is the number of synthetic votes the editorial base score
// contributes to the public score blend. A new title needs sustained community
// input before its public score drifts far from the editorial anchor.
const BaseScoreWeight = 10

// Round1 rounds v to one decimal place, half away from zero.
//
// Intermediate rollup values are rounded before feeding the next level, so
// the rounding behavior at each step is observable in the final score.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// MeanRounded returns the mean of values rounded to one decimal.
//
// An empty slice yields 0: a season with no episodes, or a series with no
// seasons, scores zero rather than propagating a NaN.
func MeanRounded(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return Round1(sum / float64(len(values)))
}

// WeightedPublicScore blends the editorial base score with community ratings.
//
// # Formula
//
//	publicScore = round1((baseScore × BaseScoreWeight + Σ ratings) / (BaseScoreWeight + n))
//
// where n is the number of positive ratings. Non-positive ratings are
// comment-only reviews and carry no voting weight.
//
// With zero positive ratings the public score resets to the base score
// exactly, unrounded: deleting the last rated review returns the title to
// its editorial anchor.
func WeightedPublicScore(baseScore float64, ratings []int) float64 {
	var sum, count int
	for _, r := range ratings {
		if r > 0 {
			sum += r
			count++
		}
	}

	if count == 0 {
		return baseScore
	}

	blended := (baseScore*BaseScoreWeight + float64(sum)) / float64(BaseScoreWeight+count)
	return Round1(blended)
}
