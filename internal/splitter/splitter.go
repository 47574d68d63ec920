// Package splitter partitions QA pairs into train/valid/test sets,
// stratified by (commodity, complexity level) with graceful degradation.
package splitter

import (
	"math"
	"math/rand"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/cmm-group/benchmark-cli/internal/model"
)

// Ratios holds the train/valid/test proportions; they must sum to 1.
type Ratios struct {
	Train float64
	Valid float64
	Test  float64
}

// Validate checks that the ratios sum to 1 within floating tolerance.
func (r Ratios) Validate() error {
	if math.Abs(r.Train+r.Valid+r.Test-1.0) > 1e-6 {
		return eris.Errorf("splitter: ratios must sum to 1 (got %g + %g + %g)",
			r.Train, r.Valid, r.Test)
	}
	return nil
}

// Split partitions pairs into train/valid/test. Stage 1 separates train
// from the combined holdout; stage 2 splits the holdout into valid and
// test. Each stage stratifies on (commodity, complexity level) when every
// stratum has at least two members, and degrades to a plain seeded split
// with a warning otherwise — the degradation is decided per stage. The
// same seed always reproduces identical membership and order.
func Split(pairs []model.QAPair, r Ratios, seed int64) (train, valid, test []model.QAPair, err error) {
	if err := r.Validate(); err != nil {
		return nil, nil, nil, err
	}

	rng := rand.New(rand.NewSource(seed))

	holdoutRatio := r.Valid + r.Test
	train, holdout := splitOnce(pairs, holdoutRatio, rng, "train/holdout")

	if holdoutRatio <= 0 || len(holdout) == 0 {
		return train, nil, nil, nil
	}
	relativeTest := r.Test / holdoutRatio
	valid, test = splitOnce(holdout, relativeTest, rng, "valid/test")

	zap.L().Info("split complete",
		zap.Int("total", len(pairs)),
		zap.Int("train", len(train)),
		zap.Int("valid", len(valid)),
		zap.Int("test", len(test)))
	return train, valid, test, nil
}

// splitOnce performs one proportionate split, moving roughly ratio of the
// pairs into the second return. Both halves preserve the input's relative
// order, so the partitions are stable read-only views of the input.
func splitOnce(pairs []model.QAPair, ratio float64, rng *rand.Rand, stage string) ([]model.QAPair, []model.QAPair) {
	strata := make(map[string][]int)
	for i, p := range pairs {
		k := p.StratumKey()
		strata[k] = append(strata[k], i)
	}

	stratified := true
	for _, members := range strata {
		if len(members) < 2 {
			stratified = false
			break
		}
	}
	if !stratified {
		zap.L().Warn("stratum with fewer than 2 members, degrading to non-stratified split",
			zap.String("stage", stage))
	}

	var holdoutIdx []int
	if stratified {
		keys := make([]string, 0, len(strata))
		for k := range strata {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			holdoutIdx = append(holdoutIdx, pickHoldout(strata[k], ratio, rng)...)
		}
	} else {
		all := make([]int, len(pairs))
		for i := range pairs {
			all[i] = i
		}
		holdoutIdx = pickHoldout(all, ratio, rng)
	}

	inHoldout := make(map[int]bool, len(holdoutIdx))
	for _, i := range holdoutIdx {
		inHoldout[i] = true
	}

	keep := make([]model.QAPair, 0, len(pairs)-len(holdoutIdx))
	holdout := make([]model.QAPair, 0, len(holdoutIdx))
	for i, p := range pairs {
		if inHoldout[i] {
			holdout = append(holdout, p)
		} else {
			keep = append(keep, p)
		}
	}
	return keep, holdout
}

// pickHoldout shuffles a copy of the index group and takes the rounded
// proportional count for the holdout side.
func pickHoldout(members []int, ratio float64, rng *rand.Rand) []int {
	shuffled := make([]int, len(members))
	copy(shuffled, members)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	n := int(math.Round(ratio * float64(len(members))))
	if n > len(members) {
		n = len(members)
	}
	return shuffled[:n]
}
