package prediction

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Split defaults.
const (
	DefaultSeed      uint64 = 42
	DefaultEvalRatio        = 0.2
)

// splitIndices shuffles n row indices with a PCG source seeded by seed and
// returns the fitting and evaluation subsets. The evaluation subset holds
// ceil(n*evalRatio) rows.
func splitIndices(n int, evalRatio float64, seed uint64) (fit, eval []int, err error) {
	if evalRatio < 0 || evalRatio >= 1 || math.IsNaN(evalRatio) {
		return nil, nil, fmt.Errorf("eval ratio must be in [0,1), got %v", evalRatio)
	}
	nEval := int(math.Ceil(float64(n)*evalRatio - 1e-9))
	if n-nEval <= 0 {
		return nil, nil, fmt.Errorf("%w: %d rows leave no fitting rows", ErrInsufficientTrainingData, n)
	}
	perm := rand.New(rand.NewPCG(seed, seed)).Perm(n)
	return perm[nEval:], perm[:nEval], nil
}
