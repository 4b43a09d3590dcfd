package nn

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/born-ml/multilabel/internal/tensor"
)

// argmax returns the index of the maximum value in the slice.
func argmax[T tensor.Float](z []T) int {
	maxIdx := 0
	maxVal := z[0]
	for i := 1; i < len(z); i++ {
		if z[i] > maxVal {
			maxVal = z[i]
			maxIdx = i
		}
	}
	return maxIdx
}

// MultiLabelAccuracy returns the fraction of samples whose highest-scoring
// class is one of their active labels.
//
// scores may be raw scores or probabilities; softmax does not change the argmax.
func MultiLabelAccuracy[T tensor.Float, B tensor.Backend](scores *tensor.Tensor[T, B], labels *Labels) (float64, error) {
	if labels == nil {
		return 0, errors.Wrap(ErrShapeMismatch, "nil labels")
	}
	numSamples, numClasses, err := classShape(scores.Shape())
	if err != nil {
		return 0, err
	}
	if labels.Len() != numSamples {
		return 0, errors.Wrapf(ErrShapeMismatch, "%d label sets for %d samples", labels.Len(), numSamples)
	}

	data := scores.Data()
	correct := 0
	for i := 0; i < numSamples; i++ {
		predicted := argmax(data[i*numClasses : (i+1)*numClasses])
		if slices.Contains(labels.Sample(i), predicted) {
			correct++
		}
	}

	return float64(correct) / float64(numSamples), nil
}
