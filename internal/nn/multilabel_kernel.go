package nn

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/born-ml/multilabel/internal/parallel"
	"github.com/born-ml/multilabel/internal/tensor"
)

// ProbabilityFloor clamps probabilities before taking the log so a zero
// probability yields a large finite loss instead of +Inf. It is the smallest
// normal float32 and is used for float64 inputs as well.
const ProbabilityFloor = 0x1p-126

// NLLOutput is the result of MultiLabelNLLForward.
type NLLOutput struct {
	// Loss is the batch mean of per-sample losses, shape [1].
	Loss *tensor.RawTensor

	// PerSample holds each sample's average loss, shape [N].
	// Nil unless requested.
	PerSample *tensor.RawTensor

	// Counts holds each sample's active label count. Backward needs it unchanged.
	Counts []int
}

// MultiLabelNLLForward computes the multi-label negative log-likelihood from
// normalized probabilities.
//
// Mathematical Formulation:
//
//	loss_i = (1/|L_i|) · Σ_{k ∈ L_i} -log(max(P[i,k], ε))
//	Loss   = (1/N) · Σ_i loss_i
//
// Each sample contributes the mean over its own active labels, so samples with
// different numbers of labels stay comparable.
//
// Parameters:
//   - probs: [batch_size, num_classes] or [batch_size, num_classes, 1, ...], float32 or float64
//   - labels: one active label set per sample
//   - perSample: whether to also return the per-sample loss vector
//
// The batch reduction runs in sample order after the parallel loop, so the
// result is bit-identical across calls and worker counts.
func MultiLabelNLLForward(probs *tensor.RawTensor, labels *Labels, perSample bool, cfg parallel.Config) (*NLLOutput, error) {
	if labels == nil {
		return nil, errors.Wrap(ErrShapeMismatch, "nil labels")
	}
	numSamples, numClasses, err := classShape(probs.Shape())
	if err != nil {
		return nil, err
	}
	if labels.Len() != numSamples {
		return nil, errors.Wrapf(ErrShapeMismatch, "%d label sets for %d samples", labels.Len(), numSamples)
	}

	out := &NLLOutput{Counts: make([]int, numSamples)}
	if out.Loss, err = tensor.NewRaw(tensor.Shape{1}, probs.DType(), probs.Device()); err != nil {
		return nil, err
	}
	losses, err := tensor.NewRaw(tensor.Shape{numSamples}, probs.DType(), probs.Device())
	if err != nil {
		return nil, err
	}

	switch probs.DType() {
	case tensor.Float32:
		out.Loss.AsFloat32()[0], err = nllForward(probs.AsFloat32(), numClasses, labels, losses.AsFloat32(), out.Counts, cfg)
	case tensor.Float64:
		out.Loss.AsFloat64()[0], err = nllForward(probs.AsFloat64(), numClasses, labels, losses.AsFloat64(), out.Counts, cfg)
	default:
		return nil, errors.Errorf("multi-label NLL: unsupported dtype %s (only float32/float64 supported)", probs.DType())
	}
	if err != nil {
		return nil, err
	}

	if perSample {
		out.PerSample = losses
	}
	return out, nil
}

func nllForward[T tensor.Float](probs []T, numClasses int, labels *Labels, losses []T, counts []int, cfg parallel.Config) (T, error) {
	floor := T(ProbabilityFloor)

	err := parallel.ForErr(labels.Len(), func(i int) error {
		if err := labels.validateSample(i, numClasses); err != nil {
			return err
		}

		row := probs[i*numClasses : (i+1)*numClasses]
		active := labels.Sample(i)

		var sum T
		for _, k := range active {
			sum -= T(math.Log(float64(max(row[k], floor))))
		}
		losses[i] = sum / T(len(active))
		counts[i] = len(active)
		return nil
	}, cfg)
	if err != nil {
		return 0, err
	}

	var total T
	for _, l := range losses {
		total += l
	}
	return total / T(len(losses)), nil
}

// MultiLabelNLLBackward computes the gradient of the multi-label loss with
// respect to the raw scores that produced probs.
//
// Gradient Formula:
//
//	∂Loss/∂scores[i,k] = lossWeight/N · (P[i,k] - [k ∈ L_i]/|L_i|)
//
// The target mass 1/|L_i| is spread evenly over the active labels, mirroring
// the per-sample mean in the forward pass; every gradient row sums to zero.
//
// counts must be the Counts of the forward call that produced probs.
// lossWeight is the upstream gradient of the scalar loss (1 for a top-level loss).
func MultiLabelNLLBackward(
	probs *tensor.RawTensor,
	labels *Labels,
	counts []int,
	lossWeight float64,
	cfg parallel.Config,
) (*tensor.RawTensor, error) {
	if labels == nil {
		return nil, errors.Wrap(ErrShapeMismatch, "nil labels")
	}
	numSamples, numClasses, err := classShape(probs.Shape())
	if err != nil {
		return nil, err
	}
	if len(counts) != numSamples || labels.Len() != numSamples {
		return nil, errors.Wrapf(ErrCountMismatch, "%d counts and %d label sets for %d samples",
			len(counts), labels.Len(), numSamples)
	}
	for i, c := range counts {
		if c != labels.Count(i) || c == 0 {
			return nil, errors.Wrapf(ErrCountMismatch, "sample %d: cached count %d, labels have %d", i, c, labels.Count(i))
		}
		if err := labels.validateSample(i, numClasses); err != nil {
			return nil, err
		}
	}

	grad, err := tensor.NewRaw(probs.Shape(), probs.DType(), probs.Device())
	if err != nil {
		return nil, err
	}

	n := probs.NumElements()
	switch probs.DType() {
	case tensor.Float32:
		dst := blas32.Vector{N: n, Inc: 1, Data: grad.AsFloat32()}
		blas32.Copy(blas32.Vector{N: n, Inc: 1, Data: probs.AsFloat32()}, dst)
		subtractTargets(dst.Data, numClasses, labels, counts, cfg)
		blas32.Scal(float32(lossWeight/float64(numSamples)), dst)
	case tensor.Float64:
		dst := blas64.Vector{N: n, Inc: 1, Data: grad.AsFloat64()}
		blas64.Copy(blas64.Vector{N: n, Inc: 1, Data: probs.AsFloat64()}, dst)
		subtractTargets(dst.Data, numClasses, labels, counts, cfg)
		blas64.Scal(lossWeight/float64(numSamples), dst)
	default:
		return nil, errors.Errorf("multi-label NLL backward: unsupported dtype %s (only float32/float64 supported)", probs.DType())
	}

	return grad, nil
}

// subtractTargets removes 1/count from every active label slot of every row.
func subtractTargets[T tensor.Float](grad []T, numClasses int, labels *Labels, counts []int, cfg parallel.Config) {
	parallel.For(labels.Len(), func(i int) {
		row := grad[i*numClasses : (i+1)*numClasses]
		w := 1 / T(counts[i])
		for _, k := range labels.Sample(i) {
			row[k] -= w
		}
	}, cfg)
}

// classShape extracts (N, C) from a [N, C, 1, ...] shape.
func classShape(shape tensor.Shape) (numSamples, numClasses int, err error) {
	if len(shape) < 2 {
		return 0, 0, errors.Wrapf(ErrShapeMismatch, "expected [batch_size, num_classes, ...], got %v", shape)
	}
	if !shape.TrivialFrom(2) {
		return 0, 0, errors.Wrapf(ErrSpatialDims, "got shape %v", shape)
	}
	return shape[0], shape[1], nil
}
