package nn

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/born-ml/multilabel/internal/parallel"
	"github.com/born-ml/multilabel/internal/tensor"
)

// MultiLabelSoftmaxLossConfig configures a MultiLabelSoftmaxLoss.
type MultiLabelSoftmaxLossConfig struct {
	// PerSampleLoss makes Forward also return each sample's average loss.
	PerSampleLoss bool

	// Parallel controls how the per-sample loops are spread over goroutines.
	Parallel parallel.Config
}

// DefaultMultiLabelSoftmaxLossConfig returns the batch-loss-only configuration.
func DefaultMultiLabelSoftmaxLossConfig() MultiLabelSoftmaxLossConfig {
	return MultiLabelSoftmaxLossConfig{
		PerSampleLoss: false,
		Parallel:      parallel.DefaultConfig(),
	}
}

// Propagate selects which inputs Backward computes gradients for.
type Propagate uint8

// Inputs of the loss that a gradient can be requested for.
const (
	PropagateScores Propagate = 1 << iota
	PropagateLabels
)

// MultiLabelSoftmaxLoss computes softmax followed by the multi-label negative
// log-likelihood, and its gradient with respect to the raw scores.
//
// Forward:
//
//	P      = Softmax(scores) along the class axis
//	loss_i = mean_{k ∈ L_i} -log(max(P[i,k], ε))
//	Loss   = mean_i loss_i
//
// Backward:
//
//	∂Loss/∂scores = lossWeight/N · (P - T), where T[i,k] = 1/|L_i| for k ∈ L_i
//
// Usage:
//
//	criterion := nn.NewMultiLabelSoftmaxLoss[float32](nn.DefaultMultiLabelSoftmaxLossConfig(), backend)
//	res, err := criterion.Forward(scores, labels)        // scores: [batch_size, num_classes]
//	grad, err := criterion.Backward(res, 1.0, nn.PropagateScores)
//
// Forward and Backward for one batch must not interleave with a Forward for
// another batch on the same layer; a result from an older Forward is rejected
// with ErrStaleResult.
type MultiLabelSoftmaxLoss[T tensor.Float, B tensor.Backend] struct {
	cfg     MultiLabelSoftmaxLossConfig
	backend B

	shape      tensor.Shape
	numSamples int
	numClasses int

	counts     []int // active label counts of the latest forward
	generation uint64
}

// MultiLabelResult is everything Forward produced. Pass it to Backward.
type MultiLabelResult[T tensor.Float, B tensor.Backend] struct {
	// Loss is the batch loss, shape [1].
	Loss *tensor.Tensor[T, B]

	// PerSample is each sample's average loss, shape [N]. Nil unless
	// MultiLabelSoftmaxLossConfig.PerSampleLoss is set.
	PerSample *tensor.Tensor[T, B]

	// Probs is the normalized scores, same shape as the scores.
	Probs *tensor.Tensor[T, B]

	// Counts is each sample's active label count.
	Counts []int

	labels     *Labels
	generation uint64
}

// NewMultiLabelSoftmaxLoss creates a new multi-label softmax loss.
func NewMultiLabelSoftmaxLoss[T tensor.Float, B tensor.Backend](cfg MultiLabelSoftmaxLossConfig, backend B) *MultiLabelSoftmaxLoss[T, B] {
	return &MultiLabelSoftmaxLoss[T, B]{
		cfg:     cfg,
		backend: backend,
	}
}

// Configure validates the scores shape and sizes the count cache for its batch.
//
// The shape must be [batch_size, num_classes] optionally followed by size-1
// dimensions. Forward calls Configure itself whenever the shape changes.
func (m *MultiLabelSoftmaxLoss[T, B]) Configure(shape tensor.Shape) error {
	if err := shape.Validate(); err != nil {
		return errors.Wrap(ErrShapeMismatch, err.Error())
	}
	numSamples, numClasses, err := classShape(shape)
	if err != nil {
		return err
	}

	m.shape = shape.Clone()
	m.numSamples = numSamples
	m.numClasses = numClasses
	if cap(m.counts) >= numSamples {
		m.counts = m.counts[:numSamples]
	} else {
		m.counts = make([]int, numSamples)
	}
	// Results computed for the previous shape are no longer valid.
	m.generation++
	return nil
}

// NumClasses returns the class count of the configured shape (0 before Configure).
func (m *MultiLabelSoftmaxLoss[T, B]) NumClasses() int {
	return m.numClasses
}

// Forward normalizes scores and computes the multi-label loss.
//
// Parameters:
//   - scores: raw class scores [batch_size, num_classes] (trailing size-1 dims allowed)
//   - labels: one active label set per sample
//
// Returns an error wrapping ErrNoActiveLabels, ErrLabelOutOfRange,
// ErrSpatialDims or ErrShapeMismatch when the inputs break the contract.
func (m *MultiLabelSoftmaxLoss[T, B]) Forward(scores *tensor.Tensor[T, B], labels *Labels) (*MultiLabelResult[T, B], error) {
	if labels == nil {
		return nil, errors.Wrap(ErrShapeMismatch, "nil labels")
	}
	if !scores.Shape().Equal(m.shape) {
		if err := m.Configure(scores.Shape()); err != nil {
			return nil, err
		}
	}

	probsRaw := m.backend.Softmax(scores.Raw(), 1)

	out, err := MultiLabelNLLForward(probsRaw, labels, m.cfg.PerSampleLoss, m.cfg.Parallel)
	if err != nil {
		m.generation++ // the cache no longer matches any successful forward
		return nil, err
	}

	copy(m.counts, out.Counts)
	m.generation++

	res := &MultiLabelResult[T, B]{
		Loss:       tensor.New[T, B](out.Loss, m.backend),
		Probs:      tensor.New[T, B](probsRaw, m.backend),
		Counts:     out.Counts,
		labels:     labels,
		generation: m.generation,
	}
	if out.PerSample != nil {
		res.PerSample = tensor.New[T, B](out.PerSample, m.backend)
	}
	return res, nil
}

// Backward computes the gradient of the loss with respect to the raw scores.
//
// Parameters:
//   - res: the result of this layer's most recent Forward
//   - lossWeight: upstream gradient of the scalar loss (1 for a top-level loss)
//   - propagate: which inputs need a gradient
//
// Requesting PropagateLabels fails with ErrLabelGradient. Without
// PropagateScores there is nothing to compute and the gradient is nil.
// res.Counts must still equal the counts cached by that Forward.
func (m *MultiLabelSoftmaxLoss[T, B]) Backward(res *MultiLabelResult[T, B], lossWeight float64, propagate Propagate) (*tensor.Tensor[T, B], error) {
	if propagate&PropagateLabels != 0 {
		return nil, errors.WithStack(ErrLabelGradient)
	}
	if propagate&PropagateScores == 0 {
		return nil, nil
	}
	if res == nil || res.generation != m.generation {
		return nil, errors.WithStack(ErrStaleResult)
	}
	if !slices.Equal(res.Counts, m.counts) {
		return nil, errors.Wrapf(ErrCountMismatch, "result counts %v, forward cached %v", res.Counts, m.counts)
	}

	grad, err := MultiLabelNLLBackward(res.Probs.Raw(), res.labels, res.Counts, lossWeight, m.cfg.Parallel)
	if err != nil {
		return nil, err
	}
	return tensor.New[T, B](grad, m.backend), nil
}
