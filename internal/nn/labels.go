package nn

import (
	"math"

	"github.com/pkg/errors"

	"github.com/born-ml/multilabel/internal/tensor"
)

// LabelSentinel terminates a sample's label list in a padded label tensor.
const LabelSentinel = -1

// Labels holds a variable-length set of correct class indices per sample.
//
// Storage is flattened: sample i owns indices[offsets[i]:offsets[i+1]].
type Labels struct {
	indices []int
	offsets []int
}

// NewLabels builds Labels from explicit per-sample index lists.
// The lists are copied verbatim; use Validate to check them against a class count.
func NewLabels(samples [][]int) *Labels {
	l := &Labels{offsets: make([]int, 1, len(samples)+1)}
	for _, s := range samples {
		l.indices = append(l.indices, s...)
		l.offsets = append(l.offsets, len(l.indices))
	}
	return l
}

// LabelsFromPadded converts an N × M label tensor, where LabelSentinel ends a
// sample's list early, into Labels.
//
// Slots are scanned left to right and scanning stops at the first sentinel or
// at slot M; anything after a sentinel is ignored. Float label tensors must hold
// integral values, and no slot may fall outside the int32 range.
func LabelsFromPadded(raw *tensor.RawTensor) (*Labels, error) {
	shape := raw.Shape()
	if len(shape) == 0 {
		return nil, errors.Wrap(ErrShapeMismatch, "label tensor must have a batch axis")
	}
	n := shape[0]
	width := raw.NumElements() / n

	var at func(i int) (int, error)
	switch raw.DType() {
	case tensor.Int32:
		data := raw.AsInt32()
		at = func(i int) (int, error) { return int(data[i]), nil }
	case tensor.Int64:
		data := raw.AsInt64()
		at = func(i int) (int, error) {
			if data[i] < math.MinInt32 || data[i] > math.MaxInt32 {
				return 0, errors.Wrapf(ErrLabelOutOfRange, "label %d exceeds int32", data[i])
			}
			return int(data[i]), nil
		}
	case tensor.Float32:
		data := raw.AsFloat32()
		at = func(i int) (int, error) { return integral(float64(data[i])) }
	case tensor.Float64:
		data := raw.AsFloat64()
		at = func(i int) (int, error) { return integral(data[i]) }
	default:
		return nil, errors.Errorf("unsupported label dtype %s", raw.DType())
	}

	l := &Labels{offsets: make([]int, 1, n+1)}
	for i := 0; i < n; i++ {
		for j := 0; j < width; j++ {
			k, err := at(i*width + j)
			if err != nil {
				return nil, errors.WithMessagef(err, "sample %d slot %d", i, j)
			}
			if k == LabelSentinel {
				break
			}
			l.indices = append(l.indices, k)
		}
		l.offsets = append(l.offsets, len(l.indices))
	}
	return l, nil
}

func integral(v float64) (int, error) {
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return 0, errors.Wrapf(ErrLabelOutOfRange, "label %v is not an integer", v)
	}
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, errors.Wrapf(ErrLabelOutOfRange, "label %v exceeds int32", v)
	}
	return int(v), nil
}

// Len returns the number of samples.
func (l *Labels) Len() int {
	return len(l.offsets) - 1
}

// Count returns the number of active labels of sample i.
func (l *Labels) Count(i int) int {
	return l.offsets[i+1] - l.offsets[i]
}

// Sample returns the active labels of sample i. The slice must not be modified.
func (l *Labels) Sample(i int) []int {
	return l.indices[l.offsets[i]:l.offsets[i+1]]
}

// Counts returns the active label count of every sample.
func (l *Labels) Counts() []int {
	counts := make([]int, l.Len())
	for i := range counts {
		counts[i] = l.Count(i)
	}
	return counts
}

// MaxCount returns the largest per-sample label count.
func (l *Labels) MaxCount() int {
	m := 0
	for i := 0; i < l.Len(); i++ {
		m = max(m, l.Count(i))
	}
	return m
}

// Validate checks that every sample has at least one label and that every
// label lies in [0, numClasses).
func (l *Labels) Validate(numClasses int) error {
	for i := 0; i < l.Len(); i++ {
		if err := l.validateSample(i, numClasses); err != nil {
			return err
		}
	}
	return nil
}

func (l *Labels) validateSample(i, numClasses int) error {
	active := l.Sample(i)
	if len(active) == 0 {
		return errors.Wrapf(ErrNoActiveLabels, "sample %d", i)
	}
	for _, k := range active {
		if k < 0 || k >= numClasses {
			return errors.Wrapf(ErrLabelOutOfRange, "sample %d: label %d not in [0, %d)", i, k, numClasses)
		}
	}
	return nil
}

// Padded renders the labels as an N × width int32 tensor terminated by
// LabelSentinel. width must be at least MaxCount and every label must fit in
// an int32.
func (l *Labels) Padded(width int, device tensor.Device) (*tensor.RawTensor, error) {
	if width < l.MaxCount() {
		return nil, errors.Wrapf(ErrShapeMismatch, "width %d smaller than max label count %d", width, l.MaxCount())
	}
	raw, err := tensor.NewRaw(tensor.Shape{l.Len(), width}, tensor.Int32, device)
	if err != nil {
		return nil, err
	}
	data := raw.AsInt32()
	for i := 0; i < l.Len(); i++ {
		row := data[i*width : (i+1)*width]
		for j := range row {
			row[j] = LabelSentinel
		}
		for j, k := range l.Sample(i) {
			if k < math.MinInt32 || k > math.MaxInt32 {
				return nil, errors.Wrapf(ErrLabelOutOfRange, "sample %d: label %d exceeds int32", i, k)
			}
			row[j] = int32(k)
		}
	}
	return raw, nil
}
