package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/multilabel/internal/backend/cpu"
	"github.com/born-ml/multilabel/internal/nn"
	"github.com/born-ml/multilabel/internal/parallel"
	"github.com/born-ml/multilabel/internal/tensor"
)

func TestNewLabels(t *testing.T) {
	labels := nn.NewLabels([][]int{{0}, {1, 2}, {2, 0, 1}})

	assert.Equal(t, 3, labels.Len())
	assert.Equal(t, []int{1, 2, 3}, labels.Counts())
	assert.Equal(t, []int{1, 2}, labels.Sample(1))
	assert.Equal(t, 3, labels.MaxCount())
	assert.NoError(t, labels.Validate(3))
}

func TestLabels_Validate(t *testing.T) {
	err := nn.NewLabels([][]int{{0}, {}}).Validate(3)
	assert.ErrorIs(t, err, nn.ErrNoActiveLabels)
	assert.Contains(t, err.Error(), "sample 1")

	err = nn.NewLabels([][]int{{0, 3}}).Validate(3)
	assert.ErrorIs(t, err, nn.ErrLabelOutOfRange)

	err = nn.NewLabels([][]int{{-1}}).Validate(3)
	assert.ErrorIs(t, err, nn.ErrLabelOutOfRange)
}

func TestLabelsFromPadded_Int32(t *testing.T) {
	backend := cpu.New()
	raw, err := tensor.FromSlice([]int32{
		0, -1, -1,
		0, 1, -1,
		2, 1, 0,
		1, -1, 2, // slots after the sentinel are ignored
	}, tensor.Shape{4, 3}, backend)
	require.NoError(t, err)

	labels, err := nn.LabelsFromPadded(raw.Raw())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 1}, labels.Counts())
	assert.Equal(t, []int{2, 1, 0}, labels.Sample(2))
	assert.Equal(t, []int{1}, labels.Sample(3))
}

func TestLabelsFromPadded_AllSentinel(t *testing.T) {
	raw, err := tensor.FromSlice([]int64{-1, -1, -1}, tensor.Shape{1, 3}, cpu.New())
	require.NoError(t, err)

	labels, err := nn.LabelsFromPadded(raw.Raw())
	require.NoError(t, err)
	assert.Equal(t, 0, labels.Count(0))
	assert.ErrorIs(t, labels.Validate(3), nn.ErrNoActiveLabels)
}

func TestLabelsFromPadded_Float(t *testing.T) {
	backend := cpu.New()

	raw, err := tensor.FromSlice([]float32{1, 0, -1, 2, -1, -1}, tensor.Shape{2, 3, 1, 1}, backend)
	require.NoError(t, err)
	labels, err := nn.LabelsFromPadded(raw.Raw())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, labels.Sample(0))
	assert.Equal(t, []int{2}, labels.Sample(1))

	bad, err := tensor.FromSlice([]float64{0.5, -1}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)
	_, err = nn.LabelsFromPadded(bad.Raw())
	assert.ErrorIs(t, err, nn.ErrLabelOutOfRange)
}

func TestLabels_Padded(t *testing.T) {
	labels := nn.NewLabels([][]int{{0}, {2, 1}})

	raw, err := labels.Padded(3, tensor.CPU)
	require.NoError(t, err)
	assert.Equal(t, []int32{0, -1, -1, 2, 1, -1}, raw.AsInt32())

	back, err := nn.LabelsFromPadded(raw)
	require.NoError(t, err)
	assert.Equal(t, labels.Counts(), back.Counts())

	_, err = labels.Padded(1, tensor.CPU)
	assert.ErrorIs(t, err, nn.ErrShapeMismatch)
}

func TestLabels_HugeIndexOutOfRange(t *testing.T) {
	labels := nn.NewLabels([][]int{{1 << 32}, {1<<32 + 2}})
	assert.Equal(t, []int{1 << 32}, labels.Sample(0))
	assert.ErrorIs(t, labels.Validate(3), nn.ErrLabelOutOfRange)

	probs := probsFromSlice(t, []float32{0.7, 0.2, 0.1, 0.7, 0.2, 0.1}, tensor.Shape{2, 3})
	_, err := nn.MultiLabelNLLForward(probs, labels, false, parallel.Sequential())
	assert.ErrorIs(t, err, nn.ErrLabelOutOfRange)

	_, err = labels.Padded(1, tensor.CPU)
	assert.ErrorIs(t, err, nn.ErrLabelOutOfRange)
}

func TestLabelsFromPadded_HugeIndexOutOfRange(t *testing.T) {
	backend := cpu.New()

	wide, err := tensor.FromSlice([]int64{1<<32 + 2, -1}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)
	_, err = nn.LabelsFromPadded(wide.Raw())
	assert.ErrorIs(t, err, nn.ErrLabelOutOfRange)

	huge, err := tensor.FromSlice([]float64{1e20, -1}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)
	_, err = nn.LabelsFromPadded(huge.Raw())
	assert.ErrorIs(t, err, nn.ErrLabelOutOfRange)

	pow32, err := tensor.FromSlice([]float32{1 << 32, -1}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)
	_, err = nn.LabelsFromPadded(pow32.Raw())
	assert.ErrorIs(t, err, nn.ErrLabelOutOfRange)
}
