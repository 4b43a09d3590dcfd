// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/born-ml/multilabel/internal/nn"
	"github.com/born-ml/multilabel/internal/parallel"
	"github.com/born-ml/multilabel/internal/tensor"
)

// Labels

// Labels holds the active label set of every sample in a batch.
type Labels = nn.Labels

// LabelSentinel terminates a sample's list in a padded label tensor.
const LabelSentinel = nn.LabelSentinel

// NewLabels builds Labels from explicit per-sample index lists.
//
// Example:
//
//	labels := nn.NewLabels([][]int{{0}, {1, 4}})
func NewLabels(samples [][]int) *Labels {
	return nn.NewLabels(samples)
}

// LabelsFromPadded converts an N × M tensor of class indices, terminated by
// LabelSentinel, into Labels.
func LabelsFromPadded(raw *tensor.RawTensor) (*Labels, error) {
	return nn.LabelsFromPadded(raw)
}

// Loss

// MultiLabelSoftmaxLoss is softmax followed by the multi-label negative log-likelihood.
type MultiLabelSoftmaxLoss[T tensor.Float, B tensor.Backend] = nn.MultiLabelSoftmaxLoss[T, B]

// MultiLabelSoftmaxLossConfig configures a MultiLabelSoftmaxLoss.
type MultiLabelSoftmaxLossConfig = nn.MultiLabelSoftmaxLossConfig

// MultiLabelResult is the output of Forward and the input of Backward.
type MultiLabelResult[T tensor.Float, B tensor.Backend] = nn.MultiLabelResult[T, B]

// Propagate selects which inputs Backward computes gradients for.
type Propagate = nn.Propagate

// Gradient targets.
const (
	PropagateScores Propagate = nn.PropagateScores
	PropagateLabels Propagate = nn.PropagateLabels
)

// DefaultMultiLabelSoftmaxLossConfig returns the batch-loss-only configuration.
func DefaultMultiLabelSoftmaxLossConfig() MultiLabelSoftmaxLossConfig {
	return nn.DefaultMultiLabelSoftmaxLossConfig()
}

// NewMultiLabelSoftmaxLoss creates a new multi-label softmax loss.
//
// Example:
//
//	backend := cpu.New()
//	criterion := nn.NewMultiLabelSoftmaxLoss[float32](nn.DefaultMultiLabelSoftmaxLossConfig(), backend)
func NewMultiLabelSoftmaxLoss[T tensor.Float, B tensor.Backend](cfg MultiLabelSoftmaxLossConfig, backend B) *MultiLabelSoftmaxLoss[T, B] {
	return nn.NewMultiLabelSoftmaxLoss[T](cfg, backend)
}

// Kernels on probabilities

// ProbabilityFloor is the lower clamp applied to probabilities before the log.
const ProbabilityFloor = nn.ProbabilityFloor

// NLLOutput is the result of MultiLabelNLLForward.
type NLLOutput = nn.NLLOutput

// MultiLabelNLLForward computes the loss from already-normalized probabilities.
func MultiLabelNLLForward(probs *tensor.RawTensor, labels *Labels, perSample bool, cfg parallel.Config) (*NLLOutput, error) {
	return nn.MultiLabelNLLForward(probs, labels, perSample, cfg)
}

// MultiLabelNLLBackward computes the gradient w.r.t. the scores that produced probs.
func MultiLabelNLLBackward(probs *tensor.RawTensor, labels *Labels, counts []int, lossWeight float64, cfg parallel.Config) (*tensor.RawTensor, error) {
	return nn.MultiLabelNLLBackward(probs, labels, counts, lossWeight, cfg)
}

// MultiLabelAccuracy returns the fraction of samples whose top-scoring class is active.
func MultiLabelAccuracy[T tensor.Float, B tensor.Backend](scores *tensor.Tensor[T, B], labels *Labels) (float64, error) {
	return nn.MultiLabelAccuracy(scores, labels)
}

// Errors

// Contract violations. Returned errors wrap these; test with errors.Is.
var (
	ErrNoActiveLabels  = nn.ErrNoActiveLabels
	ErrLabelOutOfRange = nn.ErrLabelOutOfRange
	ErrLabelGradient   = nn.ErrLabelGradient
	ErrCountMismatch   = nn.ErrCountMismatch
	ErrSpatialDims     = nn.ErrSpatialDims
	ErrStaleResult     = nn.ErrStaleResult
	ErrShapeMismatch   = nn.ErrShapeMismatch
)
