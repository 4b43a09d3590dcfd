// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the multi-label softmax loss.
//
// # Overview
//
// This package contains:
//   - MultiLabelSoftmaxLoss: softmax + averaged negative log-likelihood over a
//     variable number of correct labels per sample, with its backward pass
//   - Labels: per-sample active label sets, built from explicit lists or from a
//     -1 padded label tensor
//   - MultiLabelNLLForward / MultiLabelNLLBackward: the same kernel on
//     already-normalized probabilities
//   - MultiLabelAccuracy: top-1 hit rate against the active labels
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/multilabel/backend/cpu"
//	    "github.com/born-ml/multilabel/nn"
//	    "github.com/born-ml/multilabel/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    criterion := nn.NewMultiLabelSoftmaxLoss[float32](nn.DefaultMultiLabelSoftmaxLossConfig(), backend)
//
//	    scores, _ := tensor.FromSlice([]float32{2, 1, 0.1}, tensor.Shape{1, 3}, backend)
//	    labels := nn.NewLabels([][]int{{0, 1}})
//
//	    res, err := criterion.Forward(scores, labels)
//	    if err != nil {
//	        panic(err)
//	    }
//	    grad, err := criterion.Backward(res, 1.0, nn.PropagateScores)
//	}
//
// # Errors
//
// Contract violations come back as errors wrapping ErrNoActiveLabels,
// ErrLabelOutOfRange, ErrLabelGradient, ErrCountMismatch, ErrSpatialDims,
// ErrStaleResult or ErrShapeMismatch. Use errors.Is to tell them apart.
package nn
