// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the tensor types consumed by the multi-label loss.
//
// # Overview
//
// Tensors are dense, row-major buffers with a runtime dtype. This package provides:
//   - Generic type-safe tensors (Tensor[T, B])
//   - RawTensor for dtype-switched kernels
//   - The Backend interface, whose Softmax is the score normalizer
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/multilabel/backend/cpu"
//	    "github.com/born-ml/multilabel/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    scores, err := tensor.FromSlice([]float32{2, 1, 0.1}, tensor.Shape{1, 3}, backend)
//	    if err != nil {
//	        panic(err)
//	    }
//	    probs := backend.Softmax(scores.Raw(), 1)
//	}
//
// # Supported Data Types
//
//   - float32, float64 for scores, probabilities and gradients
//   - int32, int64 for padded label tensors
package tensor
