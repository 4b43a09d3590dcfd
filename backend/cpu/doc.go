// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend.
//
// # Overview
//
// The backend implements the score normalizer:
//   - Pure Go implementation (no CGO)
//   - Numerically stable softmax (max-subtracted exponentials)
//   - Float32 and Float64 support
//   - Rows spread over worker goroutines (see MLLOSS_NUM_THREADS)
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
//	    scores, _ := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{1, 3}, backend)
//	    probs := backend.Softmax(scores.Raw(), 1)
//	}
package cpu
