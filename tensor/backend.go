// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/born-ml/multilabel/internal/tensor"
)

// Backend is the compute backend interface. Its Softmax normalizes raw
// scores into per-sample probability distributions.
type Backend = tensor.Backend
