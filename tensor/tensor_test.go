// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/multilabel/backend/cpu"
	"github.com/born-ml/multilabel/tensor"
)

func TestPublicFromSlice(t *testing.T) {
	backend := cpu.New()

	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	assert.Equal(t, tensor.Float64, x.DType())
	assert.Equal(t, tensor.CPU, x.Device())
	assert.Equal(t, []float64{1, 2, 3, 4}, x.Data())
}

func TestPublicZerosAndNew(t *testing.T) {
	backend := cpu.New()

	z := tensor.Zeros[int32](tensor.Shape{3}, backend)
	assert.Equal(t, []int32{0, 0, 0}, z.Data())

	raw, err := tensor.NewRaw(tensor.Shape{1}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	raw.AsFloat32()[0] = 4
	assert.Equal(t, float32(4), tensor.New[float32](raw, backend).Item())
}
