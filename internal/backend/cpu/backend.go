// Package cpu implements the CPU backend: the softmax normalizer that turns
// raw class scores into per-sample probability distributions.
package cpu

import (
	"github.com/born-ml/multilabel/internal/parallel"
	"github.com/born-ml/multilabel/internal/tensor"
)

// CPUBackend implements tensor operations on CPU in pure Go.
type CPUBackend struct {
	device   tensor.Device
	parallel parallel.Config
}

// New creates a new CPU backend.
func New() *CPUBackend {
	return NewWithConfig(parallel.DefaultConfig())
}

// NewWithConfig creates a CPU backend with explicit parallelism settings.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device:   tensor.CPU,
		parallel: cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Parallel returns the backend's parallelism settings.
func (cpu *CPUBackend) Parallel() parallel.Config {
	return cpu.parallel
}
