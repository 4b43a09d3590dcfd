package tensor

// Backend defines the interface that compute backends must implement.
//
// The loss only needs the normalizer: a numerically stable softmax along one
// axis. Everything else about how a backend stores or schedules work is its
// own business.
type Backend interface {
	// Softmax normalizes x along dim so that every slice sums to 1.
	// Must not overflow for large-magnitude inputs.
	Softmax(x *RawTensor, dim int) *RawTensor

	// Metadata
	Name() string
	Device() Device
}
