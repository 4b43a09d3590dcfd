package nn

import "github.com/pkg/errors"

// Contract violations reported by the multi-label loss. Returned errors wrap
// one of these with sample/shape context; test with errors.Is.
var (
	// ErrNoActiveLabels means a sample has no active label to average over.
	ErrNoActiveLabels = errors.New("sample has no active labels")

	// ErrLabelOutOfRange means a label index is outside [0, num_classes).
	ErrLabelOutOfRange = errors.New("label index out of range")

	// ErrLabelGradient means a caller asked for the gradient w.r.t. labels.
	ErrLabelGradient = errors.New("cannot backpropagate to label inputs")

	// ErrCountMismatch means the active counts do not describe the current batch.
	ErrCountMismatch = errors.New("active label counts do not match batch")

	// ErrSpatialDims means the scores carry non-trivial dimensions after the class axis.
	ErrSpatialDims = errors.New("dimensions after the class axis must be 1")

	// ErrStaleResult means backward was given a result that is not the layer's latest forward.
	ErrStaleResult = errors.New("backward without matching forward")

	// ErrShapeMismatch means scores and labels disagree on the batch, or a tensor has the wrong rank.
	ErrShapeMismatch = errors.New("shape mismatch")
)
