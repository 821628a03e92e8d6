package sparse

import "fmt"

// DeadIDError is the panic value raised when an Array is indexed with an ID
// that does not name a live entry.
type DeadIDError struct {
	Slot       uint32
	Generation uint32
}

func (e *DeadIDError) Error() string {
	return fmt.Sprintf("sparse: id #%d.%d is not live", e.Slot, e.Generation)
}

// CorruptError indicates a snapshot whose index structures disagree.
type CorruptError struct {
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("sparse: corrupt snapshot: %s", e.Reason)
}
