package articles

import "fmt"

// ShapeError reports input that does not have the expected article shape.
// Index is -1 when the problem concerns the whole input.
type ShapeError struct {
	Index  int
	ID     int
	Reason string
}

func (e *ShapeError) Error() string {
	if e.Index < 0 {
		return "invalid article input: " + e.Reason
	}
	return fmt.Sprintf("article #%d (id %d): %s", e.Index, e.ID, e.Reason)
}
