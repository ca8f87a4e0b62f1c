package store

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is matched by every *IndexError.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError indicates an index that does not address an existing record
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("index %d out of range (%d clients)", e.Index, e.Len)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

func checkIndex(index, length int) error {
	if index < 0 || index >= length {
		return &IndexError{Index: index, Len: length}
	}

	return nil
}
