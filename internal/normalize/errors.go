package normalize

import "fmt"

// EmptyInputError indicates that strict-mode normalization received blank
// input. Default-mode normalization never produces this error; it returns an
// entity with empty collections instead.
type EmptyInputError struct {
	Kind Kind
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("empty %s input", e.Kind)
}
