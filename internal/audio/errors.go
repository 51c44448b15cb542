package audio

import "fmt"

// DecodeError reports input that could not be turned into a SampleBuffer.
type DecodeError struct {
	Name   string // file name as given to Decode
	Reason string // human-readable cause
	Err    error  // underlying decoder error, if any
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decoding %s: %s: %v", e.Name, e.Reason, e.Err)
	}
	return fmt.Sprintf("decoding %s: %s", e.Name, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func decodeErr(name, reason string, err error) *DecodeError {
	return &DecodeError{Name: name, Reason: reason, Err: err}
}
