package sampler

import "fmt"

// ExternalServiceError wraps any failure reported by the host.
type ExternalServiceError struct {
	Op      string
	Name    string
	Station int // -1 when raised while preparing entities
	Err     error
}

func (e *ExternalServiceError) Error() string {
	if e.Station < 0 {
		return fmt.Sprintf("host %s %q: %v", e.Op, e.Name, e.Err)
	}
	return fmt.Sprintf("host %s %q at station %d: %v", e.Op, e.Name, e.Station, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

func hostErr(op, name string, station int, err error) error {
	return &ExternalServiceError{Op: op, Name: name, Station: station, Err: err}
}
