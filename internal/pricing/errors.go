package pricing

import "fmt"

// DomainError reports a pricing input outside its valid numeric domain.
// Every check runs before any computation starts, so a DomainError
// never leaves a partial result behind.
type DomainError struct {
	Param  string  // parameter name, e.g. "vol"
	Value  float64 // offending value
	Reason string  // human-readable constraint, e.g. "must be positive"
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("pricing: %s=%g %s", e.Param, e.Value, e.Reason)
}

func domainErr(param string, value float64, reason string) error {
	return &DomainError{Param: param, Value: value, Reason: reason}
}
