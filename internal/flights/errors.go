package flights

import "fmt"

// ParseError reports a flight field whose text did not match the expected
// shape. It signals that the results page was unreadable or unexpected, so
// the search driver abandons the whole combination, the same as a failed
// fetch.
type ParseError struct {
	Field string // which field failed: time, duration, stops, miles
	Text  string // the offending input text
	Err   error  // underlying cause, may be nil
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s from %q: %v", e.Field, e.Text, e.Err)
	}
	return fmt.Sprintf("parse %s from %q", e.Field, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
