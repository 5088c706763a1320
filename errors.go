package shelfdb

import "fmt"

// StoreError reports that the backing store could not be opened or flushed
// (permissions, corruption, locked by another process). It is fatal for the
// operation that encountered it; no retries are performed.
type StoreError struct {
	Path string
	Msg  string
	Err  error
}

func storeErrf(path string, err error, format string, args ...any) error {
	return &StoreError{path, fmt.Sprintf(format, args...), err}
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Msg)
}

// RecordError reports that a persisted record failed to decode. It is
// surfaced on the access attempt that touched the record.
type RecordError struct {
	Key string
	Msg string
	Err error
}

func recordErrf(key string, err error, format string, args ...any) error {
	return &RecordError{key, fmt.Sprintf(format, args...), err}
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func (e *RecordError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("record %q: %s: %v", e.Key, e.Msg, e.Err)
	}
	return fmt.Sprintf("record %q: %s", e.Key, e.Msg)
}

// PatternError reports a malformed wildcard or regex pattern supplied to a
// predicate. It surfaces during predicate evaluation and aborts the whole
// query; there are no partial results.
type PatternError struct {
	Column  string
	Pattern string
	Err     error
}

func patternErrf(column, pattern string, err error) error {
	return &PatternError{column, pattern, err}
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("bad pattern %q for column %q: %v", e.Pattern, e.Column, e.Err)
}
