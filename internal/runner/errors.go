package runner

import "fmt"

// PropertyError reports a failure to load or save persisted run state.
// State on disk is left as it was before the failing operation.
type PropertyError struct {
	Name string
	Op   string
	Err  error
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("%s property %s: %v", e.Op, e.Name, e.Err)
}

func (e *PropertyError) Unwrap() error {
	return e.Err
}

// InitializationError marks a failed first run. The initialization flag
// stays unset, so the next cycle retries installation from scratch.
type InitializationError struct {
	Err error
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("first run: %v", e.Err)
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}

// FetchError aborts the run before anything is delivered or persisted,
// so the next run retries the same window.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch news: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
