package importer

import "fmt"

// ValidationError reports a malformed import request. Nothing has been
// fetched or sent when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// FetchError reports a failure reading the spreadsheet: unreachable
// service, auth failure, or a sheet that does not exist. No rows have
// been processed when one is returned.
type FetchError struct {
	SheetName string
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch sheet %q: %v", e.SheetName, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
