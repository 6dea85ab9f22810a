package summary

import (
	"errors"
	"fmt"
)

// ConfigurationError reports invocation context that cannot identify a pull request.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// IsConfigurationError reports whether err wraps a ConfigurationError.
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// DataError reports a collaborator response that is missing required data.
type DataError struct {
	SHA    string
	Reason string
}

func (e *DataError) Error() string {
	if e.SHA == "" {
		return "data error: " + e.Reason
	}
	return fmt.Sprintf("data error for commit %s: %s", e.SHA, e.Reason)
}

// IsDataError reports whether err wraps a DataError.
func IsDataError(err error) bool {
	var target *DataError
	return errors.As(err, &target)
}
