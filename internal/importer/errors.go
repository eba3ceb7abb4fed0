package importer

import (
	"fmt"
	"strings"
)

// ValidationError carries every problem ValidateDataset found.
type ValidationError struct {
	Errs []error
}

func (e *ValidationError) Error() string {
	if len(e.Errs) == 1 {
		return "invalid dataset: " + e.Errs[0].Error()
	}
	lines := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		lines = append(lines, "  - "+err.Error())
	}
	return fmt.Sprintf("invalid dataset (%d problems):\n%s", len(e.Errs), strings.Join(lines, "\n"))
}

func (e *ValidationError) Unwrap() []error {
	return e.Errs
}
