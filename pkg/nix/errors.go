package nix

import "strings"

// ErrorRecord is one structured failure extracted from the tool's
// diagnostic stream: a title line plus the context lines that followed it.
type ErrorRecord struct {
	Title   string
	Details []string
}

// String renders the record as the title followed by its detail lines.
func (r ErrorRecord) String() string {
	if len(r.Details) == 0 {
		return r.Title
	}

	return r.Title + "\n" + strings.Join(r.Details, "\n")
}

// ToolError reports one or more classified error records from a single
// nix invocation. The record list is never empty.
type ToolError struct {
	Records []ErrorRecord
}

// Error implements the error interface by joining all records.
func (e *ToolError) Error() string {
	parts := make([]string, 0, len(e.Records))
	for _, record := range e.Records {
		parts = append(parts, record.String())
	}

	return strings.Join(parts, "\n")
}
