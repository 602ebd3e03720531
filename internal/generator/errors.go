package generator

import "errors"

var (
	// ErrForbidden is returned when the caller's role may not issue certificates.
	ErrForbidden = errors.New("admin role cannot generate certificates")
	// ErrTemplateNotFound is returned when the template is missing or not visible to the caller.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrEmptyCSV is returned when a bulk upload yields no data rows.
	ErrEmptyCSV = errors.New("CSV file is empty or has invalid format")
	// ErrMissingInput is returned when a bulk request lacks the template id or the CSV file.
	ErrMissingInput = errors.New("template_id and CSV file are required")
)
