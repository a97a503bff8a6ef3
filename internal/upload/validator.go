package upload

import (
	"fmt"
	"strings"
)

// Validate applies the policy to the candidate files. On success it returns a
// FilePayload for the single accepted file; otherwise a ValidationErrors with
// every problem found on the first rejected candidate.
func Validate(candidates []FileDescriptor, policy Policy) (Request, error) {
	if len(candidates) == 0 {
		return nil, ValidationErrors{{Code: CodeNoFile, Message: "No file selected"}}
	}

	maxFiles := policy.MaxFiles
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}
	tooMany := len(candidates) > maxFiles

	for _, c := range candidates {
		var errs ValidationErrors
		if tooMany {
			errs = append(errs, ValidationError{Code: CodeTooManyFiles, Message: "Too many files"})
		}
		errs = append(errs, checkCandidate(c, policy)...)
		if len(errs) > 0 {
			return nil, errs
		}
	}

	c := candidates[0]
	return FilePayload{
		Body:      c.Data,
		Name:      c.Name,
		MediaType: c.MediaType,
		Size:      c.Size,
	}, nil
}

// ValidateText applies the size ceiling to a raw text submission.
func ValidateText(text string, policy Policy) (Request, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ValidationErrors{{Code: CodeEmptyText, Message: "Text is empty"}}
	}
	if policy.MaxByteLength > 0 && int64(len(text)) > policy.MaxByteLength {
		return nil, ValidationErrors{tooLarge(policy.MaxByteLength)}
	}
	return TextPayload{Text: text}, nil
}

func checkCandidate(c FileDescriptor, policy Policy) ValidationErrors {
	var errs ValidationErrors
	if policy.MaxByteLength > 0 && c.Size > policy.MaxByteLength {
		errs = append(errs, tooLarge(policy.MaxByteLength))
	}
	if !policy.allowsExtension(c.Extension()) {
		errs = append(errs, ValidationError{
			Code:    CodeInvalidExtension,
			Message: "File type must be one of " + strings.Join(policy.AllowedExtensions, ", "),
		})
	}
	return errs
}

func tooLarge(limit int64) ValidationError {
	return ValidationError{
		Code:    CodeFileTooLarge,
		Message: fmt.Sprintf("File is larger than %d bytes", limit),
	}
}
