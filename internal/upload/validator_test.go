package upload

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsSingleFile(t *testing.T) {
	data := []byte("hello")
	req, err := Validate([]FileDescriptor{NewFileDescriptor("a.png", "image/png", data)}, DefaultPolicy())
	require.NoError(t, err)

	payload, ok := req.(FilePayload)
	require.True(t, ok, "expected FilePayload, got %T", req)
	assert.Equal(t, "a.png", payload.Name)
	assert.Equal(t, "image/png", payload.MediaType)
	assert.Equal(t, int64(5), payload.Size)
	assert.Equal(t, data, payload.Body)
}

func TestValidateRejectsTooManyFiles(t *testing.T) {
	files := []FileDescriptor{
		NewFileDescriptor("a.txt", "text/plain", []byte("a")),
		NewFileDescriptor("b.txt", "text/plain", []byte("b")),
		NewFileDescriptor("c.txt", "text/plain", []byte("c")),
	}

	req, err := Validate(files, DefaultPolicy())
	assert.Nil(t, req)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, CodeTooManyFiles, verrs[0].Code)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestValidateRejectsOversizedFile(t *testing.T) {
	file := FileDescriptor{Name: "big.bin", MediaType: "application/octet-stream", Size: 100_000_001}

	_, err := Validate([]FileDescriptor{file}, DefaultPolicy())

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, CodeFileTooLarge, verrs[0].Code)
	assert.Equal(t, "File is larger than 100000000 bytes", verrs[0].Message)
}

func TestValidateAcceptsFileAtLimit(t *testing.T) {
	file := FileDescriptor{Name: "edge.bin", Size: 100_000_000}

	_, err := Validate([]FileDescriptor{file}, DefaultPolicy())
	assert.NoError(t, err)
}

func TestValidateReturnsAllErrorsOfFirstRejectedCandidate(t *testing.T) {
	policy := NewPolicy(10, []string{"png", ".JPG"})
	files := []FileDescriptor{
		{Name: "notes.txt", Size: 11},
		{Name: "photo.png", Size: 1},
	}

	_, err := Validate(files, policy)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	codes := make([]string, len(verrs))
	for i, e := range verrs {
		codes[i] = e.Code
	}
	assert.Equal(t, []string{CodeTooManyFiles, CodeFileTooLarge, CodeInvalidExtension}, codes)
	assert.Equal(t, "File type must be one of .png, .jpg", verrs[2].Message)
	assert.Len(t, verrs.Messages(), 3)
	assert.True(t, strings.Contains(err.Error(), "Too many files"))
}

func TestValidateExtensionAllowList(t *testing.T) {
	policy := NewPolicy(0, []string{".png"})

	tests := []struct {
		name   string
		file   string
		accept bool
	}{
		{"matching extension", "a.png", true},
		{"upper case extension", "A.PNG", true},
		{"other extension", "a.gif", false},
		{"no extension", "README", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate([]FileDescriptor{{Name: tt.file, Size: 1}}, policy)
			if tt.accept {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrRejected)
			}
		})
	}
}

func TestValidateRejectsEmptyCandidateList(t *testing.T) {
	_, err := Validate(nil, DefaultPolicy())

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, CodeNoFile, verrs[0].Code)
}

func TestValidateText(t *testing.T) {
	req, err := ValidateText(`{"a":1}`, DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, TextPayload{Text: `{"a":1}`}, req)

	_, err = ValidateText("   ", DefaultPolicy())
	assert.ErrorIs(t, err, ErrRejected)

	_, err = ValidateText("too long", NewPolicy(3, nil))
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, CodeFileTooLarge, verrs[0].Code)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		mediaType string
		want      MediaKind
	}{
		{"image/png", KindImage},
		{"IMAGE/JPEG", KindImage},
		{"video/mp4", KindVideo},
		{"application/json", KindOther},
		{"", KindOther},
		{"imagery/x", KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.mediaType))
		})
	}
}
