package upload

import "path/filepath"

// MediaTypeJSON is the media type recorded for every text upload.
const MediaTypeJSON = "application/json"

// Request is the payload handed to the transport. It is either a FilePayload
// or a TextPayload.
type Request interface {
	isRequest()
}

// FilePayload carries a local file accepted by the validator.
type FilePayload struct {
	Body      []byte
	Name      string
	MediaType string
	Size      int64
}

// TextPayload carries raw text submitted without a file.
type TextPayload struct {
	Text string
}

func (FilePayload) isRequest() {}
func (TextPayload) isRequest() {}

// FileDescriptor describes a candidate file before validation.
type FileDescriptor struct {
	Name      string
	MediaType string
	Size      int64
	Data      []byte
}

// NewFileDescriptor builds a descriptor whose size is the length of data.
func NewFileDescriptor(name, mediaType string, data []byte) FileDescriptor {
	return FileDescriptor{
		Name:      name,
		MediaType: mediaType,
		Size:      int64(len(data)),
		Data:      data,
	}
}

// Extension returns the lower-cased extension of the file name, dot included.
func (f FileDescriptor) Extension() string {
	return normalizeExtension(filepath.Ext(f.Name))
}

// payloadSize is the number of bytes the request will put on the wire.
func payloadSize(req Request) int64 {
	switch r := req.(type) {
	case FilePayload:
		return r.Size
	case TextPayload:
		return int64(len(r.Text))
	}
	return 0
}
