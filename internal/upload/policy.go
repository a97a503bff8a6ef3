package upload

import "strings"

const (
	// DefaultMaxFiles is the only supported number of files per submission.
	DefaultMaxFiles = 1

	// DefaultMaxByteLength caps a single upload at 100 MB.
	DefaultMaxByteLength int64 = 100_000_000
)

// Policy is the acceptance policy applied before any network activity.
type Policy struct {
	MaxFiles          int
	MaxByteLength     int64
	AllowedExtensions []string // empty = unrestricted
}

// DefaultPolicy returns the policy used by the browser uploader.
func DefaultPolicy() Policy {
	return Policy{
		MaxFiles:      DefaultMaxFiles,
		MaxByteLength: DefaultMaxByteLength,
	}
}

// NewPolicy builds a policy, normalising the extension allow-list.
func NewPolicy(maxBytes int64, extensions []string) Policy {
	p := DefaultPolicy()
	if maxBytes > 0 {
		p.MaxByteLength = maxBytes
	}
	for _, ext := range extensions {
		if ext = normalizeExtension(ext); ext != "" {
			p.AllowedExtensions = append(p.AllowedExtensions, ext)
		}
	}
	return p
}

// allowsExtension reports whether ext passes the allow-list.
func (p Policy) allowsExtension(ext string) bool {
	if len(p.AllowedExtensions) == 0 {
		return true
	}
	ext = normalizeExtension(ext)
	for _, allowed := range p.AllowedExtensions {
		if normalizeExtension(allowed) == ext {
			return true
		}
	}
	return false
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
