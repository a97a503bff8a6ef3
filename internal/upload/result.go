package upload

import "strings"

// Result is the display record derived from a successful add call.
type Result struct {
	ContentHash string `json:"hash" example:"QmXoypizjW3WknFiJnKLwHCnL72vedxjQkDDP1mXWo6uco"`
	GatewayURL  string `json:"url" example:"https://ipfs.infura.io/ipfs/QmXoypizjW3WknFiJnKLwHCnL72vedxjQkDDP1mXWo6uco"`
	Name        string `json:"name" example:"photo.png"`
	Size        string `json:"size" example:"5120"`
	MediaType   string `json:"type" example:"image/png"`
}

// GatewayURL joins the gateway base and a content hash. The hash is not
// checked; the gateway rejects malformed identifiers itself.
func GatewayURL(base, hash string) string {
	return base + "/ipfs/" + hash
}

// MediaKind is the preview class of a media type.
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
	KindOther MediaKind = "other"
)

// Classify maps a media type to the preview the page should render.
func Classify(mediaType string) MediaKind {
	top, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(mediaType)), "/")
	switch top {
	case "image":
		return KindImage
	case "video":
		return KindVideo
	default:
		return KindOther
	}
}

// Preview returns the preview class of the result's media type.
func (r Result) Preview() MediaKind {
	return Classify(r.MediaType)
}
