package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultUserAgent = "IPFS-Uploader/1.0"

	// maxResponseBytes bounds how much of the add response is read.
	maxResponseBytes = 1 << 20
)

// Sender publishes a request and returns the display record.
type Sender interface {
	Send(ctx context.Context, req Request) (*Result, error)
}

// Transport issues add calls against an IPFS HTTP API.
type Transport struct {
	endpoint    string
	gatewayBase string
	httpClient  *http.Client
	logger      *zap.Logger
}

// TransportOption customises a Transport.
type TransportOption func(*Transport)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) TransportOption {
	return func(t *Transport) {
		if client != nil {
			t.httpClient = client
		}
	}
}

// WithTransportLogger sets the logger used for request tracing.
func WithTransportLogger(logger *zap.Logger) TransportOption {
	return func(t *Transport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// NewTransport creates a transport for the given add endpoint and gateway
// base. The client has no timeout: a call lasts until the endpoint answers or
// the connection fails.
func NewTransport(endpoint, gatewayBase string, opts ...TransportOption) *Transport {
	t := &Transport{
		endpoint:    endpoint,
		gatewayBase: gatewayBase,
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				MaxIdleConns:          10,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
				ForceAttemptHTTP2:     true,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
				WriteBufferSize:       32 * 1024,
				ReadBufferSize:        32 * 1024,
			},
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Endpoint returns the add endpoint URL.
func (t *Transport) Endpoint() string {
	return t.endpoint
}

// GatewayBase returns the gateway base used to build public URLs.
func (t *Transport) GatewayBase() string {
	return t.gatewayBase
}

// Send performs a single POST to the add endpoint. It never retries.
func (t *Transport) Send(ctx context.Context, req Request) (*Result, error) {
	body, contentType, mediaType, err := encodeRequest(req)
	if err != nil {
		return nil, requestFailed(t.endpoint, 0, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, body)
	if err != nil {
		return nil, requestFailed(t.endpoint, 0, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", defaultUserAgent)

	start := time.Now()
	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, requestFailed(t.endpoint, 0, fmt.Errorf("http request: %w", err))
	}
	defer resp.Body.Close()

	t.logger.Debug("add endpoint responded",
		zap.String("endpoint", t.endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return nil, requestFailed(t.endpoint, resp.StatusCode, fmt.Errorf("http status %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, requestFailed(t.endpoint, resp.StatusCode, fmt.Errorf("read response: %w", err))
	}

	added, err := decodeAddResponse(raw)
	if err != nil {
		return nil, malformedResponse(t.endpoint, err)
	}

	return &Result{
		ContentHash: added.Hash,
		GatewayURL:  GatewayURL(t.gatewayBase, added.Hash),
		Name:        added.Name,
		Size:        added.Size,
		MediaType:   mediaType,
	}, nil
}

// encodeRequest builds the multipart body for either payload variant and
// returns the media type the result should carry.
func encodeRequest(req Request) (io.Reader, string, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	var mediaType string
	switch r := req.(type) {
	case FilePayload:
		partType := r.MediaType
		if partType == "" {
			partType = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(r.Name)))
		h.Set("Content-Type", partType)
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := part.Write(r.Body); err != nil {
			return nil, "", "", fmt.Errorf("write file part: %w", err)
		}
		mediaType = r.MediaType
	case TextPayload:
		if err := w.WriteField("data", r.Text); err != nil {
			return nil, "", "", fmt.Errorf("write data field: %w", err)
		}
		mediaType = MediaTypeJSON
	default:
		return nil, "", "", fmt.Errorf("unsupported request type %T", req)
	}

	if err := w.Close(); err != nil {
		return nil, "", "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, w.FormDataContentType(), mediaType, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

type addResponse struct {
	Hash string
	Name string
	Size string
}

// decodeAddResponse requires Hash, Name and Size to be present JSON strings.
func decodeAddResponse(raw []byte) (*addResponse, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}

	var out addResponse
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"Hash", &out.Hash},
		{"Name", &out.Name},
		{"Size", &out.Size},
	} {
		value, ok := fields[f.name]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return nil, fmt.Errorf("missing field %q", f.name)
		}
		if err := json.Unmarshal(value, f.dst); err != nil {
			return nil, fmt.Errorf("field %q is not a string", f.name)
		}
	}

	if out.Hash == "" {
		return nil, errors.New(`field "Hash" is empty`)
	}
	return &out, nil
}
