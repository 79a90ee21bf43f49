package imageutil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Image generation backends routinely take minutes to respond; downloads of
// their results can be slow too, so the timeout is deliberately generous.
const downloadTimeout = 300 * time.Second

const maxErrorBody = 512

var downloadClient = &http.Client{Timeout: downloadTimeout}

// HTTPError carries the status and a truncated body of a non-200 response.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Body)
}

// Download fetches an image over HTTP and returns its bytes and MIME type.
// The MIME type comes from the Content-Type header, falling back to
// URL-extension and magic-byte sniffing.
func Download(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := downloadClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, "", &HTTPError{Status: resp.StatusCode, Body: string(body)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	mime := resp.Header.Get("Content-Type")
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if !strings.HasPrefix(mime, "image/") {
		mime = DetectMIME(rawURL, data)
	}
	return data, mime, nil
}

// TruncateBody shortens a response body for inclusion in error messages.
func TruncateBody(body []byte) string {
	if len(body) > maxErrorBody {
		return string(body[:maxErrorBody]) + "..."
	}
	return string(body)
}
