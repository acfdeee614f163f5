package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// DoPost performs one synchronous HTTP POST with a prebuilt body and returns
// the status code, response headers, and fully read body.
//
// Error Handling Strategy:
//   - Context errors (timeout, cancellation) and connection failures are
//     returned wrapped; the caller classifies them.
//   - A non-2xx status is NOT an error here: callers own status
//     classification, so the body is returned for them to inspect.
//   - The response body is always closed; close errors never override the
//     primary result.
func DoPost(ctx context.Context, client *http.Client, url string, header http.Header, body []byte) (int, http.Header, []byte, error) {
	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, nil, fmt.Errorf("error creating request: %w", err)
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, res.Header, nil, fmt.Errorf("error reading response body: %w", err)
	}

	return res.StatusCode, res.Header, respBody, nil
}
