package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/softhub/internal/common"
)

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// mapResponseError turns a non-success response into one of the common
// sentinels, keeping the server's message.
func mapResponseError(resp *http.Response) error {
	msg := readErrorMessage(resp.Body)
	if msg == "" {
		msg = resp.Status
	}

	var sentinel error
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		sentinel = common.ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		sentinel = common.ErrNotFound
	case resp.StatusCode == http.StatusRequestEntityTooLarge,
		resp.StatusCode == http.StatusBadRequest && strings.Contains(strings.ToLower(msg), "too large"):
		sentinel = common.ErrSizeLimit
	case resp.StatusCode == http.StatusBadRequest:
		sentinel = common.ErrValidation
	case resp.StatusCode >= 500 && strings.Contains(strings.ToLower(msg), "configuration"):
		sentinel = common.ErrConfiguration
	case resp.StatusCode == http.StatusBadGateway, resp.StatusCode == http.StatusServiceUnavailable,
		resp.StatusCode == http.StatusGatewayTimeout:
		sentinel = common.ErrUnavailable
	default:
		sentinel = common.ErrStorage
	}

	return fmt.Errorf("%s: %w", msg, sentinel)
}

func readErrorMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 64<<10))
	if err != nil || len(b) == 0 {
		return ""
	}
	var eb errorBody
	if json.Unmarshal(b, &eb) == nil && eb.Error != "" {
		return eb.Error
	}
	return strings.TrimSpace(string(b))
}

// mapTransportError reports connection-level failures as ErrUnavailable.
// Context errors are returned unchanged.
func mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%v: %w", err, common.ErrUnavailable)
}
