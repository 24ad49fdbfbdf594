package adapter

import (
	"fmt"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-feed-client/internal/protocol"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusBadGateway:          ErrBadGateway,
	http.StatusInternalServerError: ErrInternalServerError,
}

// mapHTTPError converts a failed response into a sentinel error. A response
// whose body is a Login frame is not an error whatever its status: the
// server answers rejected credentials with a Login rejection frame, and that
// frame has to reach the engine.
func mapHTTPError(resp *resty.Response) error {
	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}
	if protocol.Classify(resp.Body()) == protocol.KindLogin {
		return nil
	}

	detail := describeBody(resp.Body())
	if detail == "" {
		detail = http.StatusText(code)
	}
	if sentinel, ok := statusErrors[code]; ok {
		return fmt.Errorf("%w: %s", sentinel, detail)
	}
	return fmt.Errorf("http %d: %s", code, detail)
}

// describeBody returns body as text, or "" when it is empty or binary.
func describeBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if strings.ContainsFunc(text, func(r rune) bool {
		return r == unicode.ReplacementChar || (unicode.IsControl(r) && !unicode.IsSpace(r))
	}) {
		return ""
	}
	return text
}
