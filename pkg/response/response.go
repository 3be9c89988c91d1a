package response

import (
	"encoding/json"
	"net/http"
	"strings"

	appErrors "github.com/noah-isme/flock-console/pkg/errors"
)

// Envelope represents the common response contract used by newer backends.
type Envelope struct {
	Data  json.RawMessage  `json:"data,omitempty"`
	Error *appErrors.Error `json:"error,omitempty"`
}

// detailBody is the FastAPI style error body: {"detail": "..."} or a list of
// field errors.
type detailBody struct {
	Detail json.RawMessage `json:"detail"`
}

type detailItem struct {
	Msg string `json:"msg"`
}

// Unwrap returns the payload of a success body. Bodies wrapped in an
// envelope yield their data member; anything else is returned as is.
func Unwrap(body []byte) []byte {
	trimmed := strings.TrimSpace(string(body))
	if !strings.HasPrefix(trimmed, "{") {
		return body
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(body, &env); err != nil {
		return body
	}
	data, ok := env["data"]
	if !ok {
		return body
	}
	for key := range env {
		if key != "data" && key != "meta" && key != "pagination" {
			return body
		}
	}
	return data
}

// Error converts a non-2xx response body into a typed error. The message is
// taken from the body when it carries one, else from the status text.
func Error(status int, body []byte) *appErrors.Error {
	message := extractMessage(body)
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = appErrors.ErrRemote.Message
	}
	return appErrors.FromStatus(status, message)
}

func extractMessage(body []byte) string {
	if len(strings.TrimSpace(string(body))) == 0 {
		return ""
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil && env.Error.Message != "" {
		return env.Error.Message
	}

	var detail detailBody
	if err := json.Unmarshal(body, &detail); err != nil || len(detail.Detail) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(detail.Detail, &text); err == nil {
		return text
	}
	var items []detailItem
	if err := json.Unmarshal(detail.Detail, &items); err == nil && len(items) > 0 {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}
