// Package paste holds the emulator's rules for accepting paste bodies.
package paste

import (
	"net/http"
	"unicode/utf8"
)

// ValidationError holds validation failure details.
type ValidationError struct {
	StatusCode int
	Message    string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Accept checks the body and cuts it down to max bytes. truncated reports
// whether anything was dropped, which paste.rs signals with 206.
func Accept(body []byte, max int) (accepted []byte, truncated bool, err error) {
	if len(body) == 0 {
		return nil, false, &ValidationError{
			StatusCode: http.StatusBadRequest,
			Message:    "empty body",
		}
	}

	if len(body) <= max {
		return body, false, nil
	}

	// Don't split a multi-byte rune at the limit.
	cut := max
	for i := 0; i < utf8.UTFMax && cut > 0 && !utf8.RuneStart(body[cut]); i++ {
		cut--
	}
	if cut == 0 {
		cut = max
	}
	return body[:cut], true, nil
}

// StatusFor returns the create status for a body that was or wasn't truncated.
func StatusFor(truncated bool) int {
	if truncated {
		return http.StatusPartialContent
	}
	return http.StatusCreated
}
