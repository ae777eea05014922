package api

import (
	"net/http"
	"strings"
)

// Session is the opaque credential attached to every authenticated call.
// It is the name=value part of each cookie set at login, joined by ";".
type Session string

// SessionFromHeaders builds a Session from the Set-Cookie headers of a response,
// keeping header-arrival order and dropping cookie attributes.
func SessionFromHeaders(h http.Header) Session {
	var pairs []string
	for _, v := range h.Values("Set-Cookie") {
		pair, _, _ := strings.Cut(v, ";")
		if pair = strings.TrimSpace(pair); pair != "" {
			pairs = append(pairs, pair)
		}
	}
	return Session(strings.Join(pairs, ";"))
}

func (s Session) String() string { return string(s) }
