package transport

import (
	"net/http"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request) {
	// No authentication applied
}

// HeaderAuth implements API key header authentication.
type HeaderAuth struct {
	Header string
	Key    string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request) {
	if a.Key == "" {
		return
	}
	req.Header.Set(a.Header, a.Key)
}

// BasicAuth implements HTTP basic authentication, as used with
// WooCommerce consumer key/secret pairs over HTTPS.
type BasicAuth struct {
	Username string
	Password string
}

// Apply implements the Authenticator interface for BasicAuth.
func (a *BasicAuth) Apply(req *http.Request) {
	if a.Username == "" {
		return
	}
	req.SetBasicAuth(a.Username, a.Password)
}

// QueryAuth implements credentials as query parameters, for servers that
// strip the Authorization header.
type QueryAuth struct {
	Params map[string]string
}

// Apply implements the Authenticator interface for QueryAuth.
func (a *QueryAuth) Apply(req *http.Request) {
	if req.URL == nil || len(a.Params) == 0 {
		return
	}

	// Keep existing query parameters
	query := req.URL.Query()
	for k, v := range a.Params {
		query.Set(k, v)
	}
	req.URL.RawQuery = query.Encode()
}
