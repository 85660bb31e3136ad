package client

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// IDLength is the length of identifiers issued by paste.rs.
const IDLength = 3

// Reference identifies a single paste.
type Reference struct {
	ID string
}

func (r Reference) String() string {
	return r.ID
}

// Resolver turns user input into a Reference. It never touches the network.
type Resolver struct {
	baseURL string
	scheme  string
	domain  string
}

// NewResolver creates a Resolver for the service at baseURL.
func NewResolver(baseURL string) (*Resolver, error) {
	base := normalizeBaseURL(baseURL)
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must use http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", baseURL)
	}
	return &Resolver{
		baseURL: base,
		scheme:  u.Scheme,
		domain:  u.Host,
	}, nil
}

var defaultResolver, _ = NewResolver(DefaultBaseURL)

// Resolve parses input against the default paste.rs base URL.
func Resolve(input string) (Reference, error) {
	return defaultResolver.Resolve(input)
}

// BaseURL returns the base URL with its trailing slash.
func (r *Resolver) BaseURL() string {
	return r.baseURL
}

// URL returns the canonical URL of ref.
func (r *Resolver) URL(ref Reference) string {
	return r.baseURL + ref.ID
}

// Resolve accepts a full URL ("https://paste.rs/osx"), a URL without a scheme
// ("paste.rs/osx") or a bare id ("osx").
//
// Domain membership is a substring check on the input, not a parse of the
// URL authority.
func (r *Resolver) Resolve(input string) (Reference, error) {
	isURL := hasScheme(input)
	ours := strings.Contains(input, r.domain)

	switch {
	case isURL && ours:
		return r.extract(input)
	case !isURL && ours:
		return r.extract(r.scheme + "://" + input)
	case utf8.RuneCountInString(input) == IDLength:
		// Any 3 characters are accepted; the server decides whether the paste exists.
		return Reference{ID: input}, nil
	case isURL:
		return Reference{}, invalidURL(fmt.Sprintf("%q is not a %s url", input, r.domain))
	default:
		return Reference{}, &Error{
			Code:    ErrInvalidArguments,
			Message: fmt.Sprintf("%q is neither a paste id nor a %s url", input, r.domain),
		}
	}
}

// extract strips the base URL from u and returns what is left as the id.
func (r *Resolver) extract(u string) (Reference, error) {
	id, ok := strings.CutPrefix(u, r.baseURL)
	if !ok {
		return Reference{}, invalidURL(fmt.Sprintf("%q does not start with %s", u, r.baseURL))
	}
	if id == "" {
		return Reference{}, invalidURL(fmt.Sprintf("%q does not name a paste", u))
	}
	return Reference{ID: id}, nil
}

func hasScheme(s string) bool {
	return strings.Contains(s, "http://") || strings.Contains(s, "https://")
}

func normalizeBaseURL(baseURL string) string {
	return strings.TrimSuffix(strings.TrimSpace(baseURL), "/") + "/"
}
