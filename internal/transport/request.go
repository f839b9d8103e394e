package transport

import (
	"net/http"
	"net/url"
	"strings"
)

// Request describes a single call to the EventSphere backend.
type Request struct {
	Method  string
	Path    string
	Query   map[string]string
	Body    any
	Headers map[string]string
}

func Get(path string, query map[string]string) Request {
	return Request{Method: http.MethodGet, Path: path, Query: query}
}

func Post(path string, body any) Request {
	return Request{Method: http.MethodPost, Path: path, Body: body}
}

func Put(path string, body any) Request {
	return Request{Method: http.MethodPut, Path: path, Body: body}
}

func Delete(path string) Request {
	return Request{Method: http.MethodDelete, Path: path}
}

// hasBody reports whether the request body should be sent on the wire.
func (r Request) hasBody() bool {
	if r.Body == nil {
		return false
	}
	return r.Method != http.MethodGet && r.Method != http.MethodDelete
}

// URL joins baseURL and the request path and appends the query string.
// Parameters with an empty value are left out so callers can drop a filter by
// passing "".
func (r Request) URL(baseURL string) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(r.Path, "/"))
	if err != nil {
		return "", err
	}
	if q := EncodeQuery(r.Query); q != "" {
		u.RawQuery = q
	}
	return u.String(), nil
}

// EncodeQuery URL-encodes params, sorted by key, skipping empty values.
func EncodeQuery(params map[string]string) string {
	values := url.Values{}
	for k, v := range params {
		if v == "" {
			continue
		}
		values.Set(k, v)
	}
	return values.Encode()
}
