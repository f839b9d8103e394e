package model

import "encoding/json"

// Response is the envelope returned by every API operation and written by the
// backend. A successful response carries Data and no Error; a failed one
// carries a non-empty Error and the zero value of T.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

// responseWire is the encoded form of Response: data appears exactly when
// the call succeeded.
type responseWire[T any] struct {
	Success bool   `json:"success"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Count   *int   `json:"count,omitempty"`
}

func (r Response[T]) MarshalJSON() ([]byte, error) {
	w := responseWire[T]{
		Success: r.Success,
		Error:   r.Error,
		Message: r.Message,
		Count:   r.Count,
	}
	if r.Success {
		data := r.Data
		w.Data = &data
	}
	return json.Marshal(w)
}

// OK wraps data in a successful response.
func OK[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: data}
}

// OKList wraps a list and records its length in Count.
func OKList[T any](items []T) Response[[]T] {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return Response[[]T]{Success: true, Data: items, Count: &n}
}

// Fail builds a failed response. An empty message is replaced with a generic one.
func Fail[T any](msg string) Response[T] {
	if msg == "" {
		msg = "Unknown error"
	}
	return Response[T]{Success: false, Error: msg}
}

// CountOr returns Count when set and def otherwise.
func (r Response[T]) CountOr(def int) int {
	if r.Count == nil {
		return def
	}
	return *r.Count
}
