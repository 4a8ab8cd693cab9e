package wargamer

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/wargamer/search"
)

// Record is a single entity as returned by the remote API. Numbers are
// decoded as json.Number.
type Record = search.Record

// Response is a successful API response.
//
// Responses may be served from the client's response cache and shared
// between callers; treat them as read-only.
type Response struct {
	// Product is the API that answered.
	Product Product
	// Realm is the realm the request was sent to.
	Realm Realm
	// Method is the normalized API method, e.g. "encyclopedia/vehicles".
	Method string

	// Status is the envelope status, "ok" for successful responses.
	Status string
	// Meta is the envelope's meta object, typically holding a count.
	Meta map[string]any
	// Data is the undecoded envelope data.
	Data json.RawMessage
}

// envelope is the wire format shared by every API method.
type envelope struct {
	Status string          `json:"status"`
	Meta   map[string]any  `json:"meta"`
	Data   json.RawMessage `json:"data"`
	Error  *remoteError    `json:"error"`
}

type remoteError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field"`
	Value   any    `json:"value"`
}

// Decode unmarshals the response data into v.
func (r *Response) Decode(v any) error {
	if err := decodeJSON(r.Data, v); err != nil {
		return errors.WithContext(
			errors.Wrap(err, errors.CodeInternal, "failed to decode response data"),
			"method", r.Method,
		)
	}
	return nil
}

// Records decodes data shaped as an object of records keyed by identifier.
// Records the remote reports as null are kept as nil.
func (r *Response) Records() (map[string]Record, error) {
	var records map[string]Record
	if err := r.Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

// Object decodes data shaped as a single object.
func (r *Response) Object() (map[string]any, error) {
	var obj map[string]any
	if err := r.Decode(&obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// decodeJSON unmarshals data keeping numbers as json.Number, so identifiers
// survive exactly.
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// parseResponse turns a raw response into a Response or an error.
//
// A structured remote error wins over the HTTP status. A non-2xx status
// without one, or an unreadable body, is a transport error.
func parseResponse(raw *RawResponse, req request) (*Response, error) {
	var env envelope
	decodeErr := decodeJSON(raw.Body, &env)

	if decodeErr == nil && env.Error != nil {
		return nil, &APIError{
			Method:     req.method,
			Realm:      req.realm,
			Product:    req.product,
			StatusCode: raw.StatusCode,
			Code:       env.Error.Code,
			Message:    env.Error.Message,
			Field:      env.Error.Field,
			Value:      env.Error.Value,
		}
	}

	if raw.StatusCode < 200 || raw.StatusCode > 299 {
		return nil, &TransportError{
			Method:     req.method,
			Realm:      req.realm,
			Product:    req.product,
			StatusCode: raw.StatusCode,
		}
	}

	if decodeErr != nil {
		return nil, &TransportError{
			Method:     req.method,
			Realm:      req.realm,
			Product:    req.product,
			StatusCode: raw.StatusCode,
			Err:        decodeErr,
		}
	}

	return &Response{
		Product: req.product,
		Realm:   req.realm,
		Method:  req.method,
		Status:  env.Status,
		Meta:    env.Meta,
		Data:    env.Data,
	}, nil
}
