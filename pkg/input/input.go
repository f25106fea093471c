package input

import (
	"encoding/json"
	"errors"
	"io"
	"maps"
	"mime"
	"net/http"
	"strconv"

	"github.com/microcosm-cc/bluemonday"

	"github.com/avidian/mvc/pkg/collection"
)

// DefaultMaxBodySize bounds form and JSON bodies.
const DefaultMaxBodySize = 10 << 20

// Input is the merged set of request values.
// Query values come first; form and JSON body values override them.
type Input struct {
	values map[string]any
}

type options struct {
	policy      *bluemonday.Policy
	maxBodySize int64
}

// Option configures FromRequest.
type Option func(*options)

// WithSanitizer strips every HTML tag from string values.
func WithSanitizer() Option {
	return WithPolicy(bluemonday.StrictPolicy())
}

// WithPolicy sanitizes string values with a custom bluemonday policy.
func WithPolicy(p *bluemonday.Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithMaxBodySize overrides DefaultMaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodySize = n
		}
	}
}

// New wraps an existing value map.
func New(values map[string]any) *Input {
	if values == nil {
		values = map[string]any{}
	}
	return &Input{values: values}
}

// FromRequest collects query values, then form values for POST, PUT and PATCH,
// then the fields of a JSON object body. A key given once is a string;
// a repeated key is a []string.
func FromRequest(r *http.Request, opts ...Option) (*Input, error) {
	o := options{maxBodySize: DefaultMaxBodySize}
	for _, opt := range opts {
		opt(&o)
	}

	values := make(map[string]any)
	mergeValues(values, r.URL.Query())

	if hasBody(r.Method) && r.Body != nil {
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		switch mediaType {
		case "application/x-www-form-urlencoded":
			r.Body = http.MaxBytesReader(nil, r.Body, o.maxBodySize)
			if err := r.ParseForm(); err != nil {
				return nil, errors.Join(ErrInvalidForm, err)
			}
			mergeValues(values, r.PostForm)
		case "multipart/form-data":
			if err := r.ParseMultipartForm(o.maxBodySize); err != nil {
				return nil, errors.Join(ErrInvalidForm, err)
			}
			mergeValues(values, r.MultipartForm.Value)
		case "application/json":
			body, err := io.ReadAll(io.LimitReader(r.Body, o.maxBodySize))
			if err != nil {
				return nil, errors.Join(ErrInvalidJSON, err)
			}
			if len(body) > 0 {
				var obj map[string]any
				if err := json.Unmarshal(body, &obj); err != nil {
					return nil, errors.Join(ErrInvalidJSON, err)
				}
				maps.Copy(values, obj)
			}
		}
	}

	if o.policy != nil {
		for k, v := range values {
			values[k] = sanitize(o.policy, v)
		}
	}

	return &Input{values: values}, nil
}

func hasBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func mergeValues(dst map[string]any, src map[string][]string) {
	for k, vs := range src {
		switch len(vs) {
		case 0:
			continue
		case 1:
			dst[k] = vs[0]
		default:
			dst[k] = append([]string(nil), vs...)
		}
	}
}

func sanitize(p *bluemonday.Policy, v any) any {
	switch x := v.(type) {
	case string:
		return p.Sanitize(x)
	case []string:
		out := make([]string, len(x))
		for i, s := range x {
			out[i] = p.Sanitize(s)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = sanitize(p, e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[k] = sanitize(p, e)
		}
		return out
	default:
		return v
	}
}

// All returns a copy of every value.
func (in *Input) All() map[string]any {
	return maps.Clone(in.values)
}

// Get returns the value for key, or nil.
func (in *Input) Get(key string) any {
	return in.values[key]
}

// Has reports whether key was sent.
func (in *Input) Has(key string) bool {
	_, ok := in.values[key]
	return ok
}

// String returns the value for key as a string. Repeated keys yield the first value.
func (in *Input) String(key string) string {
	switch v := in.values[key].(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// Int64 parses the value for key as an integer.
func (in *Input) Int64(key string) (int64, bool) {
	if f, ok := in.values[key].(float64); ok {
		return int64(f), f == float64(int64(f))
	}
	n, err := strconv.ParseInt(in.String(key), 10, 64)
	return n, err == nil
}

// Only returns the values for the listed keys.
func (in *Input) Only(keys ...string) map[string]any {
	return collection.Only(in.values, keys...)
}

// Except returns every value but the listed keys.
func (in *Input) Except(keys ...string) map[string]any {
	return collection.Except(in.values, keys...)
}

// ToMap returns a copy of every value.
func (in *Input) ToMap() map[string]any {
	return in.All()
}

// MarshalJSON encodes every value as a JSON object.
func (in *Input) MarshalJSON() ([]byte, error) {
	return json.Marshal(in.values)
}
