package rocketchat

import (
	"io"
	"net/http"
)

// Encoding selects how a POST or PUT body is serialized.
type Encoding int

const (
	// EncodingAuto sends JSON unless files are attached, in which case the
	// body is multipart form data.
	EncodingAuto Encoding = iota
	// EncodingJSON always sends a JSON object. It cannot carry files.
	EncodingJSON
	// EncodingForm sends form fields, multipart when files are attached.
	EncodingForm
)

// String implements fmt.Stringer.
func (e Encoding) String() string {
	switch e {
	case EncodingJSON:
		return "json"
	case EncodingForm:
		return "form"
	default:
		return "auto"
	}
}

// File is a file attachment sent as one multipart part.
type File struct {
	// Field is the form field name, e.g. "file" or "image".
	Field string
	// Name is the file name reported to the server.
	Name string
	// Content is read fully when the request is built.
	Content io.Reader
	// ContentType is sniffed from the content when empty.
	ContentType string
}

// Request describes one API call. It is built fresh for every call.
type Request struct {
	Method string
	// Endpoint is the method name, e.g. "channels.info".
	Endpoint string
	// APIPath overrides the default "/api/v1/" prefix.
	APIPath string
	Params  Params
	// Extra is a bundle of additional options hoisted into Params; keys in
	// Params win.
	Extra    Params
	Files    []File
	Encoding Encoding
	// NoAuth omits the session headers.
	NoAuth bool
	// Verbatim sends Params without renaming "password" to "pass".
	Verbatim bool
}

// Response is a successful API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	// Body is the raw response body.
	Body []byte
	// Data is the decoded JSON body. It is nil when IsJSON is false.
	Data   any
	IsJSON bool
}

// Text returns the raw body as a string.
func (r *Response) Text() string {
	return string(r.Body)
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Object returns the decoded body when it is a JSON object.
func (r *Response) Object() (map[string]any, bool) {
	object, ok := r.Data.(map[string]any)

	return object, ok
}
