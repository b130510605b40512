package http

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/h2non/filetype"
	jsoniter "github.com/json-iterator/go"

	"github.com/fivetwenty-io/rocketchat-client/internal/constants"
	"github.com/fivetwenty-io/rocketchat-client/pkg/rocketchat"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const upperHex = "0123456789ABCDEF"

// EncodeQuery renders params as a query string. Keys are sorted. Sequence
// values repeat their key with a "[]" suffix, one pair per element in order.
// Values are written as-is; only bytes that cannot appear in a request line
// are percent-encoded.
func EncodeQuery(params rocketchat.Params) string {
	if len(params) == 0 {
		return ""
	}

	pairs := make([]string, 0, len(params))

	for _, key := range sortedKeys(params) {
		value := params[key]

		if elems, ok := sequence(value); ok {
			for _, elem := range elems {
				pairs = append(pairs, requote(key+"[]")+"="+requote(stringify(elem)))
			}

			continue
		}

		pairs = append(pairs, requote(key)+"="+requote(stringify(value)))
	}

	return strings.Join(pairs, "&")
}

// requote percent-encodes bytes outside the unreserved and reserved URI sets.
// Existing escapes are kept. '#' is encoded so the value is not cut off as a
// fragment.
func requote(s string) string {
	var b strings.Builder

	for i := 0; i < len(s); i++ {
		c := s[i]
		if keepInQuery(c) {
			b.WriteByte(c)

			continue
		}

		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}

	return b.String()
}

func keepInQuery(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	return strings.IndexByte("-._~!$&'()*+,/:;=?@[]%", c) >= 0
}

// EncodeBody serializes params and files for a POST or PUT request and
// returns the body with its content type.
func EncodeBody(params rocketchat.Params, files []rocketchat.File, encoding rocketchat.Encoding) ([]byte, string, error) {
	switch {
	case encoding == rocketchat.EncodingJSON && len(files) > 0:
		return nil, "", rocketchat.ErrJSONWithFiles
	case len(files) > 0:
		return encodeMultipart(params, files)
	case encoding == rocketchat.EncodingForm:
		return []byte(encodeForm(params)), "application/x-www-form-urlencoded", nil
	default:
		return encodeJSON(params)
	}
}

func encodeJSON(params rocketchat.Params) ([]byte, string, error) {
	if params == nil {
		params = rocketchat.Params{}
	}

	body, err := json.Marshal(params)
	if err != nil {
		return nil, "", fmt.Errorf("marshaling JSON body: %w", err)
	}

	return body, "application/json", nil
}

func encodeForm(params rocketchat.Params) string {
	values := url.Values{}

	for key, value := range params {
		if elems, ok := sequence(value); ok {
			for _, elem := range elems {
				values.Add(key, stringify(elem))
			}

			continue
		}

		values.Set(key, stringify(value))
	}

	return values.Encode()
}

func encodeMultipart(params rocketchat.Params, files []rocketchat.File) ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, key := range sortedKeys(params) {
		value := params[key]

		elems, ok := sequence(value)
		if !ok {
			elems = []any{value}
		}

		for _, elem := range elems {
			err := writer.WriteField(key, stringify(elem))
			if err != nil {
				return nil, "", fmt.Errorf("writing form field %s: %w", key, err)
			}
		}
	}

	for _, file := range files {
		err := writeFilePart(writer, file)
		if err != nil {
			return nil, "", err
		}
	}

	err := writer.Close()
	if err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFilePart(writer *multipart.Writer, file rocketchat.File) error {
	var content []byte

	if file.Content != nil {
		data, err := io.ReadAll(file.Content)
		if err != nil {
			return fmt.Errorf("reading file %s: %w", file.Name, err)
		}

		content = data
	}

	contentType := file.ContentType
	if contentType == "" {
		contentType = DetectContentType(content)
	}

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(file.Field), quoteEscaper.Replace(file.Name)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return fmt.Errorf("creating part for %s: %w", file.Name, err)
	}

	_, err = part.Write(content)
	if err != nil {
		return fmt.Errorf("writing part for %s: %w", file.Name, err)
	}

	return nil
}

// DetectContentType sniffs the MIME type from the leading bytes of content.
func DetectContentType(content []byte) string {
	head := content
	if len(head) > constants.SniffLength {
		head = head[:constants.SniffLength]
	}

	kind, err := filetype.Match(head)
	if err != nil || kind == filetype.Unknown {
		return constants.DefaultContentType
	}

	return kind.MIME.Value
}

func sortedKeys(params rocketchat.Params) []string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// sequence reports whether value is a list and returns its elements. Any
// slice or array counts, named types included; byte slices are scalars.
func sequence(value any) ([]any, bool) {
	if elems, ok := value.([]any); ok {
		return elems, true
	}

	rv := reflect.ValueOf(value)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
	default:
		return nil, false
	}

	elems := make([]any, rv.Len())
	for i := range elems {
		elems[i] = rv.Index(i).Interface()
	}

	return elems, true
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(v)
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}

		return string(encoded)
	}
}
