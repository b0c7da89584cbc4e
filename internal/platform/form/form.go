package form

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
)

// MaxMemory es lo que se retiene en RAM al parsear multipart; el resto va a disco.
const MaxMemory = 10 << 20

var ErrMalformed = errors.New("malformed request body")

// Values es el cuerpo del request normalizado a strings, sin importar si llegó
// como JSON, x-www-form-urlencoded o multipart.
type Values struct {
	fields map[string]string
	files  map[string]*multipart.FileHeader
}

func (v Values) Get(key string) string {
	return v.fields[key]
}

// Has indica si el campo vino en el request (aunque sea vacío).
func (v Values) Has(key string) bool {
	_, ok := v.fields[key]
	return ok
}

func (v Values) File(key string) *multipart.FileHeader {
	return v.files[key]
}

// Parse lee el cuerpo según Content-Type.
func Parse(r *http.Request) (Values, error) {
	out := Values{
		fields: map[string]string{},
		files:  map[string]*multipart.FileHeader{},
	}

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mt {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(MaxMemory); err != nil {
			return out, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		for k, vals := range r.MultipartForm.Value {
			if len(vals) > 0 {
				out.fields[k] = vals[0]
			}
		}
		for k, fhs := range r.MultipartForm.File {
			if len(fhs) > 0 {
				out.files[k] = fhs[0]
			}
		}
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return out, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		for k, vals := range r.PostForm {
			if len(vals) > 0 {
				out.fields[k] = vals[0]
			}
		}
	default:
		if r.Body == nil || r.ContentLength == 0 {
			return out, nil
		}
		var raw map[string]any
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		for k, val := range raw {
			out.fields[k] = stringify(val)
		}
	}
	return out, nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		b, _ := json.Marshal(t)
		return strings.TrimSpace(string(b))
	}
}
