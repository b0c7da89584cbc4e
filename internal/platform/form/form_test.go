package form

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestParse_JSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/pets", strings.NewReader(`{"name":"Luna","castrated":true,"age":3,"tags":["a"]}`))
	req.Header.Set("Content-Type", "application/json")

	v, err := Parse(req)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if v.Get("name") != "Luna" || v.Get("castrated") != "true" || v.Get("age") != "3" {
		t.Fatalf("unexpected fields: %#v", v.fields)
	}
	if v.Get("tags") != `["a"]` {
		t.Fatalf("expected raw json for arrays, got %q", v.Get("tags"))
	}
	if v.Has("description") {
		t.Fatalf("description was not sent")
	}
}

func TestParse_URLEncoded(t *testing.T) {
	body := url.Values{"species": {"Gato"}, "description": {""}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/api/pets", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	v, err := Parse(req)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if v.Get("species") != "Gato" || !v.Has("description") {
		t.Fatalf("unexpected fields: %#v", v.fields)
	}
}

func TestParse_Multipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("pet_species", "Perro")
	fw, _ := mw.CreateFormFile("pet_photo", "rex.png")
	_, _ = fw.Write([]byte("\x89PNG\r\n\x1a\n"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/lostpets", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	v, err := Parse(req)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if v.Get("pet_species") != "Perro" {
		t.Fatalf("expected pet_species, got %q", v.Get("pet_species"))
	}
	fh := v.File("pet_photo")
	if fh == nil || fh.Filename != "rex.png" {
		t.Fatalf("expected uploaded file, got %#v", fh)
	}
	if v.File("photo") != nil {
		t.Fatalf("expected no photo file")
	}
}

func TestParse_EmptyAndMalformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	if _, err := Parse(req); err != nil {
		t.Fatalf("expected empty body to be fine, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/pets", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	if _, err := Parse(req); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}
