package validation

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption/internal/ports/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type registerForm struct {
	Name                 string `json:"name" validate:"required,max=255"`
	Email                string `json:"email" validate:"required,email"`
	Password             string `json:"password" validate:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" validate:"eqfield=Password"`
}

func TestStruct_MessagesUseJSONNames(t *testing.T) {
	errs := Struct(registerForm{
		Email:                "no-es-email",
		Password:             "corta",
		PasswordConfirmation: "otra",
	})
	require.True(t, errs.Any())

	assert.Equal(t, []string{"The name field is required."}, errs["name"])
	assert.Equal(t, []string{"The email field must be a valid email address."}, errs["email"])
	assert.Equal(t, []string{
		"The password field must be at least 8 characters.",
		"The password field confirmation does not match.",
	}, errs["password"])
	assert.NotContains(t, errs, "password_confirmation")
}

func TestStruct_MaxBytesCountsBytes(t *testing.T) {
	type pw struct {
		Password string `json:"password" validate:"maxbytes=8"`
	}

	assert.Nil(t, Struct(pw{Password: "12345678"}))
	// 5 runas, 10 bytes
	errs := Struct(pw{Password: "ñññññ"})
	assert.Equal(t, []string{"The password field must not be greater than 8 characters."}, errs["password"])
}

func TestStruct_Valid(t *testing.T) {
	errs := Struct(registerForm{Name: "Ana", Email: "ana@example.com", Password: "secreto123", PasswordConfirmation: "secreto123"})
	assert.Nil(t, errs)
	assert.False(t, errs.Any())
}

func TestErrors_Message(t *testing.T) {
	errs := Errors{}
	assert.Equal(t, "", errs.Message())

	errs.Add("email", "The email field is required.")
	assert.Equal(t, "The email field is required.", errs.Message())

	errs.Add("name", "The name field is required.")
	assert.Equal(t, "The email field is required. (and 1 more error)", errs.Message())

	errs.Add("pet_photo", NotImage("pet_photo"))
	assert.Equal(t, "The email field is required. (and 2 more errors)", errs.Message())
}

func TestWrite_422Body(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, Errors{"email": {Taken("email")}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "The email has already been taken.", body.Message)
	assert.Len(t, body.Errors["email"], 1)
}

func TestPhotoErrorAndParseBool(t *testing.T) {
	assert.Equal(t, "The photo field must not be greater than 2048 kilobytes.", PhotoError("photo", fmt.Errorf("x: %w", media.ErrTooLarge)))
	assert.Equal(t, "The pet photo field must be an image.", PhotoError("pet_photo", media.ErrNotImage))

	for _, s := range []string{"1", "true", "ON", " yes "} {
		assert.True(t, ParseBool(s), s)
	}
	for _, s := range []string{"", "0", "false", "si"} {
		assert.False(t, ParseBool(s), s)
	}
}
