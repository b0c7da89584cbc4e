// Package validation traduce errores de go-playground/validator al formato
// que consume el frontend: 422 {"message": "...", "errors": {"campo": ["..."]}}.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"pet-adoption/internal/ports/media"
)

// Errors: campo -> mensajes, en orden de aparición.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e Errors) Any() bool { return len(e) > 0 }

// Message resume como lo hace el frontend: primer error + "(and N more errors)".
func (e Errors) Message() string {
	if len(e) == 0 {
		return ""
	}
	keys := make([]string, 0, len(e))
	total := 0
	for k, msgs := range e {
		keys = append(keys, k)
		total += len(msgs)
	}
	sort.Strings(keys)

	first := e[keys[0]][0]
	switch rest := total - 1; {
	case rest == 1:
		return fmt.Sprintf("%s (and 1 more error)", first)
	case rest > 1:
		return fmt.Sprintf("%s (and %d more errors)", first, rest)
	default:
		return first
	}
}

func (e Errors) Error() string { return e.Message() }

var (
	once sync.Once
	v    *validator.Validate
)

func get() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
		// maxbytes cuenta bytes, no runas (bcrypt corta en 72 bytes)
		_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
			n, err := strconv.Atoi(fl.Param())
			if err != nil {
				return false
			}
			return len(fl.Field().String()) <= n
		})
	})
	return v
}

// Struct valida s y devuelve Errors (nil si todo ok).
func Struct(s any) Errors {
	err := get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errors{"_": {err.Error()}}
	}

	out := Errors{}
	for _, fe := range verrs {
		field := fe.Field()
		if fe.Tag() == "eqfield" {
			// la confirmación se reporta sobre el campo original
			field = strings.TrimSuffix(field, "_confirmation")
		}
		out.Add(field, message(field, fe))
	}
	return out
}

func message(field string, fe validator.FieldError) string {
	attr := strings.ReplaceAll(field, "_", " ")
	switch fe.Tag() {
	case "required", "required_without", "required_if":
		return fmt.Sprintf("The %s field is required.", attr)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", attr)
	case "max", "maxbytes":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", attr, fe.Param())
	case "min":
		return fmt.Sprintf("The %s field must be at least %s characters.", attr, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s field confirmation does not match.", attr)
	case "datetime":
		return fmt.Sprintf("The %s field must be a valid date.", attr)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", attr)
	default:
		return fmt.Sprintf("The %s field is invalid.", attr)
	}
}

// Mensajes para reglas que no pasan por validator (unique, image, tamaño).
func Taken(field string) string {
	return fmt.Sprintf("The %s has already been taken.", strings.ReplaceAll(field, "_", " "))
}

func NotImage(field string) string {
	return fmt.Sprintf("The %s field must be an image.", strings.ReplaceAll(field, "_", " "))
}

func TooLarge(field string, kilobytes int64) string {
	return fmt.Sprintf("The %s field must not be greater than %d kilobytes.", strings.ReplaceAll(field, "_", " "), kilobytes)
}

// PhotoError traduce el error de media.OpenImage al mensaje del campo.
func PhotoError(field string, err error) string {
	if errors.Is(err, media.ErrTooLarge) {
		return TooLarge(field, media.MaxImageBytes/1024)
	}
	return NotImage(field)
}

// ParseBool acepta lo que manda un form HTML o un cliente JSON; cualquier otro valor es false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

// Write responde 422 con el cuerpo estándar.
func Write(w http.ResponseWriter, errs Errors) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message": errs.Message(),
		"errors":  errs,
	})
}
