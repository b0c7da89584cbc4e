package smtp

import (
	"bytes"
	"testing"

	"pet-adoption/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailer_Message(t *testing.T) {
	m, err := New(config.SMTP{Host: "localhost", Port: 1025, From: "no-reply@petadopt.local"})
	require.NoError(t, err)

	msg, err := m.Message("ana@example.com", "Restablecer Contraseña", "Hola Ana")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "To: <ana@example.com>")
	assert.Contains(t, raw, "From: <no-reply@petadopt.local>")
	assert.Contains(t, raw, "Hola Ana")
}

func TestMailer_Message_InvalidRecipient(t *testing.T) {
	m, err := New(config.SMTP{Host: "localhost", Port: 1025, From: "no-reply@petadopt.local"})
	require.NoError(t, err)

	_, err = m.Message("not-an-address", "x", "y")
	assert.Error(t, err)
}
