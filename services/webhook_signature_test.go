package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyWebhookSignature(t *testing.T) {
	secret := "test-webhook-secret"
	body := []byte(`{"provider_ref":"abc","status":"successful"}`)

	signature := SignWebhookBody(secret, body)
	assert.NotEmpty(t, signature)

	tests := []struct {
		name      string
		secret    string
		body      []byte
		signature string
		expected  bool
	}{
		{"Valid signature", secret, body, signature, true},
		{"Wrong secret", "other-secret", body, signature, false},
		{"Tampered body", secret, []byte(`{"provider_ref":"abc","status":"paid"}`), signature, false},
		{"Empty signature", secret, body, "", false},
		{"Garbage signature", secret, body, "deadbeef", false},
		{"Empty secret never verifies", "", body, SignWebhookBody("", body), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, VerifyWebhookSignature(tt.secret, tt.body, tt.signature))
		})
	}
}

func TestSignWebhookBodyDeterministic(t *testing.T) {
	body := []byte(`{"provider_ref":"abc"}`)
	assert.Equal(t, SignWebhookBody("s", body), SignWebhookBody("s", body))
	assert.NotEqual(t, SignWebhookBody("s", body), SignWebhookBody("t", body))
}
