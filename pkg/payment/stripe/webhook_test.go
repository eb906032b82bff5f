package stripe

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test_secret"

func TestConstructEvent_ValidSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_123","type":"checkout.session.completed","data":{"object":{"id":"cs_123"}}}`)
	header := SignPayload(payload, testWebhookSecret, time.Now())

	event, err := ConstructEvent(payload, header, testWebhookSecret)
	require.NoError(t, err)
	assert.Equal(t, "evt_123", event.ID)
	assert.Equal(t, EventCheckoutSessionCompleted, event.Type)
	assert.JSONEq(t, `{"id":"cs_123"}`, string(event.Data.Object))
}

func TestConstructEvent_TamperedPayload(t *testing.T) {
	payload := []byte(`{"id":"evt_123","type":"checkout.session.completed"}`)
	header := SignPayload(payload, testWebhookSecret, time.Now())

	tampered := []byte(`{"id":"evt_123","type":"checkout.session.completed","amount":99999}`)
	_, err := ConstructEvent(tampered, header, testWebhookSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestConstructEvent_WrongSecret(t *testing.T) {
	payload := []byte(`{"id":"evt_123","type":"payment_intent.succeeded"}`)
	header := SignPayload(payload, "whsec_other_secret", time.Now())

	_, err := ConstructEvent(payload, header, testWebhookSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestConstructEvent_MissingHeader(t *testing.T) {
	_, err := ConstructEvent([]byte(`{}`), "", testWebhookSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestConstructEvent_MalformedHeader(t *testing.T) {
	_, err := ConstructEvent([]byte(`{}`), "not-a-signature", testWebhookSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestConstructEvent_StaleTimestamp(t *testing.T) {
	payload := []byte(`{"id":"evt_old","type":"checkout.session.completed"}`)
	header := SignPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour))

	_, err := ConstructEvent(payload, header, testWebhookSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestConstructEvent_MultipleSignatures(t *testing.T) {
	payload := []byte(`{"id":"evt_multi","type":"payment_intent.succeeded"}`)
	valid := SignPayload(payload, testWebhookSecret, time.Now())

	// A stale v1 entry alongside a valid one still verifies
	header := valid + ",v1=deadbeef"
	event, err := ConstructEvent(payload, header, testWebhookSecret)
	require.NoError(t, err)
	assert.Equal(t, "evt_multi", event.ID)
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{
		SecretKey:  "sk_test_123",
		SuccessURL: "http://localhost:3000/success.html",
		CancelURL:  "http://localhost:3000/checkout.html",
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, defaultBaseURL, cfg.BaseURL)

	bad := Config{SecretKey: "pk_test_123", SuccessURL: "a", CancelURL: "b"}
	assert.Error(t, bad.Validate())

	missing := Config{}
	assert.Error(t, missing.Validate())
}
