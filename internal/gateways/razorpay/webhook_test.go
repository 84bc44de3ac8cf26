package razorpay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connector-service/internal/connector"
	"connector-service/internal/secret"
)

func sign(body []byte, key string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySource_AcceptsCorrectSignature(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	key := "whsec_test"
	headers := http.Header{"X-Razorpay-Signature": []string{sign(body, key)}}

	ok := webhookAdapter{}.VerifySource(body, headers, secret.New(key))
	assert.True(t, ok)
}

func TestVerifySource_RejectsWrongSignature(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	headers := http.Header{"X-Razorpay-Signature": []string{"deadbeef"}}

	ok := webhookAdapter{}.VerifySource(body, headers, secret.New("whsec_test"))
	assert.False(t, ok)
}

func TestVerifySource_RejectsMissingSignatureHeader(t *testing.T) {
	body := []byte(`{"event":"payment.captured"}`)
	ok := webhookAdapter{}.VerifySource(body, http.Header{}, secret.New("whsec_test"))
	assert.False(t, ok)
}

func TestEventKind_DiscriminatesKnownEvents(t *testing.T) {
	tests := []struct {
		event string
		want  connector.EventKind
	}{
		{"payment.captured", connector.EventPaymentSucceeded},
		{"payment.authorized", connector.EventPaymentSucceeded},
		{"payment.failed", connector.EventPaymentFailed},
		{"refund.processed", connector.EventRefundSucceeded},
		{"refund.failed", connector.EventRefundFailed},
		{"order.paid", connector.EventUnknown},
	}

	for _, tt := range tests {
		body := []byte(`{"event":"` + tt.event + `"}`)
		got := webhookAdapter{}.EventKind(body, http.Header{})
		assert.Equal(t, tt.want, got, "event %s", tt.event)
	}
}

func TestNormalizePaymentEvent_ExtractsEntityFields(t *testing.T) {
	body := []byte(`{
		"event": "payment.captured",
		"payload": {"payment": {"entity": {"id": "pay_abc123", "status": "captured"}}}
	}`)

	details, cerr := webhookAdapter{}.NormalizePaymentEvent(body, http.Header{})
	require.Nil(t, cerr)
	assert.Equal(t, "pay_abc123", details.ConnectorTransactionID)
	assert.Equal(t, connector.Charged, details.Status)
	assert.Equal(t, "payment.captured", details.RawEventKind)
}

func TestNormalizePaymentEvent_MalformedBodyFails(t *testing.T) {
	_, cerr := webhookAdapter{}.NormalizePaymentEvent([]byte(`not json`), http.Header{})
	require.NotNil(t, cerr)
}
