package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskJSON_RedactsFullyMaskedFields(t *testing.T) {
	raw := `{"cvv":"123","email":"a@b.com","amount":500}`
	got := MaskJSON([]byte(raw))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(got, &doc))
	assert.Equal(t, "***", doc["cvv"])
	assert.Equal(t, "***", doc["email"])
	assert.Equal(t, float64(500), doc["amount"])
}

func TestMaskJSON_KeepsLast4OfCardNumber(t *testing.T) {
	raw := `{"card_number":"4242424242424242"}`
	got := MaskJSON([]byte(raw))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(got, &doc))
	assert.Equal(t, "***4242", doc["card_number"])
}

func TestMaskJSON_NonPanCardNumberFullyMasked(t *testing.T) {
	raw := `{"pan":"not-a-number"}`
	got := MaskJSON([]byte(raw))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(got, &doc))
	assert.Equal(t, "***", doc["pan"])
}

func TestMaskJSON_RecursesIntoNestedStructures(t *testing.T) {
	raw := `{"payment":{"card":{"cvv":"999"}},"items":[{"password":"x"}]}`
	got := MaskJSON([]byte(raw))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(got, &doc))
	payment := doc["payment"].(map[string]any)
	card := payment["card"].(map[string]any)
	assert.Equal(t, "***", card["cvv"])

	items := doc["items"].([]any)
	first := items[0].(map[string]any)
	assert.Equal(t, "***", first["password"])
}

func TestMaskJSON_InvalidJSONReturnsPlaceholder(t *testing.T) {
	got := MaskJSON([]byte(`not json at all`))
	assert.Equal(t, `"***"`, string(got))
}

func TestMaskJSON_EmptyInputReturnsEmpty(t *testing.T) {
	got := MaskJSON(nil)
	assert.Empty(t, got)
}

func TestMaskHeaders_RedactsCredentialHeaders(t *testing.T) {
	in := map[string]string{
		"Authorization": "Bearer secret-token",
		"X-Api-Key":     "key123",
		"Content-Type":  "application/json",
		"X-Request-Id":  "req-1",
	}
	out := MaskHeaders(in)

	assert.Equal(t, "***", out["Authorization"])
	assert.Equal(t, "***", out["X-Api-Key"])
	assert.Equal(t, "application/json", out["Content-Type"])
	assert.Equal(t, "req-1", out["X-Request-Id"])
}

func TestMaskHeaders_MatchingIsCaseInsensitive(t *testing.T) {
	in := map[string]string{"x-API-secret": "shh"}
	out := MaskHeaders(in)
	assert.Equal(t, "***", out["x-API-secret"])
}
