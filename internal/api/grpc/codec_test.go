package grpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCodec_RoundTrips(t *testing.T) {
	c := jsonCodec{}
	type sample struct {
		Name string `json:"name"`
	}

	data, err := c.Marshal(sample{Name: "razorpay"})
	require.NoError(t, err)

	var out sample
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, "razorpay", out.Name)
}

func TestJSONCodec_Name(t *testing.T) {
	assert.Equal(t, "json", jsonCodec{}.Name())
}

func TestJSONCodec_UnmarshalInvalidDataErrors(t *testing.T) {
	var out map[string]any
	err := jsonCodec{}.Unmarshal([]byte("not json"), &out)
	assert.Error(t, err)
}
