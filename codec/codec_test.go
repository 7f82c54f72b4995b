package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}

func TestJSONRoundTrip(t *testing.T) {
	type doc struct {
		Name  string `json:"name"`
		Width int    `json:"width"`
	}

	data, err := JSON{}.Marshal(doc{Name: "clk", Width: 1})
	require.NoError(t, err)

	var got doc
	require.NoError(t, JSON{}.Unmarshal(data, &got))
	assert.Equal(t, doc{Name: "clk", Width: 1}, got)
}

func TestMustMarshal(t *testing.T) {
	type doc struct {
		Name string `json:"name"`
	}

	// nil codec falls back to Default.
	assert.Equal(t, []byte(`{"name":"rst"}`), MustMarshal(nil, doc{Name: "rst"}))
	assert.Equal(t, []byte(`{"name":"rst"}`), MustMarshal(JSON{}, doc{Name: "rst"}))

	// Unencodable values panic instead of returning an error.
	assert.Panics(t, func() { MustMarshal(JSON{}, make(chan int)) })
}
