package optional_test

import (
	"encoding/json"
	"testing"

	"go-ems/internal/shared/optional"

	"github.com/stretchr/testify/assert"
)

type address struct {
	City string `json:"city"`
}

type payload struct {
	Name    optional.Field[string]   `json:"name"`
	Skills  optional.Field[[]string] `json:"skills"`
	Address optional.Field[address]  `json:"address"`
	Step    optional.Field[int]      `json:"step"`
}

func TestField_UnmarshalJSON(t *testing.T) {
	t.Run("absent fields", func(t *testing.T) {
		var p payload
		assert.NoError(t, json.Unmarshal([]byte(`{}`), &p))

		assert.False(t, p.Name.IsPresent())
		_, ok := p.Name.Presence()
		assert.False(t, ok)
	})

	t.Run("structured values", func(t *testing.T) {
		var p payload
		assert.NoError(t, json.Unmarshal([]byte(`{"skills":["a","b"],"address":{"city":"Pune"},"step":2}`), &p))

		skills, ok := p.Skills.Sparse()
		assert.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, skills)
		assert.Equal(t, "Pune", p.Address.Value().City)
		assert.Equal(t, 2, p.Step.Value())
	})

	t.Run("serialized values", func(t *testing.T) {
		var p payload
		body := `{"skills":"[\"a\"]","address":"{\"city\":\"Surat\"}","step":"3"}`
		assert.NoError(t, json.Unmarshal([]byte(body), &p))

		assert.Equal(t, []string{"a"}, p.Skills.Value())
		assert.Equal(t, "Surat", p.Address.Value().City)
		assert.Equal(t, 3, p.Step.Value())
	})

	t.Run("null and empty serialized", func(t *testing.T) {
		var p payload
		assert.NoError(t, json.Unmarshal([]byte(`{"name":null,"skills":""}`), &p))

		assert.True(t, p.Name.IsNull())
		assert.True(t, p.Skills.IsNull())
	})

	t.Run("malformed serialized value", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"address":"{not json"}`), &p))
	})
}

func TestField_SparseVsPresence(t *testing.T) {
	blank := optional.Of("   ")
	_, ok := blank.Sparse()
	assert.False(t, ok)
	v, ok := blank.Presence()
	assert.True(t, ok)
	assert.Equal(t, "   ", v)

	empty := optional.Of([]string{})
	_, ok = empty.Sparse()
	assert.False(t, ok)

	_, ok = optional.Null[string]().Presence()
	assert.False(t, ok)

	n, ok := optional.Of(0).Sparse()
	assert.True(t, ok)
	assert.Equal(t, 0, n)

	type pair struct{ A, B string }
	_, ok = optional.Of(pair{}).Sparse()
	assert.False(t, ok)
	_, ok = optional.Of(pair{A: "x"}).Sparse()
	assert.True(t, ok)
}

func TestField_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(payload{Name: optional.Of("Asha"), Step: optional.Of(1)})

	assert.NoError(t, err)
	assert.JSONEq(t, `{"name":"Asha","skills":null,"address":null,"step":1}`, string(out))
}
