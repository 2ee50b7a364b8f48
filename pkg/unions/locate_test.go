package unions

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type document struct {
	Scalars  []scalar          `json:"scalars"`
	Tags     map[string]scalar `json:"tags"`
	Filter   nestedFilter      `json:"filter"`
	Customer *customerRef      `json:"customer"`
}

func TestUnmarshalLocatesFailingUnion(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		path     string
		location string
	}{
		{
			name:     "slice element",
			raw:      `{"scalars":["a",{"x":1}]}`,
			path:     "scalars[1]",
			location: "metadata",
		},
		{
			name:     "map key with a dot",
			raw:      `{"tags":{"ok":true,"a.b":[1]}}`,
			path:     "tags[a.b]",
			location: "metadata",
		},
		{
			name:     "pointer field",
			raw:      `{"customer":{"foo":1}}`,
			path:     "customer",
			location: "checkout.customer",
		},
		{
			name:     "nested struct",
			raw:      `{"filter":{"conjunction":"and","clauses":[{"key":"k","operator":"eq","value":"v"},3]}}`,
			path:     "filter.clauses",
			location: "nestedFilter.clauses",
		},
		{
			name:     "first failure in document order",
			raw:      `{"scalars":[{"x":1}],"tags":{"a":{"x":1}}}`,
			path:     "scalars[0]",
			location: "metadata",
		},
		{
			name:     "case-insensitive key",
			raw:      `{"SCALARS":[{}]}`,
			path:     "scalars[0]",
			location: "metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var doc document
			err := Unmarshal([]byte(tt.raw), &doc)
			var unknown *UnknownShapeError
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, tt.path, unknown.Path)
			assert.Equal(t, tt.location, unknown.Location)
			assert.Contains(t, unknown.Error(), tt.path+" ("+tt.location+")")
		})
	}
}

func TestUnmarshalWithoutUnionError(t *testing.T) {
	var doc document
	require.NoError(t, Unmarshal([]byte(`{"scalars":["a",1,true]}`), &doc))
	require.Len(t, doc.Scalars, 3)
	assert.Equal(t, "number", doc.Scalars[1].Active())

	err := Unmarshal([]byte(`{"scalars":`), &doc)
	require.Error(t, err)
	var unknown *UnknownShapeError
	assert.False(t, errors.As(err, &unknown))
}

func TestUnionItselfHasNoPath(t *testing.T) {
	var s scalar
	err := Unmarshal([]byte(`{"x":1}`), &s)
	var unknown *UnknownShapeError
	require.ErrorAs(t, err, &unknown)
	assert.Empty(t, unknown.Path)
	assert.Equal(t, `metadata: {"x":1} does not match any known alternative`, unknown.Error())
}

func TestNestedFailureIsLocatedInsideAlternative(t *testing.T) {
	_, err := clausesAlternatives.Decode([]byte(`[{"conjunction":"and","clauses":{"bad":1}}]`))
	var unknown *UnknownShapeError
	require.ErrorAs(t, err, &unknown)
	require.Len(t, unknown.Attempts, 2)

	var malformed *MalformedPayloadError
	require.ErrorAs(t, unknown.Attempts[1], &malformed)
	assert.Equal(t, "filters", malformed.Alternative)

	var nested *UnknownShapeError
	require.ErrorAs(t, malformed.Err, &nested)
	assert.Equal(t, "[0].clauses", nested.Path)

	detail := unknown.Detail()
	assert.Contains(t, detail, `alternative "filters": [0].clauses (nestedFilter.clauses): {"bad":1} does not match`)
	assert.Contains(t, detail, "\n    - ")
}

func TestGenericUnionLocation(t *testing.T) {
	var u3 Union3[string, float64, bool]
	err := json.Unmarshal([]byte(`{}`), &u3)
	var unknown *UnknownShapeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Union3[string, float64, bool]", unknown.Location)

	var u2 Union2[condition, []condition]
	err = json.Unmarshal([]byte(`3`), &u2)
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Union2[condition, []condition]", unknown.Location)
}

type cachedUnion struct{ Union }

func TestGenericAlternativesAreBuiltOnce(t *testing.T) {
	calls := 0
	build := func(location string) *Alternatives[cachedUnion] {
		calls++
		assert.Equal(t, "cachedUnion", location)
		return Register(location,
			Alt("string", func(s string) cachedUnion { return cachedUnion{New("string", s)} }),
		)
	}

	first := cachedAlternatives(build)
	second := cachedAlternatives(build)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)

	var u Union2[string, float64]
	require.NoError(t, json.Unmarshal([]byte(`"a"`), &u))
	before, ok := genericAlternatives.Load(reflect.TypeFor[Union2[string, float64]]())
	require.True(t, ok)
	require.NoError(t, json.Unmarshal([]byte(`1.5`), &u))
	after, _ := genericAlternatives.Load(reflect.TypeFor[Union2[string, float64]]())
	assert.Same(t, before, after)
}

func TestNilListPayloadEncodesAsEmptyArray(t *testing.T) {
	c := clauses{New("conditions", []condition(nil))}
	data, err := json.Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	var decoded clauses
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "conditions", decoded.Active())

	u := Union2[[]string, string]{A: new([]string)}
	data, err = json.Marshal(u)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	var back Union2[[]string, string]
	require.NoError(t, json.Unmarshal(data, &back))
	assert.NotNil(t, back.A)

	m := Union2[map[string]string, string]{A: new(map[string]string)}
	data, err = json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
