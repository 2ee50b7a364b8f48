package unions

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWalk(t *testing.T) {
	filter := nestedFilter{
		Conjunction: "and",
		Clauses: clauses{New("filters", []nestedFilter{
			{Conjunction: "or", Clauses: clauses{New("conditions", []condition{{Key: "k", Operator: "eq"}})}},
		})},
	}
	payload := struct {
		Filter   nestedFilter      `json:"filter"`
		Customer *customerRef      `json:"customer,omitempty"`
		Missing  *customerRef      `json:"missing,omitempty"`
		Metadata map[string]scalar `json:"metadata"`
		Pair     Union2[string, int]
	}{
		Filter:   filter,
		Customer: &customerRef{New("new", newCustomer{Email: "a@b.com"})},
		Metadata: map[string]scalar{"b": {New("boolean", true)}, "a": {New("string", "x")}},
		Pair:     Union2[string, int]{B: ptr(3)},
	}

	var visited []string
	Walk(payload, func(path string, u Variant) {
		visited = append(visited, fmt.Sprintf("%s=%s", path, u.Active()))
	})

	assert.Equal(t, []string{
		"filter.clauses=filters",
		"filter.clauses[0].clauses=conditions",
		"customer=new",
		"metadata[a]=string",
		"metadata[b]=boolean",
		"Pair=B",
	}, visited)
}

func ptr[T any](v T) *T { return &v }
