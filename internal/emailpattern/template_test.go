package emailpattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateLocalPart(t *testing.T) {
	t.Parallel()

	tok := NameTokens{First: "jane", Last: "doe"}

	tests := []struct {
		id   TemplateID
		want string
	}{
		{TemplateFirstDotLast, "jane.doe"},
		{TemplateFirstLast, "janedoe"},
		{TemplateFLast, "jdoe"},
		{TemplateFirstULast, "jane_doe"},
		{TemplateFirst, "jane"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.id), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.id.LocalPart(tok))
		})
	}
}

func TestTemplateLocalPart_SingleTokenName(t *testing.T) {
	t.Parallel()

	tok := NameTokens{First: "madonna"}

	// Layouts requiring a last name produce nothing.
	for _, id := range []TemplateID{TemplateFirstDotLast, TemplateFirstLast, TemplateFLast, TemplateFirstULast} {
		assert.Empty(t, id.LocalPart(tok), "template %s", id)
	}
	assert.Equal(t, "madonna", TemplateFirst.LocalPart(tok))
}

func TestTemplateLocalPart_EmptyTokens(t *testing.T) {
	t.Parallel()

	for _, id := range Candidates {
		assert.Empty(t, id.LocalPart(NameTokens{}), "template %s", id)
	}
}

func TestCandidatesOrdering(t *testing.T) {
	t.Parallel()

	// The candidate order is the tie-break ranking; first.last is the
	// most standard pattern and must stay first.
	assert.Equal(t, TemplateFirstDotLast, Candidates[0])
	assert.Len(t, Candidates, 5)
}
