package prompt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bistro/internal/prompt"
)

func TestParse(t *testing.T) {
	cases := map[string]prompt.Choice{
		"":      prompt.Pending,
		"  ":    prompt.Pending,
		"yes":   prompt.Affirmed,
		"TRUE":  prompt.Affirmed,
		"no":    prompt.Cancelled,
		"maybe": prompt.Cancelled,
	}
	for in, want := range cases {
		assert.Equal(t, want, prompt.Parse(in), "input %q", in)
	}
}

func TestPublishMessage(t *testing.T) {
	p := prompt.PublishDraft("Chocolate Éclairs", "Baked goods")
	assert.Equal(t, `Ready to publish "Chocolate Éclairs" to the Baked goods menu?`, p.Message)
	assert.Equal(t, "Publish", p.Affirm)
}
