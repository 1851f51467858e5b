package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grcdash/fbk/internal/models"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced no lang", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"whitespace", "  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.in))
		})
	}
}

func TestBuildTriagePrompt(t *testing.T) {
	system, user := buildTriagePrompt("Export times out", "CSV export of the risk register hangs")
	assert.Contains(t, system, `"category"`)
	assert.Contains(t, user, "Export times out")
	assert.Contains(t, user, "risk register")
}

func TestBuildDigestPrompt_IncludesEveryItem(t *testing.T) {
	items := []models.Feedback{
		{Title: "one", Category: models.CategoryBug, Priority: models.PriorityHigh, Votes: 3},
		{Title: "two", Category: models.CategoryFeature, Priority: models.PriorityLow, Comments: 2},
	}
	_, user := buildDigestPrompt(items)
	assert.Contains(t, user, "one")
	assert.Contains(t, user, "two")
	assert.Equal(t, 2, strings.Count(user, "- ["))
}
