package aiclients

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bare object",
			in:   `{"a": 1}`,
			want: `{"a": 1}`,
		},
		{
			name: "fenced object",
			in:   "```json\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "uppercase fence",
			in:   "```JSON\n{\"a\": 1}\n```",
			want: `{"a": 1}`,
		},
		{
			name: "surrounding prose",
			in:   "Here is your persona:\n{\"a\": 1}\nHope that helps!",
			want: `{"a": 1}`,
		},
		{
			name: "array payload",
			in:   `The sections are: [{"main": "x"}, {"main": "y"}] as requested`,
			want: `[{"main": "x"}, {"main": "y"}]`,
		},
		{
			name: "object before array wins",
			in:   `{"items": [1, 2]} trailing [3]`,
			want: `{"items": [1, 2]}`,
		},
		{
			name: "braces inside strings are ignored",
			in:   `{"text": "use {curly} braces"}`,
			want: `{"text": "use {curly} braces"}`,
		},
		{
			name: "escaped quotes inside strings",
			in:   `{"text": "she said \"hi\" {"}`,
			want: `{"text": "she said \"hi\" {"}`,
		},
		{
			name: "nested objects",
			in:   `{"outer": {"inner": {"deep": true}}}`,
			want: `{"outer": {"inner": {"deep": true}}}`,
		},
		{
			name: "unbalanced object",
			in:   `{"a": {"b": 1}`,
			want: "",
		},
		{
			name: "no json at all",
			in:   "Sorry, I cannot help with that.",
			want: "",
		},
		{
			name: "empty input",
			in:   "",
			want: "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractJSON(tc.in))
		})
	}
}
