package syntax_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/exprtree/internal/syntax"
)

func TestResultMarshalJSON(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		source   string
		expected string
	}{
		{
			source: "-1",
			expected: `{
				"diagnostics": [],
				"root": {"kind": "UnaryExpression", "children": [
					{"kind": "MinusToken", "position": 0, "text": "-"},
					{"kind": "LiteralExpression", "value": 1, "children": [
						{"kind": "NumberToken", "position": 1, "text": "1", "value": 1}
					]}
				]},
				"endOfFile": {"kind": "EndOfFileToken", "position": 2, "text": ""}
			}`,
		},
		{
			source: "(false",
			expected: `{
				"diagnostics": ["Unexpected token: <EndOfFileToken>, expected <CloseParenthesisToken>"],
				"root": {"kind": "ParenthesizedExpression", "children": [
					{"kind": "OpenParenthesisToken", "position": 0, "text": "("},
					{"kind": "LiteralExpression", "value": false, "children": [
						{"kind": "FalseKeyword", "position": 1, "text": "false", "value": false}
					]},
					{"kind": "CloseParenthesisToken", "position": 6, "text": ""}
				]},
				"endOfFile": {"kind": "EndOfFileToken", "position": 6, "text": ""}
			}`,
		},
	} {
		tt := tt
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			b, err := json.Marshal(syntax.Parse(tt.source))
			if err != nil {
				t.Fatal(err)
			}

			var got, expected any
			if err := json.Unmarshal(b, &got); err != nil {
				t.Fatal(err)
			}
			if err := json.Unmarshal([]byte(tt.expected), &expected); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(expected, got); diff != "" {
				t.Errorf("JSON mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
