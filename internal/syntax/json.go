package syntax

import "github.com/goccy/go-json"

type tokenJSON struct {
	Kind     string `json:"kind"`
	Position int    `json:"position"`
	Text     string `json:"text"`
	Value    any    `json:"value,omitempty"`
}

type expressionJSON struct {
	Kind     string `json:"kind"`
	Value    any    `json:"value,omitempty"`
	Children []Node `json:"children"`
}

type resultJSON struct {
	Diagnostics []string   `json:"diagnostics"`
	Root        Expression `json:"root"`
	EndOfFile   Token      `json:"endOfFile"`
}

func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(tokenJSON{
		Kind:     t.kind.String(),
		Position: t.position,
		Text:     t.text,
		Value:    t.value,
	})
}

func (e *LiteralExpr) MarshalJSON() ([]byte, error) {
	return json.Marshal(expressionJSON{Kind: e.Kind().String(), Value: e.Value, Children: e.Children()})
}

func (e *UnaryExpr) MarshalJSON() ([]byte, error) {
	return marshalExpression(e)
}

func (e *BinaryExpr) MarshalJSON() ([]byte, error) {
	return marshalExpression(e)
}

func (e *ParenExpr) MarshalJSON() ([]byte, error) {
	return marshalExpression(e)
}

func marshalExpression(e Expression) ([]byte, error) {
	return json.Marshal(expressionJSON{Kind: e.Kind().String(), Children: e.Children()})
}

func (r *Result) MarshalJSON() ([]byte, error) {
	diagnostics := r.Diagnostics
	if diagnostics == nil {
		diagnostics = []string{}
	}
	return json.Marshal(resultJSON{
		Diagnostics: diagnostics,
		Root:        r.Root,
		EndOfFile:   r.EndOfFile,
	})
}
