package syntax

import "fmt"

// Node is a vertex of the syntax tree. Tokens are leaves.
type Node interface {
	Kind() Kind
	Children() []Node
	node()
}

// Expression is the closed set of expression nodes:
// *LiteralExpr, *UnaryExpr, *BinaryExpr and *ParenExpr.
type Expression interface {
	Node
	expression()
}

// Token is an immutable lexical unit.
type Token struct {
	kind     Kind
	position int
	text     string
	value    any
}

// NewToken returns a token of kind at position. value is nil unless the lexer resolved one.
func NewToken(kind Kind, position int, text string, value any) Token {
	return Token{kind: kind, position: position, text: text, value: value}
}

func (t Token) Kind() Kind {
	return t.kind
}

// Position is the byte offset of the token in the source.
func (t Token) Position() int {
	return t.position
}

func (t Token) Text() string {
	return t.text
}

func (t Token) Value() any {
	return t.value
}

// Span is the half-open byte range covered by the token.
func (t Token) Span() (begin, end int) {
	return t.position, t.position + len(t.text)
}

func (t Token) Children() []Node {
	return nil
}

func (t Token) node() {}

func (t Token) String() string {
	if t.text == "" {
		return t.kind.String()
	}
	return fmt.Sprintf("%s %q", t.kind, t.text)
}

type LiteralExpr struct {
	LiteralToken Token
	Value        any
}

type UnaryExpr struct {
	OperatorToken Token
	Operand       Expression
}

type BinaryExpr struct {
	Left          Expression
	OperatorToken Token
	Right         Expression
}

type ParenExpr struct {
	OpenParenthesisToken  Token
	Expression            Expression
	CloseParenthesisToken Token
}

var (
	_ Expression = (*LiteralExpr)(nil)
	_ Expression = (*UnaryExpr)(nil)
	_ Expression = (*BinaryExpr)(nil)
	_ Expression = (*ParenExpr)(nil)
)

func (*LiteralExpr) Kind() Kind { return LiteralExpression }
func (*UnaryExpr) Kind() Kind   { return UnaryExpression }
func (*BinaryExpr) Kind() Kind  { return BinaryExpression }
func (*ParenExpr) Kind() Kind   { return ParenthesizedExpression }

func (e *LiteralExpr) Children() []Node {
	return []Node{e.LiteralToken}
}

func (e *UnaryExpr) Children() []Node {
	return []Node{e.OperatorToken, e.Operand}
}

func (e *BinaryExpr) Children() []Node {
	return []Node{e.Left, e.OperatorToken, e.Right}
}

func (e *ParenExpr) Children() []Node {
	return []Node{e.OpenParenthesisToken, e.Expression, e.CloseParenthesisToken}
}

func (*LiteralExpr) node() {}
func (*UnaryExpr) node()   {}
func (*BinaryExpr) node()  {}
func (*ParenExpr) node()   {}

func (*LiteralExpr) expression() {}
func (*UnaryExpr) expression()   {}
func (*BinaryExpr) expression()  {}
func (*ParenExpr) expression()   {}

// Leaves returns the tokens under n in source order.
func Leaves(n Node) []Token {
	var tokens []Token
	var walk func(Node)
	walk = func(n Node) {
		if tok, ok := n.(Token); ok {
			tokens = append(tokens, tok)
			return
		}
		for _, child := range n.Children() {
			walk(child)
		}
	}
	walk(n)
	return tokens
}
