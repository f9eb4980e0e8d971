package syntax

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/k0kubun/pp"
)

var parserDebugLog = false

func init() {
	if v, err := strconv.ParseBool(os.Getenv("EXPRTREE_PARSER_DEBUG")); v && err == nil {
		parserDebugLog = true
	}
}

// Result is the outcome of one parse. The tree is always present; the parse
// succeeded only if Diagnostics is empty.
type Result struct {
	Diagnostics []string
	Root        Expression
	EndOfFile   Token
}

func (r *Result) OK() bool {
	return len(r.Diagnostics) == 0
}

type Option func(*Parser)

// WithOperators replaces the default precedence tables.
func WithOperators(t *OperatorTable) Option {
	return func(p *Parser) {
		if t != nil {
			p.operators = t
		}
	}
}

// WithDebug traces the parse to the standard logger.
func WithDebug(debug bool) Option {
	return func(p *Parser) {
		p.debug = p.debug || debug
	}
}

// Parser is a precedence-climbing parser over a TokenBuffer. A Parser is single-use.
type Parser struct {
	buf         *TokenBuffer
	cursor      Cursor
	operators   *OperatorTable
	diagnostics []string
	debug       bool
}

func NewParser(buf *TokenBuffer, opts ...Option) *Parser {
	p := &Parser{
		buf:       buf,
		cursor:    buf.Cursor(),
		operators: &defaultOperators,
		debug:     parserDebugLog,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse lexes source and parses it as one expression.
func Parse(source string, opts ...Option) *Result {
	return NewParser(NewTokenBuffer(NewLexer(source)), opts...).Parse()
}

// ParseTokens parses tokens produced by an external lexer.
func ParseTokens(tokens []Token, opts ...Option) *Result {
	return NewParser(NewTokenBufferFromTokens(tokens), opts...).Parse()
}

// Cursor returns a copy of the parser's current read position.
func (p *Parser) Cursor() Cursor {
	return p.cursor
}

// Diagnostics returns the parser's own diagnostics recorded so far.
func (p *Parser) Diagnostics() []string {
	return p.diagnostics
}

// Parse parses exactly one expression followed by the end of input.
func (p *Parser) Parse() *Result {
	root := p.ParseExpression(0)
	eof := p.MatchToken(EndOfFileToken)

	diagnostics := append(p.buf.Diagnostics(), p.diagnostics...)
	result := &Result{
		Diagnostics: diagnostics,
		Root:        root,
		EndOfFile:   eof,
	}
	if p.debug {
		pp.Println(result.Diagnostics)
		log.Print("tree:\n" + Sprint(root))
	}
	return result
}

// ParseExpression parses an expression whose operators all bind tighter than parentPrecedence.
func (p *Parser) ParseExpression(parentPrecedence int) Expression {
	var left Expression
	if prec := p.operators.UnaryPrecedence(p.cursor.Current().Kind()); prec != 0 && prec >= parentPrecedence {
		operator := p.cursor.Advance()
		if p.debug {
			log.Println("unary operator: ", operator, "precedence: ", prec)
		}
		operand := p.ParseExpression(prec)
		left = &UnaryExpr{OperatorToken: operator, Operand: operand}
	} else {
		left = p.ParsePrimaryExpression()
	}

	for {
		prec := p.operators.BinaryPrecedence(p.cursor.Current().Kind())
		if prec == 0 || prec <= parentPrecedence {
			return left
		}

		operator := p.cursor.Advance()
		if p.debug {
			log.Println("binary operator: ", operator, "precedence: ", prec, "parent: ", parentPrecedence)
		}
		right := p.ParseExpression(prec)
		left = &BinaryExpr{Left: left, OperatorToken: operator, Right: right}
	}
}

func (p *Parser) ParsePrimaryExpression() Expression {
	switch p.cursor.Current().Kind() {
	case OpenParenthesisToken:
		open := p.cursor.Advance()
		expr := p.ParseExpression(0)
		closing := p.MatchToken(CloseParenthesisToken)
		return &ParenExpr{
			OpenParenthesisToken:  open,
			Expression:            expr,
			CloseParenthesisToken: closing,
		}

	case TrueKeyword, FalseKeyword:
		keyword := p.cursor.Advance()
		return &LiteralExpr{LiteralToken: keyword, Value: keyword.Kind() == TrueKeyword}

	default:
		number := p.MatchToken(NumberToken)
		return &LiteralExpr{LiteralToken: number, Value: number.Value()}
	}
}

// MatchToken consumes the current token if it is of kind. Otherwise it records a
// diagnostic and returns a placeholder of kind without moving the cursor.
func (p *Parser) MatchToken(kind Kind) Token {
	current := p.cursor.Current()
	if current.Kind() == kind {
		return p.cursor.Advance()
	}

	p.diagnostics = append(p.diagnostics, fmt.Sprintf("Unexpected token: <%s>, expected <%s>", current.Kind(), kind))
	if p.debug {
		log.Println("unexpected token: ", current, "at", current.Position())
	}
	return NewToken(kind, current.Position(), "", nil)
}
