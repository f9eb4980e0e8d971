package syntax

import "strconv"

// Kind classifies both tokens and syntax nodes.
type Kind int

const (
	BadToken Kind = iota
	EndOfFileToken
	WhitespaceToken
	NumberToken
	IdentifierToken

	PlusToken
	MinusToken
	StarToken
	SlashToken
	BangToken
	AmpersandAmpersandToken
	PipePipeToken
	EqualsEqualsToken
	BangEqualsToken
	OpenParenthesisToken
	CloseParenthesisToken

	TrueKeyword
	FalseKeyword

	LiteralExpression
	UnaryExpression
	BinaryExpression
	ParenthesizedExpression
)

var kindNames = map[Kind]string{
	BadToken:                "BadToken",
	EndOfFileToken:          "EndOfFileToken",
	WhitespaceToken:         "WhitespaceToken",
	NumberToken:             "NumberToken",
	IdentifierToken:         "IdentifierToken",
	PlusToken:               "PlusToken",
	MinusToken:              "MinusToken",
	StarToken:               "StarToken",
	SlashToken:              "SlashToken",
	BangToken:               "BangToken",
	AmpersandAmpersandToken: "AmpersandAmpersandToken",
	PipePipeToken:           "PipePipeToken",
	EqualsEqualsToken:       "EqualsEqualsToken",
	BangEqualsToken:         "BangEqualsToken",
	OpenParenthesisToken:    "OpenParenthesisToken",
	CloseParenthesisToken:   "CloseParenthesisToken",
	TrueKeyword:             "TrueKeyword",
	FalseKeyword:            "FalseKeyword",
	LiteralExpression:       "LiteralExpression",
	UnaryExpression:         "UnaryExpression",
	BinaryExpression:        "BinaryExpression",
	ParenthesizedExpression: "ParenthesizedExpression",
}

// fixed spellings of the punctuation and keyword kinds
var kindTexts = map[Kind]string{
	PlusToken:               "+",
	MinusToken:              "-",
	StarToken:               "*",
	SlashToken:              "/",
	BangToken:               "!",
	AmpersandAmpersandToken: "&&",
	PipePipeToken:           "||",
	EqualsEqualsToken:       "==",
	BangEqualsToken:         "!=",
	OpenParenthesisToken:    "(",
	CloseParenthesisToken:   ")",
	TrueKeyword:             "true",
	FalseKeyword:            "false",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Text returns the fixed spelling of k, or "" if k has none (numbers, identifiers, nodes).
func (k Kind) Text() string {
	return kindTexts[k]
}

// IsToken reports whether k is a lexical kind rather than a node kind.
func (k Kind) IsToken() bool {
	return k >= BadToken && k < LiteralExpression
}

// IsOperatorCandidate reports whether k may appear in an operator table. Trivia and
// the EndOfFileToken never advance the parser and are excluded.
func (k Kind) IsOperatorCandidate() bool {
	switch k {
	case BadToken, EndOfFileToken, WhitespaceToken:
		return false
	}
	return k.IsToken()
}
