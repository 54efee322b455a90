package symath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrParse is the sentinel for malformed expression text.
var ErrParse = errors.New("symath: parse error")

// ParseError reports malformed input with the byte offset of the problem.
type ParseError struct {
	Pos    int
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at position %d: %s", e.Pos, e.Detail)
}

func (e *ParseError) Unwrap() error { return ErrParse }

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	pos  int
	text string
	val  float64
}

type lexer struct {
	src    string
	pos    int
	tokens []token
}

func (l *lexer) fail(pos int, format string, args ...any) error {
	return &ParseError{Pos: pos, Detail: fmt.Sprintf(format, args...)}
}

func (l *lexer) run() error {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t':
			l.pos++
		case c == '+':
			l.push(tokPlus, "+")
		case c == '-':
			l.push(tokMinus, "-")
		case c == '*':
			if strings.HasPrefix(l.src[l.pos:], "**") {
				l.tokens = append(l.tokens, token{kind: tokCaret, pos: l.pos, text: "**"})
				l.pos += 2
			} else {
				l.push(tokStar, "*")
			}
		case c == '/':
			l.push(tokSlash, "/")
		case c == '^':
			l.push(tokCaret, "^")
		case c == '(':
			l.push(tokLParen, "(")
		case c == ')':
			l.push(tokRParen, ")")
		case c >= '0' && c <= '9' || c == '.':
			if err := l.lexNumber(); err != nil {
				return err
			}
		case unicode.IsLetter(rune(c)) || c == '_':
			l.lexIdent()
		default:
			return l.fail(l.pos, "unexpected character %q", string(c))
		}
	}
	l.tokens = append(l.tokens, token{kind: tokEOF, pos: len(l.src)})
	return nil
}

func (l *lexer) push(k tokenKind, text string) {
	l.tokens = append(l.tokens, token{kind: k, pos: l.pos, text: text})
	l.pos++
}

func (l *lexer) lexNumber() error {
	start := l.pos
	for l.pos < len(l.src) && (l.src[l.pos] >= '0' && l.src[l.pos] <= '9' || l.src[l.pos] == '.') {
		l.pos++
	}
	// Scientific notation: e/E followed by an optionally signed digit run.
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		rest := l.src[l.pos+1:]
		if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
			rest = rest[1:]
		}
		if len(rest) > 0 && rest[0] >= '0' && rest[0] <= '9' {
			l.pos++
			if l.src[l.pos] == '+' || l.src[l.pos] == '-' {
				l.pos++
			}
			for l.pos < len(l.src) && l.src[l.pos] >= '0' && l.src[l.pos] <= '9' {
				l.pos++
			}
		}
	}
	text := l.src[start:l.pos]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return l.fail(start, "invalid number %q", text)
	}
	l.tokens = append(l.tokens, token{kind: tokNumber, pos: start, text: text, val: v})
	return nil
}

func (l *lexer) lexIdent() {
	start := l.pos
	for l.pos < len(l.src) && (unicode.IsLetter(rune(l.src[l.pos])) || unicode.IsDigit(rune(l.src[l.pos])) || l.src[l.pos] == '_') {
		l.pos++
	}
	l.tokens = append(l.tokens, token{kind: tokIdent, pos: start, text: l.src[start:l.pos]})
}

// Parse converts expression text into a simplified tree. The grammar accepts
// numeric literals, identifiers, + - * / ^ (or **), and parentheses, with the
// usual precedence and a right-associative power operator. Identifiers that
// are not function names or the constants pi/e become free variables; callers
// decide which variables are acceptable.
func Parse(src string) (Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, &ParseError{Pos: 0, Detail: "empty expression"}
	}
	l := &lexer{src: src}
	if err := l.run(); err != nil {
		return nil, err
	}
	p := &parser{tokens: l.tokens}
	e, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, &ParseError{Pos: t.pos, Detail: fmt.Sprintf("unexpected %q", t.text)}
	}
	return Simplify(e), nil
}

type parser struct {
	tokens []token
	idx    int
}

func (p *parser) peek() token { return p.tokens[p.idx] }

func (p *parser) next() token {
	t := p.tokens[p.idx]
	if t.kind != tokEOF {
		p.idx++
	}
	return t
}

func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokPlus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = Add(left, right)
		case tokMinus:
			p.next()
			right, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			left = Add(left, Neg(right))
		default:
			return left, nil
		}
	}
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case tokStar:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = Mul(left, right)
		case tokSlash:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = Div(left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	switch p.peek().kind {
	case tokMinus:
		p.next()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Neg(e), nil
	case tokPlus:
		p.next()
		return p.parseUnary()
	default:
		return p.parsePower()
	}
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokCaret {
		return base, nil
	}
	p.next()
	// Right-associative, and the exponent may carry a unary sign: x^-2.
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return Pow(base, exp), nil
}

func (p *parser) parseAtom() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return Num(t.val), nil
	case tokLParen:
		e, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, &ParseError{Pos: closing.pos, Detail: "missing closing parenthesis"}
		}
		return e, nil
	case tokIdent:
		if p.peek().kind == tokLParen {
			if !IsFunc(t.text) {
				return nil, &ParseError{Pos: t.pos, Detail: fmt.Sprintf("unknown function %q", t.text)}
			}
			p.next()
			arg, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			if closing := p.next(); closing.kind != tokRParen {
				return nil, &ParseError{Pos: closing.pos, Detail: "missing closing parenthesis"}
			}
			return Fn(t.text, arg), nil
		}
		switch t.text {
		case "pi":
			return Pi, nil
		case "e":
			return E, nil
		default:
			return Sym(t.text), nil
		}
	case tokEOF:
		return nil, &ParseError{Pos: t.pos, Detail: "unexpected end of expression"}
	default:
		return nil, &ParseError{Pos: t.pos, Detail: fmt.Sprintf("unexpected %q", t.text)}
	}
}
