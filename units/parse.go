// SPDX-License-Identifier: MIT
//
// File: parse.go
// Role: Unit-expression and value-literal parsing.
// Policy:
//   - Recursive descent over a small token stream; no regexp in the grammar.
//   - Every failure wraps ErrMalformedUnit with the offending input.
//
// Grammar:
//
//	expr    := term { ('*' | '/' | <implicit>) term }
//	term    := primary [ ('**' | '^') exponent ]
//	primary := name | number | '(' expr ')'
//
// Implicit multiplication applies when two terms are separated only by
// whitespace ("tesla meter"). '*' '/' and implicit products share one
// precedence level and associate left.

package units

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokName
	tokNumber
	tokMul
	tokDiv
	tokPow
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	num  float64
	pos  int
}

// lex splits s into tokens. Whitespace only separates tokens.
func lex(s string) ([]token, error) {
	var toks []token
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == '*':
			if strings.HasPrefix(s[i:], "**") {
				toks = append(toks, token{kind: tokPow, text: "**", pos: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokMul, text: "*", pos: i})
				i++
			}
		case r == '^':
			toks = append(toks, token{kind: tokPow, text: "^", pos: i})
			i++
		case r == '/':
			toks = append(toks, token{kind: tokDiv, text: "/", pos: i})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case r == '-' || r == '+' || r == '.' || unicode.IsDigit(r):
			n := scanNumber(s[i:])
			if n == 0 {
				return nil, fmt.Errorf("%w: unexpected %q at %d in %q", ErrMalformedUnit, r, i, s)
			}
			v, err := strconv.ParseFloat(s[i:i+n], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q in %q", ErrMalformedUnit, s[i:i+n], s)
			}
			toks = append(toks, token{kind: tokNumber, text: s[i : i+n], num: v, pos: i})
			i += n
		case unicode.IsLetter(r) || r == 'µ' || r == 'Ω' || r == '_':
			start := i
			for i < len(s) {
				r, size = utf8.DecodeRuneInString(s[i:])
				if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
					break
				}
				i += size
			}
			toks = append(toks, token{kind: tokName, text: s[start:i], pos: start})
		default:
			return nil, fmt.Errorf("%w: unexpected %q at %d in %q", ErrMalformedUnit, r, i, s)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(s)})

	return toks, nil
}

// scanNumber returns the byte length of the numeric literal at the start of s
// (optional sign, digits, fraction, exponent), or 0 if there is none.
func scanNumber(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	// Exponent only when followed by at least one digit, so "2e" stays "2" + name.
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}

	return i
}

type parser struct {
	src  string
	toks []token
	at   int
}

func (p *parser) peek() token { return p.toks[p.at] }

func (p *parser) next() token {
	t := p.toks[p.at]
	if t.kind != tokEOF {
		p.at++
	}

	return t
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s in %q", ErrMalformedUnit, fmt.Sprintf(format, args...), p.src)
}

func (p *parser) expr() (Unit, error) {
	left, err := p.term()
	if err != nil {
		return Unit{}, err
	}
	for {
		switch t := p.peek(); t.kind {
		case tokMul:
			p.next()
			right, err := p.term()
			if err != nil {
				return Unit{}, err
			}
			left = left.mul(right)
		case tokDiv:
			p.next()
			right, err := p.term()
			if err != nil {
				return Unit{}, err
			}
			left = left.div(right)
		case tokName, tokNumber, tokLParen:
			right, err := p.term()
			if err != nil {
				return Unit{}, err
			}
			left = left.mul(right)
		default:
			return left, nil
		}
	}
}

func (p *parser) term() (Unit, error) {
	base, err := p.primary()
	if err != nil {
		return Unit{}, err
	}
	if p.peek().kind != tokPow {
		return base, nil
	}
	p.next()

	if p.peek().kind == tokLParen {
		// "m**(-2)"
		p.next()
		e := p.next()
		if e.kind != tokNumber || p.next().kind != tokRParen {
			return Unit{}, p.errorf("bad exponent")
		}
		return p.pow(base, e.num)
	}
	e := p.next()
	if e.kind != tokNumber {
		return Unit{}, p.errorf("exponent expected at %d", e.pos)
	}

	return p.pow(base, e.num)
}

func (p *parser) pow(base Unit, x float64) (Unit, error) {
	u, ok := base.pow(x)
	if !ok {
		return Unit{}, p.errorf("fractional exponent %g", x)
	}

	return u, nil
}

func (p *parser) primary() (Unit, error) {
	switch t := p.next(); t.kind {
	case tokName:
		nu, ok := unitTable[t.text]
		if !ok {
			return Unit{}, p.errorf("unknown unit %q", t.text)
		}
		return Unit{factor: nu.factor, dim: nu.dim}, nil
	case tokNumber:
		return Unit{factor: t.num}, nil
	case tokLParen:
		u, err := p.expr()
		if err != nil {
			return Unit{}, err
		}
		if p.next().kind != tokRParen {
			return Unit{}, p.errorf("missing ')'")
		}
		return u, nil
	default:
		return Unit{}, p.errorf("unexpected %q at %d", t.text, t.pos)
	}
}

func (u Unit) mul(o Unit) Unit {
	return Unit{factor: u.Factor() * o.Factor(), dim: u.dim.mul(o.dim)}
}

func (u Unit) div(o Unit) Unit {
	return Unit{factor: u.Factor() / o.Factor(), dim: u.dim.div(o.dim)}
}

func (u Unit) pow(x float64) (Unit, bool) {
	d, ok := u.dim.scale(x)
	if !ok {
		return Unit{}, false
	}

	return Unit{factor: math.Pow(u.Factor(), x), dim: d}, true
}

// ParseUnit parses a unit expression such as "kg / m**3" or "N*s/m".
// An empty string and "dimensionless" both yield Dimensionless.
func ParseUnit(expr string) (Unit, error) {
	s := strings.TrimSpace(expr)
	if s == "" || s == "dimensionless" {
		return Dimensionless, nil
	}
	toks, err := lex(s)
	if err != nil {
		return Unit{}, err
	}
	p := &parser{src: s, toks: toks}
	u, err := p.expr()
	if err != nil {
		return Unit{}, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return Unit{}, p.errorf("trailing %q at %d", t.text, t.pos)
	}
	if math.IsInf(u.factor, 0) || math.IsNaN(u.factor) || u.factor == 0 {
		return Unit{}, p.errorf("degenerate factor")
	}
	u.expr = s

	return u, nil
}

// MustParseUnit is ParseUnit that panics on error; for package-level tables.
func MustParseUnit(expr string) Unit {
	u, err := ParseUnit(expr)
	if err != nil {
		panic(err)
	}

	return u
}

// Parse parses a value literal: an optional leading magnitude followed by a
// unit expression ("345 m/s", "10 cm ** 2", "4 ohm", "0.5", "(1/5000)s",
// "50/s").
// A missing magnitude defaults to 1.
func Parse(s string) (Value, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Value{}, fmt.Errorf("%w: empty value", ErrMalformedUnit)
	}
	mag := 1.0
	if n := scanNumber(t); n > 0 {
		v, err := strconv.ParseFloat(t[:n], 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: bad magnitude %q", ErrMalformedUnit, t[:n])
		}
		mag = v
		t = strings.TrimSpace(t[n:])
		// "50/s": the magnitude was also the numerator.
		if strings.HasPrefix(t, "/") || (strings.HasPrefix(t, "*") && !strings.HasPrefix(t, "**")) {
			t = "1" + t
		}
	}
	u, err := ParseUnit(t)
	if err != nil {
		return Value{}, err
	}

	return New(mag, u), nil
}

// MustParse is Parse that panics on error.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return v
}
