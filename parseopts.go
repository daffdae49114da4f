package complexpr

import (
	"strconv"
	"unicode"
)

// BuildOption is an option for building expression trees.
type BuildOption interface {
	buildOption(parsectx) parsectx
}

type (
	regopt struct {
		r *Registry
	}
	eofopt struct {
		c, s bool
		ws   string
	}
)

// parsectx holds general data for parsing.
type parsectx struct {
	// reg resolves function and constant names.
	reg *Registry
	// wseof is a string containing the whitespace characters that trigger an
	// EOF token from the lexer.
	wseof string
	// ceof and seof indicate whether commas and semicolons, respectively, are
	// allowed at the end of an expression.
	ceof, seof bool
}

// WithRegistry sets the registry used to resolve names. The default is
// Builtins. Names that the registry does not know are variables.
func WithRegistry(r *Registry) BuildOption {
	return &regopt{r}
}

func (o *regopt) buildOption(p parsectx) parsectx {
	p.reg = o.r
	return p
}

// StopOn tells the parser to treat a list of characters as ending the
// expression. Each rune must be a comma, semicolon, or whitespace codepoint.
// Whitespace does not end an expression where a term is expected, e.g. at the
// beginning of an expression or following an operator or bracket. Commas and
// semicolons do not end expressions inside function argument lists or matrix
// literals.
//
// StopOn overrides the effect of any previous StopOn in the options. With no
// arguments, StopOn produces the default termination behavior, which is to
// parse to EOF.
func StopOn(chars ...rune) BuildOption {
	var o eofopt
	v := make([]rune, 0, len(chars))
	have := func(r rune) bool {
		for _, c := range v {
			if r == c {
				return true
			}
		}
		return false
	}
	for _, r := range chars {
		switch {
		case r == ',':
			o.c = true
		case r == ';':
			o.s = true
		case unicode.IsSpace(r):
			if have(r) {
				continue
			}
			v = append(v, r)
		default:
			panic("complexpr: cannot stop on " + strconv.QuoteRune(r))
		}
	}
	o.ws = string(v)
	return &o
}

func (o *eofopt) buildOption(p parsectx) parsectx {
	p.ceof = o.c
	p.seof = o.s
	p.wseof = o.ws
	return p
}
