package complexpr

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zephyrtronium/complexpr/cmat"
)

// Expr = num | name | Call | Matrix | Neg | Plus | Add | Sub | Mul | Div | Pow | '(' Expr ')' | '[' Expr ']'
// Call = funcname '(' [ Expr { ',' Expr } ] ')' | funcname '[' [ Expr { ',' Expr } ] ']'
// Matrix = '{' [ Row { ';' Row } ] '}'
// Row = Expr { ',' Expr }
// Neg = '-' Expr
// Plus = '+' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr | Expr '×' Expr | Expr Expr
// Div = Expr '/' Expr | Expr '÷' Expr
// Pow = Expr '^' Expr

// literalName is the name of matrix literal nodes.
const literalName = "{}"

// BuildTree parses an expression from a string.
func BuildTree(text string, opts ...BuildOption) (*Expr, error) {
	return Parse(strings.NewReader(text), opts...)
}

// Parse parses an expression so it can be evaluated. The given options are
// applied in order.
func Parse(src io.RuneScanner, opts ...BuildOption) (*Expr, error) {
	scan := lex(src)
	var p parsectx
	for _, opt := range opts {
		p = opt.buildOption(p)
	}
	if p.reg == nil {
		p.reg = Builtins()
	}
	n, err := parseterm(scan, &p, exprprec)
	if err != nil {
		return nil, err
	}
	tok := scan.must()
	switch tok.kind {
	case tokenEOF:
	case tokenSep:
		switch {
		case p.ceof && tok.text == ",":
		case p.seof && tok.text == ";":
		default:
			return nil, itShouldNotHaveEndedThisWay(tok, -1)
		}
	default:
		return nil, itShouldNotHaveEndedThisWay(tok, -1)
	}
	if n == nil {
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	}
	return &Expr{root: n}, nil
}

// parseterm parses a single term. If there is no error, then parseterm pushes
// the last token it scans, including EOF. If the input is an empty
// subexpression, the result is nil with no error; callers must create an error
// in contexts where empty subexpressions are illegal.
func parseterm(scan *lexer, p *parsectx, until operator) (*Node, error) {
	n, err := parselhs(scan, p, until)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, nil
	}
	for {
		tok, err := scan.next(p.wseof)
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenNum, tokenIdent, tokenOpen:
			// (parsed) x -> (parsed) * (x)
			// (parsed) x^(expr) -> (parsed) * (x^(expr))
			// a^(parsed) x -> (a^(parsed)) * (x)
			// (parsed) (expr) -> (parsed) * (expr)
			scan.push(tok)
			if !termprec.moreBinding(until) {
				return n, nil
			}
			rhs, err := parseterm(scan, p, termprec)
			if err != nil {
				return nil, err
			}
			n = NewBinary(termprec.name, termprec.bin, n, rhs)
		case tokenOp:
			// Binary operator.
			prec := binop(tok.text)
			if prec.name == "" {
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				scan.push(tok)
				return n, nil
			}
			rhs, err := parseterm(scan, p, prec)
			if err != nil {
				return nil, err
			}
			if rhs == nil {
				return nil, emptyOperand(scan)
			}
			n = NewBinary(prec.name, prec.bin, n, rhs)
		case tokenClose, tokenSep, tokenEOF:
			// End of expression.
			scan.push(tok)
			return n, nil
		default:
			panic("complexpr: unknown token: " + tok.String())
		}
	}
}

// parselhs parses the first component of a term. I.e., operators are unary,
// any encountered token must be valid as the start of a subexpression, and
// whitespace normally lexed as EOF is ignored.
func parselhs(scan *lexer, p *parsectx, until operator) (*Node, error) {
	// Don't use EOF whitespace for LHS.
	tok, err := scan.next("")
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		v, err := number(tok)
		if err != nil {
			return nil, err
		}
		return NewNamedConst(tok.text, v), nil
	case tokenIdent:
		return parseident(scan, p, tok)
	case tokenOp:
		// unary operator
		prec := unop(tok.text)
		if prec.name == "" {
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
		if !prec.moreBinding(until) {
			// x^-y -> x^(-y)
			// Just use the new operator's precedence to simplify.
			prec.prec, prec.right = until.prec, until.right
		}
		rhs, err := parseterm(scan, p, prec)
		if err != nil {
			return nil, err
		}
		if rhs == nil {
			return nil, emptyOperand(scan)
		}
		return NewUnary(prec.name, prec.un, rhs), nil
	case tokenOpen:
		if tok.text == "{" {
			return parseliteral(scan, p)
		}
		match := rightbracket(tok.text)
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose || end.text != closebrackets[match] {
			return nil, itShouldNotHaveEndedThisWay(end, match)
		}
		if rhs == nil {
			return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
		}
		return rhs, nil
	case tokenClose:
		// This might be part of f(), so just let the caller decide what to do.
		scan.push(tok)
		return nil, nil
	case tokenSep:
		switch tok.text {
		case ",":
			if p.ceof {
				scan.push(tok)
				return nil, nil
			}
		case ";":
			if p.seof {
				scan.push(tok)
				return nil, nil
			}
		default:
			panic("complexpr: invalid separator " + strconv.Quote(tok.text))
		}
		return nil, &SeparatorError{Col: tok.pos, Sep: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos, End: ""}
	default:
		panic("complexpr: unknown token: " + tok.String())
	}
}

// emptyOperand creates the error for an operator followed by a token that
// ends the subexpression.
func emptyOperand(scan *lexer) error {
	end := scan.must()
	return &EmptyExpressionError{Col: end.pos, End: end.text}
}

// parseident parses a name. A name immediately followed by an open round or
// square bracket is a call. Otherwise, a registered name is a call with no
// arguments, and any other name is a variable.
func parseident(scan *lexer, p *parsectx, tok lexToken) (*Node, error) {
	// We respect whitespace here so that pi\nx doesn't string together
	// expressions.
	next, err := scan.next(p.wseof)
	if err != nil {
		return nil, err
	}
	if next.kind == tokenOpen && next.text != "{" && next.pos == tok.end() {
		args, err := parsearglist(scan, p, next.text)
		if err != nil {
			return nil, err
		}
		end := scan.must()
		if end.kind != tokenClose {
			panic("complexpr: parsearglist ended on " + end.String() + " instead of close bracket")
		}
		if end.text != closebrackets[rightbracket(next.text)] {
			return nil, &BracketError{Col: end.pos, Left: next.text, Right: end.text}
		}
		return resolve(p, tok, args)
	}
	scan.push(next)
	if _, ok := p.reg.Lookup(tok.text); ok {
		return resolve(p, tok, nil)
	}
	return NewVar(tok.text), nil
}

// resolve builds the node for a call through the registry.
func resolve(p *parsectx, tok lexToken, args []*Node) (*Node, error) {
	f, err := p.reg.Resolve(tok.text, len(args))
	if err != nil {
		return nil, &CallError{Col: tok.pos, Func: tok.text, Len: len(args), Err: err}
	}
	n := f(args)
	if n == nil {
		panic("complexpr: factory for " + tok.text + " built no node")
	}
	return n, nil
}

// parsearglist parses a comma-separated list of zero or more args following
// the open bracket left. The closing bracket is left pushed.
func parsearglist(scan *lexer, p *parsectx, left string) ([]*Node, error) {
	var args []*Node
	for {
		rhs, err := parseterm(scan, p, exprprec)
		if err != nil {
			// As a special case, reporting mismatched brackets is more helpful
			// than empty expression at the end of the input.
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: left}
			}
			return nil, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose:
			// Caller checks that brackets match.
			scan.push(end)
			if rhs == nil {
				// f() is allowed, but f(a,) isn't.
				if len(args) != 0 {
					return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
				}
				return nil, nil
			}
			return append(args, rhs), nil
		case tokenSep:
			if end.text != "," {
				return nil, &SeparatorError{Col: end.pos, Sep: end.text}
			}
			if rhs == nil {
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			args = append(args, rhs)
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: left, Right: ""}
		default:
			panic("complexpr: parsearglist ended on non-end token " + end.String())
		}
	}
}

// parseliteral parses the rows of a matrix literal after its open bracket.
// Commas separate elements and semicolons separate rows.
func parseliteral(scan *lexer, p *parsectx) (*Node, error) {
	var elems []*Node
	rows, cols, row := 0, -1, 0
	endrow := func(end lexToken) error {
		if cols < 0 {
			cols = row
		} else if row != cols {
			return &MatrixShapeError{Col: end.pos, Row: rows + 1, Want: cols, Got: row}
		}
		rows++
		row = 0
		return nil
	}
	for {
		el, err := parseterm(scan, p, exprprec)
		if err != nil {
			if ee, _ := err.(*EmptyExpressionError); ee != nil && ee.End == "" {
				err = &BracketError{Col: ee.Col, Left: "{"}
			}
			return nil, err
		}
		end := scan.must()
		switch end.kind {
		case tokenClose:
			if end.text != "}" {
				return nil, &BracketError{Col: end.pos, Left: "{", Right: end.text}
			}
			if el == nil {
				if len(elems) == 0 {
					// {} is the empty matrix.
					return newLiteral(0, 0, nil), nil
				}
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			elems = append(elems, el)
			row++
			if err := endrow(end); err != nil {
				return nil, err
			}
			return newLiteral(rows, cols, elems), nil
		case tokenSep:
			if el == nil {
				return nil, &EmptyExpressionError{Col: end.pos, End: end.text}
			}
			elems = append(elems, el)
			row++
			if end.text == ";" {
				if err := endrow(end); err != nil {
					return nil, err
				}
			}
		case tokenEOF:
			return nil, &BracketError{Col: end.pos, Left: "{", Right: ""}
		default:
			panic("complexpr: parseliteral ended on non-end token " + end.String())
		}
	}
}

// newLiteral creates a matrix literal node. Its elements must evaluate to
// scalars.
func newLiteral(rows, cols int, elems []*Node) *Node {
	n := NewNAry(literalName, func(args []Value) (Value, error) {
		zs := make([][]complex128, rows)
		for i := range zs {
			zs[i] = make([]complex128, cols)
		}
		for k, v := range args {
			z, err := v.Scalar()
			if err != nil {
				return Value{}, argn(k+1, err)
			}
			zs[k/cols][k%cols] = z
		}
		m, err := cmat.FromRows(zs)
		if err != nil {
			return Value{}, err
		}
		return NewMatrix(m), nil
	}, elems...)
	n.cols = cols
	return n
}

// number converts a number token to its value.
func number(tok lexToken) (Value, error) {
	s := tok.text
	if isInf(s) {
		return NewReal(math.Inf(1)), nil
	}
	im := strings.HasSuffix(s, "i")
	if im {
		s = s[:len(s)-1]
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if ne, _ := err.(*strconv.NumError); ne == nil || ne.Err != strconv.ErrRange {
			return Value{}, &LexError{Text: tok.text, Kind: "number", Col: tok.pos}
		}
	}
	if im {
		return NewScalar(complex(0, x)), nil
	}
	return NewReal(x), nil
}

// rightbracket gets the closing bracket index for an opening bracket.
func rightbracket(left string) int {
	r, sz := utf8.DecodeRuneInString(left)
	k := strings.IndexRune(OpenBrackets, r)
	if k < 0 || sz != len(left) {
		panic("complexpr: invalid bracket " + strconv.Quote(left))
	}
	return k
}

// leftbracket gets the opening bracket matching right. If right is no bracket,
// then the result is the empty string.
func leftbracket(right int) string {
	if right == -1 {
		return ""
	}
	return openbrackets[right]
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a subexpression. match is the bracket rune index that
// the expression should have matched, or -1 if none.
func itShouldNotHaveEndedThisWay(tok lexToken, match int) error {
	switch tok.kind {
	case tokenEOF:
		// Unexpected EOF implies an open bracket that was not closed.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: ""}
	case tokenClose:
		// A bracket could be the wrong bracket for the opening brace or any
		// bracket at the end of an input.
		return &BracketError{Col: tok.pos, Left: leftbracket(match), Right: tok.text}
	case tokenSep:
		// Separator outside a function call or matrix.
		return &SeparatorError{Col: tok.pos, Sep: tok.text}
	default:
		panic("complexpr: it really should not have ended this way: " + tok.String())
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// name is the canonical operator, or empty if there is no such operator.
	name string
	// bin and un are the operator's behavior as a binary or unary node.
	bin func(l, r Value) (Value, error)
	un  func(Value) (Value, error)
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result has an empty name.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{prec: 1, name: "+", bin: opAdd}
	case "-":
		return operator{prec: 1, name: "-", bin: opSub}
	case "*", "×":
		return operator{prec: 5, name: "*", bin: opMul}
	case "/", "÷":
		return operator{prec: 5, name: "/", bin: opDiv}
	case "^":
		return operator{prec: 15, right: true, name: "^", bin: opPow}
	default:
		return operator{}
	}
}

// unop gets a unary operator for a token string. If there is no such unary
// operator, then the result has an empty name.
func unop(text string) operator {
	switch text {
	case "+":
		return operator{prec: 10, right: true, name: "+", un: opPlus}
	case "-":
		return operator{prec: 10, right: true, name: "-", un: opNeg}
	default:
		return operator{}
	}
}

var (
	// termprec is the precedence of implicit multiplication. It matches that
	// of explicit multiplication.
	termprec = binop("*")
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{prec: -128, right: true}
)
