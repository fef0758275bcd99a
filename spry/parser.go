package spry

type parser struct {
	tokens []Token
	idx    int
	cur    Token

	// consumed counts every advance; parse tiers compare it across an
	// attempt so that an error from a deeper partial parse wins over a
	// shallower alternative's generic one.
	consumed int
}

// parse builds a single expression tree from the token stream. It succeeds
// only if the whole stream is consumed up to EOF.
func parse(tokens []Token) (Node, error) {
	p := &parser{tokens: tokens, cur: tokens[0]}

	node, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != tokenEOF {
		return nil, p.errorExpected("'+', '-', '*', '/', '**', '==', '!=', '<', '>', '<=', '>=', '&&' or '||'")
	}
	return node, nil
}

func (p *parser) advance() {
	p.idx++
	if p.idx < len(p.tokens) {
		p.cur = p.tokens[p.idx]
	}
	p.consumed++
}

func (p *parser) errorExpected(what string) error {
	return &InvalidSyntaxError{
		Message: "Expected " + what,
		Start:   p.cur.PosStart,
		End:     p.cur.PosEnd,
	}
}

// binOp is the one left-associative combinator behind every precedence tier:
// parse a left operand, then fold (op right)* while the operator is accepted.
// right defaults to left when nil; power passes a different one to stay
// right-associative.
func (p *parser) binOp(left func() (Node, error), ops []TokenType, right func() (Node, error)) (Node, error) {
	if right == nil {
		right = left
	}

	node, err := left()
	if err != nil {
		return nil, err
	}

	for p.currentIn(ops) {
		op := p.cur
		p.advance()
		r, err := right()
		if err != nil {
			return nil, err
		}
		node = &BinOpNode{Left: node, Op: op, Right: r}
	}
	return node, nil
}

func (p *parser) currentIn(ops []TokenType) bool {
	for _, tt := range ops {
		if p.cur.Type == tt {
			return true
		}
	}
	return false
}

// expr := 'var' IDENT '=' expr | comp_expr (('&&'|'||') comp_expr)*
func (p *parser) expr() (Node, error) {
	if p.cur.isKeyword("var") {
		start := p.cur.PosStart
		p.advance()
		if p.cur.Type != tokenIdent {
			return nil, p.errorExpected("identifier")
		}
		name := p.cur
		p.advance()
		if p.cur.Type != tokenEq {
			return nil, p.errorExpected("'='")
		}
		p.advance()
		value, err := p.expr()
		if err != nil {
			return nil, err
		}
		return &VarAssignNode{Name: name, Value: value, start: start}, nil
	}

	mark := p.consumed
	node, err := p.binOp(p.compExpr, []TokenType{tokenAnd, tokenOr}, nil)
	if err != nil {
		if p.consumed == mark {
			return nil, p.errorExpected("'var', int, float, identifier, '+', '-', '(', '[', 'if', 'for', 'while' or 'fun'")
		}
		return nil, err
	}
	return node, nil
}

// comp_expr := '!' comp_expr | arith_expr ((EE|NE|LT|GT|LTE|GTE) arith_expr)*
func (p *parser) compExpr() (Node, error) {
	if p.cur.Type == tokenBang {
		op := p.cur
		p.advance()
		operand, err := p.compExpr()
		if err != nil {
			return nil, err
		}
		return &UnaryOpNode{Op: op, Operand: operand}, nil
	}

	mark := p.consumed
	node, err := p.binOp(p.arithExpr, []TokenType{tokenEE, tokenNE, tokenLT, tokenGT, tokenLTE, tokenGTE}, nil)
	if err != nil {
		if p.consumed == mark {
			return nil, p.errorExpected("int, float, identifier, '+', '-', '(', '[', '!', 'if', 'for', 'while' or 'fun'")
		}
		return nil, err
	}
	return node, nil
}

// arith_expr := term (('+'|'-') term)*
func (p *parser) arithExpr() (Node, error) {
	return p.binOp(p.term, []TokenType{tokenPlus, tokenMinus}, nil)
}

// term := factor (('*'|'/') factor)*
func (p *parser) term() (Node, error) {
	return p.binOp(p.factor, []TokenType{tokenMul, tokenDiv}, nil)
}

// factor := ('+'|'-') factor | power
func (p *parser) factor() (Node, error) {
	if p.cur.Type == tokenPlus || p.cur.Type == tokenMinus {
		op := p.cur
		p.advance()
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &UnaryOpNode{Op: op, Operand: operand}, nil
	}
	return p.power()
}

// power := call ('**' factor)*
func (p *parser) power() (Node, error) {
	return p.binOp(p.call, []TokenType{tokenPow}, p.factor)
}

// call := atom ('(' (expr (',' expr)*)? ')')?
func (p *parser) call() (Node, error) {
	node, err := p.atom()
	if err != nil {
		return nil, err
	}

	if p.cur.Type != tokenLParen {
		return node, nil
	}
	p.advance()

	var args []Node
	if p.cur.Type != tokenRParen {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		for p.cur.Type == tokenComma {
			p.advance()
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		if p.cur.Type != tokenRParen {
			return nil, p.errorExpected("',' or ')'")
		}
	}
	end := p.cur.PosEnd
	p.advance()

	return &CallNode{Callee: node, Args: args, end: end}, nil
}

func (p *parser) atom() (Node, error) {
	switch {
	case p.cur.Type == tokenInt || p.cur.Type == tokenFloat:
		tok := p.cur
		p.advance()
		return &NumberNode{Tok: tok}, nil
	case p.cur.Type == tokenString:
		tok := p.cur
		p.advance()
		return &StringNode{Tok: tok}, nil
	case p.cur.Type == tokenIdent:
		tok := p.cur
		p.advance()
		return &VarAccessNode{Name: tok}, nil
	case p.cur.Type == tokenLParen:
		p.advance()
		node, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.cur.Type != tokenRParen {
			return nil, p.errorExpected("')'")
		}
		p.advance()
		return node, nil
	case p.cur.Type == tokenLSquare:
		return p.listExpr()
	case p.cur.isKeyword("if"):
		return p.ifExpr()
	case p.cur.isKeyword("for"):
		return p.forExpr()
	case p.cur.isKeyword("while"):
		return p.whileExpr()
	case p.cur.isKeyword("fun"):
		return p.funcDef()
	default:
		return nil, p.errorExpected("int, float, identifier, '+', '-', '(', '[', 'if', 'for', 'while' or 'fun'")
	}
}

// list_expr := '[' (expr (',' expr)*)? ']'
func (p *parser) listExpr() (Node, error) {
	start := p.cur.PosStart
	p.advance()

	var elements []Node
	if p.cur.Type != tokenRSquare {
		el, err := p.expr()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		for p.cur.Type == tokenComma {
			p.advance()
			el, err := p.expr()
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
		}
		if p.cur.Type != tokenRSquare {
			return nil, p.errorExpected("',' or ']'")
		}
	}
	end := p.cur.PosEnd
	p.advance()

	return &ListNode{Elements: elements, start: start, end: end}, nil
}

// if_expr := 'if' expr 'then' expr ('elif' expr 'then' expr)* ('else' expr)?
func (p *parser) ifExpr() (Node, error) {
	start := p.cur.PosStart
	p.advance()

	cases, err := p.ifCase(nil)
	if err != nil {
		return nil, err
	}

	node := &IfNode{Cases: cases, start: start}
	for p.cur.isKeyword("elif") {
		p.advance()
		node.Cases, err = p.ifCase(node.Cases)
		if err != nil {
			return nil, err
		}
	}
	if p.cur.isKeyword("else") {
		p.advance()
		node.Else, err = p.expr()
		if err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (p *parser) ifCase(cases []IfCase) ([]IfCase, error) {
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.cur.isKeyword("then") {
		return nil, p.errorExpected("'then'")
	}
	p.advance()
	body, err := p.expr()
	if err != nil {
		return nil, err
	}
	return append(cases, IfCase{Cond: cond, Body: body}), nil
}

// for_expr := 'for' IDENT '=' expr 'to' expr ('step' expr)? 'then' expr
func (p *parser) forExpr() (Node, error) {
	start := p.cur.PosStart
	p.advance()

	if p.cur.Type != tokenIdent {
		return nil, p.errorExpected("identifier")
	}
	varName := p.cur
	p.advance()

	if p.cur.Type != tokenEq {
		return nil, p.errorExpected("'='")
	}
	p.advance()
	startVal, err := p.expr()
	if err != nil {
		return nil, err
	}

	if !p.cur.isKeyword("to") {
		return nil, p.errorExpected("'to'")
	}
	p.advance()
	endVal, err := p.expr()
	if err != nil {
		return nil, err
	}

	var step Node
	if p.cur.isKeyword("step") {
		p.advance()
		step, err = p.expr()
		if err != nil {
			return nil, err
		}
	}

	if !p.cur.isKeyword("then") {
		return nil, p.errorExpected("'then'")
	}
	p.advance()
	body, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &ForNode{VarName: varName, Start: startVal, End: endVal, Step: step, Body: body, start: start}, nil
}

// while_expr := 'while' expr 'then' expr
func (p *parser) whileExpr() (Node, error) {
	start := p.cur.PosStart
	p.advance()

	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if !p.cur.isKeyword("then") {
		return nil, p.errorExpected("'then'")
	}
	p.advance()
	body, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &WhileNode{Cond: cond, Body: body, start: start}, nil
}

// func_def := 'fun' IDENT? '(' (IDENT (',' IDENT)*)? ')' '->' expr
func (p *parser) funcDef() (Node, error) {
	start := p.cur.PosStart
	p.advance()

	var name *Token
	if p.cur.Type == tokenIdent {
		tok := p.cur
		name = &tok
		p.advance()
		if p.cur.Type != tokenLParen {
			return nil, p.errorExpected("'('")
		}
	} else if p.cur.Type != tokenLParen {
		return nil, p.errorExpected("identifier or '('")
	}
	p.advance()

	var argNames []Token
	if p.cur.Type == tokenIdent {
		argNames = append(argNames, p.cur)
		p.advance()
		for p.cur.Type == tokenComma {
			p.advance()
			if p.cur.Type != tokenIdent {
				return nil, p.errorExpected("identifier")
			}
			argNames = append(argNames, p.cur)
			p.advance()
		}
		if p.cur.Type != tokenRParen {
			return nil, p.errorExpected("',' or ')'")
		}
	} else if p.cur.Type != tokenRParen {
		return nil, p.errorExpected("identifier or ')'")
	}
	p.advance()

	if p.cur.Type != tokenArrow {
		return nil, p.errorExpected("'->'")
	}
	p.advance()

	body, err := p.expr()
	if err != nil {
		return nil, err
	}

	return &FuncDefNode{Name: name, ArgNames: argNames, Body: body, start: start}, nil
}
