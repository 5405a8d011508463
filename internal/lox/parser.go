package lox

import "fmt"

// maxArgsCount bounds the number of arguments and parameters a function can
// have. Going over the limit is reported but does not abort the parse.
const maxArgsCount = 8

// Parser composes the syntax tree for the Lox language from the sequence of
// valid tokens. The grammar being parsed is documented in doc.go.
//
// A syntax error inside a declaration is reported through the reporter, then
// the parser synchronizes to the next declaration boundary and records a nil
// statement in the failed declaration's position. Downstream phases skip the
// nil entries.
type Parser struct {
	current  int
	tokens   []*Token
	reporter Reporter
}

// NewParser creates a new parser for the Lox language
func NewParser(tokens []*Token, reporter Reporter) *Parser {
	return &Parser{0, tokens, reporter}
}

// Parse collects the declarations composing the program until EOF is reached.
func (parser *Parser) Parse() []Stmt {
	statements := make([]Stmt, 0)
	for !parser.isEOF() {
		statements = append(statements, parser.declaration())
	}
	return statements
}

// declaration --> classDecl | funDecl | varDecl | stmt ;
func (parser *Parser) declaration() Stmt {
	var stmt Stmt
	var err error
	switch {
	case parser.match(CLASS):
		stmt, err = parser.classDecl()
	case parser.match(FUN):
		var fn *FunctionStmt
		fn, err = parser.function("function")
		if err == nil {
			stmt = fn
		}
	case parser.match(VAR):
		stmt, err = parser.varDecl()
	default:
		stmt, err = parser.statement()
	}
	if err != nil {
		parser.reporter.Report(err)
		parser.sync()
		return nil
	}
	return stmt
}

// classDecl --> "class" IDENT "{" function* "}" ;
func (parser *Parser) classDecl() (Stmt, error) {
	if err := parser.consume(IDENTIFIER, "Expect class name."); err != nil {
		return nil, err
	}
	name := parser.prev()
	if err := parser.consume(LEFT_BRACE, "Expect '{' before class body."); err != nil {
		return nil, err
	}
	methods := make([]*FunctionStmt, 0)
	for !parser.check(RIGHT_BRACE) && !parser.isEOF() {
		method, err := parser.function("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if err := parser.consume(RIGHT_BRACE, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return NewClassStmt(name, methods), nil
}

// function --> IDENT "(" params? ")" block ;
// params   --> IDENT ( "," IDENT )* ;
func (parser *Parser) function(kind string) (*FunctionStmt, error) {
	if err := parser.consume(
		IDENTIFIER, fmt.Sprintf("Expect %s name.", kind),
	); err != nil {
		return nil, err
	}
	name := parser.prev()
	if err := parser.consume(
		LEFT_PAREN, fmt.Sprintf("Expect '(' after %s name.", kind),
	); err != nil {
		return nil, err
	}
	params := make([]*Token, 0)
	if !parser.check(RIGHT_PAREN) {
		for {
			if len(params) >= maxArgsCount {
				parser.reporter.Report(NewParseError(parser.peek(), fmt.Sprintf(
					"Cannot have more than %d parameters.", maxArgsCount)))
			}
			if err := parser.consume(
				IDENTIFIER, "Expect parameter name.",
			); err != nil {
				return nil, err
			}
			params = append(params, parser.prev())
			if !parser.match(COMMA) {
				break
			}
		}
	}
	if err := parser.consume(
		RIGHT_PAREN, "Expect ')' after parameters.",
	); err != nil {
		return nil, err
	}
	if err := parser.consume(
		LEFT_BRACE, fmt.Sprintf("Expect '{' before %s body.", kind),
	); err != nil {
		return nil, err
	}
	body, err := parser.block()
	if err != nil {
		return nil, err
	}
	return NewFunctionStmt(name, params, body), nil
}

// varDecl --> "var" IDENT ( "=" expr )? ";" ;
func (parser *Parser) varDecl() (Stmt, error) {
	if err := parser.consume(IDENTIFIER, "Expect variable name."); err != nil {
		return nil, err
	}
	name := parser.prev()
	var init Expr
	if parser.match(EQUAL) {
		var err error
		init, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if err := parser.consume(
		SEMICOLON, "Expect ';' after variable declaration.",
	); err != nil {
		return nil, err
	}
	return NewVarStmt(name, init), nil
}

// stmt --> block | exprStmt | forStmt | ifStmt | printStmt | returnStmt
//        | whileStmt ;
func (parser *Parser) statement() (Stmt, error) {
	switch {
	case parser.match(FOR):
		return parser.forStmt()
	case parser.match(IF):
		return parser.ifStmt()
	case parser.match(PRINT):
		return parser.printStmt()
	case parser.match(RETURN):
		return parser.returnStmt()
	case parser.match(WHILE):
		return parser.whileStmt()
	case parser.match(LEFT_BRACE):
		statements, err := parser.block()
		if err != nil {
			return nil, err
		}
		return NewBlockStmt(statements), nil
	}
	return parser.exprStmt()
}

// block --> "{" decl* "}" ;
func (parser *Parser) block() ([]Stmt, error) {
	statements := make([]Stmt, 0)
	for !parser.check(RIGHT_BRACE) && !parser.isEOF() {
		statements = append(statements, parser.declaration())
	}
	if err := parser.consume(RIGHT_BRACE, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return statements, nil
}

// forStmt --> "for" "(" ( varDecl | exprStmt | ";" ) expr? ";" expr? ")" stmt ;
//
// The for loop is not given its own syntax tree node, it desugars to a while
// loop wrapped in a block holding the initializer.
func (parser *Parser) forStmt() (Stmt, error) {
	if err := parser.consume(LEFT_PAREN, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var init Stmt
	var err error
	switch {
	case parser.match(SEMICOLON):
	case parser.match(VAR):
		init, err = parser.varDecl()
	default:
		init, err = parser.exprStmt()
	}
	if err != nil {
		return nil, err
	}

	var cond Expr
	if !parser.check(SEMICOLON) {
		cond, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if err := parser.consume(
		SEMICOLON, "Expect ';' after loop condition.",
	); err != nil {
		return nil, err
	}

	var incr Expr
	if !parser.check(RIGHT_PAREN) {
		incr, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if err := parser.consume(
		RIGHT_PAREN, "Expect ')' after for clauses.",
	); err != nil {
		return nil, err
	}

	body, err := parser.statement()
	if err != nil {
		return nil, err
	}

	if incr != nil {
		body = NewBlockStmt([]Stmt{body, NewExprStmt(incr)})
	}
	if cond == nil {
		cond = NewLiteralExpr(true)
	}
	body = NewWhileStmt(cond, body)
	if init != nil {
		body = NewBlockStmt([]Stmt{init, body})
	}
	return body, nil
}

// ifStmt --> "if" "(" expr ")" stmt ( "else" stmt )? ;
func (parser *Parser) ifStmt() (Stmt, error) {
	if err := parser.consume(LEFT_PAREN, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	cond, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if err := parser.consume(
		RIGHT_PAREN, "Expect ')' after if condition.",
	); err != nil {
		return nil, err
	}
	thenBranch, err := parser.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch Stmt
	if parser.match(ELSE) {
		elseBranch, err = parser.statement()
		if err != nil {
			return nil, err
		}
	}
	return NewIfStmt(cond, thenBranch, elseBranch), nil
}

// printStmt --> "print" expr ";" ;
func (parser *Parser) printStmt() (Stmt, error) {
	expr, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if err := parser.consume(SEMICOLON, "Expect ';' after value."); err != nil {
		return nil, err
	}
	return NewPrintStmt(expr), nil
}

// returnStmt --> "return" expr? ";" ;
func (parser *Parser) returnStmt() (Stmt, error) {
	keyword := parser.prev()
	var val Expr
	if !parser.check(SEMICOLON) {
		var err error
		val, err = parser.expression()
		if err != nil {
			return nil, err
		}
	}
	if err := parser.consume(
		SEMICOLON, "Expect ';' after return value.",
	); err != nil {
		return nil, err
	}
	return NewReturnStmt(keyword, val), nil
}

// whileStmt --> "while" "(" expr ")" stmt ;
func (parser *Parser) whileStmt() (Stmt, error) {
	if err := parser.consume(LEFT_PAREN, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	cond, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if err := parser.consume(
		RIGHT_PAREN, "Expect ')' after condition.",
	); err != nil {
		return nil, err
	}
	body, err := parser.statement()
	if err != nil {
		return nil, err
	}
	return NewWhileStmt(cond, body), nil
}

// exprStmt --> expr ";" ;
func (parser *Parser) exprStmt() (Stmt, error) {
	expr, err := parser.expression()
	if err != nil {
		return nil, err
	}
	if err := parser.consume(SEMICOLON, "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return NewExprStmt(expr), nil
}

// expression --> assignment ;
func (parser *Parser) expression() (Expr, error) {
	return parser.assignment()
}

// assignment --> ( call "." )? IDENT "=" assignment | logic_or ;
//
// The left-hand side is parsed as a normal expression, then reinterpreted as
// an assignment target once '=' is seen. A target that is neither a variable
// nor a property access is reported without putting the parser into panic
// mode.
func (parser *Parser) assignment() (Expr, error) {
	expr, err := parser.or()
	if err != nil {
		return nil, err
	}
	if parser.match(EQUAL) {
		equals := parser.prev()
		val, err := parser.assignment()
		if err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *VarExpr:
			return NewAssignExpr(target.Name, val), nil
		case *GetExpr:
			return NewSetExpr(target.Obj, target.Name, val), nil
		}
		parser.reporter.Report(
			NewParseError(equals, "Invalid assignment target."),
		)
	}
	return expr, nil
}

// logic_or --> logic_and ( "or" logic_and )* ;
func (parser *Parser) or() (Expr, error) {
	expr, err := parser.and()
	if err != nil {
		return nil, err
	}
	for parser.match(OR) {
		op := parser.prev()
		right, err := parser.and()
		if err != nil {
			return nil, err
		}
		expr = NewLogicalExpr(op, expr, right)
	}
	return expr, nil
}

// logic_and --> equality ( "and" equality )* ;
func (parser *Parser) and() (Expr, error) {
	expr, err := parser.equality()
	if err != nil {
		return nil, err
	}
	for parser.match(AND) {
		op := parser.prev()
		right, err := parser.equality()
		if err != nil {
			return nil, err
		}
		expr = NewLogicalExpr(op, expr, right)
	}
	return expr, nil
}

// Creates a left-associative nested tree of binary operator nodes. Match a
// higher precedence rule `comparison` if does not hits "!=" or "==".
//
// equality --> comparison ( ( "!=" | "==" ) comparison )* ;
func (parser *Parser) equality() (Expr, error) {
	expr, err := parser.comparison()
	if err != nil {
		return nil, err
	}
	for parser.match(BANG_EQUAL, EQUAL_EQUAL) {
		op := parser.prev()
		right, err := parser.comparison()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(op, expr, right)
	}
	return expr, nil
}

// comparison --> term ( ( ">" | ">=" | "<" | "<=" ) term )* ;
func (parser *Parser) comparison() (Expr, error) {
	expr, err := parser.term()
	if err != nil {
		return nil, err
	}
	for parser.match(GREATER, GREATER_EQUAL, LESS, LESS_EQUAL) {
		op := parser.prev()
		right, err := parser.term()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(op, expr, right)
	}
	return expr, nil
}

// term --> factor ( ( "-" | "+" ) factor )* ;
func (parser *Parser) term() (Expr, error) {
	expr, err := parser.factor()
	if err != nil {
		return nil, err
	}
	for parser.match(MINUS, PLUS) {
		op := parser.prev()
		right, err := parser.factor()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(op, expr, right)
	}
	return expr, nil
}

// factor --> unary ( ( "/" | "*" ) unary )* ;
func (parser *Parser) factor() (Expr, error) {
	expr, err := parser.unary()
	if err != nil {
		return nil, err
	}
	for parser.match(SLASH, STAR) {
		op := parser.prev()
		right, err := parser.unary()
		if err != nil {
			return nil, err
		}
		expr = NewBinaryExpr(op, expr, right)
	}
	return expr, nil
}

// unary --> ( "!" | "-" | "+" | "/" | "*" ) unary
//         | call ;
//
// The unary rule accepts three unary operators that are not supported by the
// interpreter so we can produce better errors:
// + Unary '+' expressions are not supported.
// + Unary '/' expressions are not supported.
// + Unary '*' expressions are not supported.
func (parser *Parser) unary() (Expr, error) {
	if parser.match(BANG, MINUS, PLUS, SLASH, STAR) {
		op := parser.prev()
		switch expr, err := parser.unary(); op.Typ {
		case PLUS, SLASH, STAR:
			err = NewParseError(
				op,
				fmt.Sprintf("Unary '%s' expressions are not supported.", op.Lexeme),
			)
			fallthrough
		case BANG, MINUS:
			if err != nil {
				return nil, err
			}
			return NewUnaryExpr(op, expr), nil
		}
	}
	return parser.call()
}

// call --> primary ( "(" args? ")" | "." IDENT )* ;
func (parser *Parser) call() (Expr, error) {
	expr, err := parser.primary()
	if err != nil {
		return nil, err
	}
	for {
		if parser.match(LEFT_PAREN) {
			expr, err = parser.finishCall(expr)
			if err != nil {
				return nil, err
			}
		} else if parser.match(DOT) {
			if err := parser.consume(
				IDENTIFIER, "Expect property name after '.'.",
			); err != nil {
				return nil, err
			}
			expr = NewGetExpr(expr, parser.prev())
		} else {
			break
		}
	}
	return expr, nil
}

// args --> expr ( "," expr )* ;
func (parser *Parser) finishCall(callee Expr) (Expr, error) {
	args := make([]Expr, 0)
	if !parser.check(RIGHT_PAREN) {
		for {
			if len(args) >= maxArgsCount {
				parser.reporter.Report(NewParseError(parser.peek(), fmt.Sprintf(
					"Cannot have more than %d arguments.", maxArgsCount)))
			}
			arg, err := parser.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !parser.match(COMMA) {
				break
			}
		}
	}
	if err := parser.consume(
		RIGHT_PAREN, "Expect ')' after arguments.",
	); err != nil {
		return nil, err
	}
	return NewCallExpr(callee, parser.prev(), args), nil
}

// primary --> NUMBER | STRING | IDENT
//           | "true" | "false" | "nil" | "this"
//           | "(" expr ")" ;
func (parser *Parser) primary() (Expr, error) {
	if parser.match(FALSE) {
		return NewLiteralExpr(false), nil
	}
	if parser.match(TRUE) {
		return NewLiteralExpr(true), nil
	}
	if parser.match(NIL) {
		return NewLiteralExpr(nil), nil
	}
	if parser.match(NUMBER, STRING) {
		return NewLiteralExpr(parser.prev().Literal), nil
	}
	if parser.match(THIS) {
		return NewThisExpr(parser.prev()), nil
	}
	if parser.match(IDENTIFIER) {
		return NewVarExpr(parser.prev()), nil
	}
	if parser.match(LEFT_PAREN) {
		expr, err := parser.expression()
		if err != nil {
			return nil, err
		}
		if err := parser.consume(
			RIGHT_PAREN,
			"Expect ')' after expression.",
		); err != nil {
			return nil, err
		}
		return NewGroupExpr(expr), nil
	}
	return nil, NewParseError(parser.peek(), "Expect expression.")
}

func (parser *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if parser.check(tt) {
			parser.advance()
			return true
		}
	}
	return false
}

func (parser *Parser) consume(typ TokenType, message string) error {
	if parser.check(typ) {
		parser.advance()
		return nil
	}
	return NewParseError(parser.peek(), message)
}

func (parser *Parser) check(tt TokenType) bool {
	if parser.isEOF() {
		return false
	}
	return parser.peek().Typ == tt
}

func (parser *Parser) advance() *Token {
	if !parser.isEOF() {
		parser.current++
	}
	return parser.prev()
}

func (parser *Parser) isEOF() bool {
	return parser.peek().Typ == EOF
}

func (parser *Parser) peek() *Token {
	return parser.tokens[parser.current]
}

func (parser *Parser) prev() *Token {
	return parser.tokens[parser.current-1]
}

// sync discards tokens until it reaches a likely declaration boundary, so one
// syntax error does not trigger a cascade of bogus reports.
func (parser *Parser) sync() {
	parser.advance()
	for !parser.isEOF() {
		if parser.prev().Typ == SEMICOLON {
			return
		}
		switch parser.peek().Typ {
		case CLASS, FUN, VAR, FOR, IF, WHILE, PRINT, RETURN:
			return
		}
		parser.advance()
	}
}
