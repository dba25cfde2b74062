package syntax

import (
	"errors"
	"fmt"

	"github.com/littlekuo/glox/internal/diag"
)

/*
the precedence of the operators is as follows, from lowest to highest:

Operator    	          Associativity
Assignment:  =	           Right
Logical or:  or	           Left
Logical and: and	       Left
Equality:    == !=	       Left
Comparison:  > >= < <=	   Left
Term: 	     - +	       Left
Factor: 	 / *	       Left
Unary: 	     ! -	       Right
Call: 	     () .	       Left

program        → declaration* EOF

declaration    → classDecl
               | funDecl
               | varDecl
               | statement

classDecl      → "class" IDENTIFIER ( "<" IDENTIFIER )? "{" function* "}"
funDecl        → "fun" function
function       → IDENTIFIER "(" parameters? ")" block
parameters     → IDENTIFIER ( "," IDENTIFIER )*
varDecl        → "var" IDENTIFIER ( "=" expression )? ";"

statement      → exprStmt
               | printStmt
               | block
			   | ifStmt
			   | returnStmt
			   | whileStmt
			   | forStmt
			   | breakStmt
			   | continueStmt

exprStmt       → expression ";"
printStmt      → "print" expression ";"
block          → "{" declaration* "}"
ifStmt         → "if" "(" expression ")" statement ( "else" statement )?
returnStmt     → "return" expression? ";"
whileStmt      → "while" "(" expression ")" statement
forStmt        → "for" "(" ( varDecl | exprStmt | ";" )
                 expression? ";" expression? ")" statement
breakStmt      → "break" ";"
continueStmt   → "continue" ";"

expression     → assignment
assignment     → ( call "." )? IDENTIFIER "=" assignment
               | logical_or
logical_or     → logical_and ( "or" logical_and )*
logical_and    → equality ( "and" equality )*
equality       → comparison ( ( "!=" | "==" ) comparison )*
comparison     → term ( ( ">" | ">=" | "<" | "<=" ) term )*
term           → factor ( ( "-" | "+" ) factor )*
factor         → unary ( ( "/" | "*" ) unary )*
unary          → ( "!" | "-" ) unary | call
call           → primary ( "(" arguments? ")" | "." IDENTIFIER )*
arguments      → expression ( "," expression )*
primary        → NUMBER | STRING | "true" | "false" | "nil"
               | "fun" "(" parameters? ")" block
               | "(" expression ")" | IDENTIFIER
               | "this" | "super" "." IDENTIFIER
*/

type Parser struct {
	Tokens    []Token
	Current   int
	diags     []diag.Diagnostic
	loopDepth int
}

// parseError carries the offending token so the diagnostic can point
// at it once the parser unwinds to a statement boundary.
type parseError struct {
	token   Token
	message string
}

func (e *parseError) Error() string {
	return e.message
}

func NewParser(tokens []Token) *Parser {
	return &Parser{
		Tokens:  tokens,
		Current: 0,
	}
}

// Parse consumes the whole token stream. On a syntax error it records a
// diagnostic, skips to the next statement boundary and keeps going, so
// one run reports as many errors as possible.
func (p *Parser) Parse() []Stmt {
	stmts := make([]Stmt, 0)
	for !p.isEnd() {
		stmt, err := p.parseDeclaration()
		if err != nil {
			p.recordError(err)
			p.synchronize()
			continue
		}
		stmts = append(stmts, stmt)
	}
	return stmts
}

// Diagnostics reports every syntax error found so far, in source order.
func (p *Parser) Diagnostics() []diag.Diagnostic {
	return p.diags
}

func (p *Parser) parseDeclaration() (Stmt, error) {
	if p.match(TOKEN_CLASS) {
		return p.parseClassDecl()
	}
	// `fun` starts a declaration only when a name follows, otherwise it
	// is a function literal inside an expression statement.
	if p.check(TOKEN_FUN) && p.checkNext(TOKEN_IDENTIFIER) {
		p.advance()
		return p.parseFunction("function")
	}
	if p.match(TOKEN_VAR) {
		return p.parseVarDecl()
	}
	return p.parseStmt()
}

func (p *Parser) parseClassDecl() (Stmt, error) {
	if cErr := p.consume(TOKEN_IDENTIFIER, "expect class name"); cErr != nil {
		return nil, cErr
	}
	name := p.previous()

	var superclass *Variable
	if p.match(TOKEN_LESS) {
		if cErr := p.consume(TOKEN_IDENTIFIER, "expect superclass name"); cErr != nil {
			return nil, cErr
		}
		superclass = NewVariable(p.previous())
	}

	if cErr := p.consume(TOKEN_LEFT_BRACE, "expect '{' before class body"); cErr != nil {
		return nil, cErr
	}
	methods := make([]*Function, 0)
	for !p.check(TOKEN_RIGHT_BRACE) && !p.isEnd() {
		method, err := p.parseFunction("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if cErr := p.consume(TOKEN_RIGHT_BRACE, "expect '}' after class body"); cErr != nil {
		return nil, cErr
	}
	return NewClass(name, superclass, methods), nil
}

func (p *Parser) parseFunction(kind string) (*Function, error) {
	if cErr := p.consume(TOKEN_IDENTIFIER, "expect "+kind+" name"); cErr != nil {
		return nil, cErr
	}
	name := p.previous()
	if cErr := p.consume(TOKEN_LEFT_PAREN, "expect '(' after "+kind+" name"); cErr != nil {
		return nil, cErr
	}
	params, body, err := p.parseFunctionRest()
	if err != nil {
		return nil, err
	}
	return NewFunction(name, params, body), nil
}

// parseFunctionRest parses everything after the opening '(' of a
// function: the parameter list and the body block. Loop depth resets so
// that break/continue cannot jump across a function boundary.
func (p *Parser) parseFunctionRest() ([]Token, []Stmt, error) {
	prevLoopDepth := p.loopDepth
	p.loopDepth = 0
	defer func() { p.loopDepth = prevLoopDepth }()

	params := make([]Token, 0)
	if !p.check(TOKEN_RIGHT_PAREN) {
		for {
			if cErr := p.consume(TOKEN_IDENTIFIER, "expect parameter name"); cErr != nil {
				return nil, nil, cErr
			}
			params = append(params, p.previous())
			if !p.match(TOKEN_COMMA) {
				break
			}
		}
	}
	if cErr := p.consume(TOKEN_RIGHT_PAREN, "expect ')' after parameters"); cErr != nil {
		return nil, nil, cErr
	}

	if cErr := p.consume(TOKEN_LEFT_BRACE, "expect '{' before function body"); cErr != nil {
		return nil, nil, cErr
	}
	block, err := p.parseBlockStmt()
	if err != nil {
		return nil, nil, err
	}
	return params, block.(*Block).Statements, nil
}

func (p *Parser) parseVarDecl() (Stmt, error) {
	if cErr := p.consume(TOKEN_IDENTIFIER, "expect variable name"); cErr != nil {
		return nil, cErr
	}
	name := p.previous()
	var initializer Expr
	if p.match(TOKEN_EQUAL) {
		var pErr error
		initializer, pErr = p.parseExpr()
		if pErr != nil {
			return nil, pErr
		}
	}

	if cErr := p.consume(TOKEN_SEMICOLON, "expect ';' after variable declaration"); cErr != nil {
		return nil, cErr
	}
	return NewVar(name, initializer), nil
}

func (p *Parser) parseStmt() (Stmt, error) {
	if p.match(TOKEN_IF) {
		return p.parseIfStmt()
	}
	if p.match(TOKEN_PRINT) {
		return p.parsePrintStmt()
	}
	if p.match(TOKEN_RETURN) {
		return p.parseReturnStmt()
	}
	if p.match(TOKEN_WHILE) {
		return p.parseWhileStmt()
	}
	if p.match(TOKEN_FOR) {
		return p.parseForStmt()
	}
	if p.match(TOKEN_BREAK) {
		return p.parseBreakStmt()
	}
	if p.match(TOKEN_CONTINUE) {
		return p.parseContinueStmt()
	}
	if p.match(TOKEN_LEFT_BRACE) {
		return p.parseBlockStmt()
	}
	return p.parseExprStmt()
}

func (p *Parser) parseReturnStmt() (Stmt, error) {
	keyword := p.previous()
	var value Expr
	if !p.check(TOKEN_SEMICOLON) {
		var err error
		value, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if cErr := p.consume(TOKEN_SEMICOLON, "expect ';' after return value"); cErr != nil {
		return nil, cErr
	}
	return NewReturn(keyword, value), nil
}

func (p *Parser) parseBreakStmt() (Stmt, error) {
	keyword := p.previous()
	if p.loopDepth == 0 {
		return nil, p.error(keyword, "break not inside loop")
	}
	if cErr := p.consume(TOKEN_SEMICOLON, "expect ';' after break"); cErr != nil {
		return nil, cErr
	}
	return NewBreak(keyword), nil
}

func (p *Parser) parseContinueStmt() (Stmt, error) {
	keyword := p.previous()
	if p.loopDepth == 0 {
		return nil, p.error(keyword, "continue not inside loop")
	}
	if cErr := p.consume(TOKEN_SEMICOLON, "expect ';' after continue"); cErr != nil {
		return nil, cErr
	}
	return NewContinue(keyword), nil
}

func (p *Parser) parseForStmt() (Stmt, error) {
	p.loopDepth++
	defer func() { p.loopDepth-- }()
	var err error
	if err = p.consume(TOKEN_LEFT_PAREN, "expect '(' after 'for'"); err != nil {
		return nil, err
	}
	var initializer Stmt
	if p.match(TOKEN_SEMICOLON) {

	} else if p.match(TOKEN_VAR) {
		initializer, err = p.parseVarDecl()
		if err != nil {
			return nil, err
		}
	} else {
		initializer, err = p.parseExprStmt()
		if err != nil {
			return nil, err
		}
	}
	var condition Expr
	if !p.check(TOKEN_SEMICOLON) {
		condition, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if cErr := p.consume(TOKEN_SEMICOLON, "expect ';' after loop condition"); cErr != nil {
		return nil, cErr
	}
	var increment Expr
	if !p.check(TOKEN_RIGHT_PAREN) {
		increment, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
	}
	if cErr := p.consume(TOKEN_RIGHT_PAREN, "expect ')' after for clauses"); cErr != nil {
		return nil, cErr
	}
	var body Stmt
	body, err = p.parseStmt()
	if err != nil {
		return nil, err
	}
	return NewFor(initializer, condition, increment, body), nil
}

func (p *Parser) parseWhileStmt() (Stmt, error) {
	p.loopDepth++
	defer func() { p.loopDepth-- }()
	if err := p.consume(TOKEN_LEFT_PAREN, "expect '(' after 'while'"); err != nil {
		return nil, err
	}
	condition, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if cErr := p.consume(TOKEN_RIGHT_PAREN, "expect ')' after while condition"); cErr != nil {
		return nil, cErr
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return NewWhile(condition, body), nil
}

func (p *Parser) parseIfStmt() (Stmt, error) {
	if cErr := p.consume(TOKEN_LEFT_PAREN, "expect '(' after 'if'"); cErr != nil {
		return nil, cErr
	}
	condition, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if cErr := p.consume(TOKEN_RIGHT_PAREN, "expect ')' after if condition"); cErr != nil {
		return nil, cErr
	}
	thenBranch, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	var elseBranch Stmt
	if p.match(TOKEN_ELSE) {
		elseBranch, err = p.parseStmt()
		if err != nil {
			return nil, err
		}
	}
	return NewIf(condition, thenBranch, elseBranch), nil
}

func (p *Parser) parseBlockStmt() (Stmt, error) {
	stmts := make([]Stmt, 0)
	for !p.check(TOKEN_RIGHT_BRACE) && !p.isEnd() {
		stmt, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if cErr := p.consume(TOKEN_RIGHT_BRACE, "expect '}' after block"); cErr != nil {
		return nil, cErr
	}
	return NewBlock(stmts), nil
}

func (p *Parser) parsePrintStmt() (Stmt, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if cErr := p.consume(TOKEN_SEMICOLON, "expect ';' after value"); cErr != nil {
		return nil, cErr
	}
	return &Print{Expression: expr}, nil
}

func (p *Parser) parseExprStmt() (Stmt, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if cErr := p.consume(TOKEN_SEMICOLON, "expect ';' after value"); cErr != nil {
		return nil, cErr
	}
	return NewExpression(expr), nil
}

func (p *Parser) parseExpr() (Expr, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (Expr, error) {
	expr, pErr := p.parseLogicalOr()
	if pErr != nil {
		return nil, pErr
	}

	if p.match(TOKEN_EQUAL) {
		equalToken := p.previous()
		value, pErr := p.parseAssignment()
		if pErr != nil {
			return nil, pErr
		}

		if variable, ok := expr.(*Variable); ok {
			return NewAssign(variable.Name, value), nil
		}
		if get, ok := expr.(*Get); ok {
			return NewSet(get.Object, get.Name, value), nil
		}

		return nil, p.error(equalToken, "Invalid assignment target.")
	}
	return expr, nil
}

func (p *Parser) parseLogicalOr() (Expr, error) {
	expr, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}

	for p.match(TOKEN_OR) {
		op := p.previous()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		expr = NewLogical(expr, op, right)
	}

	return expr, nil
}

func (p *Parser) parseLogicalAnd() (Expr, error) {
	expr, err := p.parseEquality()
	if err != nil {
		return nil, err
	}

	for p.match(TOKEN_AND) {
		op := p.previous()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		expr = NewLogical(expr, op, right)
	}

	return expr, nil
}

func (p *Parser) parseEquality() (Expr, error) {
	expr, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.match(TOKEN_BANG_EQUAL, TOKEN_EQUAL_EQUAL) {
		op := p.previous()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		expr = NewBinary(expr, op, right)
	}

	return expr, nil
}

func (p *Parser) parseComparison() (Expr, error) {
	expr, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.match(TOKEN_GREATER, TOKEN_GREATER_EQUAL, TOKEN_LESS, TOKEN_LESS_EQUAL) {
		op := p.previous()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		expr = NewBinary(expr, op, right)
	}

	return expr, nil
}

func (p *Parser) parseTerm() (Expr, error) {
	expr, err := p.parseFactor()
	if err != nil {
		return nil, err
	}

	for p.match(TOKEN_MINUS, TOKEN_PLUS) {
		op := p.previous()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		expr = NewBinary(expr, op, right)
	}

	return expr, nil
}

func (p *Parser) parseFactor() (Expr, error) {
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.match(TOKEN_SLASH, TOKEN_STAR) {
		op := p.previous()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		expr = NewBinary(expr, op, right)
	}

	return expr, nil
}

func (p *Parser) parseUnary() (Expr, error) {
	if p.match(TOKEN_BANG, TOKEN_MINUS) {
		op := p.previous()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return NewUnary(right, op), nil
	}

	return p.parseCall()
}

func (p *Parser) parseCall() (Expr, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		if p.match(TOKEN_LEFT_PAREN) {
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		} else if p.match(TOKEN_DOT) {
			if cErr := p.consume(TOKEN_IDENTIFIER, "expect property name after '.'"); cErr != nil {
				return nil, cErr
			}
			expr = NewGet(expr, p.previous())
		} else {
			break
		}
	}

	return expr, nil
}

func (p *Parser) finishCall(callee Expr) (Expr, error) {
	args := make([]Expr, 0)
	if !p.check(TOKEN_RIGHT_PAREN) {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(TOKEN_COMMA) {
				break
			}
		}
	}
	if cErr := p.consume(TOKEN_RIGHT_PAREN, "expect ')' after arguments"); cErr != nil {
		return nil, cErr
	}
	return NewCall(callee, p.previous(), args), nil
}

func (p *Parser) parsePrimary() (Expr, error) {
	if p.match(TOKEN_NUMBER) {
		return NewLiteral(p.previous().Literal), nil
	}
	if p.match(TOKEN_STRING) {
		return NewLiteral(p.previous().Literal), nil
	}
	if p.match(TOKEN_TRUE) {
		return NewLiteral(true), nil
	}
	if p.match(TOKEN_FALSE) {
		return NewLiteral(false), nil
	}
	if p.match(TOKEN_NIL) {
		return NewLiteral(nil), nil
	}
	if p.match(TOKEN_THIS) {
		return NewThis(p.previous()), nil
	}
	if p.match(TOKEN_SUPER) {
		keyword := p.previous()
		if cErr := p.consume(TOKEN_DOT, "expect '.' after 'super'"); cErr != nil {
			return nil, cErr
		}
		if cErr := p.consume(TOKEN_IDENTIFIER, "expect superclass method name"); cErr != nil {
			return nil, cErr
		}
		return NewSuper(keyword, p.previous()), nil
	}
	if p.match(TOKEN_FUN) {
		if cErr := p.consume(TOKEN_LEFT_PAREN, "expect '(' after 'fun'"); cErr != nil {
			return nil, cErr
		}
		params, body, err := p.parseFunctionRest()
		if err != nil {
			return nil, err
		}
		return NewAnonymousFunction(&Function{Params: params, Body: body}), nil
	}
	if p.match(TOKEN_IDENTIFIER) {
		return NewVariable(p.previous()), nil
	}
	if p.match(TOKEN_LEFT_PAREN) {
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if cErr := p.consume(TOKEN_RIGHT_PAREN, "expect ')' after expression"); cErr != nil {
			return nil, cErr
		}
		return NewGrouping(expr), nil
	}
	return nil, p.error(p.peek(), "expect expression")
}

func (p *Parser) match(tokenTypes ...TokenType) bool {
	for _, type_ := range tokenTypes {
		if p.check(type_) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) check(tokenType TokenType) bool {
	if p.isEnd() {
		return false
	}
	return p.peek().TokenType == tokenType
}

func (p *Parser) checkNext(tokenType TokenType) bool {
	if p.isEnd() {
		return false
	}
	next := p.Tokens[p.Current+1]
	if next.TokenType == TOKEN_EOF {
		return false
	}
	return next.TokenType == tokenType
}

func (p *Parser) isEnd() bool {
	return p.peek().TokenType == TOKEN_EOF
}

func (p *Parser) peek() Token {
	return p.Tokens[p.Current]
}

func (p *Parser) advance() Token {
	if !p.isEnd() {
		p.Current++
	}
	return p.Tokens[p.Current-1]
}

func (p *Parser) previous() Token {
	return p.Tokens[p.Current-1]
}

func (p *Parser) consume(tokenType TokenType, message string) error {
	if p.check(tokenType) {
		p.advance()
		return nil
	}
	return p.error(p.peek(), message)
}

func (p *Parser) error(token Token, message string) error {
	return &parseError{token: token, message: message}
}

func (p *Parser) recordError(err error) {
	var pErr *parseError
	if !errors.As(err, &pErr) {
		p.diags = append(p.diags, diag.New(diag.CATEGORY_SYNTAX, 0, err.Error()))
		return
	}
	where := " at end"
	if pErr.token.TokenType != TOKEN_EOF {
		where = fmt.Sprintf(" at '%s'", pErr.token.Lexeme)
	}
	p.diags = append(p.diags, diag.NewAt(diag.CATEGORY_SYNTAX, pErr.token.Line, where, pErr.message))
}

// Synchronize the parser when it encounters a syntax error.
//
//	just skip to the next statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isEnd() {
		if p.previous().TokenType == TOKEN_SEMICOLON {
			return
		}
		switch p.peek().TokenType {
		case TOKEN_CLASS, TOKEN_FUN, TOKEN_VAR, TOKEN_FOR, TOKEN_IF, TOKEN_WHILE, TOKEN_PRINT, TOKEN_RETURN:
			return
		}
		p.advance()
	}
}
