package syntax

// Expr is the closed set of expression nodes produced by the parser.
// Every node implements the unexported marker method, so consumers can
// switch over the concrete types exhaustively.
type Expr interface {
	expressionNode()
}

// Stmt is the closed set of statement nodes produced by the parser.
type Stmt interface {
	statementNode()
}

type Literal struct {
	Value any
}

type Grouping struct {
	Expression Expr
}

type Variable struct {
	Name Token
}

type Assign struct {
	Name  Token
	Value Expr
}

type Unary struct {
	Operator Token
	Right    Expr
}

type Binary struct {
	Left     Expr
	Operator Token
	Right    Expr
}

type Logical struct {
	Left     Expr
	Operator Token
	Right    Expr
}

type Call struct {
	Callee    Expr
	Paren     Token
	Arguments []Expr
}

type Get struct {
	Object Expr
	Name   Token
}

type Set struct {
	Object Expr
	Name   Token
	Value  Expr
}

type This struct {
	Keyword Token
}

type Super struct {
	Keyword Token
	Method  Token
}

// AnonymousFunction is a function literal such as `fun (a) { return a; }`.
// Decl carries an empty name token.
type AnonymousFunction struct {
	Decl *Function
}

func (e *Literal) expressionNode()           {}
func (e *Grouping) expressionNode()          {}
func (e *Variable) expressionNode()          {}
func (e *Assign) expressionNode()            {}
func (e *Unary) expressionNode()             {}
func (e *Binary) expressionNode()            {}
func (e *Logical) expressionNode()           {}
func (e *Call) expressionNode()              {}
func (e *Get) expressionNode()               {}
func (e *Set) expressionNode()               {}
func (e *This) expressionNode()              {}
func (e *Super) expressionNode()             {}
func (e *AnonymousFunction) expressionNode() {}

type Expression struct {
	Expression Expr
}

type Print struct {
	Expression Expr
}

type Var struct {
	Name        Token
	Initializer Expr
}

type Block struct {
	Statements []Stmt
}

type If struct {
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt
}

type While struct {
	Condition Expr
	Body      Stmt
}

// For keeps all four clauses instead of desugaring to a while loop, so
// the interpreter can give each iteration its own copy of the loop
// variables before running the increment.
type For struct {
	Initializer Stmt
	Condition   Expr
	Increment   Expr
	Body        Stmt
}

type Break struct {
	Keyword Token
}

type Continue struct {
	Keyword Token
}

type Function struct {
	Name   Token
	Params []Token
	Body   []Stmt
}

type Return struct {
	Keyword Token
	Value   Expr
}

type Class struct {
	Name       Token
	Superclass *Variable
	Methods    []*Function
}

func (s *Expression) statementNode() {}
func (s *Print) statementNode()      {}
func (s *Var) statementNode()        {}
func (s *Block) statementNode()      {}
func (s *If) statementNode()         {}
func (s *While) statementNode()      {}
func (s *For) statementNode()        {}
func (s *Break) statementNode()      {}
func (s *Continue) statementNode()   {}
func (s *Function) statementNode()   {}
func (s *Return) statementNode()     {}
func (s *Class) statementNode()      {}

func NewLiteral(value any) *Literal {
	return &Literal{Value: value}
}

func NewGrouping(expression Expr) *Grouping {
	return &Grouping{Expression: expression}
}

func NewVariable(name Token) *Variable {
	return &Variable{Name: name}
}

func NewAssign(name Token, value Expr) *Assign {
	return &Assign{Name: name, Value: value}
}

func NewUnary(right Expr, operator Token) *Unary {
	return &Unary{Operator: operator, Right: right}
}

func NewBinary(left Expr, operator Token, right Expr) *Binary {
	return &Binary{Left: left, Operator: operator, Right: right}
}

func NewLogical(left Expr, operator Token, right Expr) *Logical {
	return &Logical{Left: left, Operator: operator, Right: right}
}

func NewCall(callee Expr, paren Token, arguments []Expr) *Call {
	return &Call{Callee: callee, Paren: paren, Arguments: arguments}
}

func NewGet(object Expr, name Token) *Get {
	return &Get{Object: object, Name: name}
}

func NewSet(object Expr, name Token, value Expr) *Set {
	return &Set{Object: object, Name: name, Value: value}
}

func NewThis(keyword Token) *This {
	return &This{Keyword: keyword}
}

func NewSuper(keyword Token, method Token) *Super {
	return &Super{Keyword: keyword, Method: method}
}

func NewAnonymousFunction(decl *Function) *AnonymousFunction {
	return &AnonymousFunction{Decl: decl}
}

func NewExpression(expression Expr) *Expression {
	return &Expression{Expression: expression}
}

func NewVar(name Token, initializer Expr) *Var {
	return &Var{Name: name, Initializer: initializer}
}

func NewBlock(statements []Stmt) *Block {
	return &Block{Statements: statements}
}

func NewIf(condition Expr, thenBranch Stmt, elseBranch Stmt) *If {
	return &If{Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}
}

func NewWhile(condition Expr, body Stmt) *While {
	return &While{Condition: condition, Body: body}
}

func NewFor(initializer Stmt, condition Expr, increment Expr, body Stmt) *For {
	return &For{Initializer: initializer, Condition: condition, Increment: increment, Body: body}
}

func NewBreak(keyword Token) *Break {
	return &Break{Keyword: keyword}
}

func NewContinue(keyword Token) *Continue {
	return &Continue{Keyword: keyword}
}

func NewFunction(name Token, params []Token, body []Stmt) *Function {
	return &Function{Name: name, Params: params, Body: body}
}

func NewReturn(keyword Token, value Expr) *Return {
	return &Return{Keyword: keyword, Value: value}
}

func NewClass(name Token, superclass *Variable, methods []*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}
