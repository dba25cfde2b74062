package syntax

import (
	"strings"
	"testing"

	"github.com/littlekuo/glox/internal/diag"
)

func parseSource(t *testing.T, source string) ([]Stmt, []diag.Diagnostic) {
	t.Helper()
	scanner := NewScanner(source)
	tokens := scanner.ScanTokens()
	if len(scanner.Diagnostics()) != 0 {
		t.Fatalf("scan errors: %v", scanner.Diagnostics())
	}
	parser := NewParser(tokens)
	stmts := parser.Parse()
	return stmts, parser.Diagnostics()
}

func parseExprString(t *testing.T, source string) string {
	t.Helper()
	stmts, diags := parseSource(t, source+";")
	if len(diags) != 0 {
		t.Fatalf("parse errors: %v", diags)
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	exprStmt, ok := stmts[0].(*Expression)
	if !ok {
		t.Fatalf("got %T, want *Expression", stmts[0])
	}
	return AstPrinter{}.Print(exprStmt.Expression)
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"1 + 2 * 3", "(+ 1 (* 2 3))"},
		{"(1 + 2) * 3", "(* (group (+ 1 2)) 3)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"8 / 2 / 2", "(/ (/ 8 2) 2)"},
		{"-1 + 2", "(+ (- 1) 2)"},
		{"--1", "(- (- 1))"},
		{"!true == false", "(== (! true) false)"},
		{"1 < 2 == true", "(== (< 1 2) true)"},
		{"1 + 2 < 3 + 4", "(< (+ 1 2) (+ 3 4))"},
		{"a or b and c", "(or a (and b c))"},
		{"a and b or c", "(or (and a b) c)"},
		{"a = b = c", "(= a (= b c))"},
		{"a = b or c", "(= a (or b c))"},
		{"a.b.c", "(. (. a b) c)"},
		{"f(1)(2)", "(call (call f 1) 2)"},
		{"f()", "(call f)"},
		{"a.b(c).d = 3", "(= (. (call (. a b) c) d) 3)"},
		{"-x.y", "(- (. x y))"},
		{"this.x + super.y()", "(+ (. this x) (call (super y)))"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			if got := parseExprString(t, tt.source); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"var with initializer", "var x = 1;", "(var x 1)"},
		{"var without initializer", "var x;", "(var x)"},
		{"print", "print 1 + 2;", "(print (+ 1 2))"},
		{"expression statement", "f();", "(; (call f))"},
		{"block", "{ var a = 1; print a; }", "(block (var a 1) (print a))"},
		{"if", "if (a) print 1;", "(if a (print 1))"},
		{"if else", "if (a) print 1; else print 2;", "(if a (print 1) (print 2))"},
		{"dangling else binds to nearest if", "if (a) if (b) print 1; else print 2;",
			"(if a (if b (print 1) (print 2)))"},
		{"while", "while (a) print a;", "(while a (print a))"},
		{"for full header", "for (var i = 0; i < 3; i = i + 1) print i;",
			"(for (var i 0) (< i 3) (= i (+ i 1)) (print i))"},
		{"for expression initializer", "for (i = 0; i < 3;) print i;",
			"(for (; (= i 0)) (< i 3) (print i))"},
		{"for empty clauses", "for (;;) break;", "(for break)"},
		{"function declaration", "fun add(a, b) { return a + b; }",
			"(fun add (a b) (return (+ a b)))"},
		{"anonymous function expression", "var f = fun (x) { return x; };",
			"(var f (fun (x) (return x)))"},
		{"bare return", "fun f() { return; }", "(fun f () (return))"},
		{"class", "class A { m() { return 1; } }", "(class A (fun m () (return 1)))"},
		{"class with superclass", "class B < A { }", "(class B < A)"},
		{"super call in method", "class B < A { m() { return super.m(); } }",
			"(class B < A (fun m () (return (call (super m)))))"},
		{"break and continue inside loop", "while (true) { break; continue; }",
			"(while true (block break continue))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, diags := parseSource(t, tt.source)
			if len(diags) != 0 {
				t.Fatalf("parse errors: %v", diags)
			}
			if got := (AstPrinter{}).PrintStmts(stmts); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseErrorRecovery(t *testing.T) {
	source := strings.Join([]string{
		"var 1 = 2;",
		"print 3;",
		"var = 4;",
		"print 5;",
	}, "\n")
	stmts, diags := parseSource(t, source)
	if len(diags) != 2 {
		t.Fatalf("got %d diagnostics, want 2: %v", len(diags), diags)
	}
	for i, d := range diags {
		if d.Category != diag.CATEGORY_SYNTAX {
			t.Errorf("diagnostic %d: category %s, want syntax", i, d.Category)
		}
	}
	if diags[0].Line != 1 || diags[1].Line != 3 {
		t.Errorf("diagnostic lines %d %d, want 1 3", diags[0].Line, diags[1].Line)
	}

	// the statements between the bad ones survive
	want := "(print 3)\n(print 5)"
	if got := (AstPrinter{}).PrintStmts(stmts); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestParseSynchronizeAtKeyword(t *testing.T) {
	// no ';' to skip to here, recovery stops at the `var` keyword instead
	stmts, diags := parseSource(t, "(1 2\nvar a = 2;")
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if !strings.Contains(diags[0].Message, "expect ')' after expression") {
		t.Errorf("message %q", diags[0].Message)
	}
	want := "(var a 2)"
	if got := (AstPrinter{}).PrintStmts(stmts); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestParseErrorAtEnd(t *testing.T) {
	_, diags := parseSource(t, "print 1")
	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
	}
	if !strings.Contains(diags[0].String(), " at end") {
		t.Errorf("diagnostic %q does not point at end", diags[0].String())
	}
	if !strings.Contains(diags[0].Message, "expect ';' after value") {
		t.Errorf("message %q", diags[0].Message)
	}
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"grouping", "(a) = 3;"},
		{"arithmetic", "a + b = 3;"},
		{"literal", "1 = 2;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := parseSource(t, tt.source)
			if len(diags) != 1 {
				t.Fatalf("got %d diagnostics, want 1: %v", len(diags), diags)
			}
			if !strings.Contains(diags[0].Message, "Invalid assignment target") {
				t.Errorf("message %q", diags[0].Message)
			}
		})
	}
}

func TestParseBreakContinueOutsideLoop(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{"break at top level", "break;", "break not inside loop"},
		{"continue at top level", "continue;", "continue not inside loop"},
		// the loop does not reach across the function boundary
		{"break in function inside loop", "while (true) { fun f() { break; } }", "break not inside loop"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, diags := parseSource(t, tt.source)
			if len(diags) == 0 {
				t.Fatal("expected a diagnostic")
			}
			if diags[0].Category != diag.CATEGORY_SYNTAX {
				t.Errorf("category %s, want syntax", diags[0].Category)
			}
			if !strings.Contains(diags[0].Message, tt.message) {
				t.Errorf("message %q does not mention %q", diags[0].Message, tt.message)
			}
		})
	}
}

func TestParseFunDeclarationVersusLiteral(t *testing.T) {
	// "fun" followed by an identifier is a declaration, otherwise the
	// expression grammar owns it
	t.Run("declaration", func(t *testing.T) {
		stmts, diags := parseSource(t, "fun f() {}")
		if len(diags) != 0 {
			t.Fatalf("parse errors: %v", diags)
		}
		if _, ok := stmts[0].(*Function); !ok {
			t.Fatalf("got %T, want *Function", stmts[0])
		}
	})
	t.Run("immediately invoked literal", func(t *testing.T) {
		stmts, diags := parseSource(t, "fun () { print 1; }();")
		if len(diags) != 0 {
			t.Fatalf("parse errors: %v", diags)
		}
		want := "(; (call (fun () (print 1))))"
		if got := (AstPrinter{}).PrintStmts(stmts); got != want {
			t.Errorf("got %s, want %s", got, want)
		}
	})
}

func TestParseCallChainDepth(t *testing.T) {
	// long call and property chains stay left associative
	got := parseExprString(t, "a.b.c(1).d(2)(3)")
	want := "(call (call (. (call (. (. a b) c) 1) d) 2) 3)"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
