package repl

import (
	"bytes"
	"strings"
	"testing"

	"scheme/interpreter-go/pkg/syntax"
)

func runBatch(t *testing.T, input string) string {
	t.Helper()
	var out bytes.Buffer
	r := New(syntax.NewReader(strings.NewReader(input)), &out)
	if err := r.Run(); err != nil {
		t.Fatalf("repl run failed: %v", err)
	}
	return out.String()
}

func wantLines(t *testing.T, input string, lines ...string) {
	t.Helper()
	want := ""
	if len(lines) > 0 {
		want = strings.Join(lines, "\n") + "\n"
	}
	if got := runBatch(t, input); got != want {
		t.Fatalf("input %q:\ngot  %q\nwant %q", input, got, want)
	}
}

func TestSimpleExpression(t *testing.T) {
	wantLines(t, "(+ 1 2)", "3")
}

func TestDefineThenCall(t *testing.T) {
	wantLines(t,
		"(define (fact n) (if (= n 0) 1 (* n (fact (- n 1))))) (fact 5)",
		"", "120")
}

func TestLetScenario(t *testing.T) {
	wantLines(t, "(let ((x 1) (y 2)) (+ x y))", "3")
}

func TestPairMutationScenario(t *testing.T) {
	wantLines(t,
		"(define p (cons 1 2)) (set-cdr! p 9) p",
		"", "", "(1 . 9)")
}

func TestCondScenario(t *testing.T) {
	wantLines(t, "(cond ((= 1 2) 'a) ((= 2 2) 'b) (else 'c))", "b")
}

func TestDottedQuoteScenario(t *testing.T) {
	wantLines(t, "'(1 2 . 3)", "(1 2 . 3)")
}

func TestImplicitVoidPrintsBlankLine(t *testing.T) {
	wantLines(t, "(define x 1)", "")
	wantLines(t, "(define p (cons 1 2)) (set-car! p 5)", "", "")
}

func TestExplicitVoidPrints(t *testing.T) {
	wantLines(t, "(void)", "#<void>")
	wantLines(t, "(begin 1 (void))", "#<void>")
	wantLines(t, "(if #t (void) 1)", "#<void>")
	wantLines(t, "(cond (#t (void)))", "#<void>")
	// Only the top-level shape counts: a void produced inside a let is
	// still implicit.
	wantLines(t, "(let ((f void)) (f))", "")
}

func TestImplicitVoidFromNonVoidTail(t *testing.T) {
	// set-car! produces void but is not an explicit void call.
	wantLines(t, "(begin (set-car! (cons 1 2) 5))", "")
}

func TestTopLevelMutualRecursion(t *testing.T) {
	wantLines(t,
		"(define (even? n) (if (= n 0) #t (odd? (- n 1))))"+
			"(define (odd? n) (if (= n 0) #f (even? (- n 1))))"+
			"(even? 10)",
		"", "", "#t")
}

func TestRuntimeErrorRecovers(t *testing.T) {
	wantLines(t, "(/ 1 0) (+ 1 2)", "RuntimeError", "3")
	wantLines(t, "(car 'a) 7", "RuntimeError", "7")
	wantLines(t, "nope 7", "RuntimeError", "7")
}

func TestParseErrorRecovers(t *testing.T) {
	wantLines(t, "(-) 7", "RuntimeError", "7")
	wantLines(t, "(if 1) 7", "RuntimeError", "7")
}

func TestReadErrorRecovers(t *testing.T) {
	wantLines(t, ") 7", "RuntimeError", "7")
}

func TestFlushCommitsBeforeFailingForm(t *testing.T) {
	// The batch flushes before the failing form evaluates, so the define
	// survives the error.
	wantLines(t, "(define x 1) (car 'a) x", "", "RuntimeError", "1")
}

func TestFailedFlushDiscardsPendingDefines(t *testing.T) {
	// The failing initializer aborts the flush: the name keeps its void
	// placeholder and the batch is not retried on the next form.
	wantLines(t, "(define x (car 'a)) 5 x", "", "RuntimeError", "")
	wantLines(t, "(define x (car 'a)) 5 6", "", "RuntimeError", "6")
}

func TestExitEndsLoop(t *testing.T) {
	wantLines(t, "1 (exit) 2", "1")
	wantLines(t, "(exit)")
	wantLines(t, "(if #t (exit) 1) 2")
}

func TestShadowingAtTopLevel(t *testing.T) {
	wantLines(t, "(define + 5) (- + 2)", "", "3")
}

func TestDisplayInterleavesWithResults(t *testing.T) {
	// display writes without a newline; the expression's own implicit-void
	// result then prints the newline that ends that line.
	wantLines(t, "(display 7)", "7")
}

func TestEmptyInputTerminates(t *testing.T) {
	if got := runBatch(t, "  ; just a comment\n"); got != "" {
		t.Fatalf("expected no output, got %q", got)
	}
}
