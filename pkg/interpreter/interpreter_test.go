package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pylite-lang/pylite/pkg/lexer"
	"github.com/pylite-lang/pylite/pkg/parser"
)

// runSource pushes src through the full pipeline and returns whatever
// print produced.
func runSource(t *testing.T, src string) (string, error) {
	t.Helper()
	tokens, err := lexer.New(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", src, err)
	}
	program, err := parser.New(tokens).Parse()
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}

	var out bytes.Buffer
	interp := New()
	interp.SetOutput(&out)
	err = interp.Interpret(program)
	return out.String(), err
}

func mustRun(t *testing.T, src string) string {
	t.Helper()
	out, err := runSource(t, src)
	if err != nil {
		t.Fatalf("Interpret(%q) failed: %v", src, err)
	}
	return out
}

func TestEndToEnd(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"precedence",
			"print(1 + 2 * 3)\n",
			"7\n",
		},
		{
			"variable",
			"x = 10\nprint(x - 3)\n",
			"7\n",
		},
		{
			"if else",
			"if 1 == 1:\n    print(\"yes\")\nelse:\n    print(\"no\")\n",
			"yes\n",
		},
		{
			"function call",
			"def add(a, b):\n    return a + b\nprint(add(2, 40))\n",
			"42\n",
		},
		{
			"nested if",
			"x = 5\nif x > 0:\n    if x < 10:\n        print(x)\n",
			"5\n",
		},
		{
			"recursive factorial",
			"def f(n):\n    if n == 0:\n        return 1\n    return n * f(n - 1)\nprint(f(5))\n",
			"120\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mustRun(t, tt.src); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"print(10 % 3)\n", "1\n"},
		{"print(7 / 2)\n", "3\n"},
		{"x = 0 - 7\nprint(x / 2)\n", "-3\n"}, // quotient truncates toward zero
		{"print(2 == 2, 2 != 2, 1 < 2, 2 <= 1, 3 > 2, 2 >= 3)\n", "1 0 1 0 1 0\n"},
	}
	for _, tt := range tests {
		if got := mustRun(t, tt.src); got != tt.want {
			t.Errorf("run(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestPrintRendering(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"print(\"a\", 1, \"b\")\n", "a 1 b\n"},
		{"print()\n", "\n"},
		{"print(\"no trailing space\")\n", "no trailing space\n"},
	}
	for _, tt := range tests {
		if got := mustRun(t, tt.src); got != tt.want {
			t.Errorf("run(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestTruthiness(t *testing.T) {
	// Any nonzero integer is true, not just 1.
	src := "x = 0 - 5\nif x:\n    print(\"nonzero\")\nif 0:\n    print(\"zero\")\nelse:\n    print(\"else\")\n"
	if got := mustRun(t, src); got != "nonzero\nelse\n" {
		t.Errorf("output = %q, want %q", got, "nonzero\nelse\n")
	}
}

func TestReassignmentIdempotent(t *testing.T) {
	once := mustRun(t, "x = 2 + 3\nprint(x)\n")
	twice := mustRun(t, "x = 2 + 3\nx = 2 + 3\nprint(x)\n")
	if once != twice {
		t.Errorf("reassignment changed the value: %q vs %q", once, twice)
	}
}

// A call must not disturb bindings that existed in the caller before
// the call: assignments inside the callee land in the callee's scope.
func TestFunctionScopeIsolation(t *testing.T) {
	src := `x = 1
def clobber():
    x = 99
    return x
y = clobber()
print(x, y)
`
	if got := mustRun(t, src); got != "1 99\n" {
		t.Errorf("output = %q, want %q", got, "1 99\n")
	}
}

// The callee scope chains to the caller's scope, so callers' bindings
// are readable from the function body.
func TestCalleeReadsCallerBindings(t *testing.T) {
	src := `def show():
    return base + 1
base = 10
print(show())
`
	if got := mustRun(t, src); got != "11\n" {
		t.Errorf("output = %q, want %q", got, "11\n")
	}
}

func TestParameterShadowsCallerBinding(t *testing.T) {
	src := `n = 100
def id(n):
    return n
print(id(7), n)
`
	if got := mustRun(t, src); got != "7 100\n" {
		t.Errorf("output = %q, want %q", got, "7 100\n")
	}
}

func TestReturnShortCircuits(t *testing.T) {
	src := `def f():
    return 1
    print("unreachable")
print(f())
`
	if got := mustRun(t, src); got != "1\n" {
		t.Errorf("output = %q, want %q", got, "1\n")
	}
}

func TestReturnInsideIfStopsEnclosingBlock(t *testing.T) {
	src := `def f(n):
    if n > 0:
        return n
    print("negative branch")
    return 0
print(f(3))
print(f(0 - 3))
`
	want := "3\nnegative branch\n0\n"
	if got := mustRun(t, src); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestFunctionWithoutReturnYieldsZero(t *testing.T) {
	src := "def noop():\n    x = 1\nprint(noop())\n"
	if got := mustRun(t, src); got != "0\n" {
		t.Errorf("output = %q, want %q", got, "0\n")
	}
}

func TestTopLevelReturnStopsProgram(t *testing.T) {
	src := "print(1)\nreturn 5\nprint(2)\n"
	if got := mustRun(t, src); got != "1\n" {
		t.Errorf("output = %q, want %q", got, "1\n")
	}
}

// A return inside a callee must not leak into the caller's block
// execution once the frame is restored.
func TestReturnDoesNotCascadePastCallFrame(t *testing.T) {
	src := `def f():
    return 7
a = f()
print(a)
print(a + 1)
`
	want := "7\n8\n"
	if got := mustRun(t, src); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLastFunctionDefinitionWins(t *testing.T) {
	src := `def f():
    return 1
def f():
    return 2
print(f())
`
	if got := mustRun(t, src); got != "2\n" {
		t.Errorf("output = %q, want %q", got, "2\n")
	}
}

// Operand evaluation order is left then right, observable through the
// prints inside the called functions.
func TestOperandEvaluationOrder(t *testing.T) {
	src := `def a():
    print("a")
    return 1
def b():
    print("b")
    return 2
print(a() + b())
`
	want := "a\nb\n3\n"
	if got := mustRun(t, src); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestDeepRecursion(t *testing.T) {
	src := `def sum(n):
    if n == 0:
        return 0
    return n + sum(n - 1)
print(sum(100))
`
	if got := mustRun(t, src); got != "5050\n" {
		t.Errorf("output = %q, want %q", got, "5050\n")
	}
}

func TestRuntimeErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"division by zero", "print(1 / 0)\n", "division by zero"},
		{"modulus by zero", "print(1 % 0)\n", "modulus by zero"},
		{"zero divisor from variable", "x = 0\nprint(10 / x)\n", "division by zero"},
		{"undefined variable", "print(y)\n", "undefined variable \"y\""},
		{"undefined function", "print(f(1))\n", "undefined function \"f\""},
		{"too few arguments", "def add(a, b):\n    return a + b\nprint(add(1))\n", "expects 2 arguments, got 1"},
		{"too many arguments", "def neg(a):\n    return 0 - a\nprint(neg(1, 2))\n", "expects 1 arguments, got 2"},
		{"string arithmetic", "print(\"a\" + 1)\n", "requires integer operands"},
		{"string assignment", "x = \"s\"\n", "integer is required"},
		{"string condition", "if \"s\":\n    print(1)\n", "integer is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runSource(t, tt.src)
			if err == nil {
				t.Fatalf("run(%q) succeeded, want error containing %q", tt.src, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestErrorsNameLine(t *testing.T) {
	_, err := runSource(t, "x = 1\ny = x / 0\n")
	if err == nil {
		t.Fatal("expected division by zero error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q does not name line 2", err)
	}
}

func TestScopeChain(t *testing.T) {
	root := NewScope(nil)
	root.Set("a", 1)
	child := NewScope(root)
	child.Set("b", 2)

	if v, ok := child.Get("a"); !ok || v != 1 {
		t.Errorf("child.Get(a) = (%d, %v), want (1, true)", v, ok)
	}
	if _, ok := root.Get("b"); ok {
		t.Error("root.Get(b) succeeded, child bindings must not leak upward")
	}

	// Shadowing binds locally without touching the parent.
	child.Set("a", 10)
	if v, _ := child.Get("a"); v != 10 {
		t.Errorf("child.Get(a) = %d after shadowing, want 10", v)
	}
	if v, _ := root.Get("a"); v != 1 {
		t.Errorf("root.Get(a) = %d, want 1", v)
	}
}

func TestScopeReturnSlot(t *testing.T) {
	s := NewScope(nil)
	if s.Returned() {
		t.Error("fresh scope reports returned")
	}
	if s.ReturnValue() != 0 {
		t.Errorf("default return value = %d, want 0", s.ReturnValue())
	}
	s.SetReturn(42)
	if !s.Returned() || s.ReturnValue() != 42 {
		t.Errorf("after SetReturn(42): returned=%v value=%d", s.Returned(), s.ReturnValue())
	}
}
