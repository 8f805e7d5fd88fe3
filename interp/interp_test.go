package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/pengo"
	"github.com/npillmayer/pengo/lang"
	"github.com/npillmayer/pengo/runtime"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func run(t *testing.T, src string, opts ...Option) (string, *Interpreter, error) {
	t.Helper()
	stmts, _, err := lang.Parse(src)
	if err != nil {
		t.Fatalf("cannot parse %q: %v", src, err)
	}
	var out bytes.Buffer
	ip := New(append([]Option{WithOutput(&out)}, opts...)...)
	err = ip.Run(stmts)
	return out.String(), ip, err
}

func expectOutput(t *testing.T, src, expected string, opts ...Option) {
	t.Helper()
	out, _, err := run(t, src, opts...)
	if err != nil {
		t.Errorf("%q: %v", src, err)
		return
	}
	if out != expected {
		t.Errorf("%q: expected output %q, have %q", src, expected, out)
	}
}

func expectError(t *testing.T, src, msg string) *RuntimeError {
	t.Helper()
	_, _, err := run(t, src)
	rterr, ok := err.(*RuntimeError)
	if !ok {
		t.Errorf("%q: expected runtime error, have %v", src, err)
		return nil
	}
	if !strings.Contains(rterr.Msg, msg) {
		t.Errorf("%q: expected error containing %q, have %q", src, msg, rterr.Msg)
	}
	return rterr
}

// --- the Tests -------------------------------------------------------------

func TestScenarioArithmetic(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.interp")
	defer teardown()
	//
	_, ip, err := run(t, "var x = 2 + 3 * 4;")
	if err != nil {
		t.Fatal(err)
	}
	x, fr := ip.Globals().Lookup("x")
	if fr != ip.Globals() || x.Kind() != runtime.IntKind || x.AsInt() != 14 {
		t.Errorf("expected global x = 14, have %s of kind %s", x, x.Kind())
	}
}

func TestScenarioIfElse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.interp")
	defer teardown()
	//
	expectOutput(t, `if (1 < 2) { println("yes"); } else { println("no"); }`, "yes\n")
	expectOutput(t, `if (1 > 2) { println("yes"); } else { println("no"); }`, "no\n")
	chain := `var n = %d;
	if (n == 1) { println("one"); }
	elseif (n == 2) { println("two"); }
	else { println("many"); }`
	expectOutput(t, strings.Replace(chain, "%d", "1", 1), "one\n")
	expectOutput(t, strings.Replace(chain, "%d", "2", 1), "two\n")
	expectOutput(t, strings.Replace(chain, "%d", "7", 1), "many\n")
	expectOutput(t, `if (false) { println("no"); } elseif (false) { println("no"); }`, "")
}

func TestScenarioFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.interp")
	defer teardown()
	//
	add := "func add(a, b) { return a + b; } "
	expectOutput(t, add+"println(add(2, 3));", "5\n")
	expectError(t, add+"println(add(2));", "expects 2 argument(s), called with 1")
	expectOutput(t, "func f() { return; } println(f());", "null\n")
	expectOutput(t, "func f() { } println(f());", "null\n")
	expectOutput(t, `func fib(n) {
		if (n < 2) { return n; }
		return fib(n - 1) + fib(n - 2);
	}
	println(fib(15));`, "610\n")
}

func TestScenarioStringConcat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.interp")
	defer teardown()
	//
	_, ip, err := run(t, `var s = "x" + 1;`)
	if err != nil {
		t.Fatal(err)
	}
	if s, _ := ip.Globals().Lookup("s"); s.Kind() != runtime.StringKind || s.AsString() != "x1" {
		t.Errorf(`expected s = "x1", have %s`, s)
	}
	expectError(t, "var b = true + 1;", "invalid operands for +: bool and int")
	expectOutput(t, `println(1.5 + "v" + true + null);`, "1.5vtruenull\n")
}

func TestScenarioScopes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.interp")
	defer teardown()
	//
	expectError(t, `var i = 0;
	while (i < 1) { var inner = 1; i = i + 1; }
	println(inner);`, `undefined name "inner"`)
	expectOutput(t, "var x = 1; { var x = 2; println(x); } println(x);", "2\n1\n")
	expectOutput(t, "var z = 1; { z = 2; } println(z);", "2\n")
	expectError(t, "{ y = 5; } println(y);", `undefined name "y"`)
	expectOutput(t, `var x = "global";
	func show() { println(x); }
	{ var x = "local"; show(); }`, "global\n")
}

func TestLoops(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.interp")
	defer teardown()
	//
	expectOutput(t, `var i = 0; var s = 0;
	while (true) {
		i = i + 1;
		if (i > 5) { break; }
		if (i == 3) { continue; }
		s = s + i;
	}
	println(s);`, "12\n")
	expectOutput(t, `var i = 0;
	while (i < 3) {
		var j = 0;
		while (true) { j = j + 1; if (j == 2) { break; } }
		print(i + j);
		i = i + 1;
	}`, "234")
	expectOutput(t, `func f() {
		var i = 0;
		while (true) { i = i + 1; if (i == 3) { return i; } }
	}
	println(f());`, "3\n")
}

func TestClosures(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.interp")
	defer teardown()
	//
	expectOutput(t, `func counter() {
		var c = 0;
		func next() { c = c + 1; return c; }
		return next;
	}
	var n = counter();
	var m = counter();
	n();
	println(n());
	println(m());`, "2\n1\n")
}

func TestShortCircuit(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.interp")
	defer teardown()
	//
	expectOutput(t, "println(false && undefinedName);", "false\n")
	expectOutput(t, "println(true || undefinedName);", "true\n")
	expectOutput(t, "println(true && 1 < 2);", "true\n")
	expectError(t, "true && 1;", "invalid right operand for &&: int")
	expectError(t, "1 || true;", "invalid left operand for ||: int")
}

func TestOperators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.interp")
	defer teardown()
	//
	for _, c := range []struct{ expr, result string }{
		{"7 / 2", "3"},
		{"7 / 2.0", "3.5"},
		{"2.0", "2"},
		{"1 - 2 - 3", "-4"},
		{"-(2 * 3)", "-6"},
		{"-1.5", "-1.5"},
		{"!false", "true"},
		{"null == null", "true"},
		{`"a" == "a"`, "true"},
		{"1 != 2", "true"},
		{"3 >= 3", "true"},
		{"2 <= 1", "false"},
	} {
		expectOutput(t, "println("+c.expr+");", c.result+"\n")
	}
}

func TestRuntimeErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.interp")
	defer teardown()
	//
	for _, c := range []struct{ src, msg string }{
		{"println(y);", `undefined name "y"`},
		{"x();", `undefined name "x"`},
		{"if (1) { }", "condition of if must be bool"},
		{"while (null) { }", "condition of while must be bool"},
		{"1 < 2.0;", "cannot compare int with float"},
		{`"a" < "b";`, "requires int operands"},
		{"1 / 0;", "division by zero"},
		{"!1;", "invalid operand for unary !"},
		{`-"s";`, "invalid operand for unary -"},
		{"return 1;", "return outside of function"},
		{"break;", "break outside of loop"},
		{"func f() { continue; } while (true) { f(); }", "continue outside of loop"},
		{"var x = 1; x();", "cannot call int value"},
		{"print(1, 2);", "print expects 1 argument(s)"},
	} {
		expectError(t, c.src, c.msg)
	}
	rterr := expectError(t, "var a = 1;\nvar b = a + true;", "invalid operands")
	if rterr != nil && rterr.Pos != pengo.At(2, 11) {
		t.Errorf("expected error at operator position (2:11), have %s", rterr.Pos)
	}
	expectError(t, "var count = 1; println(countt);", `did you mean "count"?`)
	expectError(t, "prinln(1);", `did you mean "println"?`)
}

func TestBuiltins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.interp")
	defer teardown()
	//
	input := WithInput(strings.NewReader("hello  42\n 2.5"))
	expectOutput(t, `var w = input();
	var n = int(input());
	var f = float(input());
	println(w + (n + 1));
	println(f * 2);
	println(input());`, "hello43\n5\nnull\n", input)
	expectOutput(t, "println(int(2.9)); println(float(1) / 2); println(int(\" 12 \"));", "2\n0.5\n12\n")
	expectError(t, `int("abc");`, `int: cannot convert "abc" to int`)
	expectError(t, "float(true);", "float: cannot convert bool to float")
	expectOutput(t, "println(random(5, 5));", "5\n")
	expectError(t, "random(2, 1);", "empty or too large range")
	expectError(t, "random(1, 2.5);", "bounds must be int")
}

func TestRandomSeed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.interp")
	defer teardown()
	//
	src := `var i = 0;
	while (i < 20) {
		var r = random(1, 6);
		if (r < 1 || r > 6) { println("out of range"); }
		print(r);
		i = i + 1;
	}`
	out1, _, err := run(t, src, WithSeed(42))
	if err != nil {
		t.Fatal(err)
	}
	out2, _, _ := run(t, src, WithSeed(42))
	if out1 != out2 || len(out1) != 20 {
		t.Errorf("expected identical sequences of 20 dice rolls, have %q and %q", out1, out2)
	}
}

func TestCustomBuiltins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.interp")
	defer teardown()
	//
	twice := NewBuiltin("twice", 1, func(ip *Interpreter, args []runtime.Value) (runtime.Value, error) {
		return runtime.Int(2 * args[0].AsInt()), nil
	})
	var log []string
	logPrint := NewBuiltin("println", 1, func(ip *Interpreter, args []runtime.Value) (runtime.Value, error) {
		log = append(log, args[0].String())
		return runtime.Null, nil
	})
	out, _, err := run(t, "println(twice(21));", WithBuiltins(twice, logPrint))
	if err != nil {
		t.Fatal(err)
	}
	if out != "" || len(log) != 1 || log[0] != "42" {
		t.Errorf("expected custom println to receive 42, have %v", log)
	}
}

func TestStackOverflow(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.interp")
	defer teardown()
	//
	stmts, _, err := lang.Parse("func f(n) { return f(n + 1); } f(0);")
	if err != nil {
		t.Fatal(err)
	}
	ip := New(WithMaxDepth(100))
	err = ip.Run(stmts)
	if rterr, ok := err.(*RuntimeError); !ok || !strings.Contains(rterr.Msg, "stack overflow") {
		t.Errorf("expected stack overflow, have %v", err)
	}
	if ip.rt.Depth() != 1 {
		t.Errorf("expected runtime to be unwound, depth is %d", ip.rt.Depth())
	}
}

func TestPersistentGlobals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "pengo.interp")
	defer teardown()
	//
	var out bytes.Buffer
	ip := New(WithOutput(&out))
	for _, src := range []string{"var x = 1;", "println(y);", "func inc(n) { return n + 1; }", "println(inc(x));"} {
		stmts, _, err := lang.Parse(src)
		if err != nil {
			t.Fatal(err)
		}
		ip.Run(stmts)
	}
	if out.String() != "2\n" {
		t.Errorf("expected globals to persist between runs, output is %q", out.String())
	}
}
