package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chazu/jbridge/jni"
	"github.com/chazu/jbridge/manifest"
	"github.com/chazu/jbridge/trace"
	"github.com/chazu/jbridge/vm"
)

type scenario struct {
	name string
	desc string
	run  func(env jni.Env) (string, error)
}

var scenarios = []scenario{
	{"static-call", "String.valueOf(42) through a packed frame", staticCall},
	{"builder", "construct a StringBuilder and chain instance calls", builder},
	{"fields", "read static and instance fields of several kinds", fields},
	{"strings", "round-trip non-ASCII text through java/lang/String", stringsScenario},
	{"exception", "capture ArithmeticException from Math.floorDiv", exception},
	{"lookup", "resolve a missing class and a missing field", lookup},
	{"rethrow", "hand Go errors and captured throwables back to the VM", rethrow},
}

// outcome is the result of one scenario run.
type outcome struct {
	Output     string
	Err        error
	LiveRefs   int
	Violations []string
	Log        *trace.Log
	Protocol   []trace.Violation
}

func (o outcome) ok() bool {
	return o.Err == nil && o.LiveRefs == 0 && len(o.Violations) == 0 && len(o.Protocol) == 0
}

// runScenario executes s on a fresh VM. Every entry point goes through a
// trace wrapper so the call sequence can be verified.
func runScenario(s scenario, m *manifest.Manifest, stderr io.Writer) outcome {
	machine := vm.New(append(m.VMOptions(), vm.WithStderr(stderr))...)
	base := machine.NewEnv()
	rec := trace.Wrap(base, s.name)

	out, err := s.run(rec)
	l := rec.Log()
	return outcome{
		Output:     out,
		Err:        err,
		LiveRefs:   base.LiveRefs(),
		Violations: base.Violations(),
		Log:        l,
		Protocol:   trace.Verify(l),
	}
}

func selectScenarios(names []string) ([]scenario, error) {
	if len(names) == 0 {
		return scenarios, nil
	}
	var out []scenario
	for _, name := range names {
		found := false
		for _, s := range scenarios {
			if s.name == name {
				out = append(out, s)
				found = true
				break
			}
		}
		if !found {
			known := make([]string, len(scenarios))
			for i, s := range scenarios {
				known[i] = s.name
			}
			return nil, fmt.Errorf("unknown scenario %q (known: %s)", name, strings.Join(known, ", "))
		}
	}
	return out, nil
}

func runDemo(stdout, stderr io.Writer, m *manifest.Manifest, names []string) error {
	selected, err := selectScenarios(names)
	if err != nil {
		return err
	}

	var store *trace.Store
	if m.Trace.Enabled {
		store, err = trace.OpenStore(m.TraceDBPath())
		if err != nil {
			return err
		}
		defer store.Close()
	}

	failed := 0
	for _, s := range selected {
		o := runScenario(s, m, stderr)
		fmt.Fprintf(stdout, "== %s: %s\n", s.name, s.desc)
		if o.Err != nil {
			fmt.Fprintf(stdout, "   error: %v\n", o.Err)
		} else {
			for _, line := range strings.Split(o.Output, "\n") {
				fmt.Fprintf(stdout, "   %s\n", line)
			}
		}
		fmt.Fprintf(stdout, "   %d entry points, %d live refs\n", len(o.Log.Calls), o.LiveRefs)
		for _, v := range o.Violations {
			fmt.Fprintf(stdout, "   vm violation: %s\n", v)
		}
		for _, v := range o.Protocol {
			fmt.Fprintf(stdout, "   trace violation: %s\n", v)
		}
		if store != nil {
			if err := store.Save(o.Log); err != nil {
				return err
			}
			fmt.Fprintf(stdout, "   saved session %s\n", o.Log.Session)
		}
		if !o.ok() {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d scenarios failed", failed, len(selected))
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scenarios
// ---------------------------------------------------------------------------

// take decodes s and releases it.
func take(env jni.Env, s jni.String) (string, error) {
	ref := jni.NewLocalRef(env, s)
	defer ref.Close()
	return jni.GoString(env, s)
}

// describe renders a captured exception and releases its throwable.
func describe(env jni.Env, err error) string {
	var e *jni.Error
	if !errors.As(err, &e) || e.Throwable.IsNull() {
		return err.Error()
	}
	defer e.Release(env)
	text, derr := jni.Describe(env, e.Throwable)
	if derr != nil {
		return err.Error()
	}
	return text
}

func staticCall(env jni.Env) (string, error) {
	s, err := jni.CallStaticMethod[jni.String](env, "java/lang/String", "valueOf", "(I)Ljava/lang/String;", jni.Int(42))
	if err != nil {
		return "", err
	}
	text, err := take(env, s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("String.valueOf(42) = %q", text), nil
}

func builder(env jni.Env) (string, error) {
	sb, err := jni.NewObject(env, "java/lang/StringBuilder", "(Ljava/lang/String;)V", jni.Text("answer="))
	if err != nil {
		return "", err
	}
	sbRef := jni.NewLocalRef(env, sb)
	defer sbRef.Close()

	appends := []struct {
		sig string
		arg jni.Arg
	}{
		{"(I)Ljava/lang/StringBuilder;", jni.Int(42)},
		{"(C)Ljava/lang/StringBuilder;", jni.Char(',')},
		{"(Z)Ljava/lang/StringBuilder;", jni.Boolean(true)},
		{"(Ljava/lang/String;)Ljava/lang/StringBuilder;", jni.Null},
	}
	for _, a := range appends {
		self, err := jni.CallMethod[jni.Object](env, sb, "append", a.sig, a.arg)
		if err != nil {
			return "", err
		}
		jni.NewLocalRef(env, self).Close()
	}

	n, err := jni.CallMethod[jni.Int](env, sb, "length", "()I")
	if err != nil {
		return "", err
	}
	s, err := jni.CallMethod[jni.String](env, sb, "toString", "()Ljava/lang/String;")
	if err != nil {
		return "", err
	}
	text, err := take(env, s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%q (length %d)", text, n), nil
}

func fields(env jni.Env) (string, error) {
	maxInt, err := jni.GetStaticField[jni.Int](env, "java/lang/Integer", "MAX_VALUE")
	if err != nil {
		return "", err
	}
	maxLong, err := jni.GetStaticField[jni.Long](env, "java/lang/Long", "MAX_VALUE")
	if err != nil {
		return "", err
	}
	pi, err := jni.GetStaticField[jni.Double](env, "java/lang/Math", "PI")
	if err != nil {
		return "", err
	}
	maxChar, err := jni.GetStaticField[jni.Char](env, "java/lang/Character", "MAX_VALUE")
	if err != nil {
		return "", err
	}

	boxed, err := jni.GetStaticFieldAs[jni.Object](env, "java/lang/Boolean", "TRUE", "Ljava/lang/Boolean;")
	if err != nil {
		return "", err
	}
	boxedRef := jni.NewLocalRef(env, boxed)
	defer boxedRef.Close()
	truth, err := jni.CallMethod[jni.Boolean](env, boxed, "booleanValue", "()Z")
	if err != nil {
		return "", err
	}

	seven, err := jni.NewObject(env, "java/lang/Integer", "(I)V", jni.Int(7))
	if err != nil {
		return "", err
	}
	sevenRef := jni.NewLocalRef(env, seven)
	defer sevenRef.Close()
	value, err := jni.GetField[jni.Int](env, seven, "value")
	if err != nil {
		return "", err
	}

	lines := []string{
		fmt.Sprintf("Integer.MAX_VALUE = %d", maxInt),
		fmt.Sprintf("Long.MAX_VALUE = %d", maxLong),
		fmt.Sprintf("Math.PI = %v", pi),
		fmt.Sprintf("Character.MAX_VALUE = %#x", maxChar),
		fmt.Sprintf("Boolean.TRUE.booleanValue() = %t", truth),
		fmt.Sprintf("new Integer(7).value = %d", value),
	}
	return strings.Join(lines, "\n"), nil
}

func stringsScenario(env jni.Env) (string, error) {
	s, err := jni.NewString(env, "grüße, 世界")
	if err != nil {
		return "", err
	}
	sRef := jni.NewLocalRef(env, s)
	defer sRef.Close()

	n, err := jni.CallMethod[jni.Int](env, jni.Object(s), "length", "()I")
	if err != nil {
		return "", err
	}
	c, err := jni.CallMethod[jni.Char](env, jni.Object(s), "charAt", "(I)C", jni.Int(8))
	if err != nil {
		return "", err
	}
	upper, err := jni.CallMethod[jni.String](env, jni.Object(s), "toUpperCase", "()Ljava/lang/String;")
	if err != nil {
		return "", err
	}
	text, err := take(env, upper)
	if err != nil {
		return "", err
	}
	joined, err := jni.CallMethod[jni.String](env, jni.Object(s), "concat", "(Ljava/lang/String;)Ljava/lang/String;", jni.Text("!"))
	if err != nil {
		return "", err
	}
	tail, err := take(env, joined)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("length = %d, charAt(8) = %q\nupper = %q\nconcat = %q", n, rune(c), text, tail), nil
}

func exception(env jni.Env) (string, error) {
	_, err := jni.CallStaticMethod[jni.Int](env, "java/lang/Math", "floorDiv", "(II)I", jni.Int(1), jni.Int(0))
	if err == nil {
		return "", fmt.Errorf("floorDiv(1, 0) did not raise")
	}
	if !errors.Is(err, jni.ErrInvocation) {
		return "", err
	}
	msg := err.Error()
	return fmt.Sprintf("%s\ncaught %s", msg, describe(env, err)), nil
}

func lookup(env jni.Env) (string, error) {
	var lines []string

	_, err := jni.FindClass(env, "app/Missing")
	if !errors.Is(err, jni.ErrLookup) {
		return "", fmt.Errorf("FindClass app/Missing: want lookup error, got %v", err)
	}
	lines = append(lines, fmt.Sprintf("%v: %s", err, describe(env, err)))

	_, err = jni.GetStaticField[jni.Int](env, "java/lang/Integer", "SIZE")
	if !errors.Is(err, jni.ErrLookup) {
		return "", fmt.Errorf("Integer.SIZE: want lookup error, got %v", err)
	}
	lines = append(lines, fmt.Sprintf("%v: %s", err, describe(env, err)))

	_, err = jni.CallStaticMethod[jni.Int](env, "java/lang/Math", "max", "(DD)D", jni.Double(1), jni.Double(2))
	if !errors.Is(err, jni.ErrLookup) {
		return "", fmt.Errorf("Math.max(DD): want lookup error, got %v", err)
	}
	lines = append(lines, fmt.Sprintf("%v: %s", err, describe(env, err)))

	return strings.Join(lines, "\n"), nil
}

func rethrow(env jni.Env) (string, error) {
	var lines []string

	if err := jni.ThrowError(env, errors.New("config file missing")); err != nil {
		return "", err
	}
	err := jni.Check(env)
	if err == nil {
		return "", fmt.Errorf("ThrowError left nothing pending")
	}
	lines = append(lines, "go error -> "+describe(env, err))

	_, captured := jni.CallStaticMethod[jni.Int](env, "java/lang/Integer", "parseInt", "(Ljava/lang/String;)I", jni.Text("forty-two"))
	var e *jni.Error
	if !errors.As(captured, &e) {
		return "", fmt.Errorf("parseInt: want bridge error, got %v", captured)
	}
	// ThrowError gives up the handle without deleting it; outside a native
	// frame nothing else would.
	h := e.Throwable
	if err := jni.ThrowError(env, captured); err != nil {
		return "", err
	}
	env.DeleteLocalRef(jni.Object(h))
	err = jni.Check(env)
	if err == nil {
		return "", fmt.Errorf("ThrowError left nothing pending")
	}
	lines = append(lines, "rethrown -> "+describe(env, err))

	return strings.Join(lines, "\n"), nil
}
