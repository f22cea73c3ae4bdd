package linguaflow

import (
	"strconv"
	"strings"
)

// ValueKind tags a Value as integer or floating.
type ValueKind int

const (
	ValueInt ValueKind = iota
	ValueFloat
)

func (k ValueKind) String() string {
	if k == ValueFloat {
		return "float"
	}
	return "int"
}

// Value is the numeric result of evaluating an expression or subexpression,
// tagged with the span of the source that produced it.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64

	start, end Position
}

// AsFloat returns the value as a float64 regardless of kind.
func (v Value) AsFloat() float64 {
	if v.Kind == ValueFloat {
		return v.Float
	}
	return float64(v.Int)
}

// String formats the value. Floats always show a fractional form so that
// "15 / 3" reads 5.0, not 5.
func (v Value) String() string {
	if v.Kind == ValueInt {
		return strconv.FormatInt(v.Int, 10)
	}
	s := strconv.FormatFloat(v.Float, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !strings.Contains(s, "Inf") {
		s += ".0"
	}
	return s
}

// Span returns the source span the value originated from.
func (v Value) Span() (start, end Position) { return v.start, v.end }

func intValue(n int64, start, end Position) Value {
	return Value{Kind: ValueInt, Int: n, start: start, end: end}
}

func floatValue(f float64, start, end Position) Value {
	return Value{Kind: ValueFloat, Float: f, start: start, end: end}
}

// EvalOption configures a single evaluation.
type EvalOption func(*evaluator)

// WithTrace streams one line per evaluation step to fn, with the nesting
// depth of the step. The REPL's verbose mode uses it to show the walk.
func WithTrace(fn func(depth int, step string)) EvalOption {
	return func(ev *evaluator) { ev.trace = fn }
}

type evaluator struct {
	trace func(depth int, step string)
	depth int
}

func (ev *evaluator) step(msg string) {
	if ev.trace != nil {
		ev.trace(ev.depth, msg)
	}
}

// Eval evaluates a parsed expression. Evaluation is a single recursive
// dispatch over node kinds, left before right; the only runtime failure is
// division by zero, reported at the divisor's span.
func Eval(e *Expr, opts ...EvalOption) (Value, error) {
	ev := evaluator{}
	for _, opt := range opts {
		opt(&ev)
	}
	return ev.eval(e.n)
}

// Run sends a source text through the whole pipeline: tokenize, parse with
// resolver, evaluate. It fails fast on the first error; no partial result is
// ever returned alongside one.
func Run(name, text string, resolver Resolver) (Value, error) {
	toks, err := Tokenize(name, text)
	if err != nil {
		return Value{}, err
	}
	e, err := Parse(toks, resolver)
	if err != nil {
		return Value{}, err
	}
	return Eval(e)
}

func (ev *evaluator) eval(n *node) (Value, error) {
	switch n.kind {
	case nodeNum:
		ev.step("number " + n.literal())
		if n.float {
			return floatValue(n.fval, n.start, n.end), nil
		}
		return intValue(n.ival, n.start, n.end), nil
	case nodeUnary:
		ev.step("unary " + n.op.String())
		ev.depth++
		v, err := ev.eval(n.left)
		ev.depth--
		if err != nil {
			return Value{}, err
		}
		if n.op == OpSub {
			if v.Kind == ValueFloat {
				v.Float = -v.Float
			} else {
				v.Int = -v.Int
			}
		}
		v.start, v.end = n.start, n.end
		return v, nil
	case nodeBin:
		ev.step(opName(n.op) + " operation (" + n.op.String() + ")")
		ev.depth++
		l, err := ev.eval(n.left)
		if err != nil {
			ev.depth--
			return Value{}, err
		}
		r, err := ev.eval(n.right)
		ev.depth--
		if err != nil {
			return Value{}, err
		}
		v, err := apply(n.op, l, r, n.right)
		if err != nil {
			return Value{}, err
		}
		ev.step("result: " + l.String() + " " + n.op.String() + " " + r.String() + " = " + v.String())
		return v, nil
	case nodeList:
		ev.step("list " + opName(n.op) + " over " + strconv.Itoa(len(n.list)) + " numbers")
		ev.depth++
		acc, err := ev.eval(n.list[0])
		if err != nil {
			ev.depth--
			return Value{}, err
		}
		for _, el := range n.list[1:] {
			v, err := ev.eval(el)
			if err != nil {
				ev.depth--
				return Value{}, err
			}
			acc, err = apply(n.op, acc, v, el)
			if err != nil {
				ev.depth--
				return Value{}, err
			}
		}
		ev.depth--
		ev.step("fold result: " + acc.String())
		acc.start, acc.end = n.start, n.end
		return acc, nil
	default:
		panic("linguaflow: invalid AST node " + n.kind.String())
	}
}

// apply performs one arithmetic step. Addition, subtraction, and
// multiplication stay integral when both operands are; division always
// yields a float and fails when the right operand is exactly zero.
func apply(op Op, l, r Value, divisor *node) (Value, error) {
	start, end := l.start, r.end
	if op == OpDiv {
		if r.AsFloat() == 0 {
			return Value{}, &RuntimeError{Msg: "division by zero", Start: divisor.start, End: divisor.end}
		}
		return floatValue(l.AsFloat()/r.AsFloat(), start, end), nil
	}
	if l.Kind == ValueInt && r.Kind == ValueInt {
		var n int64
		switch op {
		case OpAdd:
			n = l.Int + r.Int
		case OpSub:
			n = l.Int - r.Int
		case OpMul:
			n = l.Int * r.Int
		}
		return intValue(n, start, end), nil
	}
	var f float64
	switch op {
	case OpAdd:
		f = l.AsFloat() + r.AsFloat()
	case OpSub:
		f = l.AsFloat() - r.AsFloat()
	case OpMul:
		f = l.AsFloat() * r.AsFloat()
	}
	return floatValue(f, start, end), nil
}

func opName(op Op) string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "subtract"
	case OpMul:
		return "multiply"
	case OpDiv:
		return "divide"
	default:
		return "op(" + string(byte(op)) + ")"
	}
}
