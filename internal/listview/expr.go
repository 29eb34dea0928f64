package listview

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Declarations returns the AIP-160 identifiers available to expressions on
// this page. Numeric fields are declared as integers; values compare as
// floating point.
func (d Descriptor[T]) Declarations() (*filtering.Declarations, error) {
	opts := []filtering.DeclarationOption{filtering.DeclareStandardFunctions()}
	for name, field := range d.Fields {
		var typ *expr.Type
		switch field.kind {
		case KindNumber:
			typ = filtering.TypeInt
		case KindTime:
			typ = filtering.TypeTimestamp
		case KindBool:
			typ = filtering.TypeBool
		default:
			typ = filtering.TypeString
		}
		opts = append(opts, filtering.DeclareIdent(name, typ))
	}
	return filtering.NewDeclarations(opts...)
}

// compileExpr parses an AIP-160 filter into an in-memory predicate.
func compileExpr[T any](d Descriptor[T], src string) (func(T) bool, error) {
	decls, err := d.Declarations()
	if err != nil {
		return nil, fmt.Errorf("create declarations: %w", err)
	}
	filter, err := filtering.ParseFilterString(src, decls)
	if err != nil {
		return nil, fmt.Errorf("parse filter: %w", err)
	}
	if filter.CheckedExpr == nil || filter.CheckedExpr.Expr == nil {
		return func(T) bool { return true }, nil
	}
	c := exprCompiler[T]{d: d}
	return c.compile(filter.CheckedExpr.Expr)
}

type exprCompiler[T any] struct {
	d Descriptor[T]
}

func (c exprCompiler[T]) compile(e *expr.Expr) (func(T) bool, error) {
	switch kind := e.ExprKind.(type) {
	case *expr.Expr_CallExpr:
		return c.compileCall(kind.CallExpr)
	case *expr.Expr_IdentExpr:
		field, ok := c.d.Fields[kind.IdentExpr.Name]
		if !ok || field.kind != KindBool {
			return nil, fmt.Errorf("bare identifier %q is not a bool field", kind.IdentExpr.Name)
		}
		return field.boolValue, nil
	default:
		return nil, fmt.Errorf("unsupported expression type: %T", kind)
	}
}

func (c exprCompiler[T]) compileCall(call *expr.Expr_Call) (func(T) bool, error) {
	switch call.Function {
	case "_&&_", "AND", "FUZZY":
		left, right, err := c.compilePair(call.Args)
		if err != nil {
			return nil, err
		}
		return func(rec T) bool { return left(rec) && right(rec) }, nil
	case "_||_", "OR":
		left, right, err := c.compilePair(call.Args)
		if err != nil {
			return nil, err
		}
		return func(rec T) bool { return left(rec) || right(rec) }, nil
	case "NOT", "-", "!_":
		if len(call.Args) != 1 {
			return nil, fmt.Errorf("NOT requires 1 argument")
		}
		inner, err := c.compile(call.Args[0])
		if err != nil {
			return nil, err
		}
		return func(rec T) bool { return !inner(rec) }, nil
	case "_==_", "=":
		return c.compileComparison(call.Args, func(n int) bool { return n == 0 })
	case "_!=_", "!=":
		return c.compileComparison(call.Args, func(n int) bool { return n != 0 })
	case "_<_", "<":
		return c.compileComparison(call.Args, func(n int) bool { return n < 0 })
	case "_<=_", "<=":
		return c.compileComparison(call.Args, func(n int) bool { return n <= 0 })
	case "_>_", ">":
		return c.compileComparison(call.Args, func(n int) bool { return n > 0 })
	case "_>=_", ">=":
		return c.compileComparison(call.Args, func(n int) bool { return n >= 0 })
	case ":":
		return c.compileHas(call.Args)
	default:
		return nil, fmt.Errorf("unsupported function: %s", call.Function)
	}
}

func (c exprCompiler[T]) compilePair(args []*expr.Expr) (func(T) bool, func(T) bool, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("logical operator requires 2 arguments")
	}
	left, err := c.compile(args[0])
	if err != nil {
		return nil, nil, err
	}
	right, err := c.compile(args[1])
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func (c exprCompiler[T]) compileComparison(args []*expr.Expr, accept func(int) bool) (func(T) bool, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("comparison requires 2 arguments")
	}
	name, err := identName(args[0])
	if err != nil {
		return nil, err
	}
	field, ok := c.d.Fields[name]
	if !ok {
		return nil, fmt.Errorf("unknown field: %s", name)
	}
	value, err := constValue(args[1])
	if err != nil {
		return nil, err
	}

	switch field.kind {
	case KindNumber:
		want, ok := asNumber(value)
		if !ok {
			return nil, fmt.Errorf("field %s expects a number", name)
		}
		return func(rec T) bool {
			got, _ := field.numberValue(rec)
			return accept(cmp.Compare(got, want))
		}, nil
	case KindTime:
		want, err := asTime(value, c.d.location())
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		return func(rec T) bool {
			got, _ := field.timeValue(rec)
			return accept(got.Compare(want))
		}, nil
	case KindBool:
		want, ok := value.(bool)
		if !ok {
			return nil, fmt.Errorf("field %s expects true or false", name)
		}
		return func(rec T) bool {
			got := field.boolValue(rec)
			if got == want {
				return accept(0)
			}
			if !got {
				return accept(-1)
			}
			return accept(1)
		}, nil
	default:
		want := fmt.Sprint(value)
		return func(rec T) bool {
			return accept(strings.Compare(field.stringValue(rec), want))
		}, nil
	}
}

// compileHas treats ":" as case-insensitive containment on text fields.
func (c exprCompiler[T]) compileHas(args []*expr.Expr) (func(T) bool, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("has requires 2 arguments")
	}
	name, err := identName(args[0])
	if err != nil {
		return nil, err
	}
	field, ok := c.d.Fields[name]
	if !ok {
		return nil, fmt.Errorf("unknown field: %s", name)
	}
	value, err := constValue(args[1])
	if err != nil {
		return nil, err
	}
	needle := FoldText(fmt.Sprint(value))
	return func(rec T) bool {
		return strings.Contains(folder.String(field.Text(rec)), needle)
	}, nil
}

func identName(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}
	ident, ok := e.ExprKind.(*expr.Expr_IdentExpr)
	if !ok {
		return "", fmt.Errorf("expected identifier, got %T", e.ExprKind)
	}
	return ident.IdentExpr.Name, nil
}

func constValue(e *expr.Expr) (any, error) {
	if e == nil {
		return nil, fmt.Errorf("nil expression")
	}
	switch kind := e.ExprKind.(type) {
	case *expr.Expr_ConstExpr:
		switch v := kind.ConstExpr.ConstantKind.(type) {
		case *expr.Constant_StringValue:
			return v.StringValue, nil
		case *expr.Constant_Int64Value:
			return v.Int64Value, nil
		case *expr.Constant_Uint64Value:
			return v.Uint64Value, nil
		case *expr.Constant_DoubleValue:
			return v.DoubleValue, nil
		case *expr.Constant_BoolValue:
			return v.BoolValue, nil
		default:
			return nil, fmt.Errorf("unsupported constant type: %T", v)
		}
	case *expr.Expr_IdentExpr:
		switch kind.IdentExpr.Name {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return kind.IdentExpr.Name, nil
	case *expr.Expr_CallExpr:
		if kind.CallExpr.Function == "timestamp" && len(kind.CallExpr.Args) == 1 {
			raw, err := constValue(kind.CallExpr.Args[0])
			if err != nil {
				return nil, err
			}
			s, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("timestamp expects a string")
			}
			return time.Parse(time.RFC3339, s)
		}
		return nil, fmt.Errorf("unsupported function in value position: %s", kind.CallExpr.Function)
	default:
		return nil, fmt.Errorf("expected constant, got %T", kind)
	}
}

func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

func asTime(value any, loc *time.Location) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, nil
		}
		return time.ParseInLocation(DateLayout, v, loc)
	default:
		return time.Time{}, fmt.Errorf("expected a timestamp")
	}
}
