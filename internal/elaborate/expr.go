package elaborate

import (
	"github.com/vulpi-lang/vulpi/internal/ast"
	"github.com/vulpi-lang/vulpi/internal/module"
	"github.com/vulpi-lang/vulpi/internal/report"
	"github.com/vulpi-lang/vulpi/internal/types"
)

// checkExpr is the bidirectional "check" direction: it pushes expected
// down through the syntax-directed cases that can use it (Lambda,
// Let's body, When's arms) and otherwise falls back to infer plus a
// subsumption check, matching the teacher's own check/infer split for
// its own expression language (spec.md §4.4.2).
func checkExpr(env *module.Env, e ast.Expr, expected types.Virtual) types.Virtual {
	switch n := e.(type) {
	case ast.Lambda:
		arrow, ok := asArrow(env, expected)
		if !ok {
			reportAt(env.On(n.Span), report.NotAFunction{Got: expected.String()})
			return types.VError{}
		}
		inner := checkPattern(env, n.Pattern, arrow.Left)
		sink := &module.EffectSink{}
		checkExpr(inner.WithEffectSink(sink), n.Body, arrow.Right)
		if err := types.UnifyRow(sink.Row, arrow.Effects); err != nil {
			reportTypeError(env.On(n.Span), err, arrow.Effects.String(), sink.Row.String())
		}
		return expected

	case ast.Let:
		valueType := inferExpr(env, n.Value)
		inner := checkPattern(env, n.Pattern, valueType)
		return checkExpr(inner, n.Body, expected)

	case ast.When:
		return checkWhen(env, n, expected)

	case ast.Cases:
		return checkWhen(env, ast.When{Arms: n.Arms, Span: n.Span}, expected)

	case ast.Do:
		return checkDo(env, n, expected)

	default:
		got := inferExpr(env, e)
		if err := types.Subsumes(env, got, expected); err != nil {
			reportTypeError(env.On(e.GetSpan()), err, expected.String(), got.String())
			return types.VError{}
		}
		return expected
	}
}

// inferExpr is the bidirectional "infer" direction, covering every
// Expr kind including the thin mirrored rules for Projection,
// RecordInstance, RecordUpdate, Handler, Cases and Effect (spec.md §9
// Open Question 1).
func inferExpr(env *module.Env, e ast.Expr) types.Virtual {
	switch n := e.(type) {
	case ast.LiteralExpr:
		return literalType(n.Literal)

	case ast.Variable:
		if v, ok := env.Variable(n.Qualified.Last); ok {
			return v
		}
		ns := env.ResolveNamespace(n.Qualified)
		if info, ok := env.Table.Variable(ns, n.Qualified.Last); ok {
			return types.Instantiate(env, types.Eval(nil, info.Scheme))
		}
		reportAt(env.On(n.Span), report.UnresolvedVariable{Name: env.Symbols.String(n.Qualified.Last)})
		return types.VError{}

	case ast.Function:
		ns := env.ResolveNamespace(n.Qualified)
		if info, ok := env.Table.Variable(ns, n.Qualified.Last); ok {
			return types.Instantiate(env, types.Eval(nil, info.Scheme))
		}
		reportAt(env.On(n.Span), report.CannotFind{Name: env.Symbols.String(n.Qualified.Last)})
		return types.VError{}

	case ast.Constructor:
		ns := env.ResolveNamespace(n.Qualified)
		if info, ok := env.Table.Constructor(ns, n.Qualified.Last); ok {
			return types.Instantiate(env, types.Eval(nil, info.Scheme))
		}
		reportAt(env.On(n.Span), report.CannotFind{Name: env.Symbols.String(n.Qualified.Last)})
		return types.VError{}

	case ast.Effect:
		ns := env.ResolveNamespace(n.Qualified)
		if info, ok := env.Table.Operation(ns, n.Qualified.Last); ok {
			env.Effects().Fold(types.ClosedRow(env.Symbols.String(n.Qualified.Last)))
			return types.Instantiate(env, types.Eval(nil, info.Scheme))
		}
		reportAt(env.On(n.Span), report.CannotFind{Name: env.Symbols.String(n.Qualified.Last)})
		return types.VError{}

	case ast.Lambda:
		// A fresh sink isolates this body's own effects from whatever
		// ambient sink env already carries: defining a closure performs
		// nothing, so the effects only surface in the arrow's own
		// Effects field, not the enclosing call site's (spec.md §4.4.2).
		argHole := types.Virtual(types.VHole{Hole: env.NewHole(types.Star)})
		inner := checkPattern(env, n.Pattern, argHole)
		sink := &module.EffectSink{}
		resultType := inferExpr(inner.WithEffectSink(sink), n.Body)
		return types.VArrow{Left: argHole, Effects: sink.Row, Right: resultType}

	case ast.Application:
		fnType := inferExpr(env, n.Func)
		arrow, ok := asArrow(env, fnType)
		if !ok {
			reportAt(env.On(n.Span), report.NotAFunction{Got: fnType.String()})
			return types.VError{}
		}
		checkExpr(env, n.Arg, arrow.Left)
		// Calling the function performs its arrow's effects now, unlike
		// defining it, so they fold into the call site's own ambient set
		// (spec.md §4.4.2).
		env.Effects().Fold(arrow.Effects)
		return arrow.Right

	case ast.Let:
		valueType := inferExpr(env, n.Value)
		inner := checkPattern(env, n.Pattern, valueType)
		return inferExpr(inner, n.Body)

	case ast.When:
		result := types.Virtual(types.VHole{Hole: env.NewHole(types.Star)})
		checkWhen(env, n, result)
		return result

	case ast.Cases:
		result := types.Virtual(types.VHole{Hole: env.NewHole(types.Star)})
		checkWhen(env, ast.When{Arms: n.Arms, Span: n.Span}, result)
		return result

	case ast.Do:
		result := types.Virtual(types.VHole{Hole: env.NewHole(types.Star)})
		return checkDo(env, n, result)

	case ast.Tuple:
		elems := make([]types.Virtual, len(n.Elems))
		for i, el := range n.Elems {
			elems[i] = inferExpr(env, el)
		}
		return types.VTuple{Elems: elems}

	case ast.Annotation:
		declared := checkType(env, n.Type, types.Star)
		return checkExpr(env, n.Expr, declared)

	case ast.Projection:
		recordType := inferExpr(env, n.Expr)
		head := headCon(recordType)
		if head == "" {
			reportAt(env.On(n.Span), report.CannotFind{Name: env.Symbols.String(n.Field.Name)})
			return types.VError{}
		}
		owner, ok := env.Table.FieldOwner(env.Namespace, n.Field.Name)
		if !ok {
			reportAt(env.On(n.Span), report.CannotFind{Name: env.Symbols.String(n.Field.Name)})
			return types.VError{}
		}
		info, ok := env.Table.Field(env.Namespace, n.Field.Name)
		if !ok {
			reportAt(env.On(n.Span), report.CannotFind{Name: env.Symbols.String(n.Field.Name)})
			return types.VError{}
		}
		_ = owner
		accessor := types.Instantiate(env, types.Eval(nil, info.Scheme))
		arrow, ok := asArrow(env, accessor)
		if !ok {
			return types.VError{}
		}
		if err := types.Unify(arrow.Left, recordType); err != nil {
			reportTypeError(env.On(n.Span), err, arrow.Left.String(), recordType.String())
		}
		return arrow.Right

	case ast.RecordInstance:
		return checkRecordFields(env, n.Qualified, n.Fields, n.Span)

	case ast.RecordUpdate:
		recordType := inferExpr(env, n.Expr)
		for _, f := range n.Fields {
			info, ok := env.Table.Field(env.Namespace, f.Name.Name)
			if !ok {
				reportAt(env.On(f.Span), report.CannotFind{Name: env.Symbols.String(f.Name.Name)})
				continue
			}
			accessor := types.Instantiate(env, types.Eval(nil, info.Scheme))
			arrow, ok := asArrow(env, accessor)
			if !ok {
				continue
			}
			if err := types.Unify(arrow.Left, recordType); err != nil {
				reportTypeError(env.On(f.Span), err, arrow.Left.String(), recordType.String())
			}
			checkExpr(env, f.Value, arrow.Right)
		}
		return recordType

	case ast.Handler:
		// Body's own effects become resume's Effects: resuming re-enters
		// the handled computation, so it can still perform whatever the
		// body could before this handler intercepted anything. Each arm
		// body gets its own sink, folded back into the Handler's own
		// ambient set once interpreted (spec.md §4.4.2, §9 Open Question 1).
		bodySink := &module.EffectSink{}
		resultType := inferExpr(env.WithEffectSink(bodySink), n.Body)
		for _, arm := range n.Arms {
			ns := env.ResolveNamespace(arm.Qualified)
			info, ok := env.Table.Operation(ns, arm.Qualified.Last)
			if !ok {
				reportAt(env.On(arm.Span), report.CannotFind{Name: env.Symbols.String(arm.Qualified.Last)})
				continue
			}
			scheme := types.Instantiate(env, types.Eval(nil, info.Scheme))
			armEnv := env
			for _, p := range arm.Args {
				arrow, ok := asArrow(armEnv, scheme)
				if !ok {
					break
				}
				armEnv = checkPattern(armEnv, p, arrow.Left)
				scheme = arrow.Right
			}
			sink := &module.EffectSink{}
			resumeType := types.VArrow{Left: scheme, Effects: bodySink.Row, Right: resultType}
			armEnv = armEnv.WithVariable(arm.Resume.Name, resumeType).WithEffectSink(sink)
			checkExpr(armEnv, arm.Body, resultType)
			env.Effects().Fold(sink.Row)
		}
		return resultType

	case ast.Error:
		return types.VError{}

	default:
		return types.VError{}
	}
}

// checkDo elaborates every statement as a Let binding in sequence, the
// desugared shape of a do-block. The block's result is forced to Unit
// when the last statement is a genuine `let` (WasLet), and otherwise
// checked against expected as the last statement's own value type
// (spec.md §4.4.2, "the block's result type is Unit if the last
// statement is a let, otherwise the expression's type").
func checkDo(env *module.Env, n ast.Do, expected types.Virtual) types.Virtual {
	cur := env
	for i, s := range n.Statements {
		valueType := inferExpr(cur, s.Value)
		cur = checkPattern(cur, s.Pattern, valueType)
		if i == len(n.Statements)-1 {
			resultType := valueType
			if s.WasLet {
				resultType = types.VUnit{}
			}
			if err := types.Subsumes(cur, resultType, expected); err != nil {
				reportTypeError(cur.On(s.Span), err, expected.String(), resultType.String())
			}
		}
	}
	return expected
}

// checkWhen is the collective-arm-unification helper every When and
// Cases (and the `cases {}` sugar) shares: infer the scrutinee once,
// then check every arm's pattern against it and every arm's body
// against the same expected result type, so two arms with
// incompatible result types are caught instead of silently picking
// the first arm's inferred type (spec.md §4.4.2).
func checkWhen(env *module.Env, n ast.When, expected types.Virtual) types.Virtual {
	var scrutineeType types.Virtual = types.VUnit{}
	if n.Scrutinee != nil {
		scrutineeType = inferExpr(env, n.Scrutinee)
	}
	for _, arm := range n.Arms {
		armEnv := checkPattern(env, arm.Pattern, scrutineeType)
		if arm.Guard != nil {
			checkExpr(armEnv, arm.Guard, types.VCon{Name: "Bool", Kind: types.Star})
		}
		checkExpr(armEnv, arm.Then, expected)
	}
	return expected
}

// checkRecordFields elaborates a RecordInstance by checking each named
// field's value against the declared record's field scheme, the same
// per-field rule RecordUpdate reuses (spec.md §9 Open Question 1).
func checkRecordFields(env *module.Env, q ast.Qualified, fields []ast.RecordInstanceField, span any) types.Virtual {
	ns := env.ResolveNamespace(q)
	ctorInfo, ok := env.Table.Constructor(ns, q.Last)
	if !ok {
		reportAt(env.On(q.Span), report.CannotFind{Name: env.Symbols.String(q.Last)})
		return types.VError{}
	}
	result := types.Instantiate(env, types.Eval(nil, ctorInfo.Scheme))
	for result != nil {
		if arrow, ok := result.(types.VArrow); ok {
			result = arrow.Right
			continue
		}
		break
	}
	for _, f := range fields {
		info, ok := env.Table.Field(ns, f.Name.Name)
		if !ok {
			reportAt(env.On(f.Span), report.CannotFind{Name: env.Symbols.String(f.Name.Name)})
			continue
		}
		accessor := types.Instantiate(env, types.Eval(nil, info.Scheme))
		arrow, ok := asArrow(env, accessor)
		if !ok {
			continue
		}
		checkExpr(env, f.Value, arrow.Right)
	}
	return result
}

// asArrow resolves v to a VArrow, filling an unresolved hole with a
// fresh function shape when the caller applies something whose type is
// still unknown (spec.md §4.4.2, function application against a hole).
// A VForall is instantiated first: a value bound to an explicit,
// un-instantiated rank-n scheme (e.g. a PatAnnotation-typed parameter,
// which checkPattern stores without instantiating) is still callable,
// so applying it must open the forall the same way any other
// polymorphic use would.
func asArrow(env *module.Env, v types.Virtual) (types.VArrow, bool) {
	switch n := v.(type) {
	case types.VArrow:
		return n, true
	case types.VForall:
		return asArrow(env, types.Instantiate(env, n))
	case types.VHole:
		if filled, ok := n.Hole.Get().(types.Filled); ok {
			return asArrow(env, types.Eval(nil, filled.Type))
		}
		left := types.VHole{Hole: env.NewHole(types.Star)}
		right := types.VHole{Hole: env.NewHole(types.Star)}
		arrow := types.VArrow{Left: left, Effects: types.Row{}, Right: right}
		n.Hole.Fill(types.Quote(env.Level(), arrow))
		return arrow, true
	default:
		return types.VArrow{}, false
	}
}

// headCon returns the outermost type constructor's name, unwrapping
// any VApp spine, or "" if v is not headed by one.
func headCon(v types.Virtual) string {
	for {
		switch n := v.(type) {
		case types.VCon:
			return n.Name
		case types.VApp:
			v = n.Func
		default:
			return ""
		}
	}
}
