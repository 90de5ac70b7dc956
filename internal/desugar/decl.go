package desugar

import (
	"github.com/vulpi-lang/vulpi/internal/ast"
	"github.com/vulpi-lang/vulpi/internal/cst"
	"github.com/vulpi-lang/vulpi/internal/symbol"
)

func (c *ctx) typeBinder(b cst.TypeBinder) ast.TypeBinder {
	return ast.TypeBinder{
		Name:     b.Name.Name,
		Kind:     c.kindOpt(b.Kind),
		Explicit: b.Explicit,
		Span:     b.Name.Span,
	}
}

func (c *ctx) typeDecl(d cst.TypeDecl) ast.TypeDecl {
	params := make([]ast.TypeBinder, len(d.Binders))
	for i, b := range d.Binders {
		params[i] = c.typeBinder(b)
	}
	return ast.TypeDecl{
		Namespace: append([]symbol.Symbol{}, c.namespace...),
		Name:      ast.Ident{Name: d.Name.Name, Span: d.Name.Span},
		Params:    params,
		Def:       c.typeDef(d.Def),
		Span:      d.Span,
	}
}

func (c *ctx) typeDef(d cst.TypeDef) ast.TypeDef {
	switch t := d.(type) {
	case cst.SumDecl:
		variants := make([]ast.Variant, len(t.Constructors))
		for i, ctor := range t.Constructors {
			args := make([]ast.Type, len(ctor.Args))
			for j, a := range ctor.Args {
				args[j] = c.typ(a)
			}
			var ret ast.Type
			if ctor.Ret != nil {
				ret = c.typ(*ctor.Ret)
			}
			variants[i] = ast.Variant{
				Name: ast.Ident{Name: ctor.Name.Name, Span: ctor.Name.Span},
				Args: args,
				Ret:  ret,
				Span: ctor.Span,
			}
		}
		return ast.EnumDecl{Variants: variants}
	case cst.RecordDecl:
		fields := make([]ast.Field, len(t.Fields))
		for i, f := range t.Fields {
			fields[i] = ast.Field{
				Name: ast.Ident{Name: f.Name.Name, Span: f.Name.Span},
				Type: c.typ(f.Type),
				Span: f.Span,
			}
		}
		return ast.RecordDecl{Fields: fields}
	case cst.SynonymDecl:
		return ast.SynonymDecl{Body: c.typ(t.Body)}
	default:
		return ast.SynonymDecl{Body: ast.TypeError{}}
	}
}

func (c *ctx) effectDecl(d cst.EffectDecl) ast.EffectDecl {
	binders := make([]ast.TypeBinder, len(d.Binders))
	for i, b := range d.Binders {
		binders[i] = c.typeBinder(b)
	}
	fields := make([]ast.EffectField, len(d.Fields))
	for i, f := range d.Fields {
		args := make([]ast.Type, len(f.Args))
		for j, a := range f.Args {
			args[j] = c.typ(a)
		}
		fields[i] = ast.EffectField{
			Name: ast.Ident{Name: f.Name.Name, Span: f.Name.Span},
			Args: args,
			Type: c.typ(f.Ret),
			Span: f.Span,
		}
	}
	return ast.EffectDecl{
		Namespace: append([]symbol.Symbol{}, c.namespace...),
		Qualified: ast.Qualified{Segments: append([]symbol.Symbol{}, c.namespace...), Last: d.Name.Name, Span: d.Name.Span},
		Binders:   binders,
		Fields:    fields,
		Span:      d.Span,
	}
}
