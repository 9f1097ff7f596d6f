package analyzer

import (
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/symbols"
	"github.com/restrict-lang/rlc/internal/typesystem"
)

func typeParamBounds(tps []*ast.TypeParam) []symbols.TypeParamBound {
	out := make([]symbols.TypeParamBound, len(tps))
	for i, tp := range tps {
		out[i] = symbols.TypeParamBound{Name: tp.Name, Bounds: tp.Bounds}
	}
	return out
}

func (c *Checker) withTypeParamScope(tps []*ast.TypeParam, body func()) {
	c.pushScope()
	for _, tp := range tps {
		c.declareTypeParam(tp.Name, tp.Bounds)
	}
	body()
	c.popScope()
}

func (c *Checker) registerRecord(d *ast.RecordDecl) {
	c.withTypeParamScope(d.TypeParams, func() {
		fields := make([]symbols.FieldDef, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = symbols.FieldDef{Name: f.Name, Type: c.convertType(f.Type)}
		}
		c.Table.DeclareRecord(&symbols.RecordDef{
			Name:       d.Name,
			TypeParams: typeParamBounds(d.TypeParams),
			Fields:     fields,
		})
	})
}

func (c *Checker) registerContext(d *ast.ContextDecl) {
	fields := make([]symbols.FieldDef, len(d.Fields))
	for i, f := range d.Fields {
		fields[i] = symbols.FieldDef{Name: f.Name, Type: c.convertType(f.Type)}
	}
	c.Table.DeclareContext(&symbols.ContextDef{Name: d.Name, Fields: fields})
}

// registerFunc records a function or method's signature (spec §4.3.1 pass
// 1): the return type is not declared in source at all (it's inferred from
// the body), so pass 1 defaults it to Int32 and pass 2's checkFunBody
// refines the registration once the body has been checked.
func (c *Checker) registerFunc(d *ast.FunDecl, methodOf string) {
	c.withTypeParamScope(d.TypeParams, func() {
		params := make([]symbols.Param, len(d.Params))
		for i, p := range d.Params {
			params[i] = symbols.Param{Name: p.Name, Type: c.convertType(p.Type), ContextBound: p.ContextBound}
		}
		sig := &symbols.FuncSig{
			Name:       d.Name,
			TypeParams: typeParamBounds(d.TypeParams),
			Params:     params,
			Return:     typesystem.Int32{},
		}
		if methodOf != "" {
			c.Table.DeclareMethod(methodOf, sig)
		} else {
			c.Table.DeclareFunction(sig)
		}
	})
}

// checkFunBody type-checks a function's body and refines its registered
// return type to the body's actual inferred type (pass 2).
func (c *Checker) checkFunBody(d *ast.FunDecl, methodOf string) {
	c.withTypeParamScope(d.TypeParams, func() {
		c.pushScope()
		for _, p := range d.Params {
			c.declareVar(p.Name, c.convertType(p.Type), false)
		}
		bodyType := c.checkBlock(d.Body)
		c.popScope()

		sig := c.Table.Functions[d.Name]
		if methodOf != "" {
			sig = c.Table.Methods[methodOf][d.Name]
		}
		if sig != nil {
			sig.Return = bodyType
		}
	})
}
