package analyzer

import (
	"github.com/restrict-lang/rlc/internal/ast"
	"github.com/restrict-lang/rlc/internal/diagnostics"
	"github.com/restrict-lang/rlc/internal/typesystem"
)

// convertType maps a syntactic ast.Type to a TypedType (spec §4.3.1's
// convert_type). Unknown names that occur inside an active type-parameter
// scope are treated as TypeParam(name); anything else unknown is an
// UnknownType error.
func (c *Checker) convertType(t ast.Type) typesystem.Type {
	switch ty := t.(type) {
	case *ast.NamedType:
		if resolved := c.lookupNamedType(ty.Name); resolved != nil {
			return resolved
		}
		c.report(diagnostics.TUnknownType, ty.Span(), "unknown type %q", ty.Name)
		return typesystem.Unit{}
	case *ast.GenericType:
		return c.convertGeneric(ty)
	case *ast.FunctionType:
		params := make([]typesystem.Type, len(ty.Params))
		for i, p := range ty.Params {
			params[i] = c.convertType(p)
		}
		return typesystem.Function{Params: params, Return: c.convertType(ty.Return)}
	default:
		c.report(diagnostics.TUnknownType, t.Span(), "unknown type syntax %T", t)
		return typesystem.Unit{}
	}
}

// lookupNamedType resolves a bare name to a TypedType, or returns nil if the
// name isn't a primitive, an active type parameter, or a declared record.
func (c *Checker) lookupNamedType(name string) typesystem.Type {
	switch name {
	case "Int", "Int32":
		return typesystem.Int32{}
	case "Float", "Float64":
		return typesystem.Float64{}
	case "Bool", "Boolean":
		return typesystem.Boolean{}
	case "String":
		return typesystem.Str{}
	case "Char":
		return typesystem.Char{}
	case "Unit":
		return typesystem.Unit{}
	}
	if c.isTypeParam(name) {
		return typesystem.TypeParam{Name: name}
	}
	if _, ok := c.Table.Records[name]; ok {
		return typesystem.Record{Name: name, Frozen: false}
	}
	return nil
}

func (c *Checker) convertGeneric(ty *ast.GenericType) typesystem.Type {
	switch ty.Name {
	case "Option":
		if len(ty.Args) != 1 {
			c.report(diagnostics.TUnknownType, ty.Span(), "Option takes exactly one type argument")
			return typesystem.Unit{}
		}
		return typesystem.Option{Elem: c.convertType(ty.Args[0])}
	case "List":
		if len(ty.Args) != 1 {
			c.report(diagnostics.TUnknownType, ty.Span(), "List takes exactly one type argument")
			return typesystem.Unit{}
		}
		return typesystem.List{Elem: c.convertType(ty.Args[0])}
	case "Array":
		if len(ty.Args) != 1 {
			c.report(diagnostics.TUnknownType, ty.Span(), "Array takes exactly one type argument")
			return typesystem.Unit{}
		}
		return typesystem.Array{Elem: c.convertType(ty.Args[0]), Size: 0}
	default:
		c.report(diagnostics.TUnknownType, ty.Span(), "unknown generic type %q", ty.Name)
		return typesystem.Unit{}
	}
}
