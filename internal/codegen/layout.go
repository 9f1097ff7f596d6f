package codegen

import "github.com/restrict-lang/rlc/internal/symbols"

// recordLayout is a record's packed-struct field offsets (spec §6: "Records
// are packed structs in declaration order at 4-byte offsets"). Float64
// fields take an 8-byte slot so their f64 stores never overlap the next
// field; every other field takes 4 bytes.
type recordLayout struct {
	Offset map[string]int
	Size   int
}

func buildLayouts(table *symbols.Table) map[string]*recordLayout {
	out := make(map[string]*recordLayout, len(table.Records))
	for name, def := range table.Records {
		out[name] = layoutOf(def)
	}
	return out
}

func layoutOf(def *symbols.RecordDef) *recordLayout {
	l := &recordLayout{Offset: map[string]int{}}
	offset := 0
	for _, f := range def.Fields {
		l.Offset[f.Name] = offset
		if wasmType(f.Type) == "f64" {
			offset += 8
		} else {
			offset += 4
		}
	}
	l.Size = offset
	return l
}
