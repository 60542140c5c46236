// Package types implements Kush's type lattice (component G): the
// closed set of primitives plus array and structure types built on top
// of them.
package types

// Tag is the closed set of type categories (spec §3, Type).
type Tag int

const (
	Unknown Tag = iota
	Boolean
	Integer
	Decimal
	StringTag
	Void
	Null
	Array
	StructureTag
	Function
)

func (t Tag) String() string {
	switch t {
	case Boolean:
		return "boolean"
	case Integer:
		return "integer"
	case Decimal:
		return "decimal"
	case StringTag:
		return "string"
	case Void:
		return "void"
	case Null:
		return "null"
	case Array:
		return "array"
	case StructureTag:
		return "structure"
	case Function:
		return "function"
	default:
		return "unknown"
	}
}

// Type describes one Kush type. Indexable, Accessible, and Callable
// mirror spec §3's capability flags. The analyzer's call check reads
// Callable; its subscript and member checks test Tag (Array,
// StructureTag) rather than Indexable and Accessible.
type Type struct {
	Tag        Tag
	Name       string // primitive spelling ("i32", "f64", ...) or structure name
	ByteSize   int    // integer/decimal width in bytes; 0 otherwise
	Signed     bool   // integer only
	Indexable  bool   // true for Array and for the string primitive
	Accessible bool   // true for StructureTag (member access)
	Callable   bool   // true for Function types
	Base       *Type  // element type, Array only
	Structure  *Structure
	Params     []*Type // declared parameter types, Function only
	Return     *Type   // declared return type, Function only
}

// Structure is the resolved, analyzer-facing view of an ast.Structure:
// member names mapped to their resolved Type.
type Structure struct {
	Name    string
	Members []Field
}

// Field is one resolved structure member.
type Field struct {
	Name string
	Type *Type
}

func (s *Structure) Field(name string) (Field, bool) {
	for _, f := range s.Members {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	if t.Tag == Array {
		return t.Base.String() + "[]"
	}
	if t.Tag == Function {
		names := make([]string, len(t.Params))
		for i, p := range t.Params {
			names[i] = p.String()
		}
		joined := ""
		for i, n := range names {
			if i > 0 {
				joined += ", "
			}
			joined += n
		}
		return "(" + joined + ") -> " + t.Return.String()
	}
	return t.Name
}

// Equals reports structural equality: primitives compare by Tag+Name,
// arrays recurse on Base, structures compare by identity of their
// resolved Structure (two distinct `struct` declarations are never
// equal even if shaped identically, matching §4.6's nominal typing).
func (t *Type) Equals(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Tag != other.Tag {
		return false
	}
	switch t.Tag {
	case Array:
		return t.Base.Equals(other.Base)
	case StructureTag:
		return t.Structure == other.Structure
	case Function:
		if len(t.Params) != len(other.Params) || !t.Return.Equals(other.Return) {
			return false
		}
		for i, p := range t.Params {
			if !p.Equals(other.Params[i]) {
				return false
			}
		}
		return true
	default:
		return t.Name == other.Name
	}
}

// IsNumeric reports whether t is an Integer or Decimal primitive,
// eligible for arithmetic binary operators.
func (t *Type) IsNumeric() bool {
	return t != nil && (t.Tag == Integer || t.Tag == Decimal)
}

// Registry owns every primitive Type for one compile session. The
// driver (cliapp.Compile) constructs one Registry per source file and
// passes it to the analyzer — never a package-level singleton (§9).
type Registry struct {
	primitives map[string]*Type
}

// NewPrimitives builds the closed set of Kush primitives (spec §3).
func NewPrimitives() *Registry {
	r := &Registry{primitives: make(map[string]*Type)}
	add := func(name string, tag Tag, byteSize int, signed bool) {
		r.primitives[name] = &Type{Tag: tag, Name: name, ByteSize: byteSize, Signed: signed}
	}
	add("boolean", Boolean, 1, false)
	add("i8", Integer, 1, true)
	add("i16", Integer, 2, true)
	add("i32", Integer, 4, true)
	add("i64", Integer, 8, true)
	add("ui8", Integer, 1, false)
	add("ui16", Integer, 2, false)
	add("ui32", Integer, 4, false)
	add("ui64", Integer, 8, false)
	add("f32", Decimal, 4, true)
	add("f64", Decimal, 8, true)
	add("void", Void, 0, false)
	add("null", Null, 0, false)
	add("string", StringTag, 0, false)
	r.primitives["string"].Indexable = true
	r.primitives["unknown"] = &Type{Tag: Unknown, Name: "unknown"}
	return r
}

// Lookup returns the primitive Type named name, or nil if name is not
// a primitive (the caller then checks user-declared structures).
func (r *Registry) Lookup(name string) *Type {
	return r.primitives[name]
}

// Unknown is the sentinel type assigned to an expression whose type
// could not be determined because of an earlier semantic error, so
// downstream checks can skip re-reporting against it.
func (r *Registry) Unknown() *Type {
	return r.primitives["unknown"]
}

// NewArray builds the array type over base.
func NewArray(base *Type) *Type {
	return &Type{Tag: Array, Name: base.Name + "[]", Base: base, Indexable: true}
}

// NewStructure builds the Type wrapping a resolved Structure. Structures
// are constructed through `new Type(args)` (ast.NewExpression), never by
// calling the type name directly, so Callable stays false.
func NewStructure(s *Structure) *Type {
	return &Type{Tag: StructureTag, Name: s.Name, Structure: s, Accessible: true}
}

// NewFunction builds the callable signature type a function symbol
// resolves to (spec §4.6's postfix Call rule: arity and per-parameter
// compatibility are checked against this signature before the call's
// result collapses to Return).
func NewFunction(params []*Type, ret *Type) *Type {
	return &Type{Tag: Function, Name: "function", Params: params, Return: ret, Callable: true}
}
