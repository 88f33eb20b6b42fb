// Package variant defines the closed set of expression node kinds and the
// static shape of each kind.
//
// Three families share a single tag space:
//   - Type constructors: Bool, Omega, Never, Powerset, TupleType
//   - Term constructors: Variable, Lambda, Call, If, Tuple
//   - Logic constructors: True, False, Not, And, Or, Implies, Iff, Equal,
//     Forall, Exists
//
// A tag's shape is its arity (number of children, 0..3) and its number of
// inline integer fields (Variable, Forall, and Exists carry a variable
// identifier inline; everything else carries none). Shape is the only thing
// this package knows about; domain well-formedness (for example, that a
// quantifier's bound type decodes as a type-shaped node) belongs to a higher
// validation layer.
package variant

// Tag identifies the kind of an expression node. The enumeration is closed:
// adding a tag changes the decodable format, which is why TagSetVersion is
// stamped into persisted buffers.
type Tag uint8

// Tag values. The numeric assignment is part of the binary format and must
// never be reordered.
const (
	// Type constructors.
	Bool      Tag = 0x01
	Omega     Tag = 0x02
	Never     Tag = 0x03
	Powerset  Tag = 0x04
	TupleType Tag = 0x05

	// Term constructors.
	Variable Tag = 0x10
	Lambda   Tag = 0x11
	Call     Tag = 0x12
	If       Tag = 0x13
	Tuple    Tag = 0x14

	// Logic constructors.
	True    Tag = 0x20
	False   Tag = 0x21
	Not     Tag = 0x22
	And     Tag = 0x23
	Or      Tag = 0x24
	Implies Tag = 0x25
	Iff     Tag = 0x26
	Equal   Tag = 0x27
	Forall  Tag = 0x28
	Exists  Tag = 0x29
)

// TagSetVersion identifies the current closed enumeration. Persisted buffers
// record it so that a reader built against a different tag set rejects them
// instead of misdecoding.
const TagSetVersion = 1

// MaxArity is the largest number of children any tag can have (If).
const MaxArity = 3

// shape packs a tag's static layout: child count and inline field count.
type shape struct {
	arity  uint8
	fields uint8
}

// shapes is the authoritative per-tag layout table. A zero entry means the
// byte value is not a valid tag.
var shapes = [256]shape{
	Bool:      {0, 0},
	Omega:     {0, 0},
	Never:     {0, 0},
	Powerset:  {1, 0},
	TupleType: {2, 0},

	Variable: {0, 1},
	Lambda:   {2, 0},
	Call:     {2, 0},
	If:       {3, 0},
	Tuple:    {2, 0},

	True:    {0, 0},
	False:   {0, 0},
	Not:     {1, 0},
	And:     {2, 0},
	Or:      {2, 0},
	Implies: {2, 0},
	Iff:     {2, 0},
	Equal:   {2, 0},
	Forall:  {2, 1},
	Exists:  {2, 1},
}

// valid marks the byte values that are real tags. Separate from shapes so
// that nullary, fieldless tags (True, Bool, ...) are distinguishable from
// unassigned byte values.
var valid = [256]bool{
	Bool: true, Omega: true, Never: true, Powerset: true, TupleType: true,
	Variable: true, Lambda: true, Call: true, If: true, Tuple: true,
	True: true, False: true, Not: true, And: true, Or: true,
	Implies: true, Iff: true, Equal: true, Forall: true, Exists: true,
}

// Valid reports whether t is an assigned tag value.
func Valid(t Tag) bool {
	return valid[t]
}

// Arity returns the number of children nodes of tag t. Unassigned tags have
// arity 0; callers that care must check Valid first.
func Arity(t Tag) int {
	return int(shapes[t].arity)
}

// NumFields returns the number of inline integer fields carried by tag t:
// 1 for Variable, Forall, and Exists, 0 for everything else.
func NumFields(t Tag) int {
	return int(shapes[t].fields)
}

// Tags returns every assigned tag in ascending byte order. Intended for
// table-driven tests and tooling; the slice is freshly allocated.
func Tags() []Tag {
	out := make([]Tag, 0, 20)
	for i := 0; i < 256; i++ {
		if valid[i] {
			out = append(out, Tag(i))
		}
	}
	return out
}

// String returns the constructor name of the tag, or "Tag(0xNN)" for
// unassigned values.
func (t Tag) String() string {
	switch t {
	case Bool:
		return "Bool"
	case Omega:
		return "Omega"
	case Never:
		return "Never"
	case Powerset:
		return "Powerset"
	case TupleType:
		return "TupleType"
	case Variable:
		return "Variable"
	case Lambda:
		return "Lambda"
	case Call:
		return "Call"
	case If:
		return "If"
	case Tuple:
		return "Tuple"
	case True:
		return "True"
	case False:
		return "False"
	case Not:
		return "Not"
	case And:
		return "And"
	case Or:
		return "Or"
	case Implies:
		return "Implies"
	case Iff:
		return "Iff"
	case Equal:
		return "Equal"
	case Forall:
		return "Forall"
	case Exists:
		return "Exists"
	default:
		const hex = "0123456789abcdef"
		return "Tag(0x" + string([]byte{hex[t>>4], hex[t&0xf]}) + ")"
	}
}
