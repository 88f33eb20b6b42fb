package expr

import "strconv"

// Variable is the packed identifier carried inline by Variable nodes and by
// the binders of Forall and Exists. The low bit distinguishes internal
// (bound) variables from external (free) ones; the remaining 31 bits hold
// the identifier, so the packed form always fits the encoding's inline
// field.
type Variable uint32

// MaxVariableID is the largest identifier representable for either class
// of variable (31 bits).
const MaxVariableID = 1<<31 - 1

// Internal returns the packed form of a bound variable identifier. Ids above
// MaxVariableID are truncated to 31 bits.
func Internal(id uint32) Variable {
	return Variable((id & MaxVariableID) << 1)
}

// External returns the packed form of a free variable identifier. Ids above
// MaxVariableID are truncated to 31 bits.
func External(id uint32) Variable {
	return Variable((id&MaxVariableID)<<1 | 1)
}

// VariableFromRaw reinterprets a raw packed value, as read out of an encoded
// node.
func VariableFromRaw(raw uint32) Variable {
	return Variable(raw)
}

// Raw returns the packed value written into the encoding.
func (v Variable) Raw() uint32 {
	return uint32(v)
}

// IsExternal reports whether v identifies a free (external) variable.
func (v Variable) IsExternal() bool {
	return v&1 != 0
}

// ID returns the 31-bit identifier without the class bit.
func (v Variable) ID() uint32 {
	return uint32(v) >> 1
}

// String renders the identifier in hexadecimal, prefixed with '$' for
// internal variables and '%' for external ones.
func (v Variable) String() string {
	prefix := "$"
	if v.IsExternal() {
		prefix = "%"
	}
	return prefix + strconv.FormatUint(uint64(v.ID()), 16)
}
