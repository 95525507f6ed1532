package gate

import "fmt"

type (
	Op          uint8
	MachineType uint8
	Cond        uint8
)

const (
	Nop Op = iota

	Constant
	Arg
	Load
	Return

	Add
	Sub
	Mul
	SDiv
	FDiv
	SMod
	And
	Or
	Xor
	Asr
	Lsl
	Lsr

	ICmp
	Rev
	IfBranch

	AddWithOverflow
	SubWithOverflow
	MulWithOverflow
	ExtractValue

	TaggedToInt64
	Int64ToTagged
	SignedIntToFloat
	FloatToSignedInt
	UnsignedFloatToInt
	Bitcast
	Zext
	Sext
	Trunc
	Fext
	Ftrunc

	numOps
)

const (
	NoValue MachineType = iota
	I1
	I8
	I16
	I32
	I64
	F32
	F64
	ARCH
	TaggedValue
	TaggedPointer

	numMachineTypes
)

const (
	EQ Cond = iota
	NE
	SLT
	SLE
	SGT
	SGE
	ULT
	ULE
	UGT
	UGE

	numConds
)

var opNames = [numOps]string{
	Nop:                "nop",
	Constant:           "const",
	Arg:                "arg",
	Load:               "load",
	Return:             "ret",
	Add:                "add",
	Sub:                "sub",
	Mul:                "mul",
	SDiv:               "sdiv",
	FDiv:               "fdiv",
	SMod:               "smod",
	And:                "and",
	Or:                 "or",
	Xor:                "xor",
	Asr:                "asr",
	Lsl:                "lsl",
	Lsr:                "lsr",
	ICmp:               "icmp",
	Rev:                "rev",
	IfBranch:           "if",
	AddWithOverflow:    "addovf",
	SubWithOverflow:    "subovf",
	MulWithOverflow:    "mulovf",
	ExtractValue:       "extract",
	TaggedToInt64:      "tagged2i64",
	Int64ToTagged:      "i642tagged",
	SignedIntToFloat:   "sitof",
	FloatToSignedInt:   "ftosi",
	UnsignedFloatToInt: "uftoi",
	Bitcast:            "bitcast",
	Zext:               "zext",
	Sext:               "sext",
	Trunc:              "trunc",
	Fext:               "fext",
	Ftrunc:             "ftrunc",
}

var machineTypeNames = [numMachineTypes]string{
	NoValue:       "none",
	I1:            "i1",
	I8:            "i8",
	I16:           "i16",
	I32:           "i32",
	I64:           "i64",
	F32:           "f32",
	F64:           "f64",
	ARCH:          "arch",
	TaggedValue:   "tagged",
	TaggedPointer: "taggedptr",
}

var condNames = [numConds]string{
	EQ:  "eq",
	NE:  "ne",
	SLT: "slt",
	SLE: "sle",
	SGT: "sgt",
	SGE: "sge",
	ULT: "ult",
	ULE: "ule",
	UGT: "ugt",
	UGE: "uge",
}

// Arity is the number of value inputs a gate of the op must have.
func (op Op) Arity() int {
	switch op {
	case Nop, Constant, Arg:
		return 0
	case Load, Return, Rev,
		TaggedToInt64, Int64ToTagged, SignedIntToFloat, FloatToSignedInt, UnsignedFloatToInt,
		Bitcast, Zext, Sext, Trunc, Fext, Ftrunc:
		return 1
	case Add, Sub, Mul, SDiv, FDiv, SMod, And, Or, Xor, Asr, Lsl, Lsr,
		ICmp, AddWithOverflow, SubWithOverflow, MulWithOverflow, ExtractValue:
		return 2
	case IfBranch:
		return 3
	default:
		panic(op)
	}
}

func (op Op) IsBinary() bool {
	return op >= Add && op <= Lsr
}

func (op Op) IsConvert() bool {
	return op >= TaggedToInt64 && op <= Ftrunc
}

func (op Op) String() string {
	if op < numOps {
		return opNames[op]
	}

	return fmt.Sprintf("op(%d)", uint8(op))
}

func ParseOp(s string) (Op, bool) {
	for op, n := range opNames {
		if n == s {
			return Op(op), true
		}
	}

	return Nop, false
}

// Bits is the width of a value of the type. Tagged values and ARCH are
// machine words.
func (t MachineType) Bits() int {
	switch t {
	case I1:
		return 1
	case I8:
		return 8
	case I16:
		return 16
	case I32, F32:
		return 32
	case I64, F64, ARCH, TaggedValue, TaggedPointer:
		return 64
	default:
		return 0
	}
}

func (t MachineType) IsInt() bool {
	switch t {
	case I1, I8, I16, I32, I64, ARCH, TaggedValue, TaggedPointer:
		return true
	default:
		return false
	}
}

func (t MachineType) IsFloat() bool {
	return t == F32 || t == F64
}

func (t MachineType) String() string {
	if t < numMachineTypes {
		return machineTypeNames[t]
	}

	return fmt.Sprintf("mt(%d)", uint8(t))
}

func ParseMachineType(s string) (MachineType, bool) {
	for t, n := range machineTypeNames {
		if n == s {
			return MachineType(t), true
		}
	}

	return NoValue, false
}

func (c Cond) String() string {
	if c < numConds {
		return condNames[c]
	}

	return fmt.Sprintf("cond(%d)", uint8(c))
}

func ParseCond(s string) (Cond, bool) {
	for c, n := range condNames {
		if n == s {
			return Cond(c), true
		}
	}

	return EQ, false
}
