package emitter

// cTypeNames maps Kush primitive type names to the C runtime types they
// lower to (spec §4.8), grounded on <stdint.h>'s fixed-width integer
// family the way original_source/runtime/kush-runtime.h uses it.
var cTypeNames = map[string]string{
	"boolean": "bool",
	"i8":      "int8_t",
	"i16":     "int16_t",
	"i32":     "int32_t",
	"i64":     "int64_t",
	"ui8":     "uint8_t",
	"ui16":    "uint16_t",
	"ui32":    "uint32_t",
	"ui64":    "uint64_t",
	"f32":     "float",
	"f64":     "double",
	"void":    "void",
	"null":    "void*",
	"string":  "k_String_t*",
}
