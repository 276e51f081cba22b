package goshape

// CoerceMode dictates whether leaf kinds may convert compatible but
// differently-typed input before validation.
type CoerceMode int

const (
	CoerceOff    CoerceMode = iota // Reject mistyped input with an issue.
	CoerceOn                       // Lossless conversions only (e.g. "42" -> 42).
	CoerceUnsafe                   // Lossy conversions too (e.g. 3.7 -> 4).
)

// ParseOpt bundles parsing options. The zero value disables coercion.
type ParseOpt struct {
	Coerce CoerceMode
}
