package types

// Progress receives placement progress. Implementations must be safe for
// concurrent Inc calls.
type Progress interface {
	Reset()
	SetLength(n uint64)
	Inc(n uint64)
	SetMessage(msg string)
	Finish(msg string)
}
