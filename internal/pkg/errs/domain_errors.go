package errs

// Cross-layer sentinels; package-specific failures live next to the code that returns them
var (
	ErrInvalidRequest = New("invalid request")
	ErrSystem         = New("system error")
)
