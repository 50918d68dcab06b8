package domain

// Surface identifies which top-level route tree is presented to the user.
type Surface int

const (
	// SurfaceNone renders nothing (blank or splash) while the session is being checked.
	SurfaceNone Surface = iota
	// SurfaceAuthenticated renders the application route tree.
	SurfaceAuthenticated
	// SurfaceUnauthenticated renders the sign-in route tree.
	SurfaceUnauthenticated
)

// String returns the lower-case name of the surface.
func (s Surface) String() string {
	switch s {
	case SurfaceNone:
		return "none"
	case SurfaceAuthenticated:
		return "authenticated"
	case SurfaceUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Surface) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
