package blog

// Well-known destinations used by the session when it has to move the user.
const (
	LoginPath     = "/admin/login"
	AdminHomePath = "/admin"
)

// Navigator moves the user to another area of the application. The session
// calls it after a forced logout and when a role check fails.
type Navigator interface {
	RedirectTo(path string)
}

// NopNavigator ignores redirects.
type NopNavigator struct{}

func (NopNavigator) RedirectTo(string) {}
