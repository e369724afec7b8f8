// Package route defines the identity of navigable destinations.
//
// A Route is an opaque, comparable value identifying a screen. Routes of
// different underlying types can share one navigation path or modal stack
// because identity is reduced to a stable key string: two routes are equal
// exactly when their keys are equal. No reflection is involved.
//
// # Usage
//
// Applications can use the built-in kinds directly:
//
//	route.Name("settings")               // a bare named destination
//	route.Detail{Screen: "user", Arg: "42"}  // a parameterized destination
//
// or define their own types implementing [Route]:
//
//	type Album struct{ ID string }
//
//	func (a Album) Key() string { return "album/" + a.ID }
package route

// Route identifies a navigable destination.
//
// Key must be stable for the lifetime of the value and unique across
// destinations the application considers distinct. Equality and hashing both
// derive from it.
type Route interface {
	Key() string
}

// Equal reports whether two routes identify the same destination.
// Nil routes are equal only to each other.
func Equal(a, b Route) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Key() == b.Key()
}

// Name is a bare named destination, the simplest route kind.
type Name string

// Key returns the name itself.
func (n Name) Key() string { return string(n) }

// Detail is a parameterized destination: the same screen presented for
// different arguments yields distinct routes.
type Detail struct {
	Screen string // screen identifier (e.g. "user")
	Arg    string // instance argument (e.g. a record ID)
}

// Key combines screen and argument, so Detail{"user", "1"} and
// Detail{"user", "2"} are distinct destinations.
func (d Detail) Key() string { return d.Screen + "/" + d.Arg }
