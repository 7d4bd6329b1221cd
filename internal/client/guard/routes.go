package guard

import "strings"

// Route binds a path pattern to its policy. Patterns use :name segments
// for parameters.
type Route struct {
	Pattern string
	Policy  Policy
}

// Routes is the client navigation surface.
var Routes = []Route{
	{Pattern: "/", Policy: Open},
	{Pattern: "/signup", Policy: Public},
	{Pattern: "/login", Policy: Public},
	{Pattern: "/category", Policy: Protected},
	{Pattern: "/category/:categoryId", Policy: Protected},
	{Pattern: "/note/:noteId", Policy: Protected},
	{Pattern: "/dashboard", Policy: Protected},
	{Pattern: "/admin", Policy: Role("admin")},
}

// Resolve matches path against the route table and evaluates the owning
// policy. Unknown paths redirect home.
func Resolve(path string, s AuthState) Decision {
	for _, route := range Routes {
		if match(route.Pattern, path) {
			return route.Policy(s)
		}
	}
	return Decision{Kind: Redirect, Path: "/"}
}

func match(pattern, path string) bool {
	p := strings.Split(strings.Trim(pattern, "/"), "/")
	q := strings.Split(strings.Trim(path, "/"), "/")
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if strings.HasPrefix(p[i], ":") {
			if q[i] == "" {
				return false
			}
			continue
		}
		if p[i] != q[i] {
			return false
		}
	}
	return true
}
