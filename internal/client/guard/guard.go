// Package guard decides whether a navigation target may render for the
// current authentication state. Guards are pure functions; the hosting
// layer performs the actual navigation side effect.
package guard

// AuthState is the slice of authentication state guards consult.
type AuthState struct {
	Loading  bool
	LoggedIn bool
	Role     string
}

// Kind classifies a guard decision.
type Kind int

const (
	// Wait means the session is still restoring; render a neutral
	// placeholder and decide again once it resolves.
	Wait Kind = iota
	// Allow means the requested view may render.
	Allow
	// Redirect means navigation must go to Decision.Path instead.
	Redirect
)

// Decision is the outcome of evaluating a policy.
type Decision struct {
	Kind Kind
	Path string
}

// Policy maps an auth state to a decision.
type Policy func(AuthState) Decision

func allow() Decision { return Decision{Kind: Allow} }
func wait() Decision  { return Decision{Kind: Wait} }

func redirect(path string) Decision { return Decision{Kind: Redirect, Path: path} }

// Open admits everyone.
func Open(AuthState) Decision {
	return allow()
}

// Protected admits authenticated users and sends everyone else to /login.
// Children never render while the session is restoring.
func Protected(s AuthState) Decision {
	if s.Loading {
		return wait()
	}
	if !s.LoggedIn {
		return redirect("/login")
	}
	return allow()
}

// Public keeps logged-in users off login/signup screens by redirecting
// them to /category.
func Public(s AuthState) Decision {
	if s.Loading {
		return wait()
	}
	if s.LoggedIn {
		return redirect("/category")
	}
	return allow()
}

// Role admits only authenticated users whose role is in allowed.
// Anonymous users go to /login; authenticated users with the wrong role
// go home.
func Role(allowed ...string) Policy {
	return func(s AuthState) Decision {
		if s.Loading {
			return wait()
		}
		if !s.LoggedIn {
			return redirect("/login")
		}
		for _, role := range allowed {
			if s.Role == role {
				return allow()
			}
		}
		return redirect("/")
	}
}
