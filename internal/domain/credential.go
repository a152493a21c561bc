package domain

// Credential is the token set extracted from a successful login response.
// Tokens are opaque to the client: no expiry checks, no refresh rotation.
// An authorization failure on a later request is surfaced to the caller
// unchanged rather than triggering a retry-after-refresh.
type Credential struct {
	AccessToken  string
	RefreshToken string
	AuthUser     string // Authenticated-user identifier (email)
}

// Present reports whether requests should be attributed to AuthUser.
// Absence of the access token means anonymous/guest requests.
func (c Credential) Present() bool {
	return c.AccessToken != ""
}
