package entity

// AuthProvider identifies how an account authenticates.
type AuthProvider string

const (
	// ProviderLocal marks accounts created through email/password signup.
	ProviderLocal AuthProvider = "local"
	// ProviderGoogle marks accounts created through Google Sign-In.
	ProviderGoogle AuthProvider = "google"
)

// String returns the string representation of the AuthProvider.
func (p AuthProvider) String() string {
	return string(p)
}

// IsValid checks if the AuthProvider is a valid value.
func (p AuthProvider) IsValid() bool {
	switch p {
	case ProviderLocal, ProviderGoogle:
		return true
	default:
		return false
	}
}
