package api

// Public operations surface of the core.
const (
	SignupPath               = "/signup"
	LoginPath                = "/login"
	PasswordResetRequestPath = "/password-reset-request"
	PasswordResetPath        = "/password-reset/{token}"
	VerifyEmailPath          = "/verify-email/{token}"
	ResendVerificationPath   = "/resend-verification/{accountID}"
	ReputationPath           = "/reputation/{profileID}"
)

// PublicEndpoints defines endpoints that don't require a session.
var PublicEndpoints = map[string]bool{
	SignupPath:               true,
	LoginPath:                true,
	PasswordResetRequestPath: true,
	PasswordResetPath:        true,
	VerifyEmailPath:          true,
	ResendVerificationPath:   true,
}
