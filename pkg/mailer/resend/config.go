package resend

// Config is the Resend part of the site configuration.
// An empty APIKey still builds a Sender; callers check for the credential
// before sending.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"RESEND_FROM" envDefault:"orders@packwoodplates.com"`
	SenderName  string `env:"RESEND_FROM_NAME"`
	// BaseURL overrides the API endpoint; empty means the public Resend API.
	BaseURL string `env:"RESEND_BASE_URL"`
}
