package social

// Presence classifies what a platform probe learned about a number.
type Presence string

// Probe outcomes. Platforms differ in how much they reveal without
// authentication, so several outcomes describe the limit that was hit
// rather than a definitive yes or no.
const (
	// PresenceRegistered means the platform confirmed an account.
	PresenceRegistered Presence = "registered"

	// PresencePossible means the response hints at an account without
	// confirming one.
	PresencePossible Presence = "possibly_registered"

	// PresenceNotFound means the platform gave no sign of an account.
	PresenceNotFound Presence = "not_found"

	// PresenceBusinessAccount means a business profile was detected.
	PresenceBusinessAccount Presence = "business_account"

	// PresenceNotBusiness means no business profile exists.
	PresenceNotBusiness Presence = "not_business"

	// PresenceSearchAvailable means a public phone-number search exists
	// and responded; results need a manual look.
	PresenceSearchAvailable Presence = "search_available"

	// PresenceLoginRequired means the platform hides results behind a
	// login.
	PresenceLoginRequired Presence = "login_required"

	// PresencePrivateCheck means the platform only reveals membership to
	// mutual contacts or in-app.
	PresencePrivateCheck Presence = "private_check"

	// PresenceAppCheck means verification is only possible through the
	// platform's own app.
	PresenceAppCheck Presence = "app_check"

	// PresenceQRRequired means the platform gates lookups behind a QR
	// flow.
	PresenceQRRequired Presence = "qr_required"

	// PresenceCheckFailed means the probe itself failed.
	PresenceCheckFailed Presence = "check_failed"

	// PresenceUnavailable means the verification endpoint is not
	// reachable for this number.
	PresenceUnavailable Presence = "unavailable"
)

// Platform names as reported in results.
const (
	PlatformWhatsApp         = "WhatsApp"
	PlatformWhatsAppBusiness = "WhatsApp Business"
	PlatformTelegram         = "Telegram"
	PlatformSignal           = "Signal"
	PlatformViber            = "Viber"
	PlatformLine             = "Line"
	PlatformWeChat           = "WeChat"
	PlatformFacebook         = "Facebook"
	PlatformInstagram        = "Instagram"
	PlatformTikTok           = "TikTok"
	PlatformTwitter          = "Twitter"
	PlatformSnapchat         = "Snapchat"
	PlatformLinkedIn         = "LinkedIn"
	PlatformXing             = "Xing"
	PlatformResearchGate     = "ResearchGate"
	PlatformGoogleBusiness   = "Google Business"
	PlatformAmazonSeller     = "Amazon Seller"
	PlatformEBay             = "eBay"
	PlatformWallapop         = "Wallapop"
)

// Result is one platform's probe outcome.
type Result struct {
	Platform string   `json:"platform"`
	Presence Presence `json:"presence"`
	Detail   string   `json:"detail,omitempty"`
}
