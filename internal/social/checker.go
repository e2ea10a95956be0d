// Package social probes messaging, social-network, professional and
// commerce platforms for public signs that a phone number is
// registered. Probes are unauthenticated page fetches paced well below
// abuse thresholds; platforms that expose nothing without a login are
// reported as such instead of being requested.
package social

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/phonelens/phonelens/internal/number"
)

const (
	// DefaultTimeout bounds a single platform request.
	DefaultTimeout = 5 * time.Second

	// DefaultRequestInterval is the minimum spacing between requests.
	DefaultRequestInterval = time.Second

	// browserUA is sent on every probe. Several platforms serve an empty
	// shell page to unknown clients.
	browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// maxBodyBytes caps how much of a platform page is scanned for
	// indicators.
	maxBodyBytes = 512 * 1024
)

// Config controls probe behavior.
type Config struct {
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration

	// RequestInterval spaces consecutive requests. Zero means
	// DefaultRequestInterval.
	RequestInterval time.Duration

	// UserAgent overrides the browser user agent sent on probes.
	UserAgent string
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.RequestInterval <= 0 {
		c.RequestInterval = DefaultRequestInterval
	}
	if c.UserAgent == "" {
		c.UserAgent = browserUA
	}
	return c
}

// endpoints holds the per-platform URL templates. Tests point these at
// a local server.
type endpoints struct {
	whatsApp         string
	whatsAppBusiness string
	telegram         string
	facebook         string
	tikTok           string
	twitter          string
	linkedIn         string
	xing             string
	googleBusiness   string
	ebay             string
	wallapop         string
}

func defaultEndpoints() endpoints {
	return endpoints{
		whatsApp:         "https://wa.me/%s",
		whatsAppBusiness: "https://business.whatsapp.com/api/check/%s",
		telegram:         "https://t.me/+%s",
		facebook:         "https://www.facebook.com/search/top/?q=%s",
		tikTok:           "https://www.tiktok.com/search?q=%s",
		twitter:          "https://twitter.com/search?q=%s&src=typed_query",
		linkedIn:         "https://www.linkedin.com/search/results/all/?keywords=%s",
		xing:             "https://www.xing.com/search/members?keywords=%s",
		googleBusiness:   "https://business.google.com/search?q=%s",
		ebay:             "https://www.ebay.com/sch/i.html?_nkw=%s",
		wallapop:         "https://es.wallapop.com/search?keywords=%s",
	}
}

// Checker runs platform probes for a single number at a time.
type Checker struct {
	cfg     Config
	eps     endpoints
	client  *http.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewChecker builds a Checker from cfg, applying defaults for zero
// fields.
func NewChecker(cfg Config, logger zerolog.Logger) *Checker {
	cfg = cfg.withDefaults()
	return &Checker{
		cfg:     cfg,
		eps:     defaultEndpoints(),
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Every(cfg.RequestInterval), 1),
		log:     logger.With().Str("component", "social").Logger(),
	}
}

// CheckAll probes every supported platform group in order and returns
// the combined results. On context cancellation it returns the results
// gathered so far together with the context error.
func (c *Checker) CheckAll(ctx context.Context, n *number.Number) ([]Result, error) {
	var out []Result
	groups := []func(context.Context, *number.Number) []Result{
		c.CheckMessaging,
		c.CheckSocialNetworks,
		c.CheckProfessional,
		c.CheckCommerce,
	}
	for _, group := range groups {
		out = append(out, group(ctx, n)...)
		if err := ctx.Err(); err != nil {
			return out, err
		}
	}
	return out, nil
}

// CheckMessaging probes messaging platforms.
func (c *Checker) CheckMessaging(ctx context.Context, n *number.Number) []Result {
	results := []Result{
		c.checkWhatsApp(ctx, n),
		c.checkWhatsAppBusiness(ctx, n),
		c.checkTelegram(ctx, n),
		{Platform: PlatformSignal, Presence: PresencePrivateCheck, Detail: "membership is only revealed to mutual contacts"},
		{Platform: PlatformViber, Presence: PresenceAppCheck},
		{Platform: PlatformLine, Presence: PresenceAppCheck},
		{Platform: PlatformWeChat, Presence: PresenceQRRequired},
	}
	return results
}

// CheckSocialNetworks probes general social networks.
func (c *Checker) CheckSocialNetworks(ctx context.Context, n *number.Number) []Result {
	return []Result{
		c.checkFacebook(ctx, n),
		{Platform: PlatformInstagram, Presence: PresenceLoginRequired, Detail: "username lookup is private"},
		c.checkSearchPage(ctx, PlatformTikTok, c.eps.tikTok, n),
		c.checkSearchPage(ctx, PlatformTwitter, c.eps.twitter, n),
		{Platform: PlatformSnapchat, Presence: PresencePrivateCheck},
	}
}

// CheckProfessional probes professional networks.
func (c *Checker) CheckProfessional(ctx context.Context, n *number.Number) []Result {
	return []Result{
		c.checkLinkedIn(ctx, n),
		c.checkSearchPage(ctx, PlatformXing, c.eps.xing, n),
		{Platform: PlatformResearchGate, Presence: PresenceSearchAvailable},
	}
}

// CheckCommerce probes commerce and marketplace platforms.
func (c *Checker) CheckCommerce(ctx context.Context, n *number.Number) []Result {
	return []Result{
		c.checkGoogleBusiness(ctx, n),
		{Platform: PlatformAmazonSeller, Presence: PresencePrivateCheck},
		c.checkSearchPage(ctx, PlatformEBay, c.eps.ebay, n),
		c.checkSearchPage(ctx, PlatformWallapop, c.eps.wallapop, n),
	}
}

func (c *Checker) checkWhatsApp(ctx context.Context, n *number.Number) Result {
	status, body, err := c.fetch(ctx, fmt.Sprintf(c.eps.whatsApp, n.Clean))
	if err != nil {
		return c.failed(PlatformWhatsApp, err)
	}
	if status == http.StatusOK {
		if strings.Contains(body, "Abrir WhatsApp") || strings.Contains(body, "Open WhatsApp") {
			return Result{Platform: PlatformWhatsApp, Presence: PresenceRegistered}
		}
		if strings.Contains(body, "wa.me") {
			return Result{Platform: PlatformWhatsApp, Presence: PresencePossible}
		}
	}
	return Result{Platform: PlatformWhatsApp, Presence: PresenceNotFound}
}

func (c *Checker) checkWhatsAppBusiness(ctx context.Context, n *number.Number) Result {
	status, _, err := c.fetch(ctx, fmt.Sprintf(c.eps.whatsAppBusiness, n.Clean))
	if err != nil {
		return Result{Platform: PlatformWhatsAppBusiness, Presence: PresenceUnavailable}
	}
	if status == http.StatusOK {
		return Result{Platform: PlatformWhatsAppBusiness, Presence: PresenceBusinessAccount}
	}
	return Result{Platform: PlatformWhatsAppBusiness, Presence: PresenceNotBusiness}
}

func (c *Checker) checkTelegram(ctx context.Context, n *number.Number) Result {
	status, body, err := c.fetch(ctx, fmt.Sprintf(c.eps.telegram, n.Clean))
	if err != nil {
		return c.failed(PlatformTelegram, err)
	}
	if status == http.StatusOK {
		if strings.Contains(body, "tg://resolve") {
			return Result{Platform: PlatformTelegram, Presence: PresenceRegistered, Detail: "username lookup is private"}
		}
		if strings.Contains(body, "Telegram") {
			return Result{Platform: PlatformTelegram, Presence: PresencePossible}
		}
	}
	return Result{Platform: PlatformTelegram, Presence: PresenceNotFound}
}

func (c *Checker) checkFacebook(ctx context.Context, n *number.Number) Result {
	status, _, err := c.fetch(ctx, fmt.Sprintf(c.eps.facebook, url.QueryEscape(n.Clean)))
	if err != nil {
		return c.failed(PlatformFacebook, err)
	}
	if status == http.StatusOK {
		return Result{Platform: PlatformFacebook, Presence: PresenceSearchAvailable, Detail: "profile pages require login"}
	}
	return Result{Platform: PlatformFacebook, Presence: PresenceNotFound}
}

func (c *Checker) checkLinkedIn(ctx context.Context, n *number.Number) Result {
	status, _, err := c.fetch(ctx, fmt.Sprintf(c.eps.linkedIn, url.QueryEscape(n.Clean)))
	if err != nil {
		return c.failed(PlatformLinkedIn, err)
	}
	if status == http.StatusOK {
		return Result{Platform: PlatformLinkedIn, Presence: PresenceSearchAvailable, Detail: "profile pages require login"}
	}
	return Result{Platform: PlatformLinkedIn, Presence: PresenceNotFound}
}

func (c *Checker) checkGoogleBusiness(ctx context.Context, n *number.Number) Result {
	status, _, err := c.fetch(ctx, fmt.Sprintf(c.eps.googleBusiness, url.QueryEscape(n.Clean)))
	if err != nil {
		return Result{Platform: PlatformGoogleBusiness, Presence: PresenceUnavailable}
	}
	if status == http.StatusOK {
		return Result{Platform: PlatformGoogleBusiness, Presence: PresenceSearchAvailable}
	}
	return Result{Platform: PlatformGoogleBusiness, Presence: PresenceNotFound}
}

// checkSearchPage handles platforms whose only public surface is a
// search page that accepts phone numbers.
func (c *Checker) checkSearchPage(ctx context.Context, platform, urlTemplate string, n *number.Number) Result {
	status, _, err := c.fetch(ctx, fmt.Sprintf(urlTemplate, url.QueryEscape(n.Clean)))
	if err != nil {
		return c.failed(platform, err)
	}
	if status == http.StatusOK {
		return Result{Platform: platform, Presence: PresenceSearchAvailable}
	}
	return Result{Platform: platform, Presence: PresenceNotFound}
}

func (c *Checker) failed(platform string, err error) Result {
	c.log.Warn().Err(err).Str("platform", platform).Msg("platform probe failed")
	return Result{Platform: platform, Presence: PresenceCheckFailed}
}

// fetch performs one paced GET and returns the status code and a
// bounded prefix of the body.
func (c *Checker) fetch(ctx context.Context, rawURL string) (int, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return 0, "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, "", fmt.Errorf("requesting %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("reading response: %w", err)
	}
	return resp.StatusCode, string(body), nil
}
