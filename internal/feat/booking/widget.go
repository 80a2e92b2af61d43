package booking

import (
	"net/url"
	"strings"

	"github.com/kozmoai/site/pkg/kz/config"
)

const defaultCalBaseURL = "https://cal.com"

// embedParams styles the cal.com embed to match the site's dark theme.
// Order is kept stable so the URL is predictable.
var embedParams = [][2]string{
	{"embed", "true"},
	{"hideBranding", "true"},
	{"layout", "column_view"},
	{"theme", "dark"},
	{"primaryColor", "#9333EA"},
	{"backgroundColor", "0B0B0B"},
	{"textColor", "ffffff"},
}

// Widget describes the embedded cal.com scheduling page.
type Widget struct {
	BaseURL   string
	Username  string
	EventName string
}

// NewWidget builds the widget from config.
func NewWidget(cfg config.BookingConfig) *Widget {
	base := strings.TrimRight(strings.TrimSpace(cfg.CalBaseURL), "/")
	if base == "" {
		base = defaultCalBaseURL
	}
	return &Widget{
		BaseURL:   base,
		Username:  strings.TrimSpace(cfg.CalUsername),
		EventName: strings.TrimSpace(cfg.CalEventName),
	}
}

// IsConfigured reports whether both the cal.com user and event are set.
func (w *Widget) IsConfigured() bool {
	return w.Username != "" && w.EventName != ""
}

// EmbedURL returns the iframe source, or "" when not configured.
func (w *Widget) EmbedURL() string {
	if !w.IsConfigured() {
		return ""
	}

	var b strings.Builder
	b.WriteString(w.BaseURL)
	b.WriteByte('/')
	b.WriteString(url.PathEscape(w.Username))
	b.WriteByte('/')
	b.WriteString(url.PathEscape(w.EventName))
	for i, p := range embedParams {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(p[0])
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p[1]))
	}
	return b.String()
}
