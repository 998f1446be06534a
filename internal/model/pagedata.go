package model

// PageData is the template context for a social-preview redirect page.
type PageData struct {
	SiteTitle   string
	Title       string
	Description string
	Image       string
	URL         string
	RedirectURL string
	Icon        string
}
