package web

import (
	"net/http"

	"sellmate/nav"
	"sellmate/role"
	"sellmate/session"
)

// Shell carries the page-shell collaborator parameters. The gateway supplies
// them per route; the templates own the rendering.
type Shell struct {
	Title        string
	Subtitle     string
	StyleClass   string
	ShowBackLink bool
	BackLinkURL  string
	BackLinkText string
}

// RoleCard is one selectable role on a selection page.
type RoleCard struct {
	Role        string
	Title       string
	Color       string
	Icon        string
	Description string
	Href        string
}

// FooterLink is one static footer entry.
type FooterLink struct {
	Href  string
	Label string
}

var footerLinks = []FooterLink{
	{Href: "/about", Label: "About Us"},
	{Href: "/careers", Label: "Careers"},
	{Href: "/blog", Label: "Blog"},
	{Href: "/terms", Label: "Terms of Service"},
	{Href: "/privacy", Label: "Privacy Policy"},
	{Href: "/security", Label: "Security"},
}

// basePage is embedded by every page view model.
type basePage struct {
	Chrome nav.Chrome
	Shell  Shell
	Footer []FooterLink
}

// chromeFor builds the navigation chrome for the current request. The
// gateway acts as the host shell and always supplies display state, read
// from the display cookie.
func (s *Server) chromeFor(r *http.Request) nav.Chrome {
	var current role.Role
	if sess, ok := session.FromContext(r.Context()); ok {
		current = sess.Role
	}
	dark, _ := displayState(r)
	return nav.BuildChrome(r.URL.Path, current, &nav.Display{Dark: dark})
}

func (s *Server) basePageFor(r *http.Request, shell Shell) basePage {
	return basePage{
		Chrome: s.chromeFor(r),
		Shell:  shell,
		Footer: footerLinks,
	}
}

// loginCards lists the roles offered on the login selection page. Admin is
// reachable by deep link only, mirroring its out-of-band provisioning.
func loginCards() []RoleCard {
	cards := make([]RoleCard, 0, 3)
	for _, r := range role.SignupRoles() {
		meta := role.MetadataFor(r)
		cards = append(cards, RoleCard{
			Role:        string(r),
			Title:       meta.Title,
			Color:       meta.ColorToken,
			Icon:        meta.Icon,
			Description: "Access your " + string(r) + " account",
			Href:        "/login/" + string(r),
		})
	}
	return cards
}

// signupCards lists the roles offered on the signup selection page.
func signupCards() []RoleCard {
	cards := make([]RoleCard, 0, 3)
	for _, r := range role.SignupRoles() {
		meta := role.MetadataFor(r)
		cards = append(cards, RoleCard{
			Role:        string(r),
			Title:       meta.Title,
			Color:       meta.ColorToken,
			Icon:        meta.Icon,
			Description: meta.Description,
		})
	}
	return cards
}
