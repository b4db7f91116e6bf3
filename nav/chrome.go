package nav

import (
	"fmt"
	"strings"

	"sellmate/role"
)

// Brand is the mark rendered in the navigation bar.
const Brand = "SellMate"

// Display carries the host shell's display-mode state and signals that the
// setter is wired. When absent the chrome renders no toggle. The toggle is
// independent of role and behaves identically for anonymous and
// authenticated visitors.
type Display struct {
	Dark bool
}

// Chrome is the view model for the navigation bar. It is rebuilt on every
// request from the current path and session role.
type Chrome struct {
	Visible    bool
	Brand      string
	RoleLabel  string
	ShowLogout bool
	ShowProfile bool

	ShowDisplayToggle bool
	Dark              bool

	// MenuOpen tracks the condensed mobile presentation of the same
	// actions. Toggling it never touches session or route state.
	MenuOpen bool
}

// IsAuthPath reports whether path belongs to the authentication surface
// (login or signup, with or without a role segment). The chrome suppresses
// itself there; auth pages carry their own minimal chrome via the page
// shell.
func IsAuthPath(path string) bool {
	return path == "/login" || path == "/signup" ||
		strings.HasPrefix(path, "/login/") || strings.HasPrefix(path, "/signup/")
}

// BuildChrome derives the chrome for the current path and role. An empty
// current role means an anonymous visitor: brand mark only, no account
// actions. The buyer role is the default consumer identity and gets no role
// label; every other role shows "{role} Dashboard".
func BuildChrome(path string, current role.Role, display *Display) Chrome {
	if IsAuthPath(path) {
		return Chrome{}
	}

	c := Chrome{
		Visible: true,
		Brand:   Brand,
	}
	if display != nil {
		c.ShowDisplayToggle = true
		c.Dark = display.Dark
	}
	if current == "" {
		return c
	}

	c.ShowLogout = true
	c.ShowProfile = true
	if current != role.Buyer {
		c.RoleLabel = fmt.Sprintf("%s Dashboard", current)
	}
	return c
}

// ToggleMenu flips the condensed menu open or closed. Calling it affects
// only the view model.
func (c *Chrome) ToggleMenu() {
	c.MenuOpen = !c.MenuOpen
}
