// Package siteutil holds small helpers for rendering business contact data:
// addresses, obfuscated emails and tel/maps/mailto links.
package siteutil

import "fmt"

// Location is a postal address.
type Location struct {
	Address string
	City    string
	State   string
	Zip     string
}

// BuildFullAddress formats loc on a single line, e.g.
// "1 Main St, Springfield, IL 62701".
func BuildFullAddress(loc Location) string {
	return fmt.Sprintf("%s, %s, %s %s", loc.Address, loc.City, loc.State, loc.Zip)
}
