package server

import "strings"

// Brand is shown in the sidebar header and page titles.
const Brand = "Syms Residuos"

// NavItem is one sidebar entry. Items without a page link to "#".
type NavItem struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

var sidebar = []NavItem{
	{Label: "Home", Href: "/dashboard"},
	{Label: "Data Importer", Href: "/data-importer"},
	{Label: "Users", Href: "#"},
	{Label: "Analytics", Href: "#"},
	{Label: "Settings", Href: "#"},
}

// Navigation returns the sidebar with the entry owning path marked active.
func Navigation(path string) []NavItem {
	items := make([]NavItem, len(sidebar))
	for i, item := range sidebar {
		if item.Href != "#" && (path == item.Href || strings.HasPrefix(path, item.Href+"/")) {
			item.Active = true
		}
		items[i] = item
	}
	return items
}
