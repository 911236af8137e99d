package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joestump/dexview/internal/catalog"
	"github.com/joestump/dexview/internal/listing"
)

const statBarWidth = 20

var (
	titleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef5350")).
		Bold(true)

	mutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#8a8a8a"))

	errorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ff5f5f")).
		Bold(true)

	badgeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#1e3a8a")).
		Background(lipgloss.Color("#dbeafe")).
		Padding(0, 1)

	favoriteStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#facc15"))

	barStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3b82f6"))

	cardStyle = lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#3b82f6"))
)

func badges(categories []string) string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		out = append(out, badgeStyle.Render(c))
	}
	return strings.Join(out, " ")
}

func star(favorite bool) string {
	if favorite {
		return favoriteStyle.Render("★")
	}
	return mutedStyle.Render("☆")
}

// renderPage renders one listing page as a table of rows plus a footer with
// the page position and available navigation.
func renderPage(p listing.Page[listing.Entry], isFavorite func(int) bool) string {
	var b strings.Builder
	if len(p.Items) == 0 {
		b.WriteString(mutedStyle.Render("No matches."))
		b.WriteString("\n")
	}
	for _, e := range p.Items {
		fmt.Fprintf(&b, "%s %s %s %s\n",
			star(isFavorite(e.ID)),
			mutedStyle.Render(fmt.Sprintf("#%-4d", e.ID)),
			fmt.Sprintf("%-14s", e.Name),
			badges(e.Categories))
	}

	nav := []string{fmt.Sprintf("page %d of %d", p.Number, p.TotalPages), fmt.Sprintf("%d results", p.TotalItems)}
	if p.HasPrev {
		nav = append(nav, "[p]rev")
	}
	if p.HasNext {
		nav = append(nav, "[n]ext")
	}
	b.WriteString(mutedStyle.Render(strings.Join(nav, " · ")))
	b.WriteString("\n")
	return b.String()
}

// statBar draws value against catalog.StatCeiling. Values above the ceiling
// fill the whole bar and negative values leave it empty; the percentage shown
// is not clamped.
func statBar(s catalog.Stat) string {
	filled := max(0, min(int(s.Percent()*statBarWidth/100+0.5), statBarWidth))
	bar := barStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", statBarWidth-filled))
	return fmt.Sprintf("%-16s %3d %s %5.1f%%", s.Name, s.Value, bar, s.Percent())
}

// renderDetail renders a full detail record as a card.
func renderDetail(d *catalog.Detail, favorite bool) string {
	lines := []string{
		titleStyle.Render(d.Name) + " " + mutedStyle.Render(fmt.Sprintf("#%d", d.ID)) + " " + star(favorite),
		mutedStyle.Render(d.Image()),
		"",
		"Type(s): " + badges(d.Categories),
		"",
		"Stats:",
	}
	for _, s := range d.Stats {
		lines = append(lines, "  "+statBar(s))
	}
	lines = append(lines, "", "Abilities:")
	for _, a := range d.Abilities {
		lines = append(lines, "  • "+a)
	}
	return cardStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func renderNotFound() string {
	return errorStyle.Render("Pokémon data not found.") + "\n"
}
