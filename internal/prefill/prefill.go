// Package prefill derives default "details" text from referral query
// parameters on the contact page.
package prefill

import (
	"net/url"
	"strings"
)

// Referral sources recognised by Derive.
const (
	SourceNameplates  = "nameplates"
	SourceSportsTeams = "sports-teams"
	PrefillSportsTeam = "sports-team"
)

var nameplatePrompts = []string{
	"- Text / Name:",
	"- Size (single, double, triple):",
	"- Color / Style:",
	"- Where it’s going (wall / desk / gift):",
	"- Deadline / need-by date:",
	"- Shipping city/state:",
	"- Any reference photo (optional):",
}

var sportsTeamPrompts = []string{
	"- Team name:",
	"- League (NFL / College / High School / Other):",
	"- Size / approximate dimensions:",
	"- Colors / vibe:",
	"- Any logo/era/version you want:",
	"- Where it’s going (man cave / office / garage / gift):",
	"- Deadline / need-by date:",
	"- Shipping city/state:",
	"- Reference image or link (optional):",
}

// Derive returns the prefill text for q, or "" when q names no known
// referral. Nameplate referrals win when both shapes match. Values are used
// exactly as given; only an absent or empty product or team falls back to
// the generic headline.
func Derive(q url.Values) string {
	source := q.Get("source")

	switch {
	case source == SourceNameplates:
		return nameplates(q.Get("product"), q.Get("price"))
	case source == SourceSportsTeams || q.Get("prefill") == PrefillSportsTeam:
		return sportsTeam(q.Get("team"))
	default:
		return ""
	}
}

// Apply returns current unless it is empty or whitespace-only, in which
// case the prefill text is used. Typed text is never replaced.
func Apply(current, prefill string) string {
	if strings.TrimSpace(current) != "" {
		return current
	}
	return prefill
}

func nameplates(product, price string) string {
	headline := "I would like to order a Packwood Nameplate."
	if product != "" {
		headline = "I would like to order the " + product
		if price != "" {
			headline += " (" + price + ")"
		}
		headline += "."
	}
	return compose(headline, nameplatePrompts)
}

func sportsTeam(team string) string {
	headline := "I would like to request a sports team plate."
	if team != "" {
		headline = "I would like to request a " + team + " sports team plate."
	}
	return compose(headline, sportsTeamPrompts)
}

func compose(headline string, prompts []string) string {
	lines := make([]string, 0, len(prompts)+4)
	lines = append(lines, headline, "", "Details to include:")
	lines = append(lines, prompts...)
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}
