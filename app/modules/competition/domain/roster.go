package competitiondomain

import "strings"

// ParseRoster splits roster text into groups. Blocks are separated by blank
// lines; the first non-empty line of a block is the title and every further
// non-empty line is a member name. Empty input yields an empty list.
func ParseRoster(text string) []RosterGroup {
	groups := []RosterGroup{}
	if strings.TrimSpace(text) == "" {
		return groups
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var current []string
	flush := func() {
		if len(current) == 0 {
			return
		}
		groups = append(groups, RosterGroup{
			Title:       current[0],
			MemberNames: append([]string{}, current[1:]...),
		})
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return groups
}

// FormatRoster renders groups back into roster text.
func FormatRoster(groups []RosterGroup) string {
	blocks := make([]string, 0, len(groups))
	for _, g := range groups {
		lines := make([]string, 0, len(g.MemberNames)+1)
		if title := strings.TrimSpace(g.Title); title != "" {
			lines = append(lines, title)
		}
		for _, name := range g.MemberNames {
			if name = strings.TrimSpace(name); name != "" {
				lines = append(lines, name)
			}
		}
		if len(lines) == 0 {
			continue
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	return strings.Join(blocks, "\n\n")
}
