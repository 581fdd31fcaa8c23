package competitiondomain

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	// TeamIDPrefix prefixes every derived team id.
	TeamIDPrefix = "bus-"
	// PlaceholderSlug is used when a title has no alphanumeric characters.
	PlaceholderSlug = "group"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// UnresolvedName is a roster member line that matched no directory entry.
type UnresolvedName struct {
	TeamID  string
	RawName string
}

// Derivation is the result of one team derivation pass.
type Derivation struct {
	Teams      []Team
	Unresolved []UnresolvedName
}

// Slugify turns a group title into a lowercase, hyphen-delimited slug.
func Slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(NormalizeName(title), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return PlaceholderSlug
	}
	return slug
}

// DeriveTeams builds teams from roster text and the directory, carrying over
// leaders from storedTeams when they are still members.
//
// Ids are "bus-<slug>-<n>" where n counts occurrences of the slug within this
// call, so they are only stable while the order of same-titled groups is.
// Inserting, removing or reordering such a group moves ids between groups and
// detaches previously chosen leaders.
func DeriveTeams(rosterText string, directory []Participant, storedTeams []Team) []Team {
	return DeriveTeamsReport(rosterText, directory, storedTeams).Teams
}

// DeriveTeamsReport is DeriveTeams plus the list of member names that could
// not be resolved.
func DeriveTeamsReport(rosterText string, directory []Participant, storedTeams []Team) Derivation {
	groups := ParseRoster(rosterText)
	index := NewNameIndex(directory)

	stored := make(map[string]Team, len(storedTeams))
	for _, t := range storedTeams {
		if _, dup := stored[t.ID]; !dup {
			stored[t.ID] = t
		}
	}

	out := Derivation{
		Teams:      make([]Team, 0, len(groups)),
		Unresolved: []UnresolvedName{},
	}
	occurrences := make(map[string]int, len(groups))

	for _, g := range groups {
		slug := Slugify(g.Title)
		occurrences[slug]++
		id := TeamIDPrefix + slug + "-" + strconv.Itoa(occurrences[slug])

		members := make([]string, 0, len(g.MemberNames))
		seen := make(map[string]struct{}, len(g.MemberNames))
		for _, name := range g.MemberNames {
			pid, ok := index.Resolve(name)
			if !ok {
				out.Unresolved = append(out.Unresolved, UnresolvedName{TeamID: id, RawName: name})
				continue
			}
			if _, dup := seen[pid]; dup {
				continue
			}
			seen[pid] = struct{}{}
			members = append(members, pid)
		}

		team := Team{ID: id, Name: g.Title, MemberIDs: members}
		if prev, ok := stored[id]; ok && prev.LeaderID != nil {
			if _, isMember := seen[*prev.LeaderID]; isMember {
				leader := *prev.LeaderID
				team.LeaderID = &leader
			}
		}
		out.Teams = append(out.Teams, team)
	}

	return out
}

// AssignLeader sets or clears the team's leader. A leader who is not a member
// is rejected: the team is returned unchanged with ok=false.
func AssignLeader(team Team, leaderID *string) (Team, bool) {
	if leaderID == nil {
		team.LeaderID = nil
		return team, true
	}
	if !team.HasMember(*leaderID) {
		return team, false
	}
	id := *leaderID
	team.LeaderID = &id
	return team, true
}

// MergeStoredTeams replaces the stored team list with the persisted subset of
// derived. Leaders on derived teams are assumed valid.
func MergeStoredTeams(doc Document, derived []Team) Document {
	teams := make([]Team, len(derived))
	for i, t := range derived {
		teams[i] = Team{
			ID:        t.ID,
			Name:      t.Name,
			LeaderID:  cloneString(t.LeaderID),
			MemberIDs: append([]string{}, t.MemberIDs...),
		}
	}
	doc.Teams = teams
	return doc
}

// TeamForParticipant returns the first team listing participantID as a member.
func TeamForParticipant(teams []Team, participantID string) (Team, bool) {
	for _, t := range teams {
		if t.HasMember(participantID) {
			return t, true
		}
	}
	return Team{}, false
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
