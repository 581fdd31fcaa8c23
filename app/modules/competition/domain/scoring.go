package competitiondomain

import (
	"cmp"
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// LeaderboardRow is one ranked team.
type LeaderboardRow struct {
	Rank          int
	Team          Team
	Stars         int
	ApprovedCount int
}

// ChallengeStars returns the star value of a challenge, or 0 if it is unknown.
func ChallengeStars(doc Document, challengeID string) int {
	if c, ok := doc.FindChallenge(challengeID); ok {
		return c.Stars
	}
	return 0
}

// ApprovedStarTotal sums the stars of every approved submission of a team.
func ApprovedStarTotal(doc Document, teamID string) int {
	total := 0
	for _, s := range doc.Submissions {
		if s.TeamID == teamID && s.Status == StatusApproved {
			total += ChallengeStars(doc, s.ChallengeID)
		}
	}
	return total
}

// ApprovedChallengeCount counts the approved submissions of a team.
func ApprovedChallengeCount(doc Document, teamID string) int {
	n := 0
	for _, s := range doc.Submissions {
		if s.TeamID == teamID && s.Status == StatusApproved {
			n++
		}
	}
	return n
}

// Leaderboard ranks teams by approved stars, then approved challenge count,
// then team name. Every view that orders teams must go through here.
func Leaderboard(doc Document, teams []Team) []LeaderboardRow {
	stars := make(map[string]int, len(doc.Challenges))
	for _, c := range doc.Challenges {
		if _, dup := stars[c.ID]; !dup {
			stars[c.ID] = c.Stars
		}
	}

	type tally struct{ stars, approved int }
	byTeam := make(map[string]tally, len(teams))
	for _, s := range doc.Submissions {
		if s.Status != StatusApproved {
			continue
		}
		t := byTeam[s.TeamID]
		t.stars += stars[s.ChallengeID]
		t.approved++
		byTeam[s.TeamID] = t
	}

	rows := make([]LeaderboardRow, len(teams))
	for i, team := range teams {
		t := byTeam[team.ID]
		rows[i] = LeaderboardRow{Team: team, Stars: t.stars, ApprovedCount: t.approved}
	}

	// Collators keep internal buffers; one per call.
	col := collate.New(language.English)
	slices.SortStableFunc(rows, func(a, b LeaderboardRow) int {
		if c := cmp.Compare(b.Stars, a.Stars); c != 0 {
			return c
		}
		if c := cmp.Compare(b.ApprovedCount, a.ApprovedCount); c != 0 {
			return c
		}
		if c := col.CompareString(a.Team.Name, b.Team.Name); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Team.Name, b.Team.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.Team.ID, b.Team.ID)
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// Podium returns the first n rows of an already ranked leaderboard.
func Podium(rows []LeaderboardRow, n int) []LeaderboardRow {
	if n <= 0 {
		return []LeaderboardRow{}
	}
	if n > len(rows) {
		n = len(rows)
	}
	return append([]LeaderboardRow{}, rows[:n]...)
}
