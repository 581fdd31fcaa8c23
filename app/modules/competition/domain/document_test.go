package competitiondomain

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_FallsBackToEmpty(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t",
		"{not valid}",
		`[1,2,3]`,
		`"just a string"`,
		`42`,
		`null`,
	}
	for _, in := range inputs {
		res := DecodeDetailed(in)
		assert.True(t, res.Defaulted, "input %q", in)
		assert.Equal(t, EmptyDocument(), res.Document, "input %q", in)
		assert.Equal(t, EmptyDocument(), Decode(in), "input %q", in)
	}
}

func TestDecode_NonArrayFieldsBecomeEmpty(t *testing.T) {
	res := DecodeDetailed(`{"teams":{"id":"x"},"challenges":"nope","submissions":7}`)

	assert.False(t, res.Defaulted)
	assert.Zero(t, res.DroppedRows)
	assert.Equal(t, EmptyDocument(), res.Document)
}

func TestDecode_DropsInvalidRows(t *testing.T) {
	text := `{
		"teams": [
			{"id": "t1", "name": "One", "memberUserIds": ["a", "", 3, "b"], "leaderUserId": ""},
			{"name": "no id"},
			"not an object"
		],
		"challenges": [
			{"id": "c1", "title": "Climb", "stars": 2.6},
			{"id": "c2", "stars": "lots", "isActive": false, "description": ""},
			{"id": "c3", "stars": -4, "participantVisible": "yes"},
			{"id": ""}
		],
		"submissions": [
			{"id": "s1", "teamId": "t1", "challengeId": "c1", "status": "approved", "updatedAt": "2026-05-01T10:00:00Z", "updatedByUserId": "a"},
			{"id": "s2", "teamId": "t1", "challengeId": "c2", "status": "done"},
			{"id": "s3", "teamId": "t1", "challengeId": "c3", "status": "pending", "updatedAt": 1746093600000},
			{"id": "s4", "challengeId": "c3", "status": "pending"},
			{"id": "s5", "teamId": "t1", "challengeId": "c2", "status": "rejected", "updatedAt": "yesterday"}
		]
	}`

	res := DecodeDetailed(text)
	doc := res.Document

	assert.False(t, res.Defaulted)
	assert.Equal(t, 5, res.DroppedRows)

	require.Len(t, doc.Teams, 1)
	assert.Equal(t, []string{"a", "b"}, doc.Teams[0].MemberIDs)
	assert.Nil(t, doc.Teams[0].LeaderID)

	require.Len(t, doc.Challenges, 3)
	assert.Equal(t, 3, doc.Challenges[0].Stars)
	assert.True(t, doc.Challenges[0].IsActive)
	assert.True(t, doc.Challenges[0].ParticipantVisible)
	assert.Nil(t, doc.Challenges[0].Description)

	assert.Equal(t, DefaultChallengeStars, doc.Challenges[1].Stars)
	assert.False(t, doc.Challenges[1].IsActive)
	require.NotNil(t, doc.Challenges[1].Description)
	assert.Equal(t, "", *doc.Challenges[1].Description)

	assert.Equal(t, 1, doc.Challenges[2].Stars)
	assert.True(t, doc.Challenges[2].ParticipantVisible)

	require.Len(t, doc.Submissions, 3)
	assert.True(t, doc.Submissions[0].UpdatedAt.Equal(time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)))
	require.NotNil(t, doc.Submissions[0].UpdatedBy)
	assert.Equal(t, "a", *doc.Submissions[0].UpdatedBy)
	assert.True(t, doc.Submissions[1].UpdatedAt.Equal(time.UnixMilli(1746093600000)))
	assert.True(t, doc.Submissions[2].UpdatedAt.IsZero())
}

func TestDecode_DropsDuplicateSubmissionPairs(t *testing.T) {
	text := `{
		"teams": [{"id": "t1", "name": "One", "memberUserIds": ["a"]}],
		"challenges": [{"id": "c1", "title": "Climb", "stars": 5}],
		"submissions": [
			{"id": "s1", "teamId": "t1", "challengeId": "c1", "status": "approved"},
			{"id": "s2", "teamId": "t1", "challengeId": "c1", "status": "approved"},
			{"id": "s3", "teamId": "t1", "challengeId": "c1", "status": "rejected"}
		]
	}`

	res := DecodeDetailed(text)
	doc := res.Document

	assert.Equal(t, 2, res.DroppedRows)
	require.Len(t, doc.Submissions, 1)
	assert.Equal(t, "s1", doc.Submissions[0].ID)

	rows := Leaderboard(doc, doc.Teams)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Stars)
	assert.Equal(t, 1, rows[0].ApprovedCount)

	cleared := UpsertSubmission(doc.Submissions, SubmissionParams{TeamID: "t1", ChallengeID: "c1"}, time.Now())
	assert.Empty(t, cleared)
	assert.Equal(t, StateNotSubmitted, StateOf(cleared, "t1", "c1"))
}

func TestDecode_InvalidUTF8(t *testing.T) {
	text := `{"teams": [` +
		`{"id": "a` + "\xff" + `", "name": "Dropped"},` +
		`{"id": "t2", "name": "Bus ` + "\xff\xfe" + `", "memberUserIds": ["ok", "b` + "\xff" + `"]}` +
		`]}`

	res := DecodeDetailed(text)
	require.False(t, res.Defaulted)
	assert.Equal(t, 1, res.DroppedRows)

	require.Len(t, res.Document.Teams, 1)
	team := res.Document.Teams[0]
	assert.Equal(t, "t2", team.ID)
	assert.Equal(t, "Bus \uFFFD\uFFFD", team.Name)
	assert.Equal(t, []string{"ok"}, team.MemberIDs)

	if diff := cmp.Diff(res.Document, Decode(Encode(res.Document))); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_EmptyDocument(t *testing.T) {
	assert.Equal(t, emptyDocumentJSON, Encode(EmptyDocument()))
	assert.Equal(t, emptyDocumentJSON, Encode(Document{}))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	faker := gofakeit.New(42)

	for range 20 {
		doc := randomDocument(faker)

		got := Decode(Encode(doc))

		if diff := cmp.Diff(doc, got); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, Encode(doc), Encode(got), "encoding must be deterministic")
	}
}

func randomDocument(f *gofakeit.Faker) Document {
	doc := EmptyDocument()

	for range f.IntRange(0, 4) {
		members := []string{}
		for range f.IntRange(0, 5) {
			members = append(members, f.UUID())
		}
		team := Team{ID: "bus-" + f.Word() + "-1", Name: f.Company(), MemberIDs: members}
		if len(members) > 0 && f.Bool() {
			team.LeaderID = &members[0]
		}
		doc.Teams = append(doc.Teams, team)
	}

	for range f.IntRange(0, 5) {
		c := Challenge{
			ID:                 f.UUID(),
			Title:              f.Sentence(3),
			Stars:              f.IntRange(1, 10),
			IsActive:           f.Bool(),
			ParticipantVisible: f.Bool(),
		}
		if f.Bool() {
			d := f.Paragraph(1, 2, 6, " ")
			c.Description = &d
		}
		doc.Challenges = append(doc.Challenges, c)
	}

	statuses := []SubmissionStatus{StatusPending, StatusApproved, StatusRejected}
	for range f.IntRange(0, 6) {
		s := Submission{
			ID:          f.UUID(),
			TeamID:      f.UUID(),
			ChallengeID: f.UUID(),
			Status:      statuses[f.IntRange(0, 2)],
			UpdatedAt:   f.DateRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)).UTC(),
		}
		if f.Bool() {
			by := f.UUID()
			s.UpdatedBy = &by
		}
		doc.Submissions = append(doc.Submissions, s)
	}

	return doc
}
