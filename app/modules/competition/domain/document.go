package competitiondomain

import (
	"encoding/json"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

const emptyDocumentJSON = `{"teams":[],"challenges":[],"submissions":[]}`

// DecodeResult is the tagged outcome of decoding a persisted document.
// Defaulted is set when the text was absent, unparseable or not an object and
// the empty document was substituted. DroppedRows counts list entries that
// failed validation.
type DecodeResult struct {
	Document    Document
	Defaulted   bool
	DroppedRows int
}

// Decode parses persisted text leniently. It never fails: anything it cannot
// use is replaced by empty lists or dropped.
func Decode(text string) Document {
	return DecodeDetailed(text).Document
}

// DecodeDetailed is Decode with the information about what was discarded.
func DecodeDetailed(text string) DecodeResult {
	res := DecodeResult{Document: EmptyDocument()}
	if strings.TrimSpace(text) == "" || !gjson.Valid(text) {
		res.Defaulted = true
		return res
	}

	root := gjson.Parse(text)
	if !root.IsObject() {
		res.Defaulted = true
		return res
	}

	for _, row := range listField(root, "teams") {
		if t, ok := decodeTeam(row); ok {
			res.Document.Teams = append(res.Document.Teams, t)
		} else {
			res.DroppedRows++
		}
	}
	for _, row := range listField(root, "challenges") {
		if c, ok := decodeChallenge(row); ok {
			res.Document.Challenges = append(res.Document.Challenges, c)
		} else {
			res.DroppedRows++
		}
	}
	// One record per (team, challenge); the first row for a pair wins.
	seen := make(map[string]struct{})
	for _, row := range listField(root, "submissions") {
		s, ok := decodeSubmission(row)
		if ok {
			key := s.TeamID + "\x00" + s.ChallengeID
			if _, dup := seen[key]; dup {
				ok = false
			} else {
				seen[key] = struct{}{}
			}
		}
		if ok {
			res.Document.Submissions = append(res.Document.Submissions, s)
		} else {
			res.DroppedRows++
		}
	}

	return res
}

func listField(root gjson.Result, key string) []gjson.Result {
	v := root.Get(key)
	if !v.IsArray() {
		return nil
	}
	return v.Array()
}

func decodeTeam(row gjson.Result) (Team, bool) {
	if !row.IsObject() {
		return Team{}, false
	}
	id, ok := requiredString(row, "id")
	if !ok {
		return Team{}, false
	}

	members := []string{}
	for _, m := range row.Get("memberUserIds").Array() {
		if m.Type == gjson.String && m.Str != "" && utf8.ValidString(m.Str) {
			members = append(members, m.Str)
		}
	}

	return Team{
		ID:        id,
		Name:      optionalString(row, "name"),
		LeaderID:  optionalID(row, "leaderUserId"),
		MemberIDs: members,
	}, true
}

func decodeChallenge(row gjson.Result) (Challenge, bool) {
	if !row.IsObject() {
		return Challenge{}, false
	}
	id, ok := requiredString(row, "id")
	if !ok {
		return Challenge{}, false
	}

	stars := DefaultChallengeStars
	if v := row.Get("stars"); v.Type == gjson.Number {
		stars = ClampStars(v.Num)
	}

	var description *string
	if v := row.Get("description"); v.Type == gjson.String {
		d := validText(v.Str)
		description = &d
	}

	return Challenge{
		ID:                 id,
		Title:              optionalString(row, "title"),
		Description:        description,
		Stars:              stars,
		IsActive:           optionalBool(row, "isActive", true),
		ParticipantVisible: optionalBool(row, "participantVisible", true),
	}, true
}

func decodeSubmission(row gjson.Result) (Submission, bool) {
	if !row.IsObject() {
		return Submission{}, false
	}
	id, ok := requiredString(row, "id")
	if !ok {
		return Submission{}, false
	}
	teamID, ok := requiredString(row, "teamId")
	if !ok {
		return Submission{}, false
	}
	challengeID, ok := requiredString(row, "challengeId")
	if !ok {
		return Submission{}, false
	}
	status := SubmissionStatus(row.Get("status").Str)
	if row.Get("status").Type != gjson.String || !status.Valid() {
		return Submission{}, false
	}

	return Submission{
		ID:          id,
		TeamID:      teamID,
		ChallengeID: challengeID,
		Status:      status,
		UpdatedAt:   optionalTime(row, "updatedAt"),
		UpdatedBy:   optionalID(row, "updatedByUserId"),
	}, true
}

// requiredString rejects invalid UTF-8 so that ids survive an encode.
func requiredString(row gjson.Result, key string) (string, bool) {
	v := row.Get(key)
	if v.Type != gjson.String || v.Str == "" || !utf8.ValidString(v.Str) {
		return "", false
	}
	return v.Str, true
}

// optionalString replaces invalid UTF-8 the same way encoding does, so text
// decodes to the same value before and after a save.
func optionalString(row gjson.Result, key string) string {
	if v := row.Get(key); v.Type == gjson.String {
		return validText(v.Str)
	}
	return ""
}

// validText substitutes U+FFFD for each invalid byte, as encoding/json does.
func validText(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteRune(r)
	}
	return b.String()
}

func optionalID(row gjson.Result, key string) *string {
	v := row.Get(key)
	if v.Type != gjson.String || v.Str == "" || !utf8.ValidString(v.Str) {
		return nil
	}
	id := v.Str
	return &id
}

func optionalBool(row gjson.Result, key string, def bool) bool {
	switch row.Get(key).Type {
	case gjson.True:
		return true
	case gjson.False:
		return false
	}
	return def
}

// optionalTime accepts RFC 3339 strings and epoch milliseconds.
func optionalTime(row gjson.Result, key string) time.Time {
	v := row.Get(key)
	switch v.Type {
	case gjson.String:
		if t, err := time.Parse(time.RFC3339Nano, v.Str); err == nil {
			return t.UTC()
		}
	case gjson.Number:
		return time.UnixMilli(v.Int()).UTC()
	}
	return time.Time{}
}

type wireDocument struct {
	Teams       []wireTeam       `json:"teams"`
	Challenges  []wireChallenge  `json:"challenges"`
	Submissions []wireSubmission `json:"submissions"`
}

type wireTeam struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	LeaderUserID  *string  `json:"leaderUserId,omitempty"`
	MemberUserIDs []string `json:"memberUserIds"`
}

type wireChallenge struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Description        *string `json:"description,omitempty"`
	Stars              int     `json:"stars"`
	IsActive           bool    `json:"isActive"`
	ParticipantVisible bool    `json:"participantVisible"`
}

type wireSubmission struct {
	ID              string  `json:"id"`
	TeamID          string  `json:"teamId"`
	ChallengeID     string  `json:"challengeId"`
	Status          string  `json:"status"`
	UpdatedAt       string  `json:"updatedAt"`
	UpdatedByUserID *string `json:"updatedByUserId,omitempty"`
}

// Encode serializes the document. Field order is fixed by the wire structs and
// list order is preserved, so equal documents encode to equal text.
func Encode(doc Document) string {
	w := wireDocument{
		Teams:       make([]wireTeam, 0, len(doc.Teams)),
		Challenges:  make([]wireChallenge, 0, len(doc.Challenges)),
		Submissions: make([]wireSubmission, 0, len(doc.Submissions)),
	}
	for _, t := range doc.Teams {
		members := t.MemberIDs
		if members == nil {
			members = []string{}
		}
		w.Teams = append(w.Teams, wireTeam{
			ID:            t.ID,
			Name:          t.Name,
			LeaderUserID:  t.LeaderID,
			MemberUserIDs: members,
		})
	}
	for _, c := range doc.Challenges {
		w.Challenges = append(w.Challenges, wireChallenge{
			ID:                 c.ID,
			Title:              c.Title,
			Description:        c.Description,
			Stars:              c.Stars,
			IsActive:           c.IsActive,
			ParticipantVisible: c.ParticipantVisible,
		})
	}
	for _, s := range doc.Submissions {
		w.Submissions = append(w.Submissions, wireSubmission{
			ID:              s.ID,
			TeamID:          s.TeamID,
			ChallengeID:     s.ChallengeID,
			Status:          string(s.Status),
			UpdatedAt:       s.UpdatedAt.UTC().Format(time.RFC3339Nano),
			UpdatedByUserID: s.UpdatedBy,
		})
	}

	data, err := json.Marshal(w)
	if err != nil {
		return emptyDocumentJSON
	}
	return string(data)
}
