package main

import (
	"fmt"
	"strings"

	competitiondomain "github.com/Black-And-White-Club/tripquest/app/modules/competition/domain"
	"github.com/tidwall/gjson"
)

// parseDirectory reads a participant list exported as JSON. Either a bare
// array or an object with a "participants" array is accepted; entries use
// id/fullName/displayName with snake_case spellings tolerated. Entries
// without an id or a name are skipped.
func parseDirectory(data []byte) ([]competitiondomain.Participant, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("directory is not valid JSON")
	}

	root := gjson.ParseBytes(data)
	list := root
	if root.IsObject() {
		list = root.Get("participants")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("directory must be an array of participants")
	}

	var out []competitiondomain.Participant
	list.ForEach(func(_, row gjson.Result) bool {
		id := strings.TrimSpace(firstString(row, "id", "userId", "user_id"))
		name := strings.TrimSpace(firstString(row, "fullName", "full_name", "name"))
		if id == "" || name == "" {
			return true
		}
		out = append(out, competitiondomain.Participant{
			ID:          id,
			FullName:    name,
			DisplayName: strings.TrimSpace(firstString(row, "displayName", "display_name", "nickname")),
		})
		return true
	})
	return out, nil
}

func firstString(row gjson.Result, keys ...string) string {
	for _, k := range keys {
		if v := row.Get(k); v.Type == gjson.String {
			return v.Str
		}
	}
	return ""
}
