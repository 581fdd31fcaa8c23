// Package competitionimport converts roster spreadsheets into roster text.
//
// A sheet lays out one group per column: the first row holds the group
// titles and the cells below each title are its members.
package competitionimport

import (
	"fmt"
	"path/filepath"
	"strings"

	competitiondomain "github.com/Black-And-White-Club/tripquest/app/modules/competition/domain"
)

// Parser turns an uploaded file into roster groups.
type Parser interface {
	Parse(data []byte) ([]competitiondomain.RosterGroup, error)
}

// ParserFor picks a parser from the file extension.
func ParserFor(filename string) (Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".csv":
		return CSVParser{}, nil
	case ".xlsx":
		return XLSXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported roster file type: %q", ext)
	}
}

// RosterText parses data with the parser for filename and formats the result
// as roster text.
func RosterText(filename string, data []byte) (string, error) {
	p, err := ParserFor(filename)
	if err != nil {
		return "", err
	}
	groups, err := p.Parse(data)
	if err != nil {
		return "", err
	}
	return competitiondomain.FormatRoster(groups), nil
}

// groupsFromColumns reads a row-major grid column by column. Columns with a
// blank title are skipped, as are blank member cells.
func groupsFromColumns(rows [][]string) ([]competitiondomain.RosterGroup, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("roster sheet is empty")
	}

	header := rows[0]
	groups := make([]competitiondomain.RosterGroup, 0, len(header))
	for col, raw := range header {
		title := strings.TrimSpace(raw)
		if title == "" {
			continue
		}
		members := []string{}
		for _, row := range rows[1:] {
			if col >= len(row) {
				continue
			}
			if name := strings.TrimSpace(row[col]); name != "" {
				members = append(members, name)
			}
		}
		groups = append(groups, competitiondomain.RosterGroup{Title: title, MemberNames: members})
	}

	if len(groups) == 0 {
		return nil, fmt.Errorf("roster sheet has no group titles in its first row")
	}
	return groups, nil
}
