package competitionimport

import (
	"bytes"
	"encoding/csv"
	"fmt"

	competitiondomain "github.com/Black-And-White-Club/tripquest/app/modules/competition/domain"
)

// CSVParser reads a comma-separated export of the same column layout.
type CSVParser struct{}

func (CSVParser) Parse(data []byte) ([]competitiondomain.RosterGroup, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return groupsFromColumns(rows)
}
