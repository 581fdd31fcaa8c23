package competitionimport

import (
	"bytes"
	"fmt"

	competitiondomain "github.com/Black-And-White-Club/tripquest/app/modules/competition/domain"
	"github.com/xuri/excelize/v2"
)

// XLSXParser reads the first sheet of a workbook.
type XLSXParser struct{}

func (XLSXParser) Parse(data []byte) ([]competitiondomain.RosterGroup, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("XLSX file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return groupsFromColumns(rows)
}
