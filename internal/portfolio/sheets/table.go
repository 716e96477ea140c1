package sheets

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Table names one logical tab of the published spreadsheet.
type Table string

const (
	TableWorks     Table = "works"
	TableSkills    Table = "skills"
	TableTools     Table = "tools"
	TableEquipment Table = "equipment"
	TableTexts     Table = "texts"
)

var Tables = []Table{TableWorks, TableSkills, TableTools, TableEquipment, TableTexts}

var (
	ErrUnknownTable = errors.New("unknown table")
	ErrEmptySheet   = errors.New("sheet has no data rows")
)

func ParseTable(s string) (Table, error) {
	t := Table(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tables {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTable, s)
}

// Tabs maps each table to the identifier of its tab. For CSV publishing this
// is the numeric gid; for the Sheets API it is the tab title.
type Tabs map[Table]string

// TabURL builds the CSV download URL of one tab from the sheet's publish
// link, e.g. https://docs.google.com/spreadsheets/d/e/<key>/pub?output=csv.
func TabURL(base, gid string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return "", fmt.Errorf("parse sheet base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("sheet base url %q is not absolute", base)
	}
	q := u.Query()
	if gid != "" {
		q.Set("gid", gid)
		q.Set("single", "true")
	}
	q.Set("output", "csv")
	u.RawQuery = q.Encode()
	return u.String(), nil
}
