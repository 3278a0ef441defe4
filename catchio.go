/*
Copyright © 2019 the hgfish authors.
This file is part of hgfish.

hgfish is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

hgfish is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with hgfish.  If not, see <http://www.gnu.org/licenses/>.
*/

package hgfish

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx"
)

// CatchColumns gives the header names of the catch table columns.
type CatchColumns struct {
	CellID, Category, Partition, Catch string
}

// DefaultCatchColumns are the column names of the standard catch tables,
// partitioned by reporting region.
var DefaultCatchColumns = CatchColumns{
	CellID:    "CellID",
	Category:  "Hg_category",
	Partition: "Reg",
	Catch:     "Catch",
}

// catchTable turns rows of text, the first of which is the header, into
// catch records.
func (cc CatchColumns) catchTable(rows [][]string) ([]CatchRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("hgfish: catch table is empty")
	}
	col := make(map[string]int)
	for i, h := range rows[0] {
		col[strings.TrimSpace(h)] = i
	}
	idx := make([]int, 4)
	for i, name := range []string{cc.CellID, cc.Category, cc.Partition, cc.Catch} {
		c, ok := col[name]
		if !ok {
			return nil, fmt.Errorf("hgfish: catch table has no column %q", name)
		}
		idx[i] = c
	}
	o := make([]CatchRecord, 0, len(rows)-1)
	for j, row := range rows[1:] {
		if len(row) == 0 || (len(row) == 1 && row[0] == "") {
			continue
		}
		get := func(i int) string {
			if idx[i] >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx[i]])
		}
		id, err := strconv.ParseFloat(get(0), 64)
		if err != nil {
			return nil, fmt.Errorf("hgfish: catch table line %d: cell id: %v", j+2, err)
		}
		var catch float64
		if s := get(3); s != "" {
			catch, err = strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("hgfish: catch table line %d: catch: %v", j+2, err)
			}
		}
		o = append(o, CatchRecord{
			CellID:    id,
			Category:  get(1),
			Partition: partitionLabel(get(2)),
			Catch:     catch,
		})
	}
	return o, nil
}

// partitionLabel normalizes numeric partition labels so that "36" and
// "36.0" match.
func partitionLabel(s string) string {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return s
}

// ReadCatchCSV reads catch records from a CSV file with a header row.
func ReadCatchCSV(r io.Reader, cc CatchColumns) ([]CatchRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("hgfish: reading catch csv: %v", err)
	}
	return cc.catchTable(rows)
}

// ReadCatchXLSX reads catch records from a sheet of an Excel file. If sheet
// is empty, the first sheet is used.
func ReadCatchXLSX(path, sheet string, cc CatchColumns) ([]CatchRecord, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("hgfish: opening catch spreadsheet: %v", err)
	}
	var s *xlsx.Sheet
	if sheet == "" {
		if len(f.Sheets) == 0 {
			return nil, fmt.Errorf("hgfish: catch spreadsheet %s has no sheets", path)
		}
		s = f.Sheets[0]
	} else {
		var ok bool
		if s, ok = f.Sheet[sheet]; !ok {
			return nil, fmt.Errorf("hgfish: catch spreadsheet %s has no sheet %q", path, sheet)
		}
	}
	rows := make([][]string, len(s.Rows))
	for j, row := range s.Rows {
		rows[j] = make([]string, len(row.Cells))
		for i, c := range row.Cells {
			rows[j][i] = c.Value
		}
	}
	return cc.catchTable(rows)
}
