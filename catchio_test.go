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
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tealeg/xlsx"
)

const testCatchCSV = `CellID,Hg_category,Reg,Catch
0,albacore,36.0,10
2,Albacore tuna,36,20
5,skipjack,37,
`

func TestReadCatchCSV(t *testing.T) {
	recs, err := ReadCatchCSV(strings.NewReader(testCatchCSV), DefaultCatchColumns)
	if err != nil {
		t.Fatal(err)
	}
	want := []CatchRecord{
		{CellID: 0, Category: "albacore", Partition: "36", Catch: 10},
		{CellID: 2, Category: "Albacore tuna", Partition: "36", Catch: 20},
		{CellID: 5, Category: "skipjack", Partition: "37", Catch: 0},
	}
	if len(recs) != len(want) {
		t.Fatalf("want %d records but have %d", len(want), len(recs))
	}
	for i, w := range want {
		if recs[i] != w {
			t.Errorf("record %d: want %+v but have %+v", i, w, recs[i])
		}
	}

	g, err := GridSpeciesCatch("Albacore tuna", recs, "36", &CatchGridOptions{CellX: 4, CellY: 2})
	if err != nil {
		t.Fatal(err)
	}
	if g.Sum() != 30 {
		t.Errorf("gridded catch: want 30 but have %g", g.Sum())
	}

	t.Run("columns", func(t *testing.T) {
		cc := DefaultCatchColumns
		cc.Partition = "EEZ"
		if _, err := ReadCatchCSV(strings.NewReader(testCatchCSV), cc); err == nil {
			t.Error("expected an error for a missing column")
		}
	})
	t.Run("bad number", func(t *testing.T) {
		f := "CellID,Hg_category,Reg,Catch\nx,High,1,1\n"
		if _, err := ReadCatchCSV(strings.NewReader(f), DefaultCatchColumns); err == nil {
			t.Error("expected an error for a bad cell id")
		}
	})
}

func TestReadCatchXLSX(t *testing.T) {
	dir, err := ioutil.TempDir("", "hgfish")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "catch.xlsx")

	f := xlsx.NewFile()
	s, err := f.AddSheet("catch")
	if err != nil {
		t.Fatal(err)
	}
	for _, row := range [][]string{
		{"Catch", "CellID", "Hg_category", "Reg"},
		{"10", "0", "High", "1"},
		{"2.5", "3", "Low", "1"},
	} {
		r := s.AddRow()
		for _, v := range row {
			r.AddCell().SetString(v)
		}
	}
	if err := f.Save(path); err != nil {
		t.Fatal(err)
	}

	recs, err := ReadCatchXLSX(path, "", DefaultCatchColumns)
	if err != nil {
		t.Fatal(err)
	}
	want := []CatchRecord{
		{CellID: 0, Category: "High", Partition: "1", Catch: 10},
		{CellID: 3, Category: "Low", Partition: "1", Catch: 2.5},
	}
	if len(recs) != len(want) {
		t.Fatalf("want %d records but have %d", len(want), len(recs))
	}
	for i, w := range want {
		if recs[i] != w {
			t.Errorf("record %d: want %+v but have %+v", i, w, recs[i])
		}
	}
	if _, err := ReadCatchXLSX(path, "other", DefaultCatchColumns); err == nil {
		t.Error("expected an error for a missing sheet")
	}
}
