package sink

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/pitchside/matchcenter-cli/internal/model"
)

// WriteXLSX writes the run as a single workbook, one sheet per table in the
// canonical table order. Cells carry the same string rendering the CSV
// writer uses. Empty tables still get their sheet, left blank, so the
// workbook shape stays stable across matches.
func WriteXLSX(ts *model.TableSet, path string) error {
	f := xlsx.NewFile()
	for _, name := range model.TableNames {
		sheet, err := f.AddSheet(name)
		if err != nil {
			return eris.Wrapf(err, "sink: add sheet %s", name)
		}
		rows := ts.Rows(name)
		if len(rows) == 0 {
			continue
		}
		header := sheet.AddRow()
		for _, col := range headersOf(rows[0]) {
			header.AddCell().SetString(col)
		}
		for _, row := range rows {
			r := sheet.AddRow()
			for _, cell := range cellsOf(row) {
				r.AddCell().SetString(cell)
			}
		}
	}
	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "sink: save workbook %s", path)
	}
	zap.L().Info("sink: workbook written", zap.Int("match_id", ts.MatchID), zap.String("path", path))
	return nil
}
