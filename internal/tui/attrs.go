package tui

import (
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"goscatter/internal/dataset"
	"goscatter/internal/scatter"
)

const maxAttrColW = 24

// refreshAttrsFromCurrent fills the table with the brushed records, or with
// every record when nothing is selected.
func (m *Model) refreshAttrsFromCurrent() {
	idx, recs := m.attrRecords()
	if len(recs) == 0 || len(m.set.Fields) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(m.set.Fields)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 5})
	for _, f := range m.set.Fields {
		tcols = append(tcols, table.Column{Title: f, Width: min(len(f)+2, maxAttrColW)})
	}
	rows := dataset.Rows(recs, m.set.Fields)
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		trows = append(trows, append(table.Row{strconv.Itoa(idx[i])}, r...))
	}
	// rows must never outnumber columns while SetColumns redraws
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// attrRecords returns the records for the table with their dataset indices.
func (m Model) attrRecords() ([]int, []scatter.Record) {
	if m.chart != nil {
		if sel := m.chart.SelectedIndices(); len(sel) > 0 {
			recs := m.chart.Records()
			out := make([]scatter.Record, len(sel))
			for i, j := range sel {
				out[i] = recs[j]
			}
			return sel, out
		}
	}
	idx := make([]int, len(m.set.Records))
	for i := range idx {
		idx[i] = i
	}
	return idx, m.set.Records
}
