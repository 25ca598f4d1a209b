package laws

import (
	"strings"
	"time"

	"github.com/tmorrow/highroad/internal/model"
)

const exportDateFormat = "2006-01-02"

// ExportCSV serializes the visible rows, in their current order, to CSV.
// Every field is double-quoted with embedded quotes doubled (RFC 4180);
// null dates render as an empty field. The returned filename embeds the
// export date: cannabis-laws-2025-01-31.csv.
//
// encoding/csv is deliberately not used here: it only quotes fields that
// need it, and the export contract quotes everything.
func ExportCSV(records []model.LawRecord, now time.Time) (filename string, data []byte) {
	var b strings.Builder

	writeRow(&b, "Name", "Type", "Status", "Possession Limits", "Last Updated")
	for _, r := range records {
		limits := ""
		if r.PossessionLimits.Valid {
			limits = r.PossessionLimits.String
		}
		updated := ""
		if r.LastUpdated.Valid {
			updated = r.LastUpdated.Time.Format(exportDateFormat)
		}
		writeRow(&b, r.Name, string(r.Type), string(r.Status), limits, updated)
	}

	filename = "cannabis-laws-" + now.Format(exportDateFormat) + ".csv"
	return filename, []byte(b.String())
}

func writeRow(b *strings.Builder, fields ...string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
