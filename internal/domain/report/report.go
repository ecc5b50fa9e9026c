// Package report derives filtered, sorted views of attendance history and
// serializes them to CSV for download.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"absensi/internal/domain/attendance"
	"absensi/internal/domain/period"
)

// CSVHeader is the fixed export header row.
const CSVHeader = "Tanggal,Jam,Nama Peserta,Unit Asal,Status,Keterangan"

// FilterByMonth keeps records whose calendar day falls in the given month.
// PRE: monthIndex is 0-11
// POST: Returns a new slice; input order is preserved
func FilterByMonth(records []attendance.Record, year, monthIndex int) []attendance.Record {
	prefix := attendance.MonthPrefix(year, monthIndex)
	out := make([]attendance.Record, 0, len(records))
	for _, r := range records {
		if strings.HasPrefix(r.DateString, prefix) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByUnit keeps records whose snapshot unit matches.
// POST: Returns a new slice; input order is preserved
func FilterByUnit(records []attendance.Record, unit string) []attendance.Record {
	if unit == "" {
		return records
	}
	out := make([]attendance.Record, 0, len(records))
	for _, r := range records {
		if r.ParticipantUnit == unit {
			out = append(out, r)
		}
	}
	return out
}

// SortByTimestampDesc sorts records most-recent-first. The sort is stable:
// ties keep their original order.
// POST: Returns a new sorted slice; input is not mutated
func SortByTimestampDesc(records []attendance.Record) []attendance.Record {
	out := make([]attendance.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// ToCSV serializes records to the export format: one row per record with the
// fixed header. Name, unit and notes are always quoted to tolerate embedded
// commas; status is upper-cased with legacy empty statuses exported as HADIR;
// empty notes export as "-". Output is deterministic given the input order.
func ToCSV(records []attendance.Record) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, CSVHeader)
	for _, r := range records {
		notes := r.Notes
		if notes == "" {
			notes = "-"
		}
		lines = append(lines, strings.Join([]string{
			r.DateString,
			r.Timestamp.In(time.Local).Format("15.04.05"),
			quote(r.ParticipantName),
			quote(r.ParticipantUnit),
			strings.ToUpper(r.EffectiveStatus()),
			quote(notes),
		}, ","))
	}
	return strings.Join(lines, "\n")
}

// Filename returns the download filename for an export. A nil monthIndex
// means the unfiltered all-months export.
// PRE: monthIndex, when set, is 0-11
func Filename(year int, monthIndex *int) string {
	if monthIndex == nil {
		return fmt.Sprintf("rekap_absensi_semua_%d.csv", year)
	}
	return fmt.Sprintf("rekap_absensi_%s_%d.csv", period.MonthNames[*monthIndex], year)
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
