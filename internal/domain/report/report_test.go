package report

import (
	"strings"
	"testing"
	"time"

	"absensi/internal/domain/attendance"
)

func record(day string, hour int, name, unit, status, notes string) attendance.Record {
	ts, _ := time.ParseInLocation("2006-01-02", day, time.Local)
	ts = ts.Add(time.Duration(hour) * time.Hour)
	return attendance.Record{
		ID:              "rec-" + day + name,
		ParticipantID:   "part-" + name,
		ParticipantName: name,
		ParticipantUnit: unit,
		Timestamp:       ts,
		DateString:      day,
		Status:          status,
		Notes:           notes,
	}
}

func TestToCSV(t *testing.T) {
	records := []attendance.Record{
		record("2026-03-02", 7, "Ahmad Fauzan", "SMA Muhammadiyah Pagar Alam", "hadir", ""),
		record("2026-03-03", 8, "Siti Rohimah", "SD Muhammadiyah 1 Pagar Alam", "izin", "acara keluarga"),
		record("2026-03-04", 9, "Budi Santoso", "PDM Pagar Alam", "", ""),
	}

	csv := ToCSV(records)
	lines := strings.Split(csv, "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if lines[0] != "Tanggal,Jam,Nama Peserta,Unit Asal,Status,Keterangan" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != `2026-03-02,07.00.00,"Ahmad Fauzan","SMA Muhammadiyah Pagar Alam",HADIR,"-"` {
		t.Errorf("unexpected row: %q", lines[1])
	}
	if lines[2] != `2026-03-03,08.00.00,"Siti Rohimah","SD Muhammadiyah 1 Pagar Alam",IZIN,"acara keluarga"` {
		t.Errorf("unexpected row: %q", lines[2])
	}
	// Legacy record with no status exports as HADIR
	if lines[3] != `2026-03-04,09.00.00,"Budi Santoso","PDM Pagar Alam",HADIR,"-"` {
		t.Errorf("unexpected row: %q", lines[3])
	}
}

func TestToCSVQuotesEmbeddedQuotes(t *testing.T) {
	records := []attendance.Record{
		record("2026-03-02", 7, `Andi "Ace" Wijaya`, "PDM Pagar Alam", "hadir", ""),
	}
	csv := ToCSV(records)
	if !strings.Contains(csv, `"Andi ""Ace"" Wijaya"`) {
		t.Errorf("embedded quotes not doubled: %q", csv)
	}
}

func TestToCSVEmptyInput(t *testing.T) {
	csv := ToCSV(nil)
	if csv != CSVHeader {
		t.Errorf("empty export should be header only, got %q", csv)
	}
}

func TestSortByTimestampDesc(t *testing.T) {
	records := []attendance.Record{
		record("2026-03-02", 7, "A", "U", "hadir", ""),
		record("2026-03-04", 7, "B", "U", "hadir", ""),
		record("2026-03-03", 7, "C", "U", "hadir", ""),
	}
	sorted := SortByTimestampDesc(records)
	if sorted[0].ParticipantName != "B" || sorted[1].ParticipantName != "C" || sorted[2].ParticipantName != "A" {
		t.Errorf("wrong order: %s %s %s",
			sorted[0].ParticipantName, sorted[1].ParticipantName, sorted[2].ParticipantName)
	}
	// Input slice must not be mutated
	if records[0].ParticipantName != "A" {
		t.Error("input slice was mutated")
	}
}

func TestFilterByMonth(t *testing.T) {
	records := []attendance.Record{
		record("2026-03-02", 7, "A", "U", "hadir", ""),
		record("2026-04-01", 7, "B", "U", "hadir", ""),
		record("2026-03-30", 7, "C", "U", "hadir", ""),
	}
	march := FilterByMonth(records, 2026, 2)
	if len(march) != 2 {
		t.Fatalf("got %d records, want 2", len(march))
	}
	for _, r := range march {
		if !strings.HasPrefix(r.DateString, "2026-03") {
			t.Errorf("unexpected record %q", r.DateString)
		}
	}
}

func TestFilterByUnit(t *testing.T) {
	records := []attendance.Record{
		record("2026-03-02", 7, "A", "SMA Muhammadiyah Pagar Alam", "hadir", ""),
		record("2026-03-02", 7, "B", "PDM Pagar Alam", "hadir", ""),
	}
	got := FilterByUnit(records, "PDM Pagar Alam")
	if len(got) != 1 || got[0].ParticipantName != "B" {
		t.Errorf("unexpected result: %+v", got)
	}
	if all := FilterByUnit(records, ""); len(all) != 2 {
		t.Errorf("empty unit should keep all records, got %d", len(all))
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(2026, nil); got != "rekap_absensi_semua_2026.csv" {
		t.Errorf("got %q", got)
	}
	march := 2
	if got := Filename(2026, &march); got != "rekap_absensi_Maret_2026.csv" {
		t.Errorf("got %q", got)
	}
	december := 11
	if got := Filename(2026, &december); got != "rekap_absensi_Desember_2026.csv" {
		t.Errorf("got %q", got)
	}
}
