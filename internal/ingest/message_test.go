package ingest

import "testing"

func TestSortAttachmentsCheapestFirst(t *testing.T) {
	atts := []Attachment{
		{Filename: "scan.pdf", MimeType: "application/pdf"},
		{Filename: "photo.jpg", MimeType: "image/jpeg"},
		{Filename: "order.xlsx", MimeType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{Filename: "order.csv", MimeType: "text/csv"},
	}

	sorted := sortAttachments(atts)

	want := []string{"order.csv", "order.xlsx", "scan.pdf", "photo.jpg"}
	for i, name := range want {
		if sorted[i].Filename != name {
			t.Errorf("position %d: got %s, want %s", i, sorted[i].Filename, name)
		}
	}

	// Original slice untouched
	if atts[0].Filename != "scan.pdf" {
		t.Error("sortAttachments must not mutate its input")
	}
}

func TestSortAttachmentsStableWithinFormat(t *testing.T) {
	atts := []Attachment{
		{Filename: "b.csv", MimeType: "text/csv"},
		{Filename: "a.csv", MimeType: "text/csv"},
	}

	sorted := sortAttachments(atts)
	if sorted[0].Filename != "b.csv" || sorted[1].Filename != "a.csv" {
		t.Errorf("relative order within a format class changed: %v", sorted)
	}
}

func TestFormatPriorityByExtensionAndMime(t *testing.T) {
	cases := []struct {
		att  Attachment
		want int
	}{
		{Attachment{Filename: "x.csv"}, formatCSV},
		{Attachment{Filename: "data", MimeType: "application/csv"}, formatCSV},
		{Attachment{Filename: "x.tsv"}, formatCSV},
		{Attachment{Filename: "x.xls"}, formatSpreadsheet},
		{Attachment{Filename: "data", MimeType: "application/vnd.ms-excel"}, formatSpreadsheet},
		{Attachment{Filename: "x.ods"}, formatSpreadsheet},
		{Attachment{Filename: "x.pdf", MimeType: "application/pdf"}, formatDocument},
		{Attachment{Filename: "x.png", MimeType: "image/png"}, formatDocument},
	}

	for _, c := range cases {
		if got := formatPriority(c.att); got != c.want {
			t.Errorf("formatPriority(%s/%s) = %d, want %d", c.att.Filename, c.att.MimeType, got, c.want)
		}
	}
}
