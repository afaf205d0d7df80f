package clean

import (
	"bytes"
	"strings"
	"testing"

	"github.com/resumatch/resumatch/internal/ingest"
)

func TestDescription(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Build data pipelines", "Build data pipelines"},
		{"tags", "<b>Build</b> data <br>pipelines", "Build data pipelines"},
		// &nbsp; decodes to U+00A0, which the whitespace collapse folds
		// into a regular space like any other run of whitespace.
		{"entities", "R&amp;D role with&nbsp;benefits", "R&D role with benefits"},
		{"multiline", "line one\n\n  line two\t line three", "line one line two line three"},
		{"script dropped", "<p>Apply now</p><script>alert(1)</script>", "Apply now"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Description(tt.in); got != tt.want {
				t.Errorf("Description(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct{ in, want string }{
		{"senior data engineer", "Senior Data Engineer"},
		{"SENIOR DATA ENGINEER", "Senior Data Engineer"},
		{"  data   scientist ", "Data Scientist"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TitleCase(tt.in); got != tt.want {
			t.Errorf("TitleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPostings(t *testing.T) {
	in := []ingest.Posting{
		{Title: " data engineer ", Company: " Acme ", Location: " NY ", Description: "<p>ETL &amp; more</p>"},
	}
	got := Postings(in)
	want := ingest.Posting{Title: "Data Engineer", Company: "Acme", Location: "NY", Description: "ETL & more"}
	if got[0] != want {
		t.Errorf("Postings = %+v, want %+v", got[0], want)
	}
}

func TestDeduplicate(t *testing.T) {
	a := ingest.Posting{Title: "Data Engineer", Company: "Acme", Location: "NY", Description: "ETL"}
	aCosmetic := ingest.Posting{Title: "data engineer", Company: " acme ", Location: "ny", Description: "etl"}
	b := ingest.Posting{Title: "Data Engineer", Company: "Globex", Location: "NY", Description: "ETL"}

	got := Deduplicate([]ingest.Posting{a, aCosmetic, b, a})
	if len(got) != 2 {
		t.Fatalf("expected 2 unique postings, got %d", len(got))
	}
	if got[0] != a || got[1] != b {
		t.Errorf("expected first occurrences kept in order, got %+v", got)
	}
}

func TestHash_Stable(t *testing.T) {
	p := ingest.Posting{Title: "X", Company: "Y", Location: "Z", Description: "D"}
	if Hash(p) != Hash(p) {
		t.Error("hash must be deterministic")
	}
	q := p
	q.Description = "different"
	if Hash(p) == Hash(q) {
		t.Error("different descriptions must hash differently")
	}
}

func TestCSVRoundTrip(t *testing.T) {
	postings := []ingest.Posting{
		{Title: "Data Engineer", Company: "Acme", Location: "New York, NY",
			Description: "Multi, line \"quoted\" description", URL: "https://example.com/1", Source: "adzuna"},
		{Title: "Backend Engineer", Company: "Globex", Location: "Remote",
			Description: "Write services", URL: "https://example.com/2", Source: "jooble"},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, postings); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.HasPrefix(buf.String(), `"title","company","location","description","url","source"`+"\n") {
		t.Errorf("missing quoted header: %q", buf.String())
	}
	// Quote-all output: unremarkable fields are quoted too.
	if !strings.Contains(buf.String(), `"Write services"`) {
		t.Errorf("plain field not quoted: %q", buf.String())
	}

	got, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(got) != len(postings) {
		t.Fatalf("expected %d postings, got %d", len(postings), len(got))
	}
	for i := range postings {
		if got[i] != postings[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], postings[i])
		}
	}
}

func TestReadCSV_SkipsBadRows(t *testing.T) {
	in := "title,company,location,description,url,source\nonly,two\nA,B,C,D,E,F\n"
	got, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(got) != 1 || got[0].Title != "A" {
		t.Errorf("expected the one well-formed row, got %+v", got)
	}
}
