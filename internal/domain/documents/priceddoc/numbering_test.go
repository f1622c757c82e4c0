package priceddoc

import (
	"testing"
	"time"
)

func TestFormatNumber(t *testing.T) {
	march := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		kind Kind
		at   time.Time
		seq  int64
		want string
	}{
		{"first invoice", KindInvoice, march, 1, "INV-202603-0001"},
		{"first sales order", KindSalesOrder, march, 1, "SO-202603-0001"},
		{"padded sequence", KindInvoice, march, 42, "INV-202603-0042"},
		{"single digit month", KindInvoice, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), 7, "INV-202701-0007"},
		{"sequence overflows padding", KindSalesOrder, march, 10000, "SO-202603-10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatNumber(tt.kind, tt.at, tt.seq)
			if got != tt.want {
				t.Errorf("FormatNumber = %q, want %q", got, tt.want)
			}
			if tt.seq < 10000 && !NumberPattern.MatchString(got) {
				t.Errorf("number %q does not match pattern %s", got, NumberPattern)
			}
		})
	}
}

func TestSequenceCountsAllDocumentsOfKind(t *testing.T) {
	// The sequence is the all-time count of the kind plus one, so it
	// does not reset when the month rolls over.
	feb := time.Date(2026, time.February, 27, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	if got, want := FormatNumber(KindInvoice, feb, 5), "INV-202602-0005"; got != want {
		t.Errorf("FormatNumber = %q, want %q", got, want)
	}
	// Sixth invoice overall, first of March: sequence continues at 6.
	if got, want := FormatNumber(KindInvoice, mar, 6), "INV-202603-0006"; got != want {
		t.Errorf("FormatNumber = %q, want %q", got, want)
	}
}
