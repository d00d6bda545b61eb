package composer

import "testing"

func TestStartSeedsSelectedDate(t *testing.T) {
	m := New(80, 24)
	m.Start("2024-01-01")

	m.fb.title = "  Draft outreach email  "
	in := m.Input()
	if in.Title != "Draft outreach email" {
		t.Fatalf("expected trimmed title, got %q", in.Title)
	}
	if in.ScheduledDate != "2024-01-01" {
		t.Fatalf("expected scheduled date 2024-01-01, got %q", in.ScheduledDate)
	}
}

func TestStartClearsPreviousInput(t *testing.T) {
	m := New(80, 24)
	m.Start("2024-01-01")
	m.fb.title = "old"
	m.fb.notes = "old notes"

	m.Start("2024-01-02")
	in := m.Input()
	if in.Title != "" || in.Notes != "" || in.ScheduledDate != "2024-01-02" {
		t.Fatalf("expected a fresh form, got %+v", in)
	}
}

func TestValidators(t *testing.T) {
	if err := validateRequired("Title")("   "); err == nil {
		t.Fatal("expected blank title to be rejected")
	}
	if err := validateDate("2024-02-30"); err == nil {
		t.Fatal("expected invalid date to be rejected")
	}
	if err := validateDate("2024-02-29"); err != nil {
		t.Fatalf("expected leap day to be accepted, got %v", err)
	}
}
