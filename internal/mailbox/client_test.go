package mailbox

import (
	"errors"
	"strings"
	"testing"

	"github.com/nhle/daily-planner/internal/model"
)

const sampleMessage = "From: Recruiter <r@example.com>\r\n" +
	"To: ada@example.com\r\n" +
	"Subject: Interview prep\r\n" +
	"Message-Id: <abc@example.com>\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/mixed; boundary=XYZ\r\n" +
	"\r\n" +
	"--XYZ\r\n" +
	"Content-Type: text/plain\r\n" +
	"\r\n" +
	"See attached.\r\n" +
	"--XYZ\r\n" +
	"Content-Type: application/pdf\r\n" +
	"Content-Disposition: attachment; filename=\"plan.pdf\"\r\n" +
	"\r\n" +
	"%PDF-1.4 fake\r\n" +
	"--XYZ\r\n" +
	"Content-Type: image/png\r\n" +
	"Content-Disposition: attachment; filename=\"logo.png\"\r\n" +
	"\r\n" +
	"png\r\n" +
	"--XYZ--\r\n"

func TestPDFAttachmentsSkipsOtherParts(t *testing.T) {
	got, err := pdfAttachments([]byte(sampleMessage))
	if err != nil {
		t.Fatalf("pdfAttachments: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 pdf attachment, got %d", len(got))
	}
	if got[0].Filename != "plan.pdf" {
		t.Fatalf("expected plan.pdf, got %q", got[0].Filename)
	}
	if !strings.HasPrefix(string(got[0].Content), "%PDF-1.4") {
		t.Fatalf("unexpected content %q", got[0].Content)
	}
}

func TestIsPDF(t *testing.T) {
	tests := []struct {
		filename    string
		contentType string
		want        bool
	}{
		{"plan.pdf", "application/octet-stream", true},
		{"PLAN.PDF", "", true},
		{"", "application/pdf", true},
		{"notes.txt", "text/plain", false},
	}
	for _, tt := range tests {
		if got := isPDF(tt.filename, tt.contentType); got != tt.want {
			t.Errorf("isPDF(%q, %q) = %v, want %v", tt.filename, tt.contentType, got, tt.want)
		}
	}
}

func TestNewClientRequiresHost(t *testing.T) {
	_, err := NewClient(model.MailConfig{Username: "ada"}, "pw")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
