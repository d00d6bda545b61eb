package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/daily-planner/internal/mailbox"
	appsync "github.com/nhle/daily-planner/internal/sync"
)

const mailTimeout = 60 * time.Second

// mailFetchedMsg carries attachments that have not been imported yet.
type mailFetchedMsg struct {
	attachments []mailbox.Attachment
	err         error
}

// importRecordedMsg reports the outcome of recording an import.
type importRecordedMsg struct {
	filename string
	err      error
}

// importMail fetches PDF attachments from the configured mailbox and
// filters out the ones already uploaded.
func (m *Model) importMail() tea.Cmd {
	if m.mail == nil {
		m.setStatus("No mailbox configured", true)
		return nil
	}
	if !m.online() {
		m.setStatus("Sign in from settings to import mail", true)
		return nil
	}

	m.setStatus("Checking mail...", false)
	src := m.mail
	persist := m.persist
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mailTimeout)
		defer cancel()

		atts, err := src.FetchPDFAttachments(ctx)
		if err != nil {
			return mailFetchedMsg{err: err}
		}
		if persist != nil {
			atts, err = mailbox.Unimported(ctx, persist, atts)
		}
		return mailFetchedMsg{attachments: atts, err: err}
	}
}

// importRef identifies a mail attachment across its upload round trip.
func importRef(att mailbox.Attachment) string {
	return att.MessageID + "/" + att.Filename
}

// uploadAttachments sends each new attachment through the upload
// endpoint. Attachments still in flight from an earlier import are
// skipped.
func (m *Model) uploadAttachments(msg mailFetchedMsg) tea.Cmd {
	if msg.err != nil {
		m.log.Warnw("importing mail failed", "error", msg.err)
		m.setStatus(fmt.Sprintf("Mail import failed: %v", msg.err), true)
		return nil
	}

	var cmds []tea.Cmd
	for _, att := range msg.attachments {
		ref := importRef(att)
		if _, busy := m.pendingImports[ref]; busy {
			continue
		}
		m.pendingImports[ref] = att
		cmds = append(cmds, tagUpload(m.gateway.UploadPDF(m.planner.UserID(), m.date, att.Filename, att.Content), ref))
	}

	if len(cmds) == 0 {
		m.setStatus("No new PDF attachments", false)
		return nil
	}
	m.setStatus(fmt.Sprintf("Uploading %d attachments...", len(cmds)), false)
	return tea.Batch(cmds...)
}

// tagUpload stamps ref on the upload result so it can be told apart from
// a manual upload of a file with the same name.
func tagUpload(cmd tea.Cmd, ref string) tea.Cmd {
	return func() tea.Msg {
		msg := cmd()
		if up, ok := msg.(appsync.UploadedMsg); ok {
			up.Ref = ref
			return up
		}
		return msg
	}
}

// recordImport marks an uploaded attachment so later imports skip it.
func (m *Model) recordImport(att mailbox.Attachment) tea.Cmd {
	if m.persist == nil {
		return nil
	}
	persist := m.persist
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		return importRecordedMsg{
			filename: att.Filename,
			err:      persist.MarkImported(ctx, att.MessageID, att.Filename),
		}
	}
}
