// Package mailbox pulls PDF attachments out of an IMAP inbox so they can be
// uploaded as task sources.
package mailbox

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
	"github.com/emersion/go-message/mail"

	"github.com/nhle/daily-planner/internal/model"
)

// ErrNotConfigured is returned when no IMAP host or username is set.
var ErrNotConfigured = errors.New("mailbox not configured")

// Attachment is a PDF found in a message.
type Attachment struct {
	MessageID string
	Subject   string
	Filename  string
	Content   []byte
}

// Client reads PDF attachments from an IMAP INBOX.
type Client struct {
	host      string
	port      int
	username  string
	password  string
	tls       bool
	sinceDays int
}

// NewClient creates a mailbox client from configuration and the password
// kept in the keyring.
func NewClient(cfg model.MailConfig, password string) (*Client, error) {
	if cfg.Host == "" || cfg.Username == "" {
		return nil, ErrNotConfigured
	}
	return &Client{
		host:      cfg.Host,
		port:      cfg.Port,
		username:  cfg.Username,
		password:  password,
		tls:       cfg.TLS,
		sinceDays: cfg.SinceDays,
	}, nil
}

func (c *Client) connect() (*imapclient.Client, error) {
	addr := c.host + ":" + strconv.Itoa(c.port)

	var client *imapclient.Client
	var err error

	if c.tls {
		client, err = imapclient.DialTLS(addr, nil)
	} else {
		client, err = imapclient.DialStartTLS(addr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to IMAP %s: %w", addr, err)
	}

	if err := client.Login(c.username, c.password).Wait(); err != nil {
		_ = client.Logout().Wait()
		return nil, fmt.Errorf("authenticating %s: %w", c.username, err)
	}

	return client, nil
}

// FetchPDFAttachments returns every PDF attached to INBOX messages from
// the configured number of recent days.
func (c *Client) FetchPDFAttachments(ctx context.Context) ([]Attachment, error) {
	client, err := c.connect()
	if err != nil {
		return nil, err
	}
	defer func() { _ = client.Logout().Wait() }()

	if _, err := client.Select("INBOX", nil).Wait(); err != nil {
		return nil, fmt.Errorf("selecting INBOX: %w", err)
	}

	days := c.sinceDays
	if days <= 0 {
		days = 7
	}
	criteria := &imap.SearchCriteria{
		Since: time.Now().AddDate(0, 0, -days),
	}

	searchData, err := client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("searching messages: %w", err)
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}

	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchCmd := client.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		Envelope:    true,
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	})
	defer fetchCmd.Close()

	var out []Attachment
	for {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		msg := fetchCmd.Next()
		if msg == nil {
			break
		}

		buf, err := msg.Collect()
		if err != nil {
			continue
		}

		raw := buf.FindBodySection(bodySection)
		if raw == nil {
			continue
		}

		attachments, err := pdfAttachments(raw)
		if err != nil {
			continue
		}

		messageID := fmt.Sprintf("uid-%d", buf.UID)
		var subject string
		if buf.Envelope != nil {
			subject = buf.Envelope.Subject
			if buf.Envelope.MessageID != "" {
				messageID = buf.Envelope.MessageID
			}
		}
		for _, a := range attachments {
			a.MessageID = messageID
			a.Subject = subject
			out = append(out, a)
		}
	}

	if err := fetchCmd.Close(); err != nil {
		return out, fmt.Errorf("fetching messages: %w", err)
	}

	return out, nil
}

// pdfAttachments parses a raw RFC 5322 message and returns its PDF
// attachments.
func pdfAttachments(raw []byte) ([]Attachment, error) {
	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing message: %w", err)
	}
	defer mr.Close()

	var out []Attachment
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, fmt.Errorf("reading part: %w", err)
		}

		h, ok := part.Header.(*mail.AttachmentHeader)
		if !ok {
			continue
		}

		filename, _ := h.Filename()
		contentType, _, _ := h.ContentType()
		if !isPDF(filename, contentType) {
			continue
		}

		body, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}
		if filename == "" {
			filename = "attachment.pdf"
		}

		out = append(out, Attachment{Filename: filename, Content: body})
	}

	return out, nil
}

func isPDF(filename, contentType string) bool {
	return strings.EqualFold(contentType, "application/pdf") ||
		strings.HasSuffix(strings.ToLower(filename), ".pdf")
}
