package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/daily-planner/internal/app"
	"github.com/nhle/daily-planner/internal/assistant"
	"github.com/nhle/daily-planner/internal/credential"
	appsync "github.com/nhle/daily-planner/internal/sync"
)

// runTUI opens the interactive planner and saves its state on exit.
func runTUI(cmd *cobra.Command, args []string) error {
	e, err := setup(nil)
	if err != nil {
		return err
	}
	defer e.close()

	deps := app.Deps{
		Planner:    e.planner,
		Gateway:    e.gateway,
		Assistant:  assistant.New(time.Duration(e.cfg.Assistant.ThinkDelayMS) * time.Millisecond),
		Persist:    e.db,
		MailUser:   e.cfg.Mail.Username,
		Log:        e.log,
		SaveSecret: credential.Set,
	}
	if e.cfg.Sync.RefreshIntervalSec > 0 {
		deps.Refresher = appsync.NewRefresher(e.gateway, time.Duration(e.cfg.Sync.RefreshIntervalSec)*time.Second)
	}

	mail, err := e.mailSource()
	if err != nil {
		e.log.Warnw("mailbox unavailable", "error", err)
	} else if mail != nil {
		deps.Mail = mail
	}

	e.log.Infow("starting planner", "user", e.planner.UserID(), "date", e.planner.Today())

	p := tea.NewProgram(app.New(deps), tea.WithAltScreen())
	final, err := p.Run()
	if deps.Refresher != nil {
		deps.Refresher.Stop()
	}
	if err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	if m, ok := final.(app.Model); ok {
		e.planner = m.Planner()
	}
	return e.save()
}
