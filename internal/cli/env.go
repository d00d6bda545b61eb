package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/daily-planner/internal/api"
	"github.com/nhle/daily-planner/internal/credential"
	"github.com/nhle/daily-planner/internal/logging"
	"github.com/nhle/daily-planner/internal/mailbox"
	"github.com/nhle/daily-planner/internal/model"
	"github.com/nhle/daily-planner/internal/planner"
	"github.com/nhle/daily-planner/internal/store"
	appsync "github.com/nhle/daily-planner/internal/sync"
	"github.com/nhle/daily-planner/internal/ui/recommendations"
)

// lookupSecret reads the keyring; tests replace it.
var lookupSecret = credential.Lookup

// env is everything a command needs, built from the config file.
type env struct {
	cfg     *model.AppConfig
	log     *zap.SugaredLogger
	gateway *appsync.Gateway
	planner *planner.Store
	db      *store.SQLiteStore
}

// setup loads config, opens the local database and restores the last
// snapshot. console receives log lines in addition to the log file.
func setup(console io.Writer) (*env, error) {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(cfg.Log, console)
	if err != nil {
		return nil, err
	}

	token, _, err := lookupSecret(credential.APITokenKey)
	if err != nil {
		log.Warnw("reading api token from keyring failed", "error", err)
	}
	timeout := time.Duration(cfg.API.TimeoutSec) * time.Second
	client := api.NewClient(cfg.API.BaseURL, token, timeout)

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	db, err := store.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}

	p := planner.New(cfg.User.ID)
	snap, found, err := db.LoadSnapshot(context.Background())
	if err != nil {
		db.Close()
		return nil, err
	}
	switch {
	case found:
		p.Restore(snap)
	case cfg.Display.DemoData:
		p.BootstrapDemo(p.Today())
	}
	applyUserConfig(p, cfg.User)

	recommendations.UseTheme(cfg.Display.Theme)

	return &env{
		cfg:     cfg,
		log:     log,
		gateway: appsync.New(client, log, cfg.Sync.DiscardStale).WithTimeout(timeout),
		planner: p,
		db:      db,
	}, nil
}

// applyUserConfig lets the config file override the stored profile.
func applyUserConfig(p *planner.Store, u model.UserConfig) {
	if u.ID != "" {
		p.SetUserID(u.ID)
	}
	if u.Email != "" {
		p.SetEmail(u.Email)
	}

	var update model.ProfileUpdate
	if u.FullName != "" {
		update.FullName = model.StringPtr(u.FullName)
	}
	if u.Timezone != "" {
		update.Timezone = model.StringPtr(u.Timezone)
	}
	p.UpdateProfile(update)
}

// mailSource opens the configured mailbox. It returns nil when no mailbox
// is configured.
func (e *env) mailSource() (*mailbox.Client, error) {
	if e.cfg.Mail.Host == "" || e.cfg.Mail.Username == "" {
		return nil, nil
	}
	password, _, err := lookupSecret(credential.MailPasswordKey(e.cfg.Mail.Username))
	if err != nil {
		return nil, fmt.Errorf("reading mail password: %w", err)
	}
	return mailbox.NewClient(e.cfg.Mail, password)
}

// save writes the planner state back to the database.
func (e *env) save() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.db.SaveSnapshot(ctx, e.planner.Snapshot()); err != nil {
		return fmt.Errorf("saving planner state: %w", err)
	}
	return nil
}

func (e *env) close() {
	if err := e.db.Close(); err != nil {
		e.log.Warnw("closing database failed", "error", err)
	}
	e.log.Sync()
}

// requireUser fails commands that need a signed-in account.
func (e *env) requireUser() (string, error) {
	id := e.planner.UserID()
	if id == "" {
		return "", fmt.Errorf("no user configured: set user.id in %s or sign in from the settings screen", configPath)
	}
	return id, nil
}
