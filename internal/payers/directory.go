package payers

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/counterfoil/teller/pkg/lifecycle"
)

const debounceDelay = 100 * time.Millisecond

// System provides concurrent-read-safe payer lookups and lifecycle
// coordination for the directory file watcher.
type System interface {
	// Lookup returns the payer registered under the given account number.
	Lookup(account string) (*Payer, bool)
	// Accounts returns the registered account numbers.
	Accounts() []string
	// Start registers the file watcher with the lifecycle coordinator
	// when hot reload is enabled.
	Start(lc *lifecycle.Coordinator) error
}

type directoryFile struct {
	Payers map[string]Payer `toml:"payers"`
}

type directory struct {
	path   string
	watch  bool
	logger *slog.Logger

	mu     sync.RWMutex
	payers map[string]Payer
}

// New loads the payer directory from the configured TOML file. The initial
// load must succeed; later reloads fall back to the last good snapshot.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	d := &directory{
		path:   cfg.Path,
		watch:  cfg.Watch,
		logger: logger.With("system", "payers"),
	}

	payers, err := loadDirectoryFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("load payer directory: %w", err)
	}

	d.payers = payers
	d.logger.Info("payer directory loaded", "path", cfg.Path, "payers", len(payers))

	return d, nil
}

func loadDirectoryFile(path string) (map[string]Payer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file directoryFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	for account, payer := range file.Payers {
		if payer.Name == "" {
			return nil, fmt.Errorf("payer %s: name required", account)
		}
		if payer.SignaturePath == "" {
			return nil, fmt.Errorf("payer %s: signature_path required", account)
		}
	}

	if file.Payers == nil {
		file.Payers = map[string]Payer{}
	}

	return file.Payers, nil
}

func (d *directory) Lookup(account string) (*Payer, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	payer, ok := d.payers[account]
	if !ok {
		return nil, false
	}
	return &payer, true
}

func (d *directory) Accounts() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	accounts := make([]string, 0, len(d.payers))
	for account := range d.payers {
		accounts = append(accounts, account)
	}
	return accounts
}

func (d *directory) Start(lc *lifecycle.Coordinator) error {
	if !d.watch {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// watch the containing directory; editors replace files on save
	if err := watcher.Add(filepath.Dir(d.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer watcher.Close()
		d.watchLoop(lc, watcher)
	}()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		<-done
		d.logger.Info("payer directory watcher stopped")
	})

	d.logger.Info("payer directory watcher started", "path", d.path)
	return nil
}

func (d *directory) watchLoop(lc *lifecycle.Coordinator, watcher *fsnotify.Watcher) {
	var debounce *time.Timer

	for {
		select {
		case <-lc.Context().Done():
			if debounce != nil {
				debounce.Stop()
			}
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(d.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDelay, d.reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			d.logger.Error("payer directory watch error", "error", err)
		}
	}
}

// reload swaps in the updated directory. Parse or validation failures
// keep the last good snapshot.
func (d *directory) reload() {
	payers, err := loadDirectoryFile(d.path)
	if err != nil {
		d.logger.Error("payer directory reload failed", "error", err)
		return
	}

	d.mu.Lock()
	d.payers = payers
	d.mu.Unlock()

	d.logger.Info("payer directory reloaded", "payers", len(payers))
}
