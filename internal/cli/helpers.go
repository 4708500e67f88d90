package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/existflow/angple/internal/api"
	"github.com/existflow/angple/internal/kv"
	"github.com/existflow/angple/internal/theme"
)

var (
	successColor = color.New(color.FgHiGreen)
	warnColor    = color.New(color.FgHiYellow)
	errorColor   = color.New(color.FgHiRed)
	labelColor   = color.New(color.Bold, color.FgHiCyan)
	dimColor     = color.New(color.Faint)
)

// commandContext is cancelled on Ctrl+C
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func openState(ctx context.Context) (kv.Store, error) {
	store, err := kv.Open(ctx, kv.Options{
		Backend:  cfg.StateBackend,
		Path:     cfg.StatePath,
		RedisURL: cfg.RedisURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open state store: %w", err)
	}
	return store, nil
}

// session bundles what most commands need
type session struct {
	store  kv.Store
	client *api.Client
	themes *theme.Store
}

func openSession(ctx context.Context) (*session, error) {
	store, err := openState(ctx)
	if err != nil {
		return nil, err
	}

	client, err := api.New(ctx, store,
		api.WithBaseURL(cfg.APIBaseURL),
		api.WithDefaultMock(cfg.UseMock),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	themes := theme.NewStore(store, nil)
	if err := themes.Init(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	return &session{store: store, client: client, themes: themes}, nil
}

func (s *session) Close() error {
	return s.store.Close()
}

func newTable(header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func modeLabel(mock bool) string {
	if mock {
		return warnColor.Sprint("mock")
	}
	return successColor.Sprint("live")
}
