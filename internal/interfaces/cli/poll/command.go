// Package poll runs the dashboard poller against a status endpoint.
package poll

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/orris-inc/resinfo/internal/application/dashboard"
	"github.com/orris-inc/resinfo/internal/infrastructure/config"
	"github.com/orris-inc/resinfo/internal/infrastructure/scheduler"
	"github.com/orris-inc/resinfo/internal/shared/logger"
	sdkstatus "github.com/orris-inc/resinfo/sdk/status"
)

var (
	configFile string
	baseURL    string
	once       bool
	printJSON  bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Poll the status endpoint and maintain dashboard widgets",
		Long: `Poll the status endpoint on the dashboard cadences. Each group of
selectors is requested on its own interval and the widgets are printed
whenever a group changes them.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to config file")
	cmd.Flags().StringVar(&baseURL, "url", "", "Status endpoint (overrides poller.base_url)")
	cmd.Flags().BoolVar(&once, "once", false, "Poll every group once, print the widgets and exit")
	cmd.Flags().BoolVar(&printJSON, "json", true, "Print widget updates as JSON lines")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile, "")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, cfg.Server.Mode == "debug"); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger().Named("poller")

	endpoint := cfg.Poller.BaseURL
	if baseURL != "" {
		endpoint = baseURL
	}
	client := sdkstatus.NewClient(endpoint, sdkstatus.WithTimeout(cfg.Poller.Timeout))

	groups := dashboard.Groups(dashboard.Settings{
		Interface: cfg.Poller.Interface,
		PingHost:  cfg.Poller.PingHost,
		LogLines:  cfg.Poller.LogLines,
		Intervals: cfg.Poller.Intervals,
	})

	out := cmd.OutOrStdout()
	if once {
		poller := dashboard.NewPoller(client, log)
		return pollOnce(cmd.Context(), poller, groups, out)
	}

	var opts []dashboard.PollerOption
	if printJSON {
		opts = append(opts, dashboard.WithObserver(jsonObserver(out)))
	}
	poller := dashboard.NewPoller(client, log, opts...)

	mgr, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	if err := registerGroups(mgr, poller, groups); err != nil {
		return err
	}

	log.Infow("poller starting", "endpoint", endpoint, "groups", len(groups))
	mgr.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)
	<-quit

	log.Infow("stopping poller...")
	return mgr.Stop()
}

// registerGroups schedules one periodic job per poll group.
func registerGroups(mgr *scheduler.SchedulerManager, poller *dashboard.Poller, groups []dashboard.Group) error {
	for _, g := range groups {
		err := mgr.RegisterPeriodicJob(scheduler.PeriodicJob{
			Name:     g.Name,
			Interval: g.Interval,
			Run: func(ctx context.Context) error {
				return poller.Poll(ctx, g)
			},
		})
		if err != nil {
			return fmt.Errorf("failed to register poll group %s: %w", g.Name, err)
		}
	}
	return nil
}

// pollOnce polls every group in order and writes the resulting view. A group
// that fails is skipped.
func pollOnce(ctx context.Context, poller *dashboard.Poller, groups []dashboard.Group, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	for _, g := range groups {
		_ = poller.Poll(ctx, g)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(poller.View())
}

type update struct {
	Group   string         `json:"group"`
	Updated []string       `json:"updated"`
	View    dashboard.View `json:"view"`
}

func jsonObserver(w io.Writer) dashboard.Observer {
	enc := json.NewEncoder(w)
	return func(group string, updated []string, view dashboard.View) {
		_ = enc.Encode(update{Group: group, Updated: updated, View: view})
	}
}
