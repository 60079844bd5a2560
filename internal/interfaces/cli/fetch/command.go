// Package fetch builds one status document in-process and prints it.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/orris-inc/resinfo/internal/domain/status"
	"github.com/orris-inc/resinfo/internal/infrastructure/config"
	httpRouter "github.com/orris-inc/resinfo/internal/interfaces/http"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

var configFile string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [topic=value ...]",
		Short: "Build one status document without starting the server",
		Long: `Build the status document for the given selectors and print it.
Arguments use the query syntax of the HTTP endpoint, for example:

  resinfo fetch users=online ping=time host=1.1.1.1`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to config file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	values, err := ParseArgs(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(configFile, "")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, false); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	container, err := httpRouter.NewContainer(cfg, logger.NewLogger())
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}
	defer container.Shutdown()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	doc := container.Aggregator().Execute(ctx, status.NewQuery(values))
	return write(cmd.OutOrStdout(), doc)
}

// ParseArgs turns `name=value` arguments into selector values. A bare name
// selects the topic with an empty value.
func ParseArgs(args []string) (url.Values, error) {
	values := url.Values{}
	for _, arg := range args {
		name, value, _ := strings.Cut(arg, "=")
		if name == "" {
			return nil, fmt.Errorf("invalid selector %q", arg)
		}
		values.Add(name, value)
	}
	return values, nil
}

func write(w io.Writer, doc *status.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	_, err = fmt.Fprintln(w, string(body))
	return err
}
