// Command cellview shows an editable list of items in the terminal.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xqrs/cellview"
	"github.com/xqrs/cellview/i18n"
	"github.com/xqrs/cellview/internal/config"
	"github.com/xqrs/cellview/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "cellview",
		Short:         "Browse and edit a list of items",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd, configFile)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&configFile, "config", "", "config file (default searches cellview.yaml)")
	flags.String("locale", "en", "language of the user interface")
	flags.String("log-level", "info", "log level")
	flags.String("log-file", "", "write logs to this file")
	flags.String("items", "", "file with one item per line")
	flags.Int("count", 100, "number of generated items when no file is given")
	flags.String("empty-text", "", "text shown while the list is empty")
	flags.Int("fixed-cell-length", 0, "rows per item, 0 to measure every item")
	flags.String("orientation", "vertical", "vertical or horizontal")
	return cmd
}

func run(cfg config.Config) error {
	if err := i18n.Init(cfg.Locale); err != nil {
		return fmt.Errorf("load translations: %w", err)
	}

	logger, closer, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer closer.Close()
	cellview.SetLogger(logger)

	items, err := initialItems(cfg.Items)
	if err != nil {
		return err
	}
	logger.Info().Int("items", len(items)).Str("locale", cfg.Locale).Msg("starting")

	app := cellview.NewApplication()
	d, err := newDemo(app, cfg, items)
	if err != nil {
		return err
	}
	defer d.stopGenerator()

	if err := app.SetRoot(d).Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func initialItems(cfg config.ItemsConfig) ([]string, error) {
	if cfg.File != "" {
		return readItems(cfg.File)
	}
	items := make([]string, 0, max(cfg.Count, 0))
	for i := range max(cfg.Count, 0) {
		items = append(items, itemName(i))
	}
	return items, nil
}

// readItems returns the non-blank lines of path.
func readItems(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open items: %w", err)
	}
	defer file.Close()

	var items []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			items = append(items, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	return items, nil
}

func itemName(i int) string {
	return fmt.Sprintf("Item %d", i+1)
}
