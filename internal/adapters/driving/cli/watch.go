package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/medlens/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Resolve queries from stdin while reloading on corpus changes",
	Long: `Reads one query per line from standard input and resolves each one.

The data directory is watched while the command runs; adding, editing or
removing a corpus file reloads the corpus without restarting. The command
ends at end of input or on interrupt.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if resolverService == nil || corpusService == nil {
		return errors.New("resolver service not configured")
	}
	if reloadService == nil {
		reloadService = newReloadService()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	reloadService.OnReload(func(c *domain.Corpus) {
		stats := c.Stats()
		fmt.Fprintf(out, "Corpus reloaded: %d medicines, %d documents\n", stats.Medicines, stats.Documents)
	})

	watchCtx, cancelWatch := context.WithCancel(ctx)
	watchErr := make(chan error, 1)
	go func() { watchErr <- reloadService.Watch(watchCtx) }()

	cmd.Printf("Watching %s (one query per line, Ctrl-D to finish)\n", corpusService.DataDir())

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	err := resolveLines(ctx, cmd, lines)
	cancelWatch()
	if werr := <-watchErr; werr != nil && err == nil {
		err = fmt.Errorf("watching %s: %w", corpusService.DataDir(), werr)
	}
	if err != nil {
		return err
	}
	select {
	case serr := <-scanErr:
		return serr
	default:
		return nil
	}
}

// resolveLines resolves each non-blank line until lines closes or ctx ends.
func resolveLines(ctx context.Context, cmd *cobra.Command, lines <-chan string) error {
	out := cmd.OutOrStdout()
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			query := strings.TrimSpace(line)
			if query == "" {
				continue
			}
			res, err := resolverService.Resolve(ctx, query)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("resolve failed: %w", err)
			}
			writeResolution(out, res)
			fmt.Fprintln(out)
		}
	}
}
