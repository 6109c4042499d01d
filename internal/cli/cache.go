package cli

import (
	"context"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archdiagram/pkg/cache"
	apperrors "github.com/matzehuels/archdiagram/pkg/errors"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered-artifact cache",
	}
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cacheURL != "" {
				return c.clearRedis(cmd.Context())
			}

			dir, err := cacheDir()
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeCache, err, "get cache dir")
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeCache, err, "open cache")
			}
			n, err := fc.Clear()
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeCache, err, "clear cache")
			}
			if n == 0 {
				printInfo(c.Stdout, "Cache is empty")
				return nil
			}
			printSuccess(c.Stdout, "Cleared %d cached artifacts", n)
			printDetail(c.Stdout, "Directory: %s", dir)
			return nil
		},
	}
}

func (c *CLI) clearRedis(ctx context.Context) error {
	cache.SetRedisLogger(c.Logger)
	rc, err := cache.NewRedisCache(ctx, c.cacheURL)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeCache, err, "connect to cache")
	}
	defer rc.Close()

	n, err := rc.Clear(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeCache, err, "clear cache")
	}
	printSuccess(c.Stdout, "Cleared %d cached artifacts", n)
	return nil
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory, or the cache URL with its password masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cacheURL != "" {
				fmt.Fprintln(c.Stdout, redactURL(c.cacheURL))
				return nil
			}
			dir, err := cacheDir()
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeCache, err, "get cache dir")
			}
			fmt.Fprintln(c.Stdout, dir)
			return nil
		},
	}
}

// redactURL masks the password in raw. Unparseable input is not echoed.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid cache url>"
	}
	return u.Redacted()
}
