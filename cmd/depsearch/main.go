// Command depsearch answers "what is the earliest version of PARENT whose
// dependency tree drops CHILD or carries it at a minimum version?" against
// the npm registry.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/git-pkgs/depsearch"
	"github.com/git-pkgs/depsearch/client"
	"github.com/git-pkgs/depsearch/httpapi"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
})

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("DEPSEARCH")
	v.AutomaticEnv()

	var (
		parentMin  string
		childMin   string
		removed    bool
		asJSON     bool
		timeout    time.Duration
		maxNodes   int
		concurrent int
	)

	root := &cobra.Command{
		Use:   "depsearch PARENT CHILD",
		Short: "Find the earliest version of a package that drops or upgrades a dependency",
		Long: `depsearch walks the npm registry metadata graph to find the earliest
version of PARENT whose transitive dependency tree either no longer contains
CHILD (--removed) or carries every occurrence of CHILD at or above a minimum
version (--child-min). PARENT and CHILD may be plain package names or
pkg:npm Package URLs.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			parent, err := depsearch.PackageName(args[0])
			if err != nil {
				return err
			}
			child, err := depsearch.PackageName(args[1])
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			searcher := newSearcher(v, maxNodes, concurrent, timeout)
			result, err := searcher.Find(ctx, depsearch.Params{
				Parent:           parent,
				ParentMinVersion: parentMin,
				Child:            child,
				ChildMinVersion:  childMin,
				PackageRemoved:   removed,
			})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					return err
				}
			} else {
				printResult(cmd, result)
			}

			if !result.Success {
				return errors.New(result.Message)
			}
			return nil
		},
	}

	root.Flags().StringVar(&parentMin, "parent-min", "", "lowest parent version to consider")
	root.Flags().StringVar(&childMin, "child-min", "", "minimum acceptable version for every occurrence of CHILD")
	root.Flags().BoolVar(&removed, "removed", false, "accept parent versions whose trees do not contain CHILD")
	root.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 60*time.Second, "overall search timeout")
	root.PersistentFlags().IntVar(&maxNodes, "max-nodes", 0, "per-traversal node ceiling (0 = default)")
	root.PersistentFlags().IntVar(&concurrent, "concurrency", 0, "parallel sibling resolutions (0 = default)")
	root.PersistentFlags().String("registry", "", "registry base URL (default: the public npm registry)")
	_ = v.BindPFlag("registry", root.PersistentFlags().Lookup("registry"))

	root.AddCommand(newServeCmd(v, &maxNodes, &concurrent, &timeout))
	return root
}

func newSearcher(v *viper.Viper, maxNodes, concurrent int, timeout time.Duration) *depsearch.Searcher {
	c := client.NewClient(client.WithTimeout(timeout))
	reg := depsearch.NewRegistry(v.GetString("registry"), c)

	var opts []depsearch.Option
	if maxNodes > 0 {
		opts = append(opts, depsearch.WithMaxNodes(maxNodes))
	}
	if concurrent > 0 {
		opts = append(opts, depsearch.WithConcurrency(concurrent))
	}
	return depsearch.NewSearcher(reg, opts...)
}

func printResult(cmd *cobra.Command, result *depsearch.Result) {
	if result.Success {
		logger.Info(result.Message, "version", result.Version)
	} else {
		logger.Warn(result.Message)
	}
	for _, line := range result.Details {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", line)
	}
}

func newServeCmd(v *viper.Viper, maxNodes, concurrent *int, timeout *time.Duration) *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search engine over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			searcher := newSearcher(v, *maxNodes, *concurrent, *timeout)
			handler := httpapi.NewHandler(searcher, logger)

			addr := v.GetString("addr")
			logger.Info("listening", "addr", addr)
			server := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}
			return server.ListenAndServe()
		},
	}
	serve.Flags().String("addr", ":8080", "listen address")
	_ = v.BindPFlag("addr", serve.Flags().Lookup("addr"))
	return serve
}
