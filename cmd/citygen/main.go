package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ChicagoDave/citygen/internal/server"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "citygen",
		Short: "Procedural city layout engine",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log generation progress to stderr")

	rootCmd.AddCommand(generateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(pathCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate [project-path]",
		Short: "Place POIs, build the layout and print the output document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.seedSet = cmd.Flags().Changed("seed")
			return runGenerate(args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.save, "save", false, "upsert final positions into positions.yaml")
	cmd.Flags().BoolVar(&opts.scene2d, "2d", false, "print the compact 2D scene instead of the full document")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "override config.rng_seed")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "override config.spread_mode (grid, poisson, hybrid)")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a project's config and POIs without generating",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func pathCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "path [project-path]",
		Short: "Generate the layout and find a walking path between two points",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runPath(args[0], from, to)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start point as x,y")
	cmd.Flags().StringVar(&to, "to", "", "goal point as x,y")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}

func serveCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve [project-path]",
		Short: "Start the local dev server",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			srv := server.New(args[0], port)
			return srv.Start()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "HTTP server port")
	return cmd
}
