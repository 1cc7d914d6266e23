package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/codefang-tech/lingua/pkg/aggregate"
	"github.com/codefang-tech/lingua/pkg/config"
	"github.com/codefang-tech/lingua/pkg/gitlib"
	"github.com/codefang-tech/lingua/pkg/language"
	"github.com/codefang-tech/lingua/pkg/observability"
)

// StatsCommand holds the flags for the stats command.
type StatsCommand struct {
	snapshot bool
	noColor  bool
}

// NewStatsCommand creates and configures the stats command.
func NewStatsCommand() *cobra.Command {
	sc := &StatsCommand{}

	cobraCmd := &cobra.Command{
		Use:   "stats <path> | --snapshot <repo> <commit>",
		Short: "Aggregate language statistics for a directory or git snapshot",
		Long: `stats walks a filesystem directory, or a single commit of a git
repository with --snapshot, running language detection over every tracked
file and printing a per-language byte breakdown.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: sc.Run,
	}

	cobraCmd.Flags().BoolVar(&sc.snapshot, "snapshot", false, "treat args as <repo> <commit> and aggregate that git tree")
	cobraCmd.Flags().BoolVar(&sc.noColor, "no-color", false, "disable colored output")

	return cobraCmd
}

// Run executes the stats command.
func (sc *StatsCommand) Run(cobraCmd *cobra.Command, args []string) error {
	configPath, _ := cobraCmd.Flags().GetString("config")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	obs, err := observability.Init(cliObservabilityConfig(cfg))
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	ctx := context.Background()
	defer func() { _ = obs.Shutdown(ctx) }()

	metrics, err := observability.NewAggregateMetrics(obs.Meter)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}

	reg, err := loadRegistry(cfg)
	if err != nil {
		return fmt.Errorf("load language catalogue: %w", err)
	}

	var c *aggregate.Cache

	if sc.snapshot {
		c, err = sc.aggregateSnapshot(ctx, reg, cfg, args)
	} else {
		c, err = sc.aggregateDirectory(ctx, reg, cfg, args[0])
	}

	if err != nil {
		return err
	}

	recordAggregateRun(ctx, metrics, c)

	sc.render(cobraCmd.OutOrStdout(), c)

	return nil
}

func (sc *StatsCommand) aggregateDirectory(ctx context.Context, reg *language.Registry, cfg *config.Config, path string) (*aggregate.Cache, error) {
	agg := aggregate.NewDirectoryAggregator(reg)
	agg.MaxEntries = cfg.Aggregate.MaxEntries

	if cfg.Aggregate.Workers > 0 {
		agg.Workers = cfg.Aggregate.Workers
	}

	c, err := agg.Aggregate(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("aggregate directory: %w", err)
	}

	return c, nil
}

func (sc *StatsCommand) aggregateSnapshot(ctx context.Context, reg *language.Registry, cfg *config.Config, args []string) (*aggregate.Cache, error) {
	if len(args) != 2 {
		return nil, errSnapshotArgs
	}

	repo, err := gitlib.OpenRepository(args[0])
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	defer repo.Free()

	commit, err := repo.LookupCommit(gitlib.NewHash(args[1]))
	if err != nil {
		return nil, fmt.Errorf("lookup commit %s: %w", args[1], err)
	}
	defer commit.Free()

	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("load tree: %w", err)
	}
	defer tree.Free()

	agg := aggregate.NewSnapshotAggregator(reg)
	agg.MaxEntries = cfg.Aggregate.MaxEntries

	c, err := sc.runSnapshotAggregation(ctx, agg, repo, commit, tree, cfg.Aggregate.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("aggregate snapshot: %w", err)
	}

	if cfg.Aggregate.CacheDir != "" {
		if saveErr := aggregate.SaveCache(cfg.Aggregate.CacheDir, commit.Hash().String(), c); saveErr != nil {
			fmt.Fprintf(os.Stderr, "warning: save cache: %v\n", saveErr)
		}
	}

	return c, nil
}

// runSnapshotAggregation picks between a full walk and an incremental
// refresh seeded from a persisted cache. The incremental path only
// engages when the persisted snapshot id resolves to a commit in this
// repository; anything else falls back to a full aggregation.
func (sc *StatsCommand) runSnapshotAggregation(
	ctx context.Context,
	agg *aggregate.SnapshotAggregator,
	repo *gitlib.Repository,
	commit *gitlib.Commit,
	tree *gitlib.Tree,
	cacheDir string,
) (*aggregate.Cache, error) {
	if cacheDir == "" {
		return agg.Aggregate(ctx, repo, tree)
	}

	prior, priorSnapshot, err := aggregate.LoadCache(cacheDir)
	if err != nil || priorSnapshot == "" {
		return agg.Aggregate(ctx, repo, tree)
	}

	if priorSnapshot == commit.Hash().String() {
		return prior, nil
	}

	priorCommit, err := repo.LookupCommit(gitlib.NewHash(priorSnapshot))
	if err != nil {
		return agg.Aggregate(ctx, repo, tree)
	}
	defer priorCommit.Free()

	priorTree, err := priorCommit.Tree()
	if err != nil {
		return agg.Aggregate(ctx, repo, tree)
	}
	defer priorTree.Free()

	changes, err := gitlib.TreeDiff(repo, priorTree, tree)
	if err != nil {
		return agg.Aggregate(ctx, repo, tree)
	}

	return agg.Refresh(ctx, repo, tree, prior, changes)
}

// render prints the per-language breakdown as a borderless go-pretty
// table, with the leading language colorized unless color is disabled.
func (sc *StatsCommand) render(w io.Writer, c *aggregate.Cache) {
	color.NoColor = sc.noColor //nolint:reassign // intentional override of library global

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	tbl.AppendHeader(table.Row{"Language", "Files", "Bytes", "Percent"})

	stats := c.Languages()
	for i, s := range stats {
		name := s.Name
		if i == 0 {
			name = color.New(color.FgGreen, color.Bold).Sprint(name)
		}

		tbl.AppendRow(table.Row{
			name,
			s.Files,
			humanize.Bytes(uint64(s.Bytes)), //nolint:gosec // byte counts are never negative
			fmt.Sprintf("%.1f%%", s.Percentage),
		})
	}

	tbl.AppendFooter(table.Row{"Total", c.FileCount(), humanize.Bytes(uint64(c.Size())), ""}) //nolint:gosec // byte counts are never negative

	tbl.Render()

	if c.Truncated() {
		fmt.Fprintln(os.Stderr, "warning: entry ceiling reached, results are incomplete")
	}
}

func recordAggregateRun(ctx context.Context, metrics *observability.AggregateMetrics, c *aggregate.Cache) {
	metrics.RecordRun(ctx, observability.AggregateStats{
		Files: int64(c.FileCount()),
		Bytes: c.Size(),
	})
}
