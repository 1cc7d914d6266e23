package commands

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/codefang-tech/lingua/pkg/blob"
	"github.com/codefang-tech/lingua/pkg/config"
	"github.com/codefang-tech/lingua/pkg/detect/strategies"
)

// DetectCommand holds the flags for the detect command.
type DetectCommand struct {
	noColor bool
}

// NewDetectCommand creates and configures the detect command.
func NewDetectCommand() *cobra.Command {
	dc := &DetectCommand{}

	cobraCmd := &cobra.Command{
		Use:   "detect <file>",
		Short: "Detect the language of a single file",
		Long:  "detect runs the standard detection pipeline over one file and prints its language, or reports that none was found.",
		Args:  cobra.ExactArgs(1),
		RunE:  dc.Run,
	}

	cobraCmd.Flags().BoolVar(&dc.noColor, "no-color", false, "disable colored output")

	return cobraCmd
}

// Run executes the detect command.
func (dc *DetectCommand) Run(cobraCmd *cobra.Command, args []string) error {
	color.NoColor = dc.noColor //nolint:reassign // intentional override of library global

	path := args[0]

	fb, err := blob.NewFileBlob(filepath.Base(path), path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	configPath, _ := cobraCmd.Flags().GetString("config")

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	reg, err := loadRegistry(cfg)
	if err != nil {
		return fmt.Errorf("load language catalogue: %w", err)
	}

	pipeline := strategies.NewPipeline(reg)

	lang, ok := pipeline.Detect(fb, false)
	if !ok {
		fmt.Fprintf(cobraCmd.OutOrStdout(), "%s: %s\n", path, color.New(color.FgYellow).Sprint("undetected"))

		return nil
	}

	fmt.Fprintf(cobraCmd.OutOrStdout(), "%s: %s\n", path, color.New(color.FgGreen, color.Bold).Sprint(lang.Name))

	return nil
}
