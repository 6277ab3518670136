package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/flowbaker/copysmith/internal/config"
	"github.com/flowbaker/copysmith/internal/initialization"
	"github.com/flowbaker/copysmith/internal/services"
	"github.com/flowbaker/copysmith/pkg/domain"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [files...]",
		Short: "Generate descriptions for one or more product tables",
		Long: `Generate a short and a long description for every row of the given tables. A single table is
written as processed_<name>; several tables are written as processed_files.zip.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args, afero.NewOsFs())
		},
	}

	flags := cmd.Flags()
	flags.String("out", ".", "Directory the artifact is written to")
	flags.String("style", "", "YAML style preset applied on top of the configured style")
	flags.Bool("quiet", false, "Do not print per-row progress")

	flags.String("language", "", "Target language selector, or Auto-detect")
	flags.String("short-style", "", "Short description style: simple or emoji-benefits")
	flags.String("tone", "", "Tone")
	flags.String("writing-style", "", "Writing style")
	flags.String("language-level", "", "Language level")
	flags.String("target-age", "", "Target age")
	flags.String("target-gender", "", "Target gender")
	flags.String("expertise-level", "", "Expertise level")
	flags.Float64("temperature", 0, "Sampling temperature between 0.0 and 1.0")
	flags.Int("keywords", 0, "Keywords per text, 1 to 5")
	flags.String("paragraph-style", "", "Paragraph style")
	flags.String("heading-style", "", "Heading style")

	return cmd
}

func runGenerate(cmd *cobra.Command, paths []string, fs afero.Fs) error {
	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	style, err := resolveStyle(cmd.Flags(), fs, cfg.Style)
	if err != nil {
		return err
	}

	files, err := readInputs(fs, paths)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	outDir, _ := cmd.Flags().GetString("out")
	quiet, _ := cmd.Flags().GetBool("quiet")

	opts := initialization.ContainerOptions{
		Config:    cfg,
		Fs:        fs,
		OutputDir: outDir,
	}
	if !quiet {
		opts.ProgressOut = cmd.OutOrStdout()
	}

	container, err := initialization.NewContainer(ctx, opts)
	if err != nil {
		return err
	}
	defer container.Close()

	result, err := container.GetBatchService().Process(ctx, services.ProcessParams{
		Files: files,
		Style: style,
	})
	if result != nil {
		printSummary(cmd, result)
	}
	if errors.Is(err, domain.ErrNothingToDownload) {
		return fmt.Errorf("no table could be processed: %w", err)
	}

	return err
}

// resolveStyle applies the style file, then every flag set on the command line.
func resolveStyle(flags *pflag.FlagSet, fs afero.Fs, base domain.StyleConfiguration) (domain.StyleConfiguration, error) {
	style := base

	if path, _ := flags.GetString("style"); path != "" {
		loaded, err := config.LoadStyleFile(fs, path, style)
		if err != nil {
			return base, err
		}
		style = loaded
	}

	overrides := config.StyleOverrides{
		TargetLanguage: changedString(flags, "language"),
		ShortStyle:     changedString(flags, "short-style"),
		Tone:           changedString(flags, "tone"),
		WritingStyle:   changedString(flags, "writing-style"),
		LanguageLevel:  changedString(flags, "language-level"),
		TargetAge:      changedString(flags, "target-age"),
		TargetGender:   changedString(flags, "target-gender"),
		ExpertiseLevel: changedString(flags, "expertise-level"),
		ParagraphStyle: changedString(flags, "paragraph-style"),
		HeadingStyle:   changedString(flags, "heading-style"),
	}

	if flags.Changed("temperature") {
		temperature, _ := flags.GetFloat64("temperature")
		overrides.Temperature = &temperature
	}
	if flags.Changed("keywords") {
		keywords, _ := flags.GetInt("keywords")
		overrides.KeywordsPerText = &keywords
	}

	return overrides.Apply(style)
}

func changedString(flags *pflag.FlagSet, name string) *string {
	if !flags.Changed(name) {
		return nil
	}
	value, _ := flags.GetString(name)
	return &value
}

func readInputs(fs afero.Fs, paths []string) ([]services.UploadedFile, error) {
	files := make([]services.UploadedFile, 0, len(paths))

	for _, path := range paths {
		content, err := afero.ReadFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		files = append(files, services.UploadedFile{
			Name:    filepath.Base(path),
			Content: content,
		})
	}

	return files, nil
}

var (
	summaryTitle = lipgloss.NewStyle().Bold(true)
	summaryOK    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	summaryWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
)

func printSummary(cmd *cobra.Command, result *services.ProcessResult) {
	out := cmd.OutOrStdout()
	outcome := result.Outcome

	fmt.Fprintln(out, summaryTitle.Render(fmt.Sprintf("Batch %s", outcome.RunID)))
	fmt.Fprintf(out, "   Tables processed: %d\n", len(outcome.Processed))
	fmt.Fprintf(out, "   Rows: %d/%d succeeded\n", outcome.SucceededRows, outcome.TotalRows)

	for _, failure := range outcome.TableFailures {
		fmt.Fprintln(out, summaryWarn.Render(fmt.Sprintf("   Skipped %s", failure.Error())))
	}
	for _, rowErr := range outcome.RowErrors {
		log.Debug().Err(rowErr).Msg("Row left empty")
	}
	for _, location := range result.Locations {
		fmt.Fprintln(out, summaryOK.Render(fmt.Sprintf("✅ Written %s", location)))
	}
	if outcome.Canceled {
		fmt.Fprintln(out, summaryWarn.Render("   Interrupted: remaining tables were not processed"))
	}
}
