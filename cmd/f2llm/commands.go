// Package f2llm holds the cobra command tree of the f2llm binary.
package f2llm

import (
	"fmt"

	"github.com/arthur-debert/f2llm/internal/version"
	"github.com/arthur-debert/f2llm/pkg/archive"
	"github.com/arthur-debert/f2llm/pkg/config"
	"github.com/arthur-debert/f2llm/pkg/core"
	"github.com/arthur-debert/f2llm/pkg/errors"
	"github.com/arthur-debert/f2llm/pkg/logging"
	"github.com/arthur-debert/f2llm/pkg/topics"
	"github.com/arthur-debert/f2llm/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions are shared by every command through persistent flags.
type globalOptions struct {
	verbosity  int
	dryRun     bool
	configFile string
	color      string

	cfg *config.Config
}

// overrides maps set persistent flags onto configuration keys.
func (g *globalOptions) overrides() map[string]interface{} {
	o := map[string]interface{}{}
	if g.color != "" {
		o["output.color"] = g.color
	}
	return o
}

// renderer builds the console renderer for cmd's output stream.
func (g *globalOptions) renderer(cmd *cobra.Command) (*ui.Renderer, error) {
	format, err := ui.ParseColor(g.cfg.Output.Color)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrUsage, "invalid color mode")
	}
	return ui.NewRenderer(format, cmd.OutOrStdout()), nil
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	g := &globalOptions{}
	var (
		generate bool
		apply    bool
		asJSON   bool
		format   string
	)

	rootCmd := &cobra.Command{
		Use:     "f2llm <input> <output>",
		Short:   MsgRootShort,
		Long:    MsgRootLong + "\n\n" + MsgChangeSet,
		Example: MsgRootExample,
		Version: version.Version,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.Newf(errors.ErrUsage, MsgErrArgs, len(args))
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Setup logging based on verbosity
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			cfg, err := config.Load(config.LoadOptions{
				ConfigFile: g.configFile,
				Overrides:  g.overrides(),
			})
			if err != nil {
				return fmt.Errorf(MsgErrConfigLoad, err)
			}
			g.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			input, output := args[0], args[1]

			selected, err := selectedFormat(asJSON, format)
			if err != nil {
				return err
			}
			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			switch {
			case apply:
				result, err := core.Apply(cmd.Context(), core.ApplyOptions{
					ChangeSetFile: input,
					TargetDir:     output,
					DryRun:        g.dryRun,
				})
				if err != nil {
					return err
				}
				r.RenderApply(result)
			case generate:
				result, err := core.Generate(cmd.Context(), core.GenerateOptions{
					ArchiveFile: input,
					OutputDir:   output,
					Format:      selected,
					DryRun:      g.dryRun,
					Config:      g.cfg,
				})
				if err != nil {
					return err
				}
				r.RenderGenerate(result)
			default:
				result, err := core.Pack(cmd.Context(), core.PackOptions{
					InputDir:   input,
					OutputFile: output,
					Format:     selected,
					Config:     g.cfg,
				})
				if err != nil {
					return err
				}
				r.RenderPack(result)
			}
			return nil
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&g.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&g.color, "color", "", MsgFlagColor)

	// Mode flags
	rootCmd.Flags().BoolVar(&generate, "generate", false, MsgFlagGenerate)
	rootCmd.Flags().BoolVar(&apply, "apply", false, MsgFlagApply)
	rootCmd.Flags().BoolVar(&asJSON, "json", false, MsgFlagJSON)
	rootCmd.Flags().StringVar(&format, "format", "", MsgFlagFormat)
	rootCmd.MarkFlagsMutuallyExclusive("apply", "generate")
	rootCmd.MarkFlagsMutuallyExclusive("json", "apply")
	rootCmd.MarkFlagsMutuallyExclusive("format", "apply")
	rootCmd.MarkFlagsMutuallyExclusive("json", "format")

	// Set custom help template
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newInspectCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Help topics are embedded, so a load failure only loses the topics
	if help, err := topics.Load(topicFiles, "topics"); err == nil {
		help.Install(rootCmd, g.renderTopic)
	} else {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// renderTopic prints a help topic, through glamour when it is Markdown.
func (g *globalOptions) renderTopic(cmd *cobra.Command, topic *topics.Topic) error {
	if g.cfg == nil || !topic.IsMarkdown() {
		return topics.PlainRender(cmd, topic)
	}
	r, err := g.renderer(cmd)
	if err != nil {
		return err
	}
	r.RenderMarkdown(topic.Content)
	return nil
}

// selectedFormat resolves --json and --format; empty means "not chosen".
func selectedFormat(asJSON bool, format string) (archive.Format, error) {
	if asJSON {
		return archive.FormatJSON, nil
	}
	if format == "" {
		return "", nil
	}
	f, err := archive.ParseFormat(format)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrUsage, "invalid --format value")
	}
	return f, nil
}

func newInspectCmd(g *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect <archive>",
		Short: MsgInspectShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := selectedFormat(false, format)
			if err != nil {
				return err
			}
			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			result, err := core.Inspect(core.InspectOptions{
				ArchiveFile: args[0],
				Format:      selected,
				Config:      g.cfg,
			})
			if err != nil {
				return err
			}
			r.RenderInspect(result)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "", MsgFlagFormat)
	return cmd
}

func newConfigCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := g.cfg.ToTOML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			default:
				return errors.Newf(errors.ErrUsage, MsgErrUnknownShell, args[0])
			}
		},
	}
}
