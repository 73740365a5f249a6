package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/sdksplat/pkg/config"
	"github.com/arthur-debert/sdksplat/pkg/core"
	"github.com/arthur-debert/sdksplat/pkg/errors"
	"github.com/arthur-debert/sdksplat/pkg/filesystem"
	"github.com/arthur-debert/sdksplat/pkg/logging"
	"github.com/arthur-debert/sdksplat/pkg/manifest"
	"github.com/arthur-debert/sdksplat/pkg/progress"
	"github.com/arthur-debert/sdksplat/pkg/ui"
	"github.com/arthur-debert/sdksplat/pkg/ui/display"
)

// splatFlagKeys maps splat flags to config keys. Only flags set on the
// command line override the lower layers.
var splatFlagKeys = map[string]string{
	"manifest":                  "manifest",
	"staging":                   "staging",
	"output":                    "output",
	"arch":                      "arch",
	"variant":                   "variant",
	"copy":                      "copy",
	"include-debug-libs":        "include_debug_libs",
	"include-debug-symbols":     "include_debug_symbols",
	"disable-symlinks":          "disable_symlinks",
	"preserve-ms-arch-notation": "preserve_ms_arch_notation",
	"concurrency":               "concurrency",
}

func newSplatCmd(root *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "splat [manifest]",
		Short:   MsgSplatShort,
		Long:    MsgSplatLong,
		Example: MsgSplatExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides, err := flagOverrides(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				overrides["manifest"] = args[0]
			}

			cfg, err := config.Load(config.Options{Path: root.configPath, Overrides: overrides})
			if err != nil {
				return err
			}

			outputFormat, err := ui.ParseFormat(format)
			if err != nil {
				return errors.Wrap(err, errors.ErrInvalidInput, "invalid --format").
					WithDetail("field", "format")
			}
			renderer, err := ui.NewRenderer(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			return runSplat(cfg, renderer)
		},
	}

	flags := cmd.Flags()
	flags.StringP("manifest", "m", "", MsgFlagManifest)
	flags.StringP("staging", "s", "", MsgFlagStaging)
	flags.StringP("output", "o", "", MsgFlagOutput)
	flags.StringSliceP("arch", "a", nil, MsgFlagArch)
	flags.StringSlice("variant", nil, MsgFlagVariant)
	flags.Bool("copy", false, MsgFlagCopy)
	flags.Bool("include-debug-libs", false, MsgFlagDebugLibs)
	flags.Bool("include-debug-symbols", false, MsgFlagDebugSymbols)
	flags.Bool("disable-symlinks", false, MsgFlagNoSymlinks)
	flags.Bool("preserve-ms-arch-notation", false, MsgFlagMSArch)
	flags.IntP("concurrency", "j", 0, MsgFlagConcurrency)
	flags.StringVarP(&format, "format", "f", "auto", MsgFlagFormat)

	_ = cmd.RegisterFlagCompletionFunc("arch", cobra.FixedCompletions(
		[]string{"x86", "x86_64", "aarch", "aarch64"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("variant", cobra.FixedCompletions(
		[]string{"desktop", "onecore", "store", "spectre"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"auto", "term", "text", "json"}, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.MarkFlagFilename("manifest", "toml", "yaml", "yml")
	_ = cmd.MarkFlagDirname("staging")
	_ = cmd.MarkFlagDirname("output")

	return cmd
}

// flagOverrides collects the changed splat flags keyed like the config file.
func flagOverrides(cmd *cobra.Command) (map[string]interface{}, error) {
	flags := cmd.Flags()
	overrides := make(map[string]interface{})

	for name, key := range splatFlagKeys {
		flag := flags.Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}

		var (
			value interface{}
			err   error
		)
		switch flag.Value.Type() {
		case "bool":
			value, err = flags.GetBool(name)
		case "int":
			value, err = flags.GetInt(name)
		case "stringSlice":
			value, err = flags.GetStringSlice(name)
		default:
			value, err = flags.GetString(name)
		}
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid --%s", name).
				WithDetail("field", key)
		}
		overrides[key] = value
	}

	return overrides, nil
}

func runSplat(cfg *config.Config, renderer ui.Renderer) error {
	logger := logging.GetLogger("cli.splat")

	if err := cfg.Validate(); err != nil {
		return err
	}
	arches, _ := cfg.Arches()
	variants, _ := cfg.Variants()

	payloads, err := manifest.Load(filesystem.NewOS(), cfg.Manifest)
	if err != nil {
		return err
	}

	logger.Info().
		Str("manifest", cfg.Manifest).
		Str("staging", cfg.Staging).
		Str("output", cfg.Output).
		Int("payloads", len(payloads)).
		Msg("Starting splat")

	var factory progress.Factory = progress.LoggerFactory
	var bars *progress.Bars
	if ui.IsTerminal(os.Stderr) {
		bars = progress.NewBars(os.Stderr)
		factory = bars
	}

	start := time.Now()
	result, runErr := core.Run(core.RunOptions{
		Config:   cfg.SplatConfig(),
		Staging:  cfg.Staging,
		Payloads: payloads,
		Arches:   arches,
		Variants: variants,
		Progress: factory,
	})
	if bars != nil {
		bars.Stop()
	}
	if result == nil {
		return runErr
	}

	if err := renderer.RenderSummary(display.NewSummary(cfg.Output, result, start)); err != nil {
		return err
	}
	return runErr
}
