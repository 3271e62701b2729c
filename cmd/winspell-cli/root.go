package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Alfex4936/winspell/internal/config"
	"github.com/Alfex4936/winspell/internal/util"
	"github.com/Alfex4936/winspell/winspell"
)

type cliFlags struct {
	configPath string
	file       string
}

func newRootCmd() *cobra.Command {
	var f cliFlags

	root := &cobra.Command{
		Use:           "winspell-cli",
		Short:         "Spell check text with the operating system spell checker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&f.configPath, "config", "", "config file (yaml, toml or json)")
	root.PersistentFlags().String("locale", "", "locale to check with (default from config, then en-US)")
	root.PersistentFlags().String("hunspell-dict-dir", "", "hunspell dictionary directory (non-Windows hosts)")
	root.PersistentFlags().String("log-level", "", "log level: debug | info | warn | error")

	check := &cobra.Command{
		Use:   "check",
		Short: "Check stdin or a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, f)
		},
	}
	check.Flags().StringVarP(&f.file, "file", "f", "", "file to read instead of stdin")
	check.Flags().String("dict", "", "user dictionary file (json, yaml or toml)")
	check.Flags().String("format", "", "output format: json | pretty")

	locales := &cobra.Command{
		Use:   "locales",
		Short: "List the locales the spell checker supports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLocales(cmd, f)
		},
	}

	root.AddCommand(check, locales)
	// bare winspell-cli behaves like winspell-cli check
	root.Flags().AddFlagSet(check.Flags())
	root.RunE = check.RunE
	return root
}

func load(cmd *cobra.Command, f cliFlags) (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(f.configPath, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	logger, err := cfg.Logger(cmd.ErrOrStderr(), "winspell")
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func runCheck(cmd *cobra.Command, f cliFlags) error {
	cfg, logger, err := load(cmd, f)
	if err != nil {
		return err
	}

	var r io.Reader = cmd.InOrStdin()
	if f.file != "" {
		fh, err := os.Open(f.file)
		if err != nil {
			return err
		}
		defer fh.Close()
		r = fh
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	var dict *winspell.Dict
	if cfg.Dict != "" {
		dict, err = winspell.LoadDict(cfg.Dict)
		if err != nil {
			return err
		}
		logger.Debug("dictionary loaded", "path", cfg.Dict, "words", dict.Len())
	}

	sc, err := winspell.New(cfg.Locale, cfg.CheckerOptions(logger)...)
	if err != nil {
		return err
	}
	defer sc.Close()

	res, err := sc.CheckResult(string(data), dict)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch cfg.Format {
	case "pretty":
		fmt.Fprint(out, renderPretty(res))
		return nil
	case "", "json":
		b, err := util.MarshalNoEscape(res, true)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
		return nil
	default:
		return fmt.Errorf("unknown format %q", cfg.Format)
	}
}

func runLocales(cmd *cobra.Command, f cliFlags) error {
	cfg, logger, err := load(cmd, f)
	if err != nil {
		return err
	}
	tags, err := winspell.SupportedLocales(cfg.CheckerOptions(logger)...)
	if err != nil {
		return err
	}
	for _, t := range tags {
		fmt.Fprintln(cmd.OutOrStdout(), t)
	}
	return nil
}
