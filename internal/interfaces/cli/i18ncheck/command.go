// Package i18ncheck verifies that every locale defines all the keys of the
// base locale.
package i18ncheck

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	domain "annia/internal/domain/content"
	contentinfra "annia/internal/infrastructure/content"
)

// ErrMissingKeys is returned when at least one locale lacks a base key.
var ErrMissingKeys = errors.New("i18n check failed: missing keys")

var (
	dir  string
	base string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "i18n-check",
		Short: "Check locale files for missing keys",
		Long:  `Compare every locale file against the base locale and list the key paths it lacks. Exits non-zero when any are missing.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := contentinfra.NewLoader(dir)
			if err != nil {
				return err
			}
			return Check(loader, domain.Lang(base), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory holding <lang>.json files (defaults to the bundled locales)")
	cmd.Flags().StringVarP(&base, "base", "b", "es", "Base language every other locale is checked against")

	return cmd
}

// Check loads every locale the loader knows and reports missing key paths
// on errOut, one "- path" line each, grouped by file.
func Check(loader *contentinfra.Loader, base domain.Lang, out, errOut io.Writer) error {
	languages, err := loader.Languages()
	if err != nil {
		return fmt.Errorf("failed to list locales: %w", err)
	}

	catalog, err := loader.Load(base, languages)
	if err != nil {
		return err
	}

	report := catalog.Missing()
	others := catalog.Languages()[1:]

	failed := false
	for _, lang := range others {
		missing := report[lang]
		if len(missing) == 0 {
			continue
		}
		failed = true
		fmt.Fprintf(errOut, "Missing keys in %s.json:\n", lang)
		for _, path := range missing {
			fmt.Fprintf(errOut, "- %s\n", path)
		}
	}

	if failed {
		return ErrMissingKeys
	}

	fmt.Fprintf(out, "i18n check passed: all %s.json keys exist in %d other locale(s).\n", base, len(others))
	return nil
}
