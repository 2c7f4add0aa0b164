package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"annia/internal/interfaces/cli/i18ncheck"
	"annia/internal/interfaces/cli/server"
	"annia/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "annia",
		Short:   "ANNiA landing API",
		Long:    `ANNiA serves the landing site's quick-request form and its translations, and checks locale files for missing keys.`,
		Version: version.String(),
	}
	rootCmd.SetVersionTemplate(fmt.Sprintf("annia %s\n", version.String()))

	rootCmd.AddCommand(
		server.NewCommand(),
		i18ncheck.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
