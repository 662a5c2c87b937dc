package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vintagehost/vsctl/internal/cli"
)

var (
	// Command-specific flags for generate-config
	defaultsPath string
	envFile      string
	genDryRun    bool
)

var genConfigCmd = &cobra.Command{
	Use:   "generate-config [output-path]",
	Short: "Generate serverconfig.json from YAML defaults and environment overrides",
	Long: `Generate the Vintage Story serverconfig.json by merging the YAML defaults
document with VS_CFG_-prefixed environment overrides. A previous output file
is kept as a .backup sibling.

Examples:
  vsctl generate-config
  vsctl generate-config /srv/vintagestory/data/serverconfig.json
  vsctl generate-config --env-file ./overrides.env --dry-run`,
	Args: cobra.MaximumNArgs(1), // At max 1 argument
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.GenConfigOptions{
			DefaultsPath: defaultsPath,
			OutputPath:   cli.OutputPathFromEnv(os.Getenv),
			EnvFile:      envFile,
			DryRun:       genDryRun,
			Environ:      os.Environ(),
		}
		if opts.DefaultsPath == "" {
			opts.DefaultsPath = cli.DefaultsPathFromEnv(os.Getenv)
		}
		if len(args) > 0 {
			opts.OutputPath = args[0]
		}

		if verbose {
			fmt.Printf("Defaults file: %s\n", opts.DefaultsPath)
			fmt.Printf("Output path: %s\n", opts.OutputPath)
			fmt.Printf("Dry run mode: %t\n", opts.DryRun)
		}

		if code := cli.GenConfigRun(opts); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	// Generate-config command specific flags
	genConfigCmd.Flags().StringVar(&defaultsPath, "defaults", "", "Path to the YAML defaults file (default $HOMEPATH/server-config.yaml)")
	genConfigCmd.Flags().StringVar(&envFile, "env-file", "", "Optional dotenv file with additional VS_CFG_ overrides")
	genConfigCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "Show the merged configuration summary without writing files")
}
