package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .twlint.yaml config file",
	Long:  `Create a .twlint.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigPath)
		}

		if err := os.WriteFile(defaultConfigPath, []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultConfigPath)
		return nil
	},
}

const defaultConfig = `# twlint configuration
# Docs: https://github.com/yacobolo/twlint

# Shared settings
verbose: false
log-level: warn
# log-file: .twlint.log

# Linting settings
lint:
  paths:
    - "src/**/*.{tsx,jsx,ts,js,vue}"
  # Compiled CSS used to report unknown classes (leave empty to skip the check)
  stylesheets: []
  # Classes accepted without a stylesheet rule: exact, foo-*, *-foo, *-foo-*
  allow: []
  variants: []

  # Extraction
  attributes: []            # added to className and class
  functions: []             # replaces clsx, classnames, cn, cx, twMerge, twJoin; name or name@module
  cva: true
  cva-functions: []         # default: cva
  tv: true
  tv-functions: []          # default: tv
  vue-namespace: __VLS_ctx

  # Reporting
  disable: []               # invalid | duplicate | conflict | extractable
  concurrency: 0            # 0 = number of CPUs
  strict: false
  output-format: issues     # issues | summary | full | json | markdown
  max-issues-per-linter: 0  # 0 = unlimited
  max-same-issues: 0        # 0 = unlimited
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
