package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ledsnake/internal/config"
)

var flagShowDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after the file search and flag overrides, as YAML.
Copy it to ~/.ledsnake/config.yaml to customise.

Examples:
  ledsnake config
  ledsnake config --default > ~/.ledsnake/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagShowDefault, "default", false, "Print the built-in default file")
}

func runConfig(cmd *cobra.Command, args []string) {
	if flagShowDefault {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, src := loadConfig(cmd)
	data, err := config.Marshal(cfg)
	if err != nil {
		exitf("%v", err)
	}
	fmt.Printf("# source: %s\n", src)
	os.Stdout.Write(data)
}
