package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spry-lang/spry/spry"
)

// Set via -ldflags at build time.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "spry",
	Short: "The Spry language",
	Long:  "Spry is a small expression language. Run with no arguments to start the REPL.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadREPLConfig()
		if err != nil {
			return err
		}
		return runREPL(cfg)
	},
}

var runCmd = &cobra.Command{
	Use:   "run <script>",
	Short: "Run a Spry script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScript(args[0], false)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <script>",
	Short: "Parse a script without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScript(args[0], true)
	},
}

func init() {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("spry version {{.Version}}\n")
	rootCmd.SilenceUsage = true
	rootCmd.AddCommand(runCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScript(path string, checkOnly bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	engine := spry.NewEngine(spry.Config{Stdout: os.Stdout})
	if checkOnly {
		if err := engine.Check(path, string(src)); err != nil {
			return fmt.Errorf("\n%s", err)
		}
		return nil
	}

	result, err := engine.Run(path, string(src), engine.GlobalEnv())
	if err != nil {
		// diagnostics are multi-line; keep them off the usage line
		return fmt.Errorf("\n%s", err)
	}
	if !result.IsNull() {
		fmt.Println(result.String())
	}
	return nil
}
