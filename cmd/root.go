/*
Copyright (c) 2026 moyaru <rbffo@icloud.com>
*/

package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/MOYARU/prsreport/internal/app/render"
	"github.com/MOYARU/prsreport/internal/app/ui"
	"github.com/MOYARU/prsreport/internal/config"
	"github.com/MOYARU/prsreport/internal/logging"
	msges "github.com/MOYARU/prsreport/internal/messages"
	appver "github.com/MOYARU/prsreport/internal/version"
)

// exitThreshold separates "issues found" from an actual failure.
const exitThreshold = 2

var (
	version = appver.Value

	sarifOutput bool
	sarifFile   string
	pretty      bool
	noColor     bool
	prefix      string
	meta        string
	debug       bool
	redact      bool
	failOn      string
	policyPath  string
	logFormat   string
)

var rootCmd = &cobra.Command{
	Use:   "prsreport [findings-file ...]",
	Short: "PRS Report renders security scan findings as a colorized terminal report or a SARIF 2.1.0 log.",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(msges.GetUIMessage("ConsoleNoInput"))
			_ = cmd.Help()
			os.Exit(1)
		}

		initLogging()
		log.Debug().Str("version", appver.ToolVersion()).Strs("inputs", args).Msg("starting")

		err := render.Run(render.Options{
			Files:      args,
			PolicyPath: policyPath,
			Sarif:      sarifOutput,
			SarifFile:  sarifFile,
			Pretty:     pretty,
			NoColor:    noColor,
			Prefix:     prefix,
			Meta:       meta,
			Redact:     redact,
			FailOn:     failOn,
			Stdin:      cmd.InOrStdin(),
			Stdout:     os.Stdout,
			Stderr:     os.Stderr,
		})
		if errors.Is(err, render.ErrThresholdExceeded) {
			fmt.Fprintf(os.Stderr, "%s%v%s\n", ui.ColorYellow, err, ui.ColorReset)
			os.Exit(exitThreshold)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s%s%s\n", ui.ColorRed, msges.GetUIMessage("RenderFailed", err), ui.ColorReset)
			os.Exit(1)
		}
	},
}

// initLogging sets up the global logger from flags and the report policy.
// Policy errors surface later from render.Run, so they are ignored here.
func initLogging() {
	level := ""
	format := logFormat
	if p, err := config.LoadReportPolicy(policyPath); err == nil {
		level = p.LogLevel
		if format == "" {
			format = p.LogFormat
		}
	}
	if debug {
		level = "debug"
	}
	logging.Init(logging.Config{
		Level:     level,
		Format:    format,
		Component: "prsreport",
	})
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.Flags().BoolVar(&sarifOutput, "sarif", false, "Print the SARIF 2.1.0 log instead of the text report")
	rootCmd.Flags().StringVar(&sarifFile, "sarif-file", "", "Also write the SARIF log to this file")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Indent SARIF output")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.Flags().StringVar(&prefix, "prefix", "", "Text printed before the report")
	rootCmd.Flags().StringVar(&meta, "meta", "", "Metadata block printed after the issues")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&redact, "redact", false, "Mask credentials in finding titles and descriptions")
	rootCmd.Flags().StringVar(&failOn, "fail-on", "", "Exit with status 2 when a finding is at or above this severity (low, medium, high)")
	rootCmd.Flags().StringVar(&policyPath, "config", config.DefaultPolicyFile, "Report policy file")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "", "Log format: auto, console or json")

	rootCmd.Long = ui.AsciiArt + `
PRS Report turns security scan findings into a terminal report or a SARIF log.

Usage:
   prsreport [findings-file ...] [flags]

Example:
  prsreport iac-results.json
  prsreport container.json --sarif --pretty
  prsreport deploy.yaml --sarif-file results.sarif --fail-on high
  cat results.json | prsreport -

Flags:
  --sarif              Print the SARIF 2.1.0 log instead of the text report
  --sarif-file         Also write the SARIF log to this file
  --pretty             Indent SARIF output
  --no-color           Disable colored output
  --prefix             Text printed before the report
  --meta               Metadata block printed after the issues
  --redact             Mask credentials in finding titles and descriptions
  --fail-on            Exit with status 2 at or above this severity
  --config             Report policy file (default: .prsreport.yaml)
  --debug              Enable debug logging

Findings files may be JSON or YAML. Use "-" to read JSON from standard input.
`
}
