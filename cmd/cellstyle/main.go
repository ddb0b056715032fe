/*
Command cellstyle checks stylesheets, applies them to selectors and lays
out widget markup in a terminal sized viewport.

	cellstyle check theme.css
	cellstyle apply theme.css "row > button.primary"
	cellstyle layout --width 60 --height 20 --paint dialog.html

Settings are read from flags, from environment variables with prefix
CELLSTYLE_ (e.g. CELLSTYLE_WIDTH) and from a configuration file
.cellstyle.yaml in the current directory.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/cellstyle/dom/style/cssom"
	"github.com/npillmayer/cellstyle/dom/style/cssom/douceuradapter"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// tracer traces with key 'cellstyle.cli'.
func tracer() tracing.Trace {
	return tracing.Select("cellstyle.cli")
}

var traceKeys = []string{
	"cellstyle.cli",
	"cellstyle.style",
	"cellstyle.selector",
	"cellstyle.cssom",
	"cellstyle.grid",
	"cellstyle.dom",
	"cellstyle.layout",
	"cellstyle.paint",
}

// errFailed is returned by commands which already reported their problems.
var errFailed = errors.New("cellstyle: failed")

func main() {
	initDisplay()
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			pterm.Error.Println(err.Error())
		}
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// app holds the configuration shared by all sub-commands.
type app struct {
	v       *viper.Viper
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:           "cellstyle",
		Short:         "Style and lay out terminal widget trees",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			pterm.SetDefaultOutput(cmd.OutOrStdout())
			if err := a.initConfig(); err != nil {
				return err
			}
			return setupTracing(a.v.GetString("trace"))
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./.cellstyle.yaml)")
	flags.Int("width", 80, "viewport width in cells")
	flags.Int("height", 24, "viewport height in cells")
	flags.String("trace", "Error", "trace level [Debug|Info|Error]")
	flags.Bool("douceur", false, "parse stylesheets with the douceur parser")
	for _, name := range []string{"width", "height", "trace", "douceur"} {
		if err := a.v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
	root.AddCommand(a.checkCmd(), a.applyCmd(), a.layoutCmd())
	return root
}

// initConfig reads in the config file and environment variables, if set.
func (a *app) initConfig() error {
	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
	} else {
		a.v.AddConfigPath(".")
		a.v.SetConfigName(".cellstyle")
		a.v.SetConfigType("yaml")
	}
	a.v.SetEnvPrefix("CELLSTYLE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// setupTracing routes all tracers of this module to the Go logger.
func setupTracing(level string) error {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter": "go",
	}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return fmt.Errorf("error configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Debugf("tracing at level %s", level)
	return nil
}

// parseSheet parses an author stylesheet with the configured parser.
func (a *app) parseSheet(src string) (*cssom.Stylesheet, error) {
	if a.v.GetBool("douceur") {
		return douceuradapter.Parse(src)
	}
	return cssom.Parse(src)
}

func readFile(name string) (string, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
