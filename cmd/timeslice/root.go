package main

import (
	"errors"
	goflag "flag"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"
)

const (
	layoutFlag = "layout"
	outputFlag = "output"
	configFlag = "config"

	envPrefix = "TIMESLICE"

	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// cli holds what every subcommand needs once flags and config are resolved.
type cli struct {
	v   *viper.Viper
	log logr.Logger
}

func (c *cli) layout() string {
	if l := c.v.GetString(layoutFlag); l != "" {
		return l
	}
	return time.RFC3339
}

func (c *cli) output() string {
	return strings.ToLower(c.v.GetString(outputFlag))
}

func newRootCmd() *cobra.Command {
	c := &cli{
		v:   viper.New(),
		log: klog.NewKlogr().WithName("timeslice"),
	}
	var cfgFile string

	cmd := &cobra.Command{
		Use:           "timeslice",
		Short:         "Compute with spans of time",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.initConfig(cfgFile); err != nil {
				return err
			}
			switch c.output() {
			case outputText, outputJSON, outputYAML:
				return nil
			}
			return fmt.Errorf("unknown output %q, valid: %s", c.output(), strings.Join([]string{outputText, outputJSON, outputYAML}, ", "))
		},
	}

	fs := cmd.PersistentFlags()
	fs.StringVar(&cfgFile, configFlag, "", "config file (default is ./timeslice.yaml)")
	fs.String(layoutFlag, time.RFC3339, "time layout used to parse and print times")
	fs.StringP(outputFlag, "o", outputText, "output format: text, json or yaml")
	addKlogFlags(fs)

	for _, name := range []string{layoutFlag, outputFlag} {
		if err := c.v.BindPFlag(name, fs.Lookup(name)); err != nil {
			panic(err)
		}
	}

	cmd.AddCommand(
		c.durationCmd(),
		c.unionCmd(),
		c.diffCmd(),
		c.intersectCmd(),
		c.containsCmd(),
		c.rangeCmd(),
		c.ruleCmd(),
		c.freebusyCmd(),
	)
	return cmd
}

func (c *cli) initConfig(cfgFile string) error {
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	if cfgFile != "" {
		c.v.SetConfigFile(cfgFile)
	} else {
		c.v.AddConfigPath(".")
		c.v.SetConfigName("timeslice")
		c.v.SetConfigType("yaml")
	}
	if err := c.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	c.log.V(1).Info("using config file", "file", c.v.ConfigFileUsed())
	return nil
}

// addKlogFlags exposes the klog verbosity flags on fs.
func addKlogFlags(fs *pflag.FlagSet) {
	gfs := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(gfs)
	gfs.VisitAll(func(f *goflag.Flag) {
		if f.Name == "v" || f.Name == "vmodule" || f.Name == "logtostderr" {
			fs.AddGoFlag(f)
		}
	})
}
