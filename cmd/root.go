package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/packhaus/depot/cmd/key"
	"github.com/packhaus/depot/cmd/origin"
	"github.com/packhaus/depot/cmd/pkg"
	"github.com/packhaus/depot/cmd/view"
	"github.com/packhaus/depot/pkg/depot"
)

var (
	log    = logging.Logger("cmd")
	tracer = otel.Tracer("cmd")
)

var rootCmd = &cobra.Command{
	Use:   "depot",
	Short: "Interact with a package depot",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		span := trace.SpanFromContext(cmd.Context())
		setSpanAttributes(cmd, span)
	},
	// We handle errors ourselves when they're returned from ExecuteContext.
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	cobra.EnableTraverseRunHooks = true
	rootCmd.SetOut(os.Stdout)
	rootCmd.SetErr(os.Stderr)

	cobra.OnInitialize(initRootFlags, initConfig)

	rootCmd.AddCommand(
		origin.Cmd,
		key.Cmd,
		pkg.Cmd,
		view.Cmd,
	)
}

var cfgFilePath string

func initRootFlags() {
	// default data dir: ~/.packhaus/depot
	homedir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Errorf("failed to get user home directory: %w", err))
	}

	rootCmd.PersistentFlags().StringVar(
		&cfgFilePath,
		"config",
		"",
		"Path to the config file",
	)

	rootCmd.PersistentFlags().String(
		"data-dir",
		filepath.Join(homedir, ".packhaus/depot"),
		"Directory containing the key cache and upload history (default: ~/.packhaus/depot)",
	)
	cobra.CheckErr(viper.BindPFlag("repo.data_dir", rootCmd.PersistentFlags().Lookup("data-dir")))

	rootCmd.PersistentFlags().String(
		"depot-url",
		depot.DefaultURL,
		"Base URL of the depot API",
	)
	cobra.CheckErr(viper.BindPFlag("depot.url", rootCmd.PersistentFlags().Lookup("depot-url")))
	// HAB_DEPOT_URL is honored for compatibility with the supervisor tooling
	cobra.CheckErr(viper.BindEnv("depot.url", "DEPOT_URL", "HAB_DEPOT_URL"))

	rootCmd.PersistentFlags().String(
		"user",
		"",
		"User name origin operations and uploads are attributed to",
	)
	cobra.CheckErr(viper.BindPFlag("depot.user", rootCmd.PersistentFlags().Lookup("user")))
	cobra.CheckErr(viper.BindEnv("depot.user", "DEPOT_USER"))
}

func initConfig() {
	// check if environment variables match any of the existing keys
	// as an example a key is 'repo.data_dir'
	viper.AutomaticEnv()
	// when checking for env vars, rename keys searched for from 'repo.data_dir' to 'repo_data_dir'
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	// when checking for env vars, search for keys prefixed with DEPOT
	viper.SetEnvPrefix("DEPOT")

	// when searching for a config file look for files named "depot-config.yaml"
	viper.SetConfigName("depot-config")
	viper.SetConfigType("yaml")

	// if no config file was provided, first look in the current directory _then_ look in
	// $XDG_CONFIG_HOME/depot/
	if cfgFilePath == "" {
		viper.AddConfigPath(".")
		if configDir, err := os.UserConfigDir(); err == nil {
			defaultCfgFile := filepath.Join(configDir, "depot")
			viper.AddConfigPath(defaultCfgFile)
		}
	} else {
		// else a config was provided over the cli via a flag, read it in directly
		viper.SetConfigFile(cfgFilePath)
	}
}

// ExecuteContext adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func ExecuteContext(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "cli")
	defer span.End()

	return rootCmd.ExecuteContext(ctx)
}

// commandPath returns the command path for a `cobra.Command`. Where
// `cmd.CommandPath()` returns a concatenated string, this returns a slice of
// the individual commands in the path.
func commandPath(c *cobra.Command) []string {
	var path []string
	if c.HasParent() {
		path = commandPath(c.Parent())
	}
	path = append(path, c.Name())
	return path
}

// setSpanAttributes sets attributes on the provided span based on the command
// and its flags. It will set:
//   - command.path: the full path of the command as a string slice
//   - command.flag.<flag-name>: the value of each flag, as the appropriate type
func setSpanAttributes(cmd *cobra.Command, span trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.StringSlice("command.path", commandPath(cmd)),
	}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		var err error
		k := "command.flag." + f.Name

		var attr attribute.KeyValue
		switch f.Value.Type() {
		case "bool":
			var v bool
			v, err = cmd.Flags().GetBool(f.Name)
			attr = attribute.Bool(k, v)
		case "int":
			var v int
			v, err = cmd.Flags().GetInt(f.Name)
			attr = attribute.Int(k, v)
		case "int64":
			var v int64
			v, err = cmd.Flags().GetInt64(f.Name)
			attr = attribute.Int64(k, v)
		case "uint":
			var v uint
			v, err = cmd.Flags().GetUint(f.Name)
			attr = attribute.Int64(k, int64(v))
		case "float64":
			var v float64
			v, err = cmd.Flags().GetFloat64(f.Name)
			attr = attribute.Float64(k, v)
		case "string":
			var v string
			v, err = cmd.Flags().GetString(f.Name)
			attr = attribute.String(k, v)
		case "stringSlice":
			var v []string
			v, err = cmd.Flags().GetStringSlice(f.Name)
			attr = attribute.StringSlice(k, v)
		default:
			attr = attribute.String(k, f.Value.String())
		}
		if err != nil {
			log.Warnf("getting flag %q value %v for telemetry: %v", f.Name, f.Value, err)
			return
		}

		attrs = append(attrs, attr)
	})

	span.SetAttributes(attrs...)
}
