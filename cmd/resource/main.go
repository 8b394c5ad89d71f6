package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pirogoeth/concourse-http-api-resource/internal/common"
	"github.com/pirogoeth/concourse-http-api-resource/internal/constants"
	"github.com/pirogoeth/concourse-http-api-resource/internal/resource"
)

var rootCmd = &cobra.Command{
	Use:          "resource",
	Short:        "Concourse resource that performs a single HTTP API call",
	SilenceUsage: true,
}

func newRunCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " <resource-directory>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd.Context(), name, args[0], cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func init() {
	v := viper.GetViper()
	_ = v.BindEnv("debug", constants.DebugVar)
	_ = v.BindEnv("test", constants.TestModeVar)

	rootCmd.AddCommand(newRunCmd("check", "Emit the (always empty) version list"))
	rootCmd.AddCommand(newRunCmd("in", "Render parameters and perform the configured request"))
	rootCmd.AddCommand(newRunCmd("out", "Render parameters and perform the configured request"))
}

func runCommand(ctx context.Context, name, dir string, in io.Reader, out io.Writer) error {
	logger := common.GetLogger().WithComponent(name)

	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read input payload: %w", err)
	}
	snapshotPayload(name, raw)
	logger.Debug("invocation", "dir", dir, "payload_size", len(raw))

	var output []byte
	switch name {
	case "check":
		output, err = resource.CheckVersions(raw)
	default:
		r := &resource.Runner{
			Dir:     dir,
			Environ: os.Environ(),
			// Any non-empty value enables test mode.
			TestMode: viper.GetString("test") != "",
		}
		output, err = r.Run(ctx, raw)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, string(output))
	return err
}

func main() {
	if viper.GetString("debug") != "" {
		common.SetDefaultLogger(common.NewLogger(common.LogLevelDebug))
	}

	// Concourse invokes the resource as /opt/resource/{check,in,out}. When
	// argv[0] is one of the command names, dispatch to it directly.
	switch name := filepath.Base(os.Args[0]); name {
	case "check", "in", "out":
		os.Args = append([]string{os.Args[0], name}, os.Args[1:]...)
	}

	if err := rootCmd.Execute(); err != nil {
		exitHandler.LogFatalError(err, "command execution failed")
	}
}
