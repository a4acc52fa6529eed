package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose    bool
	logger     *zap.Logger
	ctx        context.Context
	cancelFunc context.CancelFunc
}

func main() {
	config := &rootCmdConfig{}
	err := cliParser(config).Execute()
	config.Close()
	if err != nil {
		os.Exit(1)
	}
}

func cliParser(config *rootCmdConfig) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "id3",
		Short: "id3 is a tool to grow decision trees",
		Long:  `A tool to grow ID3 decision trees from labeled data, measure their accuracy and use them to classify records`,
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log debug messages")
	rootCmd.AddCommand(versionCmd(), trainCmd(config), predictCmd(config), splitCmd(config), setCmd(config))
	return rootCmd
}

// Context returns a context that is cancelled on interrupt
func (rcc *rootCmdConfig) Context() context.Context {
	if rcc.ctx == nil {
		rcc.ctx, rcc.cancelFunc = signal.NotifyContext(context.Background(), os.Interrupt)
	}
	return rcc.ctx
}

// Close releases the context and flushes the logger
func (rcc *rootCmdConfig) Close() {
	if rcc.cancelFunc != nil {
		rcc.cancelFunc()
	}
	if rcc.logger != nil {
		rcc.logger.Sync()
	}
}

// exit prints the error to stderr and exits with the given code
func (rcc *rootCmdConfig) exit(code int, err error) {
	rcc.Logger().Debug("exiting", zap.Int("code", code), zap.Error(err))
	rcc.Close()
	os.Stderr.WriteString(err.Error() + "\n")
	os.Exit(code)
}
