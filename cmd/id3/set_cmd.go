package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// setWriteBatch is the number of samples handed to the output at a time
const setWriteBatch = 100

type setCmdConfig struct {
	*rootCmdConfig
	setInput      string
	metadataInput string
	setOutput     string
}

func setCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &setCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Copy a set of data",
		Long:  `Copy a set of data between CSV files, SQLite3 files and PostgreSQL or MongoDB databases`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.exit(1, err)
			}
			src, err := config.loadSource(config.Context(), config.setInput, config.metadataInput)
			if err != nil {
				config.exit(2, err)
			}
			output, err := config.outputWriter(config.Context(), config.setOutput, src)
			if err != nil {
				config.exit(3, err)
			}
			samples := src.dataset.Samples()
			written := 0
			for len(samples) > 0 {
				n := setWriteBatch
				if n > len(samples) {
					n = len(samples)
				}
				var count int
				count, err = output.Write(config.Context(), samples[:n])
				written += count
				if err != nil {
					break
				}
				samples = samples[n:]
			}
			if err != nil {
				output.Flush()
				config.exit(4, errors.Wrapf(err, "writing sample %d", written+1))
			}
			err = output.Flush()
			if err != nil {
				config.exit(5, err)
			}
			config.Logger().Info("set copied", zap.Int("samples", written))
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", inputFlagUsage)
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", metadataFlagUsage)
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "path to a CSV (.csv) or SQLite3 (.db) file, or a PostgreSQL or MongoDB connection URL to dump the output set (defaults to STDOUT in CSV)")
	return cmd
}

func (scc *setCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	return nil
}
