package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Lizandraferrari/machine-learning/dataset"
	"github.com/Lizandraferrari/machine-learning/dataset/csv"
)

type splitCmdConfig struct {
	*rootCmdConfig
	setInput         string
	metadataInput    string
	setOutput        string
	splitOutput      string
	splitProbability int
	seed             int64
}

func splitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &splitCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a set into two sets",
		Long:  `Shuffle a set and split it into an output set and a split set in CSV format`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.exit(1, err)
			}
			src, err := config.loadSource(config.Context(), config.setInput, config.metadataInput)
			if err != nil {
				config.exit(2, err)
			}
			seed := config.seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			ratio := 1 - float64(config.splitProbability)/100
			output, split := src.dataset.Shuffle(rand.New(rand.NewSource(seed))).Split(ratio)

			err = config.write(config.setOutput, output, src)
			if err != nil {
				config.exit(3, err)
			}
			err = config.write(config.splitOutput, split, src)
			if err != nil {
				config.exit(4, err)
			}
			config.Logger().Info("set split",
				zap.Int("samples", src.dataset.Count()),
				zap.Int("output", output.Count()),
				zap.Int("split", split.Count()),
			)
		},
	}
	cmd.PersistentFlags().StringVarP(&(config.setInput), "input", "i", "", inputFlagUsage)
	cmd.PersistentFlags().StringVarP(&(config.metadataInput), "metadata", "m", "", metadataFlagUsage)
	cmd.PersistentFlags().StringVarP(&(config.setOutput), "output", "o", "", "path to a file to dump the output set (defaults to STDOUT)")
	cmd.PersistentFlags().IntVarP(&(config.splitProbability), "split-percent", "p", 20, "percent of the samples of the set assigned to the split set")
	cmd.PersistentFlags().StringVarP(&(config.splitOutput), "split-output", "s", "", "path to a file to dump the split set (required)")
	cmd.PersistentFlags().Int64Var(&(config.seed), "seed", 0, "seed for the shuffling of the set (defaults to 0: seeded with the current time)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.splitProbability <= 0 || scc.splitProbability >= 100 {
		return fmt.Errorf("split-percent flag was set to an invalid value: it must be set to an integer between 1 and 99")
	}
	return nil
}

func (scc *splitCmdConfig) write(path string, ds *dataset.Dataset, src *source) error {
	f := os.Stdout
	if path != "" {
		var err error
		f, err = os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "creating %s", path)
		}
		defer f.Close()
	}
	err := csv.WriteDataset(scc.Context(), f, ds, src.features, src.metadata.Label, src.metadata.Classes)
	if err != nil {
		return errors.Wrapf(err, "writing set to %s", f.Name())
	}
	return nil
}
