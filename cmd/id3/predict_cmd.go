package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Lizandraferrari/machine-learning/dataset/inputsample"
	"github.com/Lizandraferrari/machine-learning/dataset/jsonsample"
	"github.com/Lizandraferrari/machine-learning/feature"
)

type predictCmdConfig struct {
	trainingConfig
	record         string
	interactive    bool
	undefinedValue string
}

type stdoutFeatureValueRequester string

func predictCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &predictCmdConfig{trainingConfig: trainingConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Classify a record",
		Long: `Grow a tree from a labeled dataset and use it to classify a record, given
in JSON format or answering a reduced set of questions about its features`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.exit(1, err)
			}
			src, err := config.loadSource(config.Context(), config.dataInput, config.metadataInput)
			if err != nil {
				config.exit(2, err)
			}
			result, err := config.trainer().Train(config.Context(), src.dataset, src.features, src.metadata.Classes)
			if err != nil {
				config.exit(3, errors.Wrap(err, "training tree"))
			}
			config.Logger().Sugar().Infof("tree accuracy on test set is %s", result.FormatAccuracy())
			if config.interactive {
				sample := inputsample.New(os.Stdin, src.features, stdoutFeatureValueRequester(config.undefinedValue), config.undefinedValue)
				class := result.Tree.PredictClass(sample)
				if sample.Err() != nil {
					config.exit(4, errors.Wrap(sample.Err(), "reading sample"))
				}
				fmt.Printf("Predicted class: %s\n", class.Display)
				return
			}
			sample, err := jsonsample.ReadFile(config.record, src.features)
			if err != nil {
				config.exit(5, err)
			}
			fmt.Printf("Predicted class: %s\n", result.Tree.PredictClass(sample).Display)
		},
	}
	config.addFlags(cmd)
	cmd.PersistentFlags().StringVar(&(config.record), "record", "", "path to a JSON file with the record to classify")
	cmd.PersistentFlags().BoolVar(&(config.interactive), "interactive", false, "ask for the feature values the tree needs to classify the record instead of reading a JSON file")
	cmd.PersistentFlags().StringVarP(&(config.undefinedValue), "undefined-value", "u", "?", "value to input to define a record's value for a feature as undefined")
	return cmd
}

func (pcc *predictCmdConfig) Validate() error {
	err := pcc.trainingConfig.Validate()
	if err != nil {
		return err
	}
	if pcc.interactive == (pcc.record != "") {
		return fmt.Errorf("exactly one of the record and interactive flags must be set")
	}
	return nil
}

func (sfvr stdoutFeatureValueRequester) RequestValueFor(f feature.Feature) error {
	switch f.Kind() {
	case feature.Categorical:
		fmt.Printf("Please provide the record's %s:\n(any value is valid, or %s if undefined)\n", f.Name(), string(sfvr))
	case feature.Numeric:
		fmt.Printf("Please provide the record's %s:\n(valid values are real numbers or %s if undefined)\n", f.Name(), string(sfvr))
	default:
		return fmt.Errorf("unknown kind of feature %s", f.Name())
	}
	return nil
}

func (sfvr stdoutFeatureValueRequester) RejectValueFor(f feature.Feature, value string) error {
	fmt.Printf("%s is not a valid value for the record's %s. Please provide a real number or %s if undefined.\n", value, f.Name(), string(sfvr))
	return nil
}
