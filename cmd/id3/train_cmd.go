package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	id3 "github.com/Lizandraferrari/machine-learning"
	"github.com/Lizandraferrari/machine-learning/dataset/jsonsample"
)

// trainingConfig holds the flags of the commands that train a tree
type trainingConfig struct {
	*rootCmdConfig
	dataInput     string
	metadataInput string
	minSamples    int
	maxDepth      int
	trainRatio    float64
	seed          int64
}

type trainCmdConfig struct {
	trainingConfig
	curveOutput string
	showTree    bool
	record      string
	noPrompt    bool
}

func trainCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &trainCmdConfig{trainingConfig: trainingConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a tree and measure its accuracy",
		Long: `Grow a tree on a random share of a labeled dataset, measure its accuracy on
the rest and then classify a record in JSON format every time it is asked to.`,
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
			fmt.Printf("Test set accuracy: %s\n", result.FormatAccuracy())
			if config.showTree {
				fmt.Print(result.Tree)
			}
			if config.curveOutput != "" {
				err = config.plotCurve(src)
				if err != nil {
					config.exit(4, err)
				}
			}
			if config.noPrompt {
				return
			}
			config.promptLoop(os.Stdin, os.Stdout, result, src)
		},
	}
	config.addFlags(cmd)
	cmd.PersistentFlags().StringVar(&(config.curveOutput), "curve", "", "path to a PNG file to plot the accuracy of trees of increasing depth on")
	cmd.PersistentFlags().BoolVar(&(config.showTree), "show-tree", false, "print the grown tree")
	cmd.PersistentFlags().StringVar(&(config.record), "record", "", "path to a JSON file with the record to classify when asked to (required unless no-prompt is set)")
	cmd.PersistentFlags().BoolVar(&(config.noPrompt), "no-prompt", false, "exit after measuring the accuracy of the tree")
	return cmd
}

func (tcc *trainCmdConfig) Validate() error {
	err := tcc.trainingConfig.Validate()
	if err != nil {
		return err
	}
	if !tcc.noPrompt && tcc.record == "" {
		return fmt.Errorf("required record flag was not set")
	}
	if tcc.curveOutput != "" && tcc.maxDepth < 1 {
		return fmt.Errorf("max-depth flag must be at least 1 to plot a curve")
	}
	return nil
}

/*
promptLoop asks whether to classify the record at the record flag path and
does so for every "y" answer, reading the record anew each time. Any other
answer ends the loop. Errors reading the record are logged and the loop goes
on.
*/
func (tcc *trainCmdConfig) promptLoop(r io.Reader, w io.Writer, result *id3.Result, src *source) {
	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprintf(w, "Classify the record at %s? (y/n)\n", tcc.record)
		if !scanner.Scan() || strings.ToLower(strings.TrimSpace(scanner.Text())) != "y" {
			fmt.Fprintln(w, "Goodbye!")
			return
		}
		sample, err := jsonsample.ReadFile(tcc.record, src.features)
		if err != nil {
			tcc.Logger().Error("reading record", zap.String("path", tcc.record), zap.Error(err))
			continue
		}
		fmt.Fprintf(w, "Predicted class: %s\n", result.Tree.PredictClass(sample).Display)
	}
}

func (tcc *trainCmdConfig) plotCurve(src *source) error {
	tcc.Logger().Info("computing depth curve", zap.Int("maxDepth", tcc.maxDepth))
	curve, err := tcc.trainer().DepthCurve(tcc.Context(), src.dataset, src.features, tcc.maxDepth)
	if err != nil {
		return errors.Wrap(err, "computing depth curve")
	}
	p := plot.New()
	p.Title.Text = "Accuracy by maximum depth"
	p.X.Label.Text = "Maximum depth"
	p.Y.Label.Text = "Accuracy"
	p.Y.Min = 0
	p.Y.Max = 1
	toXY := func(ys []float64) plotter.XYs {
		pts := make(plotter.XYs, len(ys))
		for i := range ys {
			pts[i].X = float64(curve.Depths[i])
			pts[i].Y = ys[i]
		}
		return pts
	}
	err = plotutil.AddLinePoints(p, "Train", toXY(curve.TrainAccuracy), "Test", toXY(curve.TestAccuracy))
	if err != nil {
		return errors.Wrap(err, "plotting depth curve")
	}
	err = p.Save(8*vg.Inch, 4*vg.Inch, tcc.curveOutput)
	if err != nil {
		return errors.Wrapf(err, "saving depth curve to %s", tcc.curveOutput)
	}
	tcc.Logger().Info("depth curve saved", zap.String("path", tcc.curveOutput))
	return nil
}

func (tc *trainingConfig) addFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&(tc.dataInput), "input", "i", "", inputFlagUsage)
	cmd.PersistentFlags().StringVarP(&(tc.metadataInput), "metadata", "m", "", metadataFlagUsage)
	cmd.PersistentFlags().IntVar(&(tc.minSamples), "min-samples", 5, "number of samples at or below which a node becomes a leaf")
	cmd.PersistentFlags().IntVar(&(tc.maxDepth), "max-depth", 8, "depth at which nodes become leaves, 0 grows a single leaf")
	cmd.PersistentFlags().Float64Var(&(tc.trainRatio), "train-ratio", id3.DefaultTrainRatio, "share of the samples used to grow the tree, the rest are used to test it")
	cmd.PersistentFlags().Int64Var(&(tc.seed), "seed", 0, "seed for the shuffling of the dataset (defaults to 0: seeded with the current time)")
}

func (tc *trainingConfig) Validate() error {
	if tc.metadataInput == "" {
		return fmt.Errorf("required metadata flag was not set")
	}
	if tc.minSamples < 0 {
		return fmt.Errorf("min-samples flag must not be negative")
	}
	if tc.maxDepth < 0 {
		return fmt.Errorf("max-depth flag must not be negative")
	}
	if math.IsNaN(tc.trainRatio) || tc.trainRatio <= 0 || tc.trainRatio >= 1 {
		return fmt.Errorf("train-ratio flag was set to an invalid value: it must be between 0 and 1")
	}
	return nil
}

func (tc *trainingConfig) trainer() *id3.Trainer {
	ss := id3.DefaultStoppingStrategy()
	ss.MinSamples = tc.minSamples
	ss.MaxDepth = tc.maxDepth
	return &id3.Trainer{
		Strategy:   &ss,
		TrainRatio: tc.trainRatio,
		Rand:       tc.rand(),
		Logger:     tc.Logger(),
	}
}

func (tc *trainingConfig) rand() *rand.Rand {
	seed := tc.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
