package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pbanos/twig/dataset"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type datasetCmdConfig struct {
	*rootCmdConfig
	dataInput  string
	dataOutput string
}

func datasetCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &datasetCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "dataset",
		Short: "Copy a dataset",
		Long:  `Copy a dataset from one location to another, such as from a CSV file into a SQLite3 file or a MongoDB collection`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := config.Context()
			ds, err := config.readDataset(ctx, config.dataInput)
			if err != nil {
				config.fail(1, fmt.Errorf("reading dataset: %v", err))
			}
			config.logger.Info("dataset read", zap.Int("points", len(ds)))
			err = config.writeDataset(ctx, config.dataOutput, ds)
			if err != nil {
				config.fail(2, fmt.Errorf("writing dataset: %v", err))
			}
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "location of the dataset to read: "+datasetLocationHelp+" (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.dataOutput), "output", "o", "", "location to write the dataset on: "+datasetLocationHelp+" (defaults to STDOUT, as CSV)")
	cmd.AddCommand(splitCmd(rootConfig))
	return cmd
}

type splitCmdConfig struct {
	*rootCmdConfig
	dataInput        string
	dataOutput       string
	splitOutput      string
	splitProbability int
	seed             int64
}

func splitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &splitCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a dataset into two datasets",
		Long:  `Split a dataset into an output dataset and a split dataset, such as a training set and a testing set`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			if !cmd.Flags().Changed("seed") {
				config.seed = time.Now().UnixNano()
			}
			ctx := config.Context()
			ds, err := config.readDataset(ctx, config.dataInput)
			if err != nil {
				config.fail(2, fmt.Errorf("reading dataset: %v", err))
			}
			output, split := splitDataset(ds, config.splitProbability, rand.New(rand.NewSource(config.seed)))
			config.logger.Info("dataset split", zap.Int64("seed", config.seed), zap.Int("output", len(output)), zap.Int("split", len(split)))
			err = config.writeDataset(ctx, config.splitOutput, split)
			if err != nil {
				config.fail(3, fmt.Errorf("writing split dataset: %v", err))
			}
			err = config.writeDataset(ctx, config.dataOutput, output)
			if err != nil {
				config.fail(4, fmt.Errorf("writing output dataset: %v", err))
			}
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "location of the dataset to split: "+datasetLocationHelp+" (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.dataOutput), "output", "o", "", "location of the output dataset: "+datasetLocationHelp+" (defaults to STDOUT, as CSV)")
	cmd.Flags().StringVarP(&(config.splitOutput), "split-output", "s", "", "location of the split dataset: "+datasetLocationHelp+" (required)")
	cmd.Flags().IntVarP(&(config.splitProbability), "split-probability", "p", 20, "probability as percent integer that a point of the input dataset goes to the split dataset")
	cmd.Flags().Int64Var(&(config.seed), "seed", 0, "seed for the random split (defaults to the current time)")
	return cmd
}

func (scc *splitCmdConfig) Validate() error {
	if scc.splitOutput == "" {
		return fmt.Errorf("required split-output flag was not set")
	}
	if scc.splitProbability < 0 || scc.splitProbability > 100 {
		return fmt.Errorf("split-probability flag must be an integer between 0 and 100")
	}
	return nil
}

// splitDataset sends each point to the split dataset with the given
// percent probability and to the output dataset otherwise. Points
// keep their relative order.
func splitDataset(ds dataset.Dataset, probability int, rng *rand.Rand) (output, split dataset.Dataset) {
	for _, p := range ds {
		if 100*rng.Float64() < float64(probability) {
			split = append(split, p)
		} else {
			output = append(output, p)
		}
	}
	return output, split
}
