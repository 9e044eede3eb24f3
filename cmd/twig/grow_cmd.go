package main

import (
	"fmt"

	"github.com/pbanos/twig"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type growCmdConfig struct {
	*rootCmdConfig
	dataInput string
	output    string
	minSize   int
	workers   int
}

func growCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &growCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "grow",
		Short: "Grow a tree from a set of data",
		Long:  `Grow a binary decision tree from a set of labelled points and save it`,
		Run: func(cmd *cobra.Command, args []string) {
			if !cmd.Flags().Changed("min-size") {
				config.minSize = config.Tree.MinSize
			}
			if !cmd.Flags().Changed("workers") {
				config.workers = config.Grow.Workers
			}
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			ctx := config.Context()
			trainingSet, err := config.readDataset(ctx, config.dataInput)
			if err != nil {
				config.fail(2, fmt.Errorf("reading training set: %v", err))
			}
			config.logger.Info("growing tree", zap.Int("points", len(trainingSet)), zap.Int("minSize", config.minSize), zap.Int("workers", config.workers))
			grower := &twig.Grower{Workers: config.workers, Logger: config.logger}
			t, err := grower.Grow(ctx, trainingSet, config.minSize)
			if err != nil {
				config.fail(3, fmt.Errorf("growing tree: %v", err))
			}
			performance, err := t.Test(trainingSet)
			if err != nil {
				config.fail(4, fmt.Errorf("testing tree against training set: %v", err))
			}
			config.logger.Info("tree grown", zap.Int("depth", t.Depth()), zap.Int("leaves", t.Leaves()), zap.Stringer("trainingErrorRate", performance))
			err = config.saveTree(ctx, config.output, t)
			if err != nil {
				config.fail(5, fmt.Errorf("saving tree: %v", err))
			}
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "location of the training set: "+datasetLocationHelp+" (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringVarP(&(config.output), "output", "o", "", "where to save the tree: "+treeLocationHelp+" (defaults to STDOUT in JSON)")
	cmd.Flags().IntVarP(&(config.minSize), "min-size", "s", 1, "minimum number of points a subset must have to be split (defaults to tree.minSize in the configuration)")
	cmd.Flags().IntVarP(&(config.workers), "workers", "w", 1, "number of workers developing nodes concurrently (defaults to grow.workers in the configuration)")
	return cmd
}

func (gcc *growCmdConfig) Validate() error {
	if gcc.minSize < 1 {
		return fmt.Errorf("min-size flag must be a positive integer")
	}
	if gcc.workers < 1 {
		return fmt.Errorf("workers flag must be a positive integer")
	}
	return nil
}
