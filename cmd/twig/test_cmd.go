package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type testCmdConfig struct {
	*rootCmdConfig
	treeInputs []string
	dataInput  string
}

func testCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &testCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test the performance of trees",
		Long:  `Test the performance of one or more trees against a test data set, printing the rate of misclassified points for each`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				config.fail(1, err)
			}
			ctx := config.Context()
			testingSet, err := config.readDataset(ctx, config.dataInput)
			if err != nil {
				config.fail(2, fmt.Errorf("reading testing set: %v", err))
			}
			trees, err := config.loadTrees(ctx, config.treeInputs)
			if err != nil {
				config.fail(3, err)
			}
			for i, t := range trees {
				config.logger.Debug("testing tree", zap.String("tree", config.treeInputs[i]), zap.Int("points", len(testingSet)))
				performance, err := t.Test(testingSet)
				if err != nil {
					config.fail(4, fmt.Errorf("testing tree %s: %v", config.treeInputs[i], err))
				}
				fmt.Printf("%s: %v misclassification rate (%d of %d points)\n", config.treeInputs[i], performance, performance.Misclassified, performance.Total)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.dataInput), "input", "i", "", "location of the testing set: "+datasetLocationHelp+" (defaults to STDIN, interpreted as CSV)")
	cmd.Flags().StringArrayVarP(&(config.treeInputs), "tree", "t", nil, "tree to test: "+treeLocationHelp+" (required, can be repeated)")
	return cmd
}

func (tcc *testCmdConfig) Validate() error {
	if len(tcc.treeInputs) == 0 {
		return fmt.Errorf("required tree flag was not set")
	}
	return nil
}
