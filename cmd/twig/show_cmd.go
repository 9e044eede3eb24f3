package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type showCmdConfig struct {
	*rootCmdConfig
	treeInput string
}

func showCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &showCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a tree",
		Long:  `Print a tree along with its depth and number of leaves`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.treeInput == "" {
				config.fail(1, fmt.Errorf("required tree flag was not set"))
			}
			t, err := config.loadTree(config.Context(), config.treeInput)
			if err != nil {
				config.fail(2, err)
			}
			fmt.Print(t)
			fmt.Printf("depth %d, %d leaves, grown with minimum size %d\n", t.Depth(), t.Leaves(), t.MinSize)
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "tree to show: "+treeLocationHelp+" (required)")
	return cmd
}
