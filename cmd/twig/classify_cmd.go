package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pbanos/twig/tree"
	"github.com/spf13/cobra"
)

type classifyCmdConfig struct {
	*rootCmdConfig
	treeInput string
}

func classifyCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &classifyCmdConfig{rootCmdConfig: rootConfig}
	cmd := &cobra.Command{
		Use:   "classify [x0,x1 ...]",
		Short: "Classify points with a tree",
		Long: `Use a tree to classify the points given as arguments, or read from STDIN one per line if none is given.
Each point is a comma-separated list of feature values. The predicted label is printed for each.`,
		Run: func(cmd *cobra.Command, args []string) {
			if config.treeInput == "" {
				config.fail(1, fmt.Errorf("required tree flag was not set"))
			}
			t, err := config.loadTree(config.Context(), config.treeInput)
			if err != nil {
				config.fail(2, err)
			}
			if len(args) > 0 {
				err = classifyAll(t, strings.NewReader(strings.Join(args, "\n")), os.Stdout)
			} else {
				err = classifyAll(t, os.Stdin, os.Stdout)
			}
			if err != nil {
				config.fail(3, err)
			}
		},
	}
	cmd.Flags().StringVarP(&(config.treeInput), "tree", "t", "", "tree to classify with: "+treeLocationHelp+" (required)")
	return cmd
}

// classifyAll reads a point per non-empty line from r and writes
// the label the tree predicts for each on w.
func classifyAll(t *tree.Tree, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	for l := 1; scanner.Scan(); l++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		x, err := parseQuery(line)
		if err != nil {
			return fmt.Errorf("point %d: %v", l, err)
		}
		label, err := t.Classify(x)
		if err != nil {
			return fmt.Errorf("classifying point %d: %v", l, err)
		}
		fmt.Fprintln(w, label)
	}
	return scanner.Err()
}

func parseQuery(s string) ([]float64, error) {
	fields := strings.Split(s, ",")
	x := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("converting %s to float64: %v", f, err)
		}
		x[i] = v
	}
	return x, nil
}
