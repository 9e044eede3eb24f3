package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	// VersionMajor is the major number in twig's version
	VersionMajor = 0
	// VersionMinor is the minor number in twig's version
	VersionMinor = 1
	// VersionPatch is the patch number in twig's version
	VersionPatch = 0
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of twig",
		Long:  `All software has versions. This is twig's`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("twig v%d.%d.%d\n", VersionMajor, VersionMinor, VersionPatch)
		},
	}
}
