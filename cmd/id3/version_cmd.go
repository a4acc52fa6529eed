package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	// VersionMajor is the major version number of the tool
	VersionMajor = 0
	// VersionMinor is the minor version number of the tool
	VersionMinor = 3
	// VersionPatch is the patch version number of the tool
	VersionPatch = 0
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of id3",
		Long:  `Print the version number of id3`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("id3 v%d.%d.%d\n", VersionMajor, VersionMinor, VersionPatch)
		},
	}
}
