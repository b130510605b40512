package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/fivetwenty-io/rocketchat-client/cmd/rocketchat/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := commands.NewRootCommand(viper.GetViper(), version, commit, date)

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
