package cmd

import (
	"fmt"
	"os"

	"github.com/shopmonkeyus/go-common/logger"
	"github.com/spf13/cobra"

	"github.com/restodesk/restodesk/internal/connection"
)

// Version is set in main.
var Version string

func mustFlagBool(cmd *cobra.Command, name string, required bool) bool {
	val, err := cmd.Flags().GetBool(name)
	if required && err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}
	return val
}

func mustFlagString(cmd *cobra.Command, name string, required bool) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		fmt.Printf("error: %s\n", err)
		os.Exit(1)
	}
	if required && val == "" {
		fmt.Printf("error: required flag --%s missing\n", name)
		os.Exit(1)
	}
	return val
}

func newLogger(cmd *cobra.Command) logger.Logger {
	if mustFlagBool(cmd, "silent", false) {
		return logger.NewTestLogger()
	}
	if mustFlagBool(cmd, "verbose", false) {
		return logger.NewConsoleLogger(logger.LevelTrace)
	}
	return logger.NewConsoleLogger(logger.LevelInfo)
}

// databaseConfig resolves the store location: the --url flag wins, the
// environment is the fallback.
func databaseConfig(cmd *cobra.Command) (connection.Config, error) {
	if dburl := mustFlagString(cmd, "url", false); dburl != "" {
		return connection.Config{URL: dburl}, nil
	}
	return connection.FromEnv()
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "restodesk",
	Short: "Restaurant operations platform core",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("url", "", "the database connection url")
	rootCmd.PersistentFlags().Bool("verbose", false, "turn on verbose logging")
	rootCmd.PersistentFlags().Bool("silent", false, "turn off all logging")
}
