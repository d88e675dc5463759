package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/BxCppDev/Bayeux-sub017/cmd/vdlogic/commands"
	"github.com/BxCppDev/Bayeux-sub017/pkg/metrics"
	"github.com/BxCppDev/Bayeux-sub017/pkg/version"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "vdlogic",
		Short: "vdlogic",
		Long:  `A CLI tool to check and evaluate variant dependency logic.`,

		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Print(version.String())
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(
		commands.NewCheckCmd(),
		commands.NewEvalCmd(),
		commands.NewTableCmd(),
		commands.NewModelCmd(),
	)

	rootCmd.Flags().Bool("version", false, "displays the vdlogic version")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	if err := rootCmd.PersistentFlags().MarkHidden("debug"); err != nil {
		log.Panic(err.Error())
	}

	metrics.RegisterVariantLogic()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
