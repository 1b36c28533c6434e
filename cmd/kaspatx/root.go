package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// apiHost, network, defaultFeeRate, and maxFee are global flags shared by every
// subcommand that talks to a node or needs fee policy.
var (
	apiHost        string
	network        string
	defaultFeeRate uint64
	maxFee         uint64
)

var rootCmd = &cobra.Command{
	Use:   "kaspatx",
	Short: "Build and sign Kaspa transactions and KRC20 commit/reveal pairs",
	Long: `kaspatx is a CLI front end for a Kaspa transaction-construction core.

Digests are computed locally and handed to a signer, and signature
scripts are installed once a signature comes back. The signer is the
in-process reference signer built from the --key or --key-wif private
key; no remote signing oracle is wired into the CLI.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiHost, "api-host", "api.kaspa.org", "Kaspa REST node API host")
	rootCmd.PersistentFlags().StringVar(&network, "network", "mainnet", "network: mainnet or testnet")
	rootCmd.PersistentFlags().Uint64Var(&defaultFeeRate, "fee-rate", 1000, "fee rate in sompi/byte")
	rootCmd.PersistentFlags().Uint64Var(&maxFee, "max-fee", 100_000_000, "maximum fee in sompi the builder will accept")
}
