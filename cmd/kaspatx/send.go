package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blacktrace/kaspa-txcore/address"
	"github.com/blacktrace/kaspa-txcore/oracle"
	"github.com/blacktrace/kaspa-txcore/rpcclient"
	"github.com/blacktrace/kaspa-txcore/sighash"
	"github.com/blacktrace/kaspa-txcore/txbuilder"
)

var (
	sendKeyHex    string
	sendKeyWIF    string
	sendUseECDSA  bool
	sendTo        string
	sendAmount    uint64
	sendChange    string
	sendFeeRate   uint64
	sendBroadcast bool
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Build and sign a plain Kaspa send transaction",
	Long: `Derives the sender address from --key, fetches its UTXO set from
the configured node, plans a send to --to, signs every input with the
local reference signer, and prints the signed transaction's wire JSON
(or broadcasts it with --broadcast).`,
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVar(&sendKeyHex, "key", "", "sender's secp256k1 private key, hex-encoded")
	sendCmd.Flags().StringVar(&sendKeyWIF, "key-wif", "", "sender's private key in base58check WIF form, as an alternative to --key")
	sendCmd.Flags().BoolVar(&sendUseECDSA, "ecdsa", false, "sign and encode the sender's address as ECDSA instead of Schnorr")
	sendCmd.Flags().StringVar(&sendTo, "to", "", "recipient address (required)")
	sendCmd.Flags().Uint64Var(&sendAmount, "amount", 0, "amount to send, in sompi (required)")
	sendCmd.Flags().StringVar(&sendChange, "change", "", "change address (defaults to the sender's own address)")
	sendCmd.Flags().Uint64Var(&sendFeeRate, "tx-fee-rate", 0, "fee rate override in sompi/byte (0 uses --fee-rate)")
	sendCmd.Flags().BoolVar(&sendBroadcast, "broadcast", false, "broadcast the signed transaction instead of just printing it")

	sendCmd.MarkFlagRequired("to")
	sendCmd.MarkFlagRequired("amount")
}

func runSend(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	key, err := resolveKey(sendKeyHex, sendKeyWIF)
	if err != nil {
		return err
	}

	var signer oracle.Signer
	var pubProvider oracle.PublicKeyProvider
	var addrType address.Type
	if sendUseECDSA {
		s := oracle.NewLocalECDSASigner(key)
		signer, pubProvider = s, s
		addrType = address.ECDSA
	} else {
		s := oracle.NewLocalSchnorrSigner(key)
		signer, pubProvider = s, s
		addrType = address.Schnorr
	}
	payload, err := pubProvider.PublicKey(ctx, nil)
	if err != nil {
		return err
	}

	fromAddr, err := address.Encode(payload, addrType, addressPrefix())
	if err != nil {
		return err
	}

	changeAddr := sendChange
	if changeAddr == "" {
		changeAddr = fromAddr
	}

	client := rpcclient.New(apiHost)
	utxos, err := client.FetchUTXOs(ctx, fromAddr)
	if err != nil {
		return err
	}

	cfg := txbuilder.Config{
		APIHost:        apiHost,
		Network:        network,
		MaxFee:         maxFee,
		DefaultFeeRate: defaultFeeRate,
	}

	plan, err := txbuilder.PlanSend(cfg, utxos, sendTo, sendAmount, sendFeeRate, changeAddr)
	if err != nil {
		return err
	}

	specs := make([]txbuilder.InputSignSpec, len(plan.SpentUTXOs))
	for i := range specs {
		specs[i] = txbuilder.InputSignSpec{UseECDSA: sendUseECDSA}
	}

	hashType := byte(sighash.All)
	if err := txbuilder.SignInputs(ctx, plan.Transaction, plan.SpentUTXOs, specs, signer, hashType); err != nil {
		return err
	}

	if sendBroadcast {
		id, err := client.BroadcastTransaction(ctx, plan.Transaction)
		if err != nil {
			return err
		}
		fmt.Printf("broadcast ok: %s\n", id)
		return nil
	}

	wireJSON, err := plan.Transaction.ToWireJSON()
	if err != nil {
		return err
	}
	fmt.Println(string(wireJSON))
	fmt.Fprintf(cmd.ErrOrStderr(), "fee: %d sompi, spent %d input(s)\n", plan.Fee, len(plan.SpentUTXOs))
	return nil
}
