package main

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blacktrace/kaspa-txcore/address"
	"github.com/blacktrace/kaspa-txcore/krc20"
	"github.com/blacktrace/kaspa-txcore/oracle"
	"github.com/blacktrace/kaspa-txcore/rpcclient"
	"github.com/blacktrace/kaspa-txcore/script"
	"github.com/blacktrace/kaspa-txcore/sighash"
	"github.com/blacktrace/kaspa-txcore/tx"
	"github.com/blacktrace/kaspa-txcore/txbuilder"
)

var krc20Cmd = &cobra.Command{
	Use:   "krc20",
	Short: "Build KRC20 operation JSON and commit/reveal transactions",
}

// --- operation JSON builders ---

var (
	opTick, opMax, opLim, opTo, opDec, opPre string
	opAmt                                    string
)

var krc20DeployMintCmd = &cobra.Command{
	Use:   "deploy-mint",
	Short: "Render a mint-mode deploy operation",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := krc20.DeployMint(krc20.DeployMintParams{Tick: opTick, Max: opMax, Lim: opLim, To: opTo, Dec: opDec, Pre: opPre})
		return printJSON(out, err)
	},
}

var krc20MintCmd = &cobra.Command{
	Use:   "mint",
	Short: "Render a mint operation",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := krc20.Mint(opTick, opTo)
		return printJSON(out, err)
	},
}

var krc20TransferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Render a transfer operation",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := krc20.Transfer(opTick, opAmt, opTo)
		return printJSON(out, err)
	},
}

func printJSON(out []byte, err error) error {
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// --- commit / reveal ---

var (
	commitKeyHex       string
	commitKeyWIF       string
	commitUseECDSA     bool
	commitOperationRaw string
	commitAmountFlag   uint64
	commitFeeRate      uint64

	revealCommitTxID   string
	revealCommitIndex  uint32
	revealCommitAmount uint64
	revealOp           string
	revealTo           string
	revealNetworkFee   uint64
)

var krc20CommitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Build the commit transaction for a KRC20 operation",
	Long: `Wraps --operation-json in a kasplex envelope inside a P2SH output
only the holder of --key can later spend, funds it from --key's own
UTXO set, signs it, and prints the signed commit transaction's wire
JSON, with the redeem script needed to build the reveal transaction
later written to stderr.`,
	RunE: runKRC20Commit,
}

var krc20RevealCmd = &cobra.Command{
	Use:   "reveal",
	Short: "Build and sign the reveal transaction spending a confirmed commit UTXO",
	RunE:  runKRC20Reveal,
}

func init() {
	rootCmd.AddCommand(krc20Cmd)
	krc20Cmd.AddCommand(krc20DeployMintCmd, krc20MintCmd, krc20TransferCmd, krc20CommitCmd, krc20RevealCmd)

	for _, c := range []*cobra.Command{krc20DeployMintCmd, krc20MintCmd, krc20TransferCmd} {
		c.Flags().StringVar(&opTick, "tick", "", "token ticker")
		c.MarkFlagRequired("tick")
	}
	krc20DeployMintCmd.Flags().StringVar(&opMax, "max", "", "max supply (required)")
	krc20DeployMintCmd.Flags().StringVar(&opLim, "lim", "", "per-mint limit (required)")
	krc20DeployMintCmd.Flags().StringVar(&opTo, "to", "", "optional recipient")
	krc20DeployMintCmd.Flags().StringVar(&opDec, "dec", "", "optional decimals")
	krc20DeployMintCmd.Flags().StringVar(&opPre, "pre", "", "optional premine")
	krc20DeployMintCmd.MarkFlagRequired("max")
	krc20DeployMintCmd.MarkFlagRequired("lim")

	krc20MintCmd.Flags().StringVar(&opTo, "to", "", "optional recipient")

	krc20TransferCmd.Flags().StringVar(&opAmt, "amt", "", "amount (required)")
	krc20TransferCmd.Flags().StringVar(&opTo, "to", "", "recipient (required)")
	krc20TransferCmd.MarkFlagRequired("amt")
	krc20TransferCmd.MarkFlagRequired("to")

	krc20CommitCmd.Flags().StringVar(&commitKeyHex, "key", "", "funding key, hex-encoded")
	krc20CommitCmd.Flags().StringVar(&commitKeyWIF, "key-wif", "", "funding key in base58check WIF form, as an alternative to --key")
	krc20CommitCmd.Flags().BoolVar(&commitUseECDSA, "ecdsa", false, "use ECDSA redeem script instead of Schnorr")
	krc20CommitCmd.Flags().StringVar(&commitOperationRaw, "operation-json", "", "operation JSON, e.g. from krc20 deploy-mint (required)")
	krc20CommitCmd.Flags().Uint64Var(&commitAmountFlag, "commit-amount", 0, "commit output amount in sompi (0 uses the protocol default)")
	krc20CommitCmd.Flags().Uint64Var(&commitFeeRate, "tx-fee-rate", 0, "fee rate override in sompi/byte")
	krc20CommitCmd.MarkFlagRequired("operation-json")

	krc20RevealCmd.Flags().StringVar(&commitKeyHex, "key", "", "same key used for the commit")
	krc20RevealCmd.Flags().StringVar(&commitKeyWIF, "key-wif", "", "same key used for the commit, in base58check WIF form")
	krc20RevealCmd.Flags().BoolVar(&commitUseECDSA, "ecdsa", false, "must match the commit's --ecdsa choice")
	krc20RevealCmd.Flags().StringVar(&commitOperationRaw, "operation-json", "", "the same operation JSON used for the commit (required)")
	krc20RevealCmd.Flags().StringVar(&revealCommitTxID, "commit-txid", "", "the commit transaction's id (required)")
	krc20RevealCmd.Flags().Uint32Var(&revealCommitIndex, "commit-index", 0, "the commit output's index")
	krc20RevealCmd.Flags().Uint64Var(&revealCommitAmount, "commit-amount", 0, "the commit output's amount in sompi (required)")
	krc20RevealCmd.Flags().StringVar(&revealOp, "op", "", "deploy, mint, transfer, burn, list, or send (required)")
	krc20RevealCmd.Flags().StringVar(&revealTo, "to", "", "recipient address for the reveal output (required)")
	krc20RevealCmd.Flags().Uint64Var(&revealNetworkFee, "network-fee", 0, "additional network fee in sompi on top of the protocol reveal fee")
	krc20RevealCmd.MarkFlagRequired("operation-json")
	krc20RevealCmd.MarkFlagRequired("commit-txid")
	krc20RevealCmd.MarkFlagRequired("commit-amount")
	krc20RevealCmd.MarkFlagRequired("op")
	krc20RevealCmd.MarkFlagRequired("to")
}

func krc20Signer(keyHex, keyWIF string, useECDSA bool) (oracle.Signer, []byte, error) {
	key, err := resolveKey(keyHex, keyWIF)
	if err != nil {
		return nil, nil, err
	}
	if useECDSA {
		s := oracle.NewLocalECDSASigner(key)
		pub, err := s.PublicKey(context.Background(), nil)
		return s, pub, err
	}
	s := oracle.NewLocalSchnorrSigner(key)
	pub, err := s.PublicKey(context.Background(), nil)
	return s, pub, err
}

func runKRC20Commit(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	signer, pubkey, err := krc20Signer(commitKeyHex, commitKeyWIF, commitUseECDSA)
	if err != nil {
		return err
	}

	addrType := address.Schnorr
	if commitUseECDSA {
		addrType = address.ECDSA
	}
	fromAddr, err := address.Encode(pubkey, addrType, addressPrefix())
	if err != nil {
		return err
	}

	client := rpcclient.New(apiHost)
	utxos, err := client.FetchUTXOs(ctx, fromAddr)
	if err != nil {
		return err
	}

	cfg := txbuilder.Config{APIHost: apiHost, Network: network, MaxFee: maxFee, DefaultFeeRate: defaultFeeRate}
	fromInfo, err := address.Decode(fromAddr)
	if err != nil {
		return err
	}

	pair, plan, err := krc20.BuildCommit(cfg, pubkey, commitUseECDSA, []byte(commitOperationRaw), utxos, fromInfo.ScriptPubKey, commitAmountFlag, commitFeeRate)
	if err != nil {
		return err
	}

	specs := make([]txbuilder.InputSignSpec, len(plan.SpentUTXOs))
	for i := range specs {
		specs[i] = txbuilder.InputSignSpec{UseECDSA: commitUseECDSA}
	}
	if err := txbuilder.SignInputs(ctx, plan.Transaction, plan.SpentUTXOs, specs, signer, byte(sighash.All)); err != nil {
		return err
	}

	wireJSON, err := plan.Transaction.ToWireJSON()
	if err != nil {
		return err
	}

	fmt.Println(string(wireJSON))
	fmt.Fprintf(cmd.ErrOrStderr(), "redeem script: %s\n", hex.EncodeToString(pair.RedeemScript))
	fmt.Fprintf(cmd.ErrOrStderr(), "commit scriptPubKey: %s\n", hex.EncodeToString(pair.CommitScriptPubKey))
	fmt.Fprintf(cmd.ErrOrStderr(), "commit amount: %d sompi, fee: %d sompi\n", pair.CommitAmount, plan.Fee)
	return nil
}

func runKRC20Reveal(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	signer, pubkey, err := krc20Signer(commitKeyHex, commitKeyWIF, commitUseECDSA)
	if err != nil {
		return err
	}

	// Rebuild the same redeem script and P2SH scriptPubKey the commit
	// used — both are pure functions of (pubkey, useECDSA, operation
	// JSON), so recomputing them here needs no funding UTXOs.
	envelope := script.BuildEnvelope("kasplex", []byte(commitOperationRaw), nil)
	redeemScript := script.BuildRedeemScript(pubkey, envelope, commitUseECDSA)
	commitSPK, _ := script.P2SHCommitScriptPubKey(redeemScript)
	pair := &krc20.CommitRevealPair{
		OperationJSON:      []byte(commitOperationRaw),
		RedeemScript:       redeemScript,
		CommitScriptPubKey: commitSPK,
		UseECDSA:           commitUseECDSA,
	}

	toInfo, err := address.Decode(revealTo)
	if err != nil {
		return err
	}

	commitUTXO := tx.UTXO{
		Outpoint:        tx.Outpoint{TransactionID: revealCommitTxID, Index: revealCommitIndex},
		Amount:          revealCommitAmount,
		ScriptPublicKey: pair.CommitScriptPubKey,
	}

	revealTx, err := krc20.BuildReveal(pair, commitUTXO, revealOp, toInfo.ScriptPubKey, revealNetworkFee)
	if err != nil {
		return err
	}

	spec := txbuilder.InputSignSpec{UseECDSA: commitUseECDSA, RedeemScript: pair.RedeemScript}
	if err := txbuilder.SignInputs(ctx, revealTx, []tx.UTXO{commitUTXO}, []txbuilder.InputSignSpec{spec}, signer, byte(sighash.All)); err != nil {
		return err
	}

	wireJSON, err := revealTx.ToWireJSON()
	if err != nil {
		return err
	}
	fmt.Println(string(wireJSON))
	return nil
}
