package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blacktrace/kaspa-txcore/address"
)

var addressCmd = &cobra.Command{
	Use:   "address",
	Short: "Encode and decode Kaspa addresses",
}

var addrEncodeType string

var addressEncodeCmd = &cobra.Command{
	Use:   "encode <payload-hex>",
	Short: "Encode a payload (pubkey or script hash) into a CashAddr string",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("decode payload hex: %w", err)
		}

		var t address.Type
		switch addrEncodeType {
		case "schnorr":
			t = address.Schnorr
		case "ecdsa":
			t = address.ECDSA
		case "p2sh":
			t = address.P2SH
		default:
			return fmt.Errorf("unknown address type %q (want schnorr, ecdsa, or p2sh)", addrEncodeType)
		}

		prefix := addressPrefix()
		addr, err := address.Encode(payload, t, prefix)
		if err != nil {
			return err
		}
		fmt.Println(addr)
		return nil
	},
}

var addressDecodeCmd = &cobra.Command{
	Use:   "decode <address>",
	Short: "Decode a CashAddr string and print its payload and scriptPubKey",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := address.Decode(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("prefix:          %s\n", info.Prefix)
		fmt.Printf("type:            %d\n", info.Type)
		fmt.Printf("payload:         %s\n", hex.EncodeToString(info.Payload))
		fmt.Printf("scriptPublicKey: %s\n", hex.EncodeToString(info.ScriptPubKey))
		return nil
	},
}

func addressPrefix() string {
	if network == "testnet" {
		return address.TestnetPrefix
	}
	return address.MainnetPrefix
}

func init() {
	rootCmd.AddCommand(addressCmd)
	addressCmd.AddCommand(addressEncodeCmd)
	addressCmd.AddCommand(addressDecodeCmd)

	addressEncodeCmd.Flags().StringVar(&addrEncodeType, "type", "schnorr", "payload type: schnorr, ecdsa, or p2sh")
}
