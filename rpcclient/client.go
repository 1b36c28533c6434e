// Package rpcclient talks to a Kaspa REST node: fetching a UTXO set and
// broadcasting a signed transaction.
//
// Grounded in the teacher's blacktrace-go/settlement-service/zcash
// Client.call — same shape (build request, set headers, do, read body,
// unmarshal, check for an error field) — generalized from a single
// JSON-RPC call method to Kaspa's two plain REST endpoints.
package rpcclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/blacktrace/kaspa-txcore/kerrors"
	"github.com/blacktrace/kaspa-txcore/primitives"
	"github.com/blacktrace/kaspa-txcore/tx"
)

// Client is a thin HTTP client bound to one Kaspa node's API host.
type Client struct {
	apiHost string
	http    *http.Client
}

// New returns a Client talking to apiHost (e.g. "api.kaspa.org").
func New(apiHost string) *Client {
	return &Client{apiHost: apiHost, http: &http.Client{}}
}

// NewWithHTTPClient lets callers supply their own *http.Client (for
// custom timeouts, proxies, or test transports).
func NewWithHTTPClient(apiHost string, httpClient *http.Client) *Client {
	return &Client{apiHost: apiHost, http: httpClient}
}

// rawUTXOEntry mirrors the node's response shape for one UTXO before
// the tolerant amount parsing pass.
type rawUTXOEntry struct {
	Outpoint struct {
		TransactionID string `json:"transactionId"`
		Index         uint32 `json:"index"`
	} `json:"outpoint"`
	UTXOEntry struct {
		Amount          json.RawMessage `json:"amount"`
		ScriptPublicKey struct {
			Version         uint16 `json:"version"`
			ScriptPublicKey string `json:"scriptPublicKey"`
		} `json:"scriptPublicKey"`
		IsCoinbase bool `json:"isCoinbase"`
	} `json:"utxoEntry"`
}

// parseAmount accepts amount as a JSON number, a bare JSON string, or
// the first element of a single-element JSON string array — the three
// shapes SPEC_FULL.md §5 says a Kaspa node may use — and rejects
// anything else.
func parseAmount(raw json.RawMessage) (uint64, error) {
	var asNumber uint64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return asNumber, nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return strconv.ParseUint(asString, 10, 64)
	}

	var asArray []string
	if err := json.Unmarshal(raw, &asArray); err == nil {
		if len(asArray) != 1 {
			return 0, &kerrors.InternalError{Message: "amount array must have exactly one element"}
		}
		return strconv.ParseUint(asArray[0], 10, 64)
	}

	return 0, &kerrors.InternalError{Message: "amount field has an unrecognized shape"}
}

// FetchUTXOs retrieves the UTXO set for address from the node.
func (c *Client) FetchUTXOs(ctx context.Context, address string) ([]tx.UTXO, error) {
	url := fmt.Sprintf("https://%s/addresses/%s/utxos", c.apiHost, address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &kerrors.InternalError{Message: "build UTXO request: " + err.Error()}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &kerrors.NetworkError{Message: "UTXO request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &kerrors.NetworkError{Message: "reading UTXO response: " + err.Error(), StatusCode: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &kerrors.NetworkError{Message: "node returned non-200 for UTXO fetch", StatusCode: resp.StatusCode}
	}

	var rawEntries []rawUTXOEntry
	if err := json.Unmarshal(body, &rawEntries); err != nil {
		return nil, &kerrors.InternalError{Message: "parse UTXO response: " + err.Error()}
	}

	utxos := make([]tx.UTXO, 0, len(rawEntries))
	for _, e := range rawEntries {
		if e.UTXOEntry.IsCoinbase {
			continue
		}
		amount, err := parseAmount(e.UTXOEntry.Amount)
		if err != nil {
			return nil, err
		}
		scriptBytes, err := decodeScriptHex(e.UTXOEntry.ScriptPublicKey.ScriptPublicKey)
		if err != nil {
			return nil, err
		}
		utxos = append(utxos, tx.UTXO{
			Outpoint: tx.Outpoint{
				TransactionID: e.Outpoint.TransactionID,
				Index:         e.Outpoint.Index,
			},
			Amount:          amount,
			ScriptVersion:   e.UTXOEntry.ScriptPublicKey.Version,
			ScriptPublicKey: scriptBytes,
			Address:         address,
		})
	}
	return utxos, nil
}

// BroadcastTransaction POSTs a signed transaction's wire JSON to the
// node and returns the broadcast transaction id, tolerating whichever
// of the three response key names (transactionId, txid, id) the node
// uses.
func (c *Client) BroadcastTransaction(ctx context.Context, transaction *tx.Transaction) (string, error) {
	wireJSON, err := transaction.ToWireJSON()
	if err != nil {
		return "", &kerrors.InternalError{Message: "serialize transaction: " + err.Error()}
	}

	url := fmt.Sprintf("https://%s/transactions", c.apiHost)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(wireJSON))
	if err != nil {
		return "", &kerrors.InternalError{Message: "build broadcast request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &kerrors.NetworkError{Message: "broadcast request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &kerrors.NetworkError{Message: "reading broadcast response: " + err.Error(), StatusCode: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &kerrors.NetworkError{Message: "node rejected broadcast: " + string(body), StatusCode: resp.StatusCode}
	}

	var generic map[string]interface{}
	if err := json.Unmarshal(body, &generic); err != nil {
		return "", &kerrors.InternalError{Message: "parse broadcast response: " + err.Error()}
	}
	for _, key := range []string{"transactionId", "txid", "id"} {
		if v, ok := generic[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				log.Printf("rpcclient: broadcast accepted by %s, id=%s", c.apiHost, s)
				return s, nil
			}
		}
	}
	return "", &kerrors.InternalError{Message: "broadcast response carried no recognized transaction id field"}
}

func decodeScriptHex(s string) ([]byte, error) {
	out, err := primitives.DecodeHex(s)
	if err != nil {
		return nil, &kerrors.InternalError{Message: "invalid scriptPublicKey hex: " + err.Error()}
	}
	return out, nil
}
