// Package krc20 formats KRC20 protocol operation JSON and assembles the
// commit/reveal transaction pairs that carry it on-chain via the data
// envelope in package script.
//
// Grounded in the teacher's fixed-field-order JSON message pattern
// (blacktrace-go/types.go Message/OrderAnnouncement) — hand-written
// wire structs with json tags in declaration order, rather than
// building JSON from a map.
package krc20

import (
	"encoding/json"
	"strings"

	"github.com/blacktrace/kaspa-txcore/kerrors"
)

const protocol = "krc-20"

func requireNonEmpty(field, value string) error {
	if value == "" {
		return &kerrors.InvalidTransaction{Message: "krc20: missing required field " + field}
	}
	return nil
}

// DeployMintParams formats a mint-mode deploy operation.
type DeployMintParams struct {
	Tick string
	Max  string
	Lim  string
	To   string // optional
	Dec  string // optional
	Pre  string // optional
}

type wireDeployMint struct {
	P    string `json:"p"`
	Op   string `json:"op"`
	Tick string `json:"tick"`
	Max  string `json:"max"`
	Lim  string `json:"lim"`
	To   string `json:"to,omitempty"`
	Dec  string `json:"dec,omitempty"`
	Pre  string `json:"pre,omitempty"`
}

// DeployMint renders a mint-mode deploy operation's canonical JSON.
func DeployMint(p DeployMintParams) ([]byte, error) {
	for _, f := range [][2]string{{"tick", p.Tick}, {"max", p.Max}, {"lim", p.Lim}} {
		if err := requireNonEmpty(f[0], f[1]); err != nil {
			return nil, err
		}
	}
	return json.Marshal(wireDeployMint{
		P: protocol, Op: "deploy",
		Tick: p.Tick, Max: p.Max, Lim: p.Lim,
		To: p.To, Dec: p.Dec, Pre: p.Pre,
	})
}

// DeployIssueParams formats an issue-mode deploy operation.
type DeployIssueParams struct {
	Mod  string
	Name string
	Max  string
	To   string // optional
	Dec  string // optional
	Pre  string // optional
}

type wireDeployIssue struct {
	P    string `json:"p"`
	Op   string `json:"op"`
	Mod  string `json:"mod"`
	Name string `json:"name"`
	Max  string `json:"max"`
	To   string `json:"to,omitempty"`
	Dec  string `json:"dec,omitempty"`
	Pre  string `json:"pre,omitempty"`
}

// DeployIssue renders an issue-mode deploy operation's canonical JSON.
func DeployIssue(p DeployIssueParams) ([]byte, error) {
	for _, f := range [][2]string{{"mod", p.Mod}, {"name", p.Name}, {"max", p.Max}} {
		if err := requireNonEmpty(f[0], f[1]); err != nil {
			return nil, err
		}
	}
	return json.Marshal(wireDeployIssue{
		P: protocol, Op: "deploy",
		Mod: p.Mod, Name: p.Name, Max: p.Max,
		To: p.To, Dec: p.Dec, Pre: p.Pre,
	})
}

type wireMint struct {
	P    string `json:"p"`
	Op   string `json:"op"`
	Tick string `json:"tick"`
	To   string `json:"to,omitempty"`
}

// Mint renders a mint operation's canonical JSON. to is optional.
func Mint(tick, to string) ([]byte, error) {
	if err := requireNonEmpty("tick", tick); err != nil {
		return nil, err
	}
	return json.Marshal(wireMint{P: protocol, Op: "mint", Tick: tick, To: to})
}

type wireTransfer struct {
	P    string `json:"p"`
	Op   string `json:"op"`
	Tick string `json:"tick"`
	Amt  string `json:"amt"`
	To   string `json:"to"`
}

// Transfer renders a transfer operation's canonical JSON.
func Transfer(tick, amt, to string) ([]byte, error) {
	for _, f := range [][2]string{{"tick", tick}, {"amt", amt}, {"to", to}} {
		if err := requireNonEmpty(f[0], f[1]); err != nil {
			return nil, err
		}
	}
	return json.Marshal(wireTransfer{P: protocol, Op: "transfer", Tick: tick, Amt: amt, To: to})
}

type wireBurn struct {
	P    string `json:"p"`
	Op   string `json:"op"`
	Tick string `json:"tick"`
	Amt  string `json:"amt"`
}

// Burn renders a burn operation's canonical JSON.
func Burn(tick, amt string) ([]byte, error) {
	for _, f := range [][2]string{{"tick", tick}, {"amt", amt}} {
		if err := requireNonEmpty(f[0], f[1]); err != nil {
			return nil, err
		}
	}
	return json.Marshal(wireBurn{P: protocol, Op: "burn", Tick: tick, Amt: amt})
}

type wireList struct {
	P    string `json:"p"`
	Op   string `json:"op"`
	Tick string `json:"tick"`
	Amt  string `json:"amt"`
}

// List renders a list operation's canonical JSON; tick is lowercased.
func List(tick, amt string) ([]byte, error) {
	for _, f := range [][2]string{{"tick", tick}, {"amt", amt}} {
		if err := requireNonEmpty(f[0], f[1]); err != nil {
			return nil, err
		}
	}
	return json.Marshal(wireList{P: protocol, Op: "list", Tick: strings.ToLower(tick), Amt: amt})
}

type wireSend struct {
	P    string `json:"p"`
	Op   string `json:"op"`
	Tick string `json:"tick"`
}

// Send renders a send operation's canonical JSON; tick is lowercased.
func Send(tick string) ([]byte, error) {
	if err := requireNonEmpty("tick", tick); err != nil {
		return nil, err
	}
	return json.Marshal(wireSend{P: protocol, Op: "send", Tick: strings.ToLower(tick)})
}

type wireIssue struct {
	P   string `json:"p"`
	Op  string `json:"op"`
	Ca  string `json:"ca"`
	Amt string `json:"amt"`
	To  string `json:"to,omitempty"`
}

// Issue renders an issue operation's canonical JSON. to is optional.
func Issue(ca, amt, to string) ([]byte, error) {
	for _, f := range [][2]string{{"ca", ca}, {"amt", amt}} {
		if err := requireNonEmpty(f[0], f[1]); err != nil {
			return nil, err
		}
	}
	return json.Marshal(wireIssue{P: protocol, Op: "issue", Ca: ca, Amt: amt, To: to})
}
