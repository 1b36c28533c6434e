package oracle

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/blacktrace/kaspa-txcore/kerrors"
	"github.com/blacktrace/kaspa-txcore/primitives"
)

// signRequest and signReply are the NATS request/reply payloads. Kept
// as small hex-encoded JSON structs, matching the teacher's
// settlement-message JSON shape (blacktrace-go/types.go Message).
type signRequest struct {
	Digest         string `json:"digest"`
	DerivationPath string `json:"derivationPath"`
}

type signReply struct {
	Signature string `json:"signature"`
	Error     string `json:"error,omitempty"`
}

// NATSSigner delegates signing to a remote oracle over a NATS
// request/reply subject, generalizing the teacher's settlement
// message-bus pattern (services/settlement/main.go publishes
// settlement instructions and awaits a correlated reply) into a
// synchronous signing RPC.
type NATSSigner struct {
	conn    *nats.Conn
	subject string
	timeout time.Duration
}

// NewNATSSigner binds to subject on an already-connected NATS client.
// timeout bounds how long Sign waits for a reply.
func NewNATSSigner(conn *nats.Conn, subject string, timeout time.Duration) *NATSSigner {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &NATSSigner{conn: conn, subject: subject, timeout: timeout}
}

func (s *NATSSigner) Sign(ctx context.Context, digest [32]byte, path DerivationPath) ([64]byte, error) {
	var zero [64]byte

	req := signRequest{
		Digest:         primitives.EncodeHex(digest[:]),
		DerivationPath: primitives.EncodeHex(path.Encode()),
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return zero, &kerrors.InternalError{Message: "marshal sign request: " + err.Error()}
	}

	deadline := s.timeout
	if dl, ok := ctx.Deadline(); ok {
		if remaining := time.Until(dl); remaining < deadline {
			deadline = remaining
		}
	}

	msg, err := s.conn.Request(s.subject, payload, deadline)
	if err != nil {
		return zero, &kerrors.NetworkError{Message: "signing oracle request failed: " + err.Error()}
	}

	var reply signReply
	if err := json.Unmarshal(msg.Data, &reply); err != nil {
		return zero, &kerrors.InternalError{Message: "unmarshal sign reply: " + err.Error()}
	}
	if reply.Error != "" {
		return zero, &kerrors.CryptographicError{Message: reply.Error}
	}

	sigBytes, err := primitives.DecodeHex(reply.Signature)
	if err != nil || len(sigBytes) != 64 {
		return zero, &kerrors.InternalError{Message: "signing oracle returned a malformed signature"}
	}

	var out [64]byte
	copy(out[:], sigBytes)
	return out, nil
}
