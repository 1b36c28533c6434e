// Command kaspatx is a CLI front end for the transaction-construction
// core: address encode/decode, building and signing a plain send, and
// building a KRC20 commit/reveal pair.
//
// Grounded in the teacher's cmd/root.go (a cobra root command plus a
// persistent --api-url flag, with Execute() as the single entry point
// main calls).
package main

func main() {
	Execute()
}
