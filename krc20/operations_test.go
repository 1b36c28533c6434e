package krc20

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDeployMintFieldOrderAndShape(t *testing.T) {
	data, err := DeployMint(DeployMintParams{Tick: "KAST", Max: "21000000", Lim: "1000"})
	if err != nil {
		t.Fatalf("DeployMint: %v", err)
	}
	want := `{"p":"krc-20","op":"deploy","tick":"KAST","max":"21000000","lim":"1000"}`
	if string(data) != want {
		t.Fatalf("got %s want %s", data, want)
	}
}

func TestDeployMintOptionalFieldsIncludedWhenPresent(t *testing.T) {
	data, err := DeployMint(DeployMintParams{Tick: "KAST", Max: "21000000", Lim: "1000", Dec: "8"})
	if err != nil {
		t.Fatalf("DeployMint: %v", err)
	}
	if !strings.Contains(string(data), `"dec":"8"`) {
		t.Fatalf("expected dec field present: %s", data)
	}
}

func TestDeployMintRejectsMissingRequired(t *testing.T) {
	if _, err := DeployMint(DeployMintParams{Tick: "KAST"}); err == nil {
		t.Fatalf("expected error for missing max/lim")
	}
}

func TestDeployIssueFieldOrder(t *testing.T) {
	data, err := DeployIssue(DeployIssueParams{Mod: "fixed-cap", Name: "MyToken", Max: "1000000"})
	if err != nil {
		t.Fatalf("DeployIssue: %v", err)
	}
	want := `{"p":"krc-20","op":"deploy","mod":"fixed-cap","name":"MyToken","max":"1000000"}`
	if string(data) != want {
		t.Fatalf("got %s want %s", data, want)
	}
}

func TestMintOptionalTo(t *testing.T) {
	data, err := Mint("KAST", "")
	if err != nil {
		t.Fatalf("Mint: %v", err)
	}
	want := `{"p":"krc-20","op":"mint","tick":"KAST"}`
	if string(data) != want {
		t.Fatalf("got %s want %s", data, want)
	}
}

func TestTransferRequiresTo(t *testing.T) {
	if _, err := Transfer("KAST", "100", ""); err == nil {
		t.Fatalf("expected error for missing to")
	}
	data, err := Transfer("KAST", "100", "kaspa:abc")
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	want := `{"p":"krc-20","op":"transfer","tick":"KAST","amt":"100","to":"kaspa:abc"}`
	if string(data) != want {
		t.Fatalf("got %s want %s", data, want)
	}
}

// Property 6 from spec.md §8: list/send tick has no uppercase letters.
func TestListAndSendLowercaseTick(t *testing.T) {
	listData, err := List("KAST", "100")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var listObj map[string]interface{}
	json.Unmarshal(listData, &listObj)
	if listObj["tick"] != "kast" {
		t.Fatalf("expected lowercased tick in list, got %v", listObj["tick"])
	}

	sendData, err := Send("KAST")
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	var sendObj map[string]interface{}
	json.Unmarshal(sendData, &sendObj)
	if sendObj["tick"] != "kast" {
		t.Fatalf("expected lowercased tick in send, got %v", sendObj["tick"])
	}
}

func TestDeployPreservesTickCase(t *testing.T) {
	data, err := DeployMint(DeployMintParams{Tick: "KAST", Max: "1", Lim: "1"})
	if err != nil {
		t.Fatalf("DeployMint: %v", err)
	}
	if !strings.Contains(string(data), `"tick":"KAST"`) {
		t.Fatalf("expected deploy to preserve tick case, got %s", data)
	}
}

func TestIssueOptionalTo(t *testing.T) {
	data, err := Issue("caAddr123", "500", "")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	want := `{"p":"krc-20","op":"issue","ca":"caAddr123","amt":"500"}`
	if string(data) != want {
		t.Fatalf("got %s want %s", data, want)
	}
}

func TestBurnFieldsRequired(t *testing.T) {
	if _, err := Burn("KAST", ""); err == nil {
		t.Fatalf("expected error for missing amt")
	}
}

func TestNoWhitespaceInAnyOperation(t *testing.T) {
	data, _ := Transfer("KAST", "1", "kaspa:abc")
	if strings.ContainsAny(string(data), " \t\n") {
		t.Fatalf("expected compact JSON with no whitespace: %s", data)
	}
}
