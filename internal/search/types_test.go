package search

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestResultMarshal_EmptyDetails(t *testing.T) {
	body, err := json.Marshal(&Result{Message: "no match"})
	if err != nil {
		t.Fatalf("marshaling result: %v", err)
	}
	if !strings.Contains(string(body), `"details":[]`) {
		t.Errorf("body = %s, want details as an empty array", body)
	}
}

func TestResultMarshal_KeepsDetails(t *testing.T) {
	body, err := json.Marshal(&Result{Details: []string{"A@1.0.0 > C@2.0.0"}})
	if err != nil {
		t.Fatalf("marshaling result: %v", err)
	}
	var got Result
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshaling result: %v", err)
	}
	if len(got.Details) != 1 || got.Details[0] != "A@1.0.0 > C@2.0.0" {
		t.Errorf("body = %s, want the detail line preserved", body)
	}
}
