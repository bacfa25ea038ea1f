package search

import (
	"reflect"
	"testing"
)

func rawVersions(candidates []Candidate) []string {
	raw := make([]string, len(candidates))
	for i, c := range candidates {
		raw[i] = c.Raw
	}
	return raw
}

func TestOrderCandidates_StableBeforePrerelease(t *testing.T) {
	got, err := orderCandidates([]string{"1.0.0", "1.0.0-beta.1", "0.9.0", "2.0.0"}, "1.0.0")
	if err != nil {
		t.Fatalf("orderCandidates failed: %v", err)
	}
	want := []string{"1.0.0", "2.0.0", "1.0.0-beta.1"}
	if !reflect.DeepEqual(rawVersions(got), want) {
		t.Errorf("order = %v, want %v", rawVersions(got), want)
	}
}

func TestOrderCandidates_FloorKeepsPrereleaseOfFloor(t *testing.T) {
	// The floor compares against the release core: 1.0.0-beta.1 shares its
	// core with floor 1.0.0 and stays, while 0.9.0-rc.1 is below it and goes.
	got, err := orderCandidates([]string{"0.9.0-rc.1", "1.0.0-beta.1", "1.0.0", "1.1.0-alpha.1"}, "1.0.0")
	if err != nil {
		t.Fatalf("orderCandidates failed: %v", err)
	}
	want := []string{"1.0.0", "1.0.0-beta.1", "1.1.0-alpha.1"}
	if !reflect.DeepEqual(rawVersions(got), want) {
		t.Errorf("order = %v, want %v", rawVersions(got), want)
	}
}

func TestOrderCandidates_NoFloor(t *testing.T) {
	got, err := orderCandidates([]string{"2.0.0", "0.9.0", "1.5.0"}, "")
	if err != nil {
		t.Fatalf("orderCandidates failed: %v", err)
	}
	want := []string{"0.9.0", "1.5.0", "2.0.0"}
	if !reflect.DeepEqual(rawVersions(got), want) {
		t.Errorf("order = %v, want %v", rawVersions(got), want)
	}
}

func TestOrderCandidates_PartialFloor(t *testing.T) {
	// Floor "1" normalizes to 1.0.0
	got, err := orderCandidates([]string{"0.9.0", "1.0.0", "1.1.0"}, "1")
	if err != nil {
		t.Fatalf("orderCandidates failed: %v", err)
	}
	want := []string{"1.0.0", "1.1.0"}
	if !reflect.DeepEqual(rawVersions(got), want) {
		t.Errorf("order = %v, want %v", rawVersions(got), want)
	}
}

func TestOrderCandidates_Empty(t *testing.T) {
	got, err := orderCandidates([]string{"0.1.0", "0.2.0"}, "5.0.0")
	if err != nil {
		t.Fatalf("orderCandidates failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("candidates = %v, want none above the floor", rawVersions(got))
	}
}

func TestOrderCandidates_BadFloor(t *testing.T) {
	if _, err := orderCandidates([]string{"1.0.0"}, "not-a-version"); err == nil {
		t.Error("orderCandidates accepted an unparsable floor")
	}
}

func TestOrderCandidates_SkipsUnparsableVersions(t *testing.T) {
	got, err := orderCandidates([]string{"1.0.0", "garbage", "2.0.0"}, "")
	if err != nil {
		t.Fatalf("orderCandidates failed: %v", err)
	}
	want := []string{"1.0.0", "2.0.0"}
	if !reflect.DeepEqual(rawVersions(got), want) {
		t.Errorf("order = %v, want %v", rawVersions(got), want)
	}
}

func TestOrderCandidates_Deterministic(t *testing.T) {
	versions := []string{"3.0.0", "1.0.0", "2.0.0-rc.1", "2.0.0", "1.5.0-alpha"}
	first, err := orderCandidates(versions, "")
	if err != nil {
		t.Fatalf("orderCandidates failed: %v", err)
	}
	for range 5 {
		again, err := orderCandidates(versions, "")
		if err != nil {
			t.Fatalf("orderCandidates failed: %v", err)
		}
		if !reflect.DeepEqual(rawVersions(first), rawVersions(again)) {
			t.Fatalf("ordering not deterministic: %v vs %v", rawVersions(first), rawVersions(again))
		}
	}
}
