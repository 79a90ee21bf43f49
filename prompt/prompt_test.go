package prompt

import (
	"strings"
	"testing"
)

func TestGenerateIsPure(t *testing.T) {
	a := Generate("x", true, false)
	b := Generate("x", true, false)
	if a != b {
		t.Fatal("Generate is not deterministic")
	}
}

func TestGenerateAppendsUserTextVerbatim(t *testing.T) {
	const text = "make it cyberpunk, neon rain"
	got := Generate(text, false, false)
	if !strings.HasSuffix(got, text) {
		t.Errorf("user text not appended verbatim at the end:\n%s", got)
	}
}

func TestGenerateSelectsDistinctTemplates(t *testing.T) {
	seen := map[string]bool{}
	for _, ref := range []bool{false, true} {
		for _, color := range []bool{false, true} {
			body := Generate("", ref, color)
			if seen[body] {
				t.Errorf("duplicate template for hasReference=%v colorMode=%v", ref, color)
			}
			seen[body] = true
		}
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 distinct generate templates, got %d", len(seen))
	}
}

func TestGenerateEmptyUserText(t *testing.T) {
	got := Generate("   ", false, true)
	if strings.Contains(got, "User instructions:") {
		t.Error("blank user text should not produce an instructions suffix")
	}
}

func TestGenerateDepthMentionsDepthMap(t *testing.T) {
	got := Generate("", false, false)
	if !strings.Contains(got, "DEPTH MAP") {
		t.Error("depth template should describe the depth map")
	}
	if got2 := Generate("", false, true); strings.Contains(got2, "DEPTH MAP") {
		t.Error("color template should not describe a depth map")
	}
}

func TestEditSelectsDistinctTemplates(t *testing.T) {
	seen := map[string]bool{}
	for _, mask := range []bool{false, true} {
		for _, ref := range []bool{false, true} {
			body := Edit("", mask, ref)
			if seen[body] {
				t.Errorf("duplicate template for hasMask=%v hasReference=%v", mask, ref)
			}
			seen[body] = true
		}
	}
	if len(seen) != 4 {
		t.Errorf("expected 4 distinct edit templates, got %d", len(seen))
	}
}

func TestEditFinalizeSentinel(t *testing.T) {
	got := Edit(FinalizeSentinel, true, true)
	if !strings.Contains(got, "FINALIZE") {
		t.Error("sentinel should select the finalize template")
	}
	if strings.Contains(got, "User instructions:") {
		t.Error("finalize template should not carry an instructions suffix")
	}
	// Sentinel detection tolerates surrounding whitespace.
	if Edit("  "+FinalizeSentinel+"\n", false, false) != got {
		t.Error("whitespace around the sentinel should not change the result")
	}
}

func TestEditAppendsUserTextVerbatim(t *testing.T) {
	const text = "replace the sky with aurora"
	got := Edit(text, true, false)
	if !strings.HasSuffix(got, text) {
		t.Errorf("user text not appended verbatim at the end:\n%s", got)
	}
	if !strings.Contains(got, "MASK") {
		t.Error("mask template expected")
	}
}
