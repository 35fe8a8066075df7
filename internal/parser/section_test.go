package parser

import "testing"

func TestSectionPolicy_EmptyAcceptsEverything(t *testing.T) {
	t.Parallel()

	var p SectionPolicy
	got, ok := p.Normalize("  Basement  ")
	if !ok || got != "Basement" {
		t.Fatalf("Normalize = %q ok=%v", got, ok)
	}
	if _, ok := p.Normalize("   "); ok {
		t.Fatalf("blank label must be rejected")
	}
}

func TestSectionPolicy_AllowList(t *testing.T) {
	t.Parallel()

	p := DefaultSectionPolicy()

	got, ok := p.Normalize("Roof")
	if !ok || got != "Roof" {
		t.Fatalf("Roof: %q ok=%v", got, ok)
	}
	// 大小写不敏感，归一到规范写法
	got, ok = p.Normalize("ground floor")
	if !ok || got != "Ground Floor" {
		t.Fatalf("ground floor: %q ok=%v", got, ok)
	}
	if _, ok := p.Normalize("Basement"); ok {
		t.Fatalf("Basement is not in the allow-list")
	}
}

func TestSectionPolicy_Alias(t *testing.T) {
	t.Parallel()

	p := DefaultSectionPolicy()
	got, ok := p.Normalize("First Floor")
	if !ok || got != "1st Floor" {
		t.Fatalf("First Floor: %q ok=%v", got, ok)
	}
}
