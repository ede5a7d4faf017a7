package nucleotide

import "testing"

func TestNormalize(t *testing.T) {
	got, _, ok := Normalize("acGt")
	if !ok || got != "ACGT" {
		t.Fatalf("expected ACGT, got %q (ok=%v)", got, ok)
	}
	for _, bad := range []string{"ACNT", "AC-T", "ACUT", "AC T"} {
		if _, pos, ok := Normalize(bad); ok || pos != 2 {
			t.Fatalf("expected %q to fail at position 2, got pos=%d ok=%v", bad, pos, ok)
		}
	}
}

func TestReverseComplement(t *testing.T) {
	cases := map[string]string{
		"":              "",
		"A":             "T",
		"CGT":           "ACG",
		"ACGTACC":       "GGTACGT",
		"TCGATCGATCGAT": "ATCGATCGATCGA",
	}
	for in, want := range cases {
		if got := ReverseComplement(in); got != want {
			t.Fatalf("ReverseComplement(%q) = %q, want %q", in, got, want)
		}
		if got := ReverseComplement(ReverseComplement(in)); got != in {
			t.Fatalf("double reverse complement of %q gave %q", in, got)
		}
	}
}

func TestIsPalindrome(t *testing.T) {
	if !IsPalindrome("ACGT") {
		t.Fatalf("ACGT is its own reverse complement")
	}
	if IsPalindrome("CGT") {
		t.Fatalf("CGT is not its own reverse complement")
	}
}
