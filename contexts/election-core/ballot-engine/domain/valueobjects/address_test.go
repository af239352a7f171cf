package valueobjects

import "testing"

func TestNewAddressNormalizesCase(t *testing.T) {
	lower, ok := NewAddress("0xabcdefabcdefabcdefabcdefabcdefabcdefabcd")
	if !ok {
		t.Fatal("lowercase address should parse")
	}
	upper, ok := NewAddress("  0xABCDEFABCDEFABCDEFABCDEFABCDEFABCDEFABCD ")
	if !ok {
		t.Fatal("uppercase address should parse")
	}
	if lower != upper {
		t.Fatalf("case variants must normalize to one identity: %s vs %s", lower, upper)
	}
}

func TestNewAddressRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{
		"",
		"voter-1",
		"0x123",
		"0xabcdefabcdefabcdefabcdefabcdefabcdefabcdzz",
	} {
		if _, ok := NewAddress(input); ok {
			t.Fatalf("expected %q to be rejected", input)
		}
	}
}
