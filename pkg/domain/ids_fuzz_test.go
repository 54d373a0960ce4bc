package domain

import (
	"testing"
)

// FuzzParseUserID checks that parsing never panics and that accepted values
// round-trip through their string form.
func FuzzParseUserID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add("550e8400-e29b-41d4-a716-446655440000\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseUserID(input)
		if err != nil {
			return
		}
		roundTrip, err := ParseUserID(id.String())
		if err != nil {
			t.Errorf("valid ID failed round-trip: %v", err)
		}
		if roundTrip != id {
			t.Error("round-trip changed ID value")
		}
	})
}

// FuzzParseModuleID checks the positive-integer invariant over arbitrary
// input.
func FuzzParseModuleID(f *testing.F) {
	f.Add("")
	f.Add("1")
	f.Add("0")
	f.Add("-7")
	f.Add("999999999999999999999")
	f.Add("3.5")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseModuleID(input)
		if err == nil && id < 1 {
			t.Errorf("accepted non-positive module id %d from %q", id, input)
		}
	})
}
