package diag

import "testing"

func TestAll_EnablesEveryFlag(t *testing.T) {
	tr := All()

	if !tr.Opt || !tr.Pass || !tr.Tokens || !tr.Thread {
		t.Fatalf("expected every flag set, got %+v", tr)
	}
}

func TestThreadSpawned_IDsAreUnique(t *testing.T) {
	tr := Trace{}

	first := tr.ThreadSpawned("scanner")
	second := tr.ThreadSpawned("parser")

	if first == second {
		t.Fatalf("expected distinct thread ids, got %d and %d", first, second)
	}
}

func TestTraceMethods_NoopWhenDisabled(t *testing.T) {
	tr := Trace{}

	// None of these should panic even with every flag off; they're dead
	// calls in that configuration.
	tr.PassEntered("scan")
	tr.PassExited("scan")
	tr.Token("IDENT foo")
	tr.Option("verbose", true)
}
