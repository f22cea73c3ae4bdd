package linguaflow

import "testing"

// FuzzRun drives arbitrary text through the whole pipeline. Any input may be
// rejected with an error, but nothing may panic.
func FuzzRun(f *testing.F) {
	f.Add("5 + 3 * 2")
	f.Add("sum of 5 and 3 - 2")
	f.Add("add these numbers: [1, 2, 3]")
	f.Add("5 multiply sum of 2 and 3")
	f.Add("--5.5 / (0)")
	f.Add("1.2.3")
	f.Add("((")
	f.Add("sum of and")
	f.Fuzz(func(t *testing.T, src string) {
		v, err := Run("fuzz", src, DefaultWords())
		if err == nil {
			// A successful run must render both ways without panicking.
			_ = v.String()
			e, err := ParseString("fuzz", src, DefaultWords())
			if err != nil {
				t.Fatalf("reparse failed: %v", err)
			}
			_ = e.String()
			_ = e.Dump()
		} else {
			_ = Annotate(err)
		}
	})
}
