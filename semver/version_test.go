package semver

import "testing"

func TestCompare(t *testing.T) {
	type testCase struct {
		a, b Version
		want int
	}

	var cases = []testCase{
		testCase{a: V1_6_0, b: V1_6_0, want: 0},
		testCase{a: V1_6_0, b: V1_7_1, want: -1},
		testCase{a: V1_17_0, b: V1_13_2, want: 1},
		testCase{a: V1_18_0FW, b: V1_18_0EP, want: 0}, // variant does not order
	}

	for _, c := range cases {
		if got := c.a.Compare(c.b); got != c.want {
			t.Errorf("Compare(%s, %s) = %d, want %d",
				c.a, c.b, got, c.want)
		}
	}
} // func TestCompare(t *testing.T)

func TestString(t *testing.T) {
	if s := V1_13_2.String(); s != "1.13.2" {
		t.Errorf("String() = %q, want %q", s, "1.13.2")
	}

	if s := V1_18_0FW.String(); s != "1.18.0_fw" {
		t.Errorf("String() = %q, want %q", s, "1.18.0_fw")
	}
} // func TestString(t *testing.T)

func TestIsAmbiguous(t *testing.T) {
	if !IsAmbiguous(1, 18, 0) {
		t.Error("expected (1, 18, 0) to be ambiguous")
	}

	if IsAmbiguous(1, 17, 0) {
		t.Error("did not expect (1, 17, 0) to be ambiguous")
	}
} // func TestIsAmbiguous(t *testing.T)

func TestSupported(t *testing.T) {
	for _, v := range All {
		if !Supported(v) {
			t.Errorf("expected %s to be supported", v)
		}
	}

	if Supported(Version{9, 9, 9, ""}) {
		t.Error("did not expect 9.9.9 to be supported")
	}
} // func TestSupported(t *testing.T)
