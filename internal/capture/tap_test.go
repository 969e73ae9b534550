package capture

import "testing"

func TestTapKeepsMostRecent(t *testing.T) {
	tap := NewTap(4)
	tap.Write([]int16{1, 2, 3, 4, 5, 6})

	dst := make([]int16, 4)
	tap.Latest(dst)
	want := []int16{3, 4, 5, 6}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("Latest(4) = %v, want %v", dst, want)
		}
	}

	dst = make([]int16, 2)
	tap.Latest(dst)
	if dst[0] != 5 || dst[1] != 6 {
		t.Fatalf("Latest(2) = %v, want [5 6]", dst)
	}
}

func TestTapZeroPadsWhenUnderfilled(t *testing.T) {
	tap := NewTap(8)
	tap.Write([]int16{7})

	dst := []int16{9, 9, 9}
	tap.Latest(dst)
	if dst[0] != 0 || dst[1] != 0 || dst[2] != 7 {
		t.Fatalf("Latest(3) = %v, want [0 0 7]", dst)
	}
}

func TestTapClear(t *testing.T) {
	tap := NewTap(4)
	tap.Write([]int16{1, 2, 3})
	tap.Clear()

	dst := []int16{5, 5}
	tap.Latest(dst)
	if dst[0] != 0 || dst[1] != 0 {
		t.Fatalf("Latest() after Clear = %v, want zeros", dst)
	}
}
