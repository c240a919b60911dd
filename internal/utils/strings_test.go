package utils

import "testing"

func TestNormalizeHelpers(t *testing.T) {
	if got := NormalizeSpace("  Hà   Nội \t "); got != "Hà Nội" {
		t.Fatalf("NormalizeSpace = %q", got)
	}
	if got := NormalizeEmail(" An@Example.COM "); got != "an@example.com" {
		t.Fatalf("NormalizeEmail = %q", got)
	}
	if got := SafeFilenamePart("BK-12/ab cd"); got != "BK-12abcd" {
		t.Fatalf("SafeFilenamePart = %q", got)
	}
	if got := SafeFilenamePart("//"); got != "x" {
		t.Fatalf("SafeFilenamePart empty = %q", got)
	}
}

func TestFoldVietnamese(t *testing.T) {
	cases := map[string]string{
		"Hà Nội":          "Ha Noi",
		"Đà Nẵng":         "Da Nang",
		"Bến xe Mỹ Đình":  "Ben xe My Dinh",
		"Nguyễn Thị Ánh":  "Nguyen Thi Anh",
		"plain ascii 123": "plain ascii 123",
	}
	for in, want := range cases {
		if got := FoldVietnamese(in); got != want {
			t.Fatalf("FoldVietnamese(%q) = %q, want %q", in, got, want)
		}
	}
}
