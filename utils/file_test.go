package utils

import (
	"reflect"
	"testing"
)

func TestIsRasterImage(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"IMG_0001.jpg", true},
		{"IMG_0001.JPEG", true},
		{"shot.png", true},
		{"scan.tiff", true},
		{"video.mp4", false},
		{"notes.txt", false},
		{"noextension", false},
	}
	for _, tc := range cases {
		if got := IsRasterImage(tc.name); got != tc.want {
			t.Errorf("IsRasterImage(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{"dir/sub/photo.jpg", "photo.jpg"},
		{"  spaced.jpg  ", "spaced.jpg"},
		{"..", ""},
	}
	for _, tc := range cases {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSortFilenamesNatural(t *testing.T) {
	names := []string{"IMG_10.jpg", "IMG_2.jpg", "IMG_1.jpg"}
	SortFilenamesNatural(names)

	want := []string{"IMG_1.jpg", "IMG_2.jpg", "IMG_10.jpg"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("sorted = %v, want %v", names, want)
	}
}
