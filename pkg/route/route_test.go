package route

import "testing"

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Route
		want bool
	}{
		{name: "SameName", a: Name("settings"), b: Name("settings"), want: true},
		{name: "DifferentName", a: Name("settings"), b: Name("profile"), want: false},
		{name: "SameDetail", a: Detail{Screen: "user", Arg: "42"}, b: Detail{Screen: "user", Arg: "42"}, want: true},
		{name: "DifferentArg", a: Detail{Screen: "user", Arg: "42"}, b: Detail{Screen: "user", Arg: "43"}, want: false},
		{name: "CrossKindSameKey", a: Name("user/42"), b: Detail{Screen: "user", Arg: "42"}, want: true},
		{name: "BothNil", a: nil, b: nil, want: true},
		{name: "LeftNil", a: nil, b: Name("settings"), want: false},
		{name: "RightNil", a: Name("settings"), b: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDetailKey(t *testing.T) {
	d := Detail{Screen: "album", Arg: "abc"}
	if got, want := d.Key(), "album/abc"; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}
