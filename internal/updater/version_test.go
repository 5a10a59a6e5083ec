package updater

import "testing"

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected int
		wantErr  bool
	}{
		{"older patch", "1.0.0", "1.0.1", -1, false},
		{"older major", "1.0.0", "2.0.0", -1, false},
		{"equal", "1.2.3", "1.2.3", 0, false},
		{"newer", "1.1.0", "1.0.0", 1, false},
		{"v prefix", "v1.0.0", "1.0.1", -1, false},
		{"prerelease before release", "1.0.0-beta", "1.0.0", -1, false},
		{"invalid", "notaversion", "1.0.0", 0, true},
		{"dev build", "dev", "1.0.0", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := CompareVersions(tt.a, tt.b)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

func TestHighest(t *testing.T) {
	tests := []struct {
		versions []string
		want     string
	}{
		{[]string{"1.0.1", "1.2.0", "1.1.5"}, "1.2.0"},
		{[]string{"2.0.0-rc.1", "1.9.0"}, "2.0.0-rc.1"},
		{[]string{"garbage", "0.1.0"}, "0.1.0"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := Highest(tt.versions); got != tt.want {
			t.Errorf("Highest(%v) = %q, want %q", tt.versions, got, tt.want)
		}
	}
}

func TestIsRelease(t *testing.T) {
	if IsRelease("dev") {
		t.Error("dev is not a release")
	}
	if !IsRelease("v0.3.0") {
		t.Error("v0.3.0 is a release")
	}
}
