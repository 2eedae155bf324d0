package ebuild

import (
	"reflect"
	"testing"
)

func TestDependencies(t *testing.T) {
	tests := []struct {
		name         string
		requiresDist []string
		want         []string
	}{
		{
			name:         "Parenthesized",
			requiresDist: []string{"requests (>=2.0)"},
			want:         []string{">=dev-python/requests-2.0"},
		},
		{
			name:         "Bare",
			requiresDist: []string{"requests>=2.0"},
			want:         []string{">=dev-python/requests-2.0"},
		},
		{
			name:         "Unversioned",
			requiresDist: []string{"Django"},
			want:         []string{"dev-python/django"},
		},
		{
			name:         "ExactPin",
			requiresDist: []string{"foo.bar (==1.0)"},
			want:         []string{"=dev-python/foo-bar-1.0"},
		},
		{
			name:         "CompatibleRelease",
			requiresDist: []string{"requests (~=2.0)"},
			want:         []string{">=dev-python/requests-2.0"},
		},
		{
			name:         "ExclusionDropsVersion",
			requiresDist: []string{"foo (!=1.3)"},
			want:         []string{"dev-python/foo"},
		},
		{
			name:         "ExtraSkipped",
			requiresDist: []string{"pytest ; extra == 'test'"},
			want:         nil,
		},
		{
			name:         "EnvironmentMarkerKept",
			requiresDist: []string{`enum34 (>=1.0) ; python_version < "3.4"`},
			want:         []string{">=dev-python/enum34-1.0"},
		},
		{
			name:         "Unparseable",
			requiresDist: []string{"???"},
			want:         nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dependencies(tt.requiresDist, "dev-python")
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Dependencies(%v) = %v, want %v", tt.requiresDist, got, tt.want)
			}
		})
	}
}

func TestDependencyNames(t *testing.T) {
	names := DependencyNames([]string{
		"requests (>=2.0)",
		"requests",
		"pytest ; extra == 'test'",
		"Django>=3.0",
	})
	want := []string{"requests", "Django"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("DependencyNames = %v, want %v", names, want)
	}
}
