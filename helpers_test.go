package pyext

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestMatchesExtension(t *testing.T) {
	testCases := []struct {
		filename   string
		extensions []string
		expected   bool
	}{
		{"module.pyx", []string{".pyx"}, true},
		{"module.PYX", []string{".pyx"}, true},
		{"module.pyx", []string{"pyx"}, true},
		{"module.cpp", []string{".pyx", ".cpp"}, true},
		{"module.py", []string{".pyx"}, false},
		{"noext", []string{".pyx"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.filename, func(t *testing.T) {
			got := MatchesExtension(tc.filename, tc.extensions...)
			if got != tc.expected {
				t.Errorf("MatchesExtension(%q, %v) = %v, want %v",
					tc.filename, tc.extensions, got, tc.expected)
			}
		})
	}
}

func TestModuleRelPath(t *testing.T) {
	got := moduleRelPath("a.b.y")
	want := filepath.Join("a", "b", "y") + platformExtension()
	if got != want {
		t.Errorf("moduleRelPath = %q, want %q", got, want)
	}
}

func TestSplitLines(t *testing.T) {
	if lines := splitLines(nil); lines != nil {
		t.Errorf("splitLines(nil) = %v, want nil", lines)
	}
	if lines := splitLines([]byte("one\ntwo\n")); !reflect.DeepEqual(lines, []string{"one", "two"}) {
		t.Errorf("splitLines = %v", lines)
	}
}

func TestUniqueStrings(t *testing.T) {
	got := uniqueStrings([]string{"", "a", "b", "a", "", "c", "b"})
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("uniqueStrings = %v, want %v", got, want)
	}
}

func TestCompilationErrorFormat(t *testing.T) {
	err := &CompilationError{
		Module: "a.x",
		Output: []string{"gcc: error: bad flag"},
		Err:    errors.New("exit status 1"),
	}

	msg := err.Error()
	if !strings.Contains(msg, "a.x") {
		t.Errorf("error does not name the module: %q", msg)
	}
	if !strings.Contains(msg, "Toolchain output:") || !strings.Contains(msg, "bad flag") {
		t.Errorf("error does not attach the toolchain output: %q", msg)
	}
}

func TestDefineString(t *testing.T) {
	if got := (Define{Name: "FLAG", Value: "1"}).String(); got != "FLAG=1" {
		t.Errorf("Define.String() = %q", got)
	}
	if got := (Define{Name: "FLAG"}).String(); got != "FLAG" {
		t.Errorf("valueless Define.String() = %q", got)
	}
}
