package pkg

import (
	"regexp"
	"strings"
	"testing"
)

func TestVersion_IsSemver(t *testing.T) {
	re := regexp.MustCompile(`^\d+\.\d+\.\d+(-[0-9A-Za-z.-]+)?$`)

	if v := strings.TrimSpace(Version); !re.MatchString(v) {
		t.Errorf("Version = %q, want semantic version", v)
	}
}

func TestAuthors(t *testing.T) {
	if got := Authors(); !strings.Contains(got, "ardnew <") {
		t.Errorf("Authors() = %q", got)
	}

	if got := (AuthorInfo{Name: "x"}).String(); got != "x" {
		t.Errorf("String() = %q", got)
	}
}
