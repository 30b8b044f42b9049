package helper

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func TestSplitList(t *testing.T) {
	got := SplitList("a, b,c ")
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got = SplitList("home,home, ,office")
	if want := []string{"home", "home", "office"}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if got = SplitList(" , "); len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}

func TestStatusCode(t *testing.T) {
	err := fmt.Errorf("get zone: %w", &HTTPError{StatusCode: 401, Message: "Unauthorized"})
	if code := StatusCode(err); code != 401 {
		t.Errorf("expected 401, got %d", code)
	}
	if code := StatusCode(errors.New("dial tcp: timeout")); code != 0 {
		t.Errorf("expected 0, got %d", code)
	}
}

func TestMaskSecret(t *testing.T) {
	if got := MaskSecret("abcdefgh"); got != "ab****gh" {
		t.Errorf("unexpected mask %q", got)
	}
	if got := MaskSecret("abc"); got != "***" {
		t.Errorf("unexpected mask %q", got)
	}
}
