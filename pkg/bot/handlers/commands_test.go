package handlers

import (
	"reflect"
	"testing"
)

func TestParseAddCommand(t *testing.T) {
	cases := []struct {
		text            string
		wantTerm        string
		wantTranslation string
		wantOK          bool
	}{
		{text: "/add dog - собака", wantTerm: "dog", wantTranslation: "собака", wantOK: true},
		{text: "/add give up - сдаваться", wantTerm: "give up", wantTranslation: "сдаваться", wantOK: true},
		{text: "/add dog", wantOK: false},
		{text: "/add  - dog", wantOK: false},
		{text: "/add", wantOK: false},
	}

	for _, tc := range cases {
		term, translation, ok := parseAddCommand(tc.text)
		if ok != tc.wantOK {
			t.Errorf("parseAddCommand(%q) ok = %v, want %v", tc.text, ok, tc.wantOK)
			continue
		}
		if ok && (term != tc.wantTerm || translation != tc.wantTranslation) {
			t.Errorf("parseAddCommand(%q) = (%q, %q), want (%q, %q)",
				tc.text, term, translation, tc.wantTerm, tc.wantTranslation)
		}
	}
}

func TestParseNewSetCommand(t *testing.T) {
	name, terms, ok := parseNewSetCommand("/newset fruit: apple, pear , plum")
	if !ok {
		t.Fatal("expected parse to succeed")
	}
	if name != "fruit" {
		t.Errorf("expected name fruit, got %q", name)
	}
	if want := []string{"apple", "pear", "plum"}; !reflect.DeepEqual(terms, want) {
		t.Errorf("expected terms %v, got %v", want, terms)
	}

	for _, text := range []string{"/newset fruit", "/newset : apple", "/newset fruit:  ,  ", "/newset"} {
		if _, _, ok := parseNewSetCommand(text); ok {
			t.Errorf("expected parse of %q to fail", text)
		}
	}
}

func TestParseScopeArg(t *testing.T) {
	if got := parseScopeArg("/review fruit", "/review"); got != "fruit" {
		t.Errorf("expected fruit, got %q", got)
	}
	if got := parseScopeArg("/review", "/review"); got != "" {
		t.Errorf("expected empty scope, got %q", got)
	}
}
