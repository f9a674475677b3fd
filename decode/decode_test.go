package decode

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/midbel/motion"
)

func TestDecoder_Decode(t *testing.T) {
	r, err := os.Open("testdata/nations.motion")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	cfg, err := NewDecoder(r).Decode()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Title != "Wealth & Health of Nations" {
		t.Errorf("title: got %q", cfg.Title)
	}
	if cfg.Width != 960 || cfg.Height != 500 {
		t.Errorf("size: got %gx%g", cfg.Width, cfg.Height)
	}
	if cfg.Padding != motion.DefaultPadding {
		t.Errorf("padding: got %+v", cfg.Padding)
	}
	if cfg.Source != "nations.json" {
		t.Errorf("source: got %q", cfg.Source)
	}
	if cfg.Output != "frames" {
		t.Errorf("output: got %q", cfg.Output)
	}
	if cfg.Duration != 30*time.Second {
		t.Errorf("duration: got %s", cfg.Duration)
	}
	if cfg.Aggregate != motion.AggrMedian {
		t.Errorf("aggregate: got %s", cfg.Aggregate)
	}
	if cfg.XTicks != 12 {
		t.Errorf("xticks: got %d", cfg.XTicks)
	}
	bindings := map[motion.Channel]string{
		motion.X:      "income",
		motion.Y:      "lifeExpectancy",
		motion.Radius: "population",
		motion.Color:  "region",
		motion.Key:    "name",
	}
	for ch, field := range bindings {
		if got := cfg.Bindings[ch]; got != field {
			t.Errorf("%s: field mismatched! want %s, got %s", ch, field, got)
		}
	}
	families := map[motion.Channel]motion.Family{
		motion.X:      motion.Log,
		motion.Y:      motion.Linear,
		motion.Radius: motion.Sqrt,
	}
	for ch, fam := range families {
		if got := cfg.Families[ch]; got != fam {
			t.Errorf("%s: family mismatched! want %s, got %s", ch, fam, got)
		}
	}
	if got := cfg.Labels["income"]; got != "income per capita" {
		t.Errorf("label: got %q", got)
	}
}

func TestDecoder_Include(t *testing.T) {
	cfg, err := DecodeFile("testdata/include.motion")
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Bindings[motion.X]; got != "income" {
		t.Errorf("x: want income, got %s", got)
	}
	if got := cfg.Families[motion.X]; got != motion.Log {
		t.Errorf("x: want log, got %s", got)
	}
	if got := cfg.Bindings[motion.Y]; got != "lifeExpectancy" {
		t.Errorf("y: want lifeExpectancy, got %s", got)
	}
	if cfg.Duration != 1500*time.Millisecond {
		t.Errorf("duration: got %s", cfg.Duration)
	}
}

func TestDecoder_Errors(t *testing.T) {
	tests := []struct {
		Input string
		Err   error
	}{
		{
			Input: "bind z income\n",
			Err:   motion.ErrChannel,
		},
		{
			Input: "bind x income using cubic\n",
			Err:   motion.ErrScaleFamily,
		},
		{
			Input: "set aggregate sum\n",
			Err:   motion.ErrAggregate,
		},
		{
			Input: "bind key name using linear\n",
			Err:   motion.ErrNoScale,
		},
	}
	for _, tt := range tests {
		_, err := NewDecoder(strings.NewReader(tt.Input)).Decode()
		if !errors.Is(err, tt.Err) {
			t.Errorf("%q: want %v, got %v", tt.Input, tt.Err, err)
		}
	}
}

func TestDecoder_Invalid(t *testing.T) {
	tests := []string{
		"set colour red\n",
		"load $missing\n",
		"define a 1\ndefine a 2\n",
		"set size 1, 2, 3\n",
		"render frames\n",
		"render to frames\nset title foo\n",
		"income using log\n",
	}
	for _, str := range tests {
		_, err := NewDecoder(strings.NewReader(str)).Decode()
		if err == nil {
			t.Errorf("%q: expected error but got none", str)
		}
	}
}

func TestDecoder_OptionError(t *testing.T) {
	_, err := NewDecoder(strings.NewReader("set title foo\nset colour red\n")).Decode()
	var oerr OptionError
	if !errors.As(err, &oerr) {
		t.Fatalf("expected option error, got %v", err)
	}
	if oerr.Option != "colour" || oerr.Line != 2 {
		t.Errorf("unexpected option error: %+v", oerr)
	}
}

func TestScanner(t *testing.T) {
	input := "set title \"hello world\" # greetings\nload $data, $(echo)\n"
	want := []Token{
		{Type: Keyword, Literal: "set"},
		{Type: Literal, Literal: "title"},
		{Type: Literal, Literal: "hello world"},
		{Type: Comment, Literal: "greetings"},
		{Type: EOL},
		{Type: Keyword, Literal: "load"},
		{Type: Variable, Literal: "data"},
		{Type: Comma},
		{Type: Command, Literal: "echo"},
		{Type: EOL},
		{Type: EOF},
	}
	sc := Scan(strings.NewReader(input))
	for i, w := range want {
		got := sc.Scan()
		if got.Type != w.Type || got.Literal != w.Literal {
			t.Fatalf("token %d: want %s, got %s", i, w, got)
		}
	}
}
