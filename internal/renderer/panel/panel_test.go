package panel

import (
	"bytes"
	"errors"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"Terminal", ModeTerminal, false},
		{" plain ", ModePlain, false},
		{"gui", "", true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v", tt.in, err)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownMode) {
			t.Errorf("ParseMode(%q) error %v does not wrap ErrUnknownMode", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriter_ShowReplacesContents(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter("", &buf)

	if w.Name() != DefaultName {
		t.Errorf("Name = %q", w.Name())
	}

	if err := w.Show("first"); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if err := w.Show("second\n"); err != nil {
		t.Fatalf("Show: %v", err)
	}

	if w.Contents() != "second\n" {
		t.Errorf("Contents = %q", w.Contents())
	}
	if buf.String() != "first\nsecond\n" {
		t.Errorf("written = %q", buf.String())
	}
}

func TestNew_PlainMode(t *testing.T) {
	p, err := New(Options{Mode: ModePlain})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := p.(*Writer); !ok {
		t.Errorf("New(plain) = %T, want *Writer", p)
	}
	if p.Name() != DefaultName {
		t.Errorf("Name = %q", p.Name())
	}
}

func TestNew_AutoWithoutTTY(t *testing.T) {
	f, err := openTemp(t)
	if err != nil {
		t.Fatal(err)
	}

	p, err := New(Options{Name: "docs", Out: f})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := p.(*Writer); !ok {
		t.Errorf("New(auto, file) = %T, want *Writer", p)
	}
}

func TestNew_BadTitleColor(t *testing.T) {
	if _, err := New(Options{Mode: ModeTerminal, TitleColor: "not-a-color"}); err == nil {
		t.Error("expected error for bad title color")
	}
}
