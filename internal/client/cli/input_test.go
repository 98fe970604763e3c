package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestGetSimpleText(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("hello world\n"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("lastline"))
	var out bytes.Buffer
	got, err := GetSimpleText(in, "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return []byte("secret"), nil
	}
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	if err != nil {
		t.Fatal(err)
	}
	if string(pw) != "secret" {
		t.Fatalf("got %q", pw)
	}
}
