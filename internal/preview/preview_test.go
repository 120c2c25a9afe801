package preview

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestRenderProducesDocument(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render(context.Background(), "# Title\n\nsome **bold** text", "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	got := string(html)
	for _, want := range []string{"<!DOCTYPE html>", "<h1", "Title", "<strong>bold</strong>"} {
		if !strings.Contains(got, want) {
			t.Errorf("Render() output missing %q", want)
		}
	}
}

func TestRenderTables(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render(context.Background(), "| H1 | H2 |\n|---|---|\n| a | b |", "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "<table>") {
		t.Errorf("Render() output missing table, got %q", got)
	}
}

func TestRenderStrikethrough(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render(context.Background(), "~~gone~~", "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if !strings.Contains(string(html), "<del>gone</del>") {
		t.Errorf("Render() output missing strikethrough, got %q", html)
	}
}

func TestRenderCanceledContext(t *testing.T) {
	r := NewRenderer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Render(ctx, "# x", ""); err == nil {
		t.Error("Render() with canceled context should fail")
	}
}

func TestRenderTimeout(t *testing.T) {
	r := NewRenderer()
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	if _, err := r.Render(ctx, "# x", ""); err == nil {
		t.Error("Render() after deadline should fail")
	}
}
