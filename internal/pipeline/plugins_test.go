package pipeline

import (
	"strings"
	"testing"
)

func TestConvertTags(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain tokens",
			input:    "{{tag>alpha beta}}",
			expected: "#alpha #beta",
		},
		{
			name:     "quoted token keeps words together",
			input:    `{{tag>"multi word" single}}`,
			expected: "#multi_word #single",
		},
		{
			name:     "hyphens become underscores",
			input:    "{{tag>well-known}}",
			expected: "#well_known",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvertTags(tt.input); got != tt.expected {
				t.Errorf("ConvertTags() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConvertRadarCharts(t *testing.T) {
	got := ConvertRadarCharts("<radar>\ndata\n</radar>")
	want := "```comment\nRadar chart not supported in Obsidian:\n\ndata\n\n```"
	if got != want {
		t.Errorf("ConvertRadarCharts() = %q, want %q", got, want)
	}
}

func TestConvertDrawIO(t *testing.T) {
	got := ConvertDrawIO("{{drawio>ns:diagrams:arch}}", 300)
	if got != "![[arch | 300]]" {
		t.Errorf("ConvertDrawIO() = %q, want %q", got, "![[arch | 300]]")
	}
}

func TestRemoveIndexMenu(t *testing.T) {
	got := RemoveIndexMenu("before {{indexmenu>:ns#2|js}} after")
	if got != "before  after" {
		t.Errorf("RemoveIndexMenu() = %q, want %q", got, "before  after")
	}
}

func TestConvertIncludes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "page include",
			input:    "{{page>ns:other}}",
			expected: "![[other]]",
		},
		{
			name:     "section include drops anchor",
			input:    "{{section>ns:other#intro}}",
			expected: "![[other]]",
		},
		{
			name:     "display parameters dropped",
			input:    "{{page>other|noheader}}",
			expected: "![[other]]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvertIncludes(tt.input); got != tt.expected {
				t.Errorf("ConvertIncludes() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConvertWraps(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "noprint unwrapped to content",
			input:    "<WRAP noprint>\nkeep me\n</WRAP>",
			expected: "\nkeep me\n",
		},
		{
			name:     "wrap becomes callout",
			input:    "<WRAP round tip>\nadvice here\n</WRAP>",
			expected: "\n> [!TIP]\n> advice here\n",
		},
		{
			name:     "multiline wrap quotes every line",
			input:    "<wrap>first\nsecond</wrap>",
			expected: "\n> [!TIP]\n> first\n> second\n",
		},
		{
			name:     "empty wrap dropped",
			input:    "<WRAP center>   </WRAP>",
			expected: "",
		},
		{
			name:     "div becomes callout",
			input:    "<div class=\"box\">boxed text</div>",
			expected: "\n> [!TIP]\n> boxed text\n",
		},
		{
			name:     "block becomes callout",
			input:    "<block>aside</block>",
			expected: "\n> [!TIP]\n> aside\n",
		},
		{
			name:     "stray open tag stripped",
			input:    "text <WRAP lo> more",
			expected: "text  more",
		},
		{
			name:     "stray close tag stripped",
			input:    "text </WRAP> more",
			expected: "text  more",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvertWraps(tt.input); got != tt.expected {
				t.Errorf("ConvertWraps() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConvertFontTags(t *testing.T) {
	got := ConvertFontTags(`<font 16px/arial;;red>important</font>`)
	if got != "==important==" {
		t.Errorf("ConvertFontTags() = %q, want %q", got, "==important==")
	}
}

func TestPluginChainRunsAllStages(t *testing.T) {
	chain := NewPluginChain(300)

	input := "{{tag>go}}\n{{drawio>arch}}\n{{indexmenu>:x}}\n{{page>ns:other}}"
	got := chain.Transform(input)

	for _, want := range []string{"#go", "![[arch | 300]]", "![[other]]"} {
		if !strings.Contains(got, want) {
			t.Errorf("Transform() = %q, missing %q", got, want)
		}
	}
	if strings.Contains(got, "indexmenu") {
		t.Errorf("Transform() = %q, indexmenu span survived", got)
	}
}

func TestPluginChainStageOrder(t *testing.T) {
	chain := NewPluginChain(300)

	want := []string{"tags", "radar", "drawio", "indexmenu", "include", "wrap", "font"}
	got := chain.StageNames()
	if len(got) != len(want) {
		t.Fatalf("StageNames() returned %d stages, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stage %d = %q, want %q", i, got[i], want[i])
		}
	}
}
