package shard

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		file string
		want Key
	}{
		{name: "empty name", file: "", want: Key{"OTHER", "OTHER"}},
		{name: "digit in high band", file: "7z-1.0.tar", want: Key{"0-9", "6-9"}},
		{name: "digit in low band", file: "0xdeadbeef-0.1.0.crate", want: Key{"0-9", "0-2"}},
		{name: "digit in middle band", file: "3d-1.0.0.crate", want: Key{"0-9", "3-5"}},
		{name: "letter chunk containing B", file: "Abc.bin", want: Key{"A", "AA-AD"}},
		{name: "lowercase letters", file: "zyx", want: Key{"Z", "ZY-ZZ"}},
		{name: "serde", file: "serde-1.0.0.crate", want: Key{"S", "SE-SH"}},
		{name: "single letter defaults to A", file: "q", want: Key{"Q", "QA-QD"}},
		{name: "non-letter second char falls back", file: "a-1.0.0.crate", want: Key{"A", "AA-AD"}},
		{name: "digit second char falls back", file: "x86-0.1.0.crate", want: Key{"X", "XA-XD"}},
		{name: "underscore first", file: "_private", want: Key{"OTHER", "OTHER"}},
		{name: "dot first", file: ".hidden", want: Key{"OTHER", "OTHER"}},
		{name: "non-ASCII letter", file: "école", want: Key{"OTHER", "OTHER"}},
		{name: "non-ASCII second char falls back", file: "bé", want: Key{"B", "BA-BD"}},
		{name: "non-ASCII digit", file: "٣abc", want: Key{"0-9", "0-2"}},
		{name: "invalid UTF-8", file: "\xff\xfe", want: Key{"OTHER", "OTHER"}},
		{name: "last short chunk", file: "my-crate", want: Key{"M", "MY-MZ"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.file))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	for _, name := range []string{"", "a", "serde", "7z", "\x00", "ZZZ"} {
		assert.Equal(t, Classify(name), Classify(name))
	}
}

func TestClassify_AlwaysInLayout(t *testing.T) {
	valid := make(map[Key]bool)
	for _, k := range Keys() {
		valid[k] = true
	}
	for b := 0; b < 256; b++ {
		for _, second := range []string{"", "a", "Z", "9", "-", "\xff"} {
			name := string([]byte{byte(b)}) + second
			k := Classify(name)
			assert.True(t, valid[k], "Classify(%q) = %v is not a provisioned bucket", name, k)
		}
	}
}

func TestGroups_PartitionAlphabet(t *testing.T) {
	for _, first := range FirstLevels()[:26] {
		seen := make(map[rune]int)
		groups := Groups(first)
		require.Len(t, groups, 7)
		for _, g := range groups {
			assert.True(t, strings.HasPrefix(g.Name, first), "group %s of %s", g.Name, first)
			for _, c := range g.Members {
				seen[c]++
			}
		}
		for _, c := range alphabet {
			assert.Equal(t, 1, seen[c], "letter %c in first level %s", c, first)
		}
		assert.Len(t, seen, 26)
	}
}

func TestGroups_PartitionDigits(t *testing.T) {
	seen := make(map[rune]int)
	for _, g := range Groups(DigitLevel) {
		for _, c := range g.Members {
			seen[c]++
		}
	}
	for c := '0'; c <= '9'; c++ {
		assert.Equal(t, 1, seen[c], "digit %c", c)
	}
	assert.Len(t, seen, 10)
}

func TestGroups_Names(t *testing.T) {
	var names []string
	for _, g := range Groups("A") {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"AA-AD", "AE-AH", "AI-AL", "AM-AP", "AQ-AT", "AU-AX", "AY-AZ"}, names)
	assert.Equal(t, []Group{{Name: "OTHER"}}, Groups(OtherLevel))
	assert.Nil(t, Groups("nope"))
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, 26*7+3+1)
	assert.Equal(t, Key{"A", "AA-AD"}, keys[0])
	assert.Equal(t, Key{"OTHER", "OTHER"}, keys[len(keys)-1])
}

func TestTarget(t *testing.T) {
	assert.Equal(t, filepath.Join("base", "S", "SE-SH"), Target("base", "serde-1.0.0.crate"))
	assert.Equal(t, filepath.Join("base", "OTHER", "OTHER"), Target("base", ""))
	assert.Equal(t, "0-9/6-9", Classify("7z-1.0.tar").String())
}
