// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain doi", "10.1234/ABC", "10.1234/abc"},
		{"doi prefix", "doi:10.1234/abc", "10.1234/abc"},
		{"doi.org url", "https://doi.org/10.1234/Abc", "10.1234/abc"},
		{"http doi.org url", "http://doi.org/10.1234/abc", "10.1234/abc"},
		{"surrounding whitespace", "  10.1234/abc \n", "10.1234/abc"},
		{"prefix with whitespace", " DOI: 10.1234/abc", "10.1234/abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Identifier(tt.in))
		})
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercases", "Attention Is All You Need", "attention is all you need"},
		{"strips diacritics", "Educação Matemática no Brasil", "educacao matematica no brasil"},
		{"collapses punctuation runs", "Deep   Learning: A -- Survey!!", "deep learning a survey"},
		{"leading and trailing punctuation", "...results?", "results"},
		{"keeps digits", "GPT-4 in K-12 classrooms", "gpt 4 in k 12 classrooms"},
		{"only punctuation", "?!---", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.in))
		})
	}
}

func TestTitleEqualAcrossVariants(t *testing.T) {
	a := Title("Machine Learning for Fraction Instruction")
	b := Title("machine learning for   fraction instruction.")
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a)
}
