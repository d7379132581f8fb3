// Copyright (c) 2026 RateFlix. All rights reserved.
// Author: dev@rateflix.app

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rateflix/rateflix/pkg/slug"
)

/*
TestFrom verifies the slug transformation pipeline against typical
catalogue titles.
*/
func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple_title", "The Wire", "the-wire"},
		{"accents_removed", "Amélie", "amelie"},
		{"punctuation", "Blade Runner 2049: Director's Cut", "blade-runner-2049-director-s-cut"},
		{"collapsed_hyphens", "Kill  --  Bill", "kill-bill"},
		{"trimmed_hyphens", "  (500) Days of Summer  ", "500-days-of-summer"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slug.From(tt.input))
		})
	}
}
