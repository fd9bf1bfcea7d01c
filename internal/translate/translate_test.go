// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package translate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/lassandro/lc3vm/internal/translate"
)

func TestFrom(t *testing.T) {
	assert.Equal(t, "HALT", translate.From("HALT"))
	assert.Equal(t, "image foo.obj", translate.From("image %s", "foo.obj"))
}

func TestLanguageOverride(t *testing.T) {
	t.Setenv("LC3VM_LANG", "de-CH")
	assert.Equal(t, language.MustParse("de-CH"), translate.Language())
}

func TestLanguageBadOverride(t *testing.T) {
	t.Setenv("LC3VM_LANG", "")
	host := translate.Language()

	t.Setenv("LC3VM_LANG", "not a language tag")
	assert.Equal(t, host, translate.Language(), "falls back to the host locale")
}
