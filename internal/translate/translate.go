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

package translate

import (
	"os"
	"sync"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LC3VM_LANG names a BCP 47 tag that wins over the host locales.
const languageEnv = "LC3VM_LANG"

var (
	printer *message.Printer
	once    sync.Once
)

// Language resolves the message language: LC3VM_LANG when it parses, else the
// closest match for the host's preferred locales, else American English.
func Language() language.Tag {
	if tag, err := language.Parse(os.Getenv(languageEnv)); err == nil {
		return tag
	}

	if locales, err := locale.GetLocales(); err == nil && len(locales) > 0 {
		return message.MatchLanguage(locales...)
	}

	return language.AmericanEnglish
}

// From formats an en-US Sprintf style key in the resolved language. The
// language is fixed by the first call.
func From(key message.Reference, args ...any) string {
	once.Do(func() {
		printer = message.NewPrinter(Language())
	})

	return printer.Sprintf(key, args...)
}
