// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"github.com/TylerBrock/colorjson"
	fatihcolor "github.com/fatih/color"
)

// NewJSONFormatter returns a colorjson formatter with colour switched on or off.
// The formatter's colours otherwise follow fatih/color's global detection,
// which only looks at stdout, so each one is switched explicitly.
func NewJSONFormatter(on bool, indent int) *colorjson.Formatter {
	f := colorjson.NewFormatter()
	f.DisabledColor = !on
	f.Indent = indent
	f.KeyColor = fatihcolor.New(fatihcolor.FgBlue, fatihcolor.Bold)

	for _, c := range []*fatihcolor.Color{f.KeyColor, f.StringColor, f.BoolColor, f.NumberColor, f.NullColor} {
		if on {
			c.EnableColor()
			continue
		}

		c.DisableColor()
	}

	return f
}
