// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

const envVariableName = "env"

// newEvalContext exposes the process environment as `env` and a few string functions.
func newEvalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			envVariableName: envObject(os.Environ()),
		},
		Functions: map[string]function.Function{
			"coalesce":  stdlib.CoalesceFunc,
			"format":    stdlib.FormatFunc,
			"lower":     stdlib.LowerFunc,
			"trimspace": stdlib.TrimSpaceFunc,
			"upper":     stdlib.UpperFunc,
		},
	}
}

func envObject(environ []string) cty.Value {
	vars := make(map[string]cty.Value, len(environ))

	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}

		vars[name] = cty.StringVal(value)
	}

	if len(vars) == 0 {
		return cty.EmptyObjectVal
	}

	return cty.ObjectVal(vars)
}
