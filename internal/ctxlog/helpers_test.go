// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import "time"

func testTime() time.Time {
	return time.Date(2025, time.January, 2, 15, 4, 5, 0, time.UTC)
}
