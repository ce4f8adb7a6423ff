// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package clip is the uclip command module: it reads, writes and clears the
// clipboard, loads files into it and registers the program as the handler of
// its URL scheme, so links such as `uclip:%22say%20hi%22` copy their text.
package clip
