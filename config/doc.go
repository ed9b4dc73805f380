// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config provides config documents and the rules for combining them.
//
// # Documents
//
// A Map is a tree whose nodes are scalars, sequences or mappings. Any Go
// slice is a sequence and both Map and map[string]any are mappings.
// Documents are usually produced by a Loader, e.g. a FileLoader, from
// YAML, JSON or any format viper understands.
//
// # Merging
//
// Merge folds documents left to right:
//
//	base := config.Map{"key2": []any{"web1", "web2"}, "key3": 2}
//	local := config.Map{"key2": []any{"local1"}, "key3": "local3"}
//
//	config.Merge(base, local)
//	// {"key2": ["web1", "web2", "local1"], "key3": "local3"}
//
// Mappings merge recursively, sequences are concatenated and anything
// else is replaced by the later document. There is no way for a later
// document to remove a key or a sequence entry.
//
// # Decoding
//
// Unmarshal decodes a document into a struct using "config" field tags.
package config
