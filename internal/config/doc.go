// Package config persists editor settings as a JSON file.
//
// Loading is field-tolerant: each setting is read individually and
// falls back to its default when missing or mistyped, so a partially
// broken file still loads. Saving rewrites only the known keys and
// leaves anything else in the file untouched.
package config
