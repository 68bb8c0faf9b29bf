// Package driving defines the interfaces the CLI drives: the four engine
// components. Services under internal/core/services implement them.
package driving
