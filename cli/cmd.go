// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

// Cmd represents a runnable command with configuration options.
// The type parameter is the type of the configuration
// information passed to the command.
type Cmd[T any] struct {

	// Func is the function that runs the command.
	Func func(T) error

	// Name is the name of the command, in kebab-case.
	Name string

	// Doc is the one-line documentation of the command.
	Doc string

	// Root is whether the command is run when
	// no command name is given.
	Root bool
}

// NewCmd returns a new [Cmd] with the given name, doc and function.
func NewCmd[T any](name, doc string, fun func(T) error) *Cmd[T] {
	return &Cmd[T]{Name: name, Doc: doc, Func: fun}
}

// SetRoot sets [Cmd.Root] and returns the command for chaining.
func (c *Cmd[T]) SetRoot(root bool) *Cmd[T] {
	c.Root = root
	return c
}

// findCmd returns the command with the given name, or the root
// command when name is empty. It returns nil if there is none.
func findCmd[T any](cmds []*Cmd[T], name string) *Cmd[T] {
	for _, c := range cmds {
		if name == "" && c.Root || name != "" && c.Name == name {
			return c
		}
	}
	return nil
}
