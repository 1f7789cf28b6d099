// Package organize sorts the files of one directory into category
// subdirectories by extension.
//
// Work happens in two phases. A Planner lists the direct children of the
// target, filters them through a Classifier and emits MoveItems without
// touching the filesystem. An Executor then applies the plan item by item:
// it creates the category directory, asks a Resolver for a collision-free
// name ("report (1).pdf") at that moment, and moves the file. Existing files
// are never overwritten. Dry runs resolve names the same way but create and
// move nothing.
package organize
