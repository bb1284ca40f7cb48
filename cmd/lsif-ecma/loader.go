package main

import "github.com/tscodeintel/lsif-ecma/internal/checker"

// Loader builds the root checker.Program for the project rooted at path
// (its tsconfig-equivalent directory). It is nil in this repository: no
// concrete ECMAScript compiler binding ships here (spec §1 places the
// front-end out of scope, contracts only). An embedder that links a real
// compiler against internal/checker's interfaces sets this in an init
// func of its own main package, or a fork of this one.
var Loader func(path string) (checker.Program, error)
