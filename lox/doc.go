// Package lox implements a tree-walking interpreter for the Lox scripting
// language. Source text flows through four phases:
//   - Scan turns source into tokens.
//   - Parse builds statements using precedence climbing.
//   - Resolve computes the scope distance of every local reference.
//   - Interpreter.Interpret walks the tree against an environment chain.
//
// Scan, parse and resolve problems are accumulated and returned together as
// a *StaticError. Evaluation stops at the first *RuntimeError. ExitCode maps
// either onto the conventional process exit status.
//
// The language has closures, first-class functions and anonymous `fun`
// expressions, and classes with single inheritance, initializers and super
// calls. An Engine enforces a recursion limit and an optional step quota.
package lox
