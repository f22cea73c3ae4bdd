// Package linguaflow implements a small arithmetic expression language whose
// operators may be written as symbols or as English words.
//
// "5 + 3 * 2", "5 add 3 times 2", "sum of 5 and 3", and
// "sum these numbers: [5, 3, 7]" all parse into the same kind of syntax tree
// and evaluate with the same precedence rules. Word operators are not fixed:
// whenever the parser meets a word where an operator is legal, it asks an
// injected Resolver to map the word to one of the four arithmetic operators.
// The Resolver may be a static table, a caching wrapper, or a live language
// model (see the gemini subpackage); the grammar handles all structure either
// way.
package linguaflow
