// Package complexpr implements a calculator over complex scalars and complex
// matrices.
//
// The syntax of expressions is intended to be similar to math you'd write in
// your notes. "2 x y" is a multiplication of three terms, and so is "2(x)[y]".
// "-2^2^n" is the same as "-(2^(2^n))", where "a^b" is exponentiation. Curly
// brackets enclose matrix literals with commas between columns and semicolons
// between rows, so "{1, 2; 3, 4}" is a 2x2 matrix. A name written directly
// before a round or square bracket is a function call, as in
// "mean({1; 2; 3})". Put a space between them to multiply instead.
//
// Names resolve through a Registry. Builtins holds the predefined constants
// and functions, including elementary functions, statistics, and singular
// value decompositions. Every built-in is described by a Descriptor with
// worked examples. Clone the built-in registry to add functions of your own.
// Names that the registry does not know are variables, which let you parse an
// expression once and evaluate it for many inputs.
package complexpr
