package main

const helpText = `Commands:
  <expression>       evaluate an expression, e.g. 5 + 3 * 2
  calc <sentence>    convert a natural-language question and evaluate it
  rules              show the expression syntax rules
  help               show this help
  exit, quit         leave the interpreter

Expressions mix symbols and operation words freely:
  5 + 3
  5 sum 3
  sum of 5 and 3
  add these numbers: [1, 2, 3, 4]
  5 multiply sum of 2 and 3`

const rulesText = `Syntax rules:
  numbers            integers (42) and decimals (3.14)
  operators          + - * /  or any word meaning one of them
                     (sum, subtract, multiply, divide, ...)
  precedence         unary sign, then * /, then + -
  grouping           parentheses: (5 + 3) * 2
  natural form       <word> of <number> and <number>
                     sum of 5 and 3
  functional form    <word> these numbers: [n, n, ...]
                     multiply these numbers: [2, 3, 4]
  division           always yields a decimal; dividing by zero is an error

Word operators follow the same precedence as their symbols, and the
phrase forms group like parenthesized values, so
  sum of 5 and 3 - 2
is (5 + 3) - 2 = 6.`
