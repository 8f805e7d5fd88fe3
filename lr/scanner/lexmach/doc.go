/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the parsers of package lr.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

Lexmachine has to be initialized by providing regular expressions and
literals. Package lexmach is opinionated on how to do the setup of lexmachine.
Clients who need more liberty in how to create the scanner should use their
own wrapper code to fit lexmachine into the scanner.Tokenizer interface.

	var literals []string          // The tokens representing literal strings
	var keywords lexmach.KeywordTable // keywords and their token values
	var tokenIds map[string]int    // A map from literals to their token values

	init := func(lexer *lexmachine.Lexer) {
		// initialize lexmachine with all the necessary regular expressions
		//
		// lexmach.Skip           ignores the scanned match
		// lexmach.MakeToken      wraps a scanned match into a token
		// lexmach.MakeIdentifier creates identifier or keyword tokens
		// lexmach.MakeString     creates string tokens with escapes resolved
		lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), lexmach.MakeIdentifier(ID, keywords))
	}

Keywords are not patterns of their own, but are recognized by looking up
identifiers in the keyword table. This way the table is configuration the
client passes in, and keyword recognition does not depend on pattern order.

Having that, clients use `NewLMAdapter` to wrap lexmachine into a scanner.Tokenizer.
NewLMAdapter will return an error if compiling the DFA failed.

	LM, err := NewLMAdapter(init, literals, tokenIds)
	if err != nil {
		// do error handling
	}

A scanner is instantiated for each concrete input sequence.
The scanner implements the scanner.Tokenizer interface.

	scan, err := LM.Scanner("input string to tokenize")
	if err != nil {
		// do error handling
	}

On the parser side tokens are read until EOF.

	for … { // feed token into parser
		token := scan.NextToken()
		if token.TokType() != scanner.EOF {
			…
		}
	}

Input which matches no pattern is reported to the scanner's error handler as
a *LexError and skipped.

Please refer to package pengo/lr on
how to create parsers and plug in a scanner.Tokenizer.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
