// Package mdpdf converts Markdown into a styled, structured document
// ready for page-layout rendering.
//
// The pipeline is a flat character stream in, an ordered sequence of
// styled drawing elements out: Scan produces lexical units, Build
// assembles them into a token tree, and BuildDocument resolves each
// token against a StyleTable and flattens the tree into Elements. The
// element sequence is consumed by an external renderer that performs
// page layout, font embedding, and PDF emission; this package never
// writes bytes to disk.
//
// Core properties:
//   - Malformed Markdown degrades to literal text, never an error
//   - Style resolution is a pure function with built-in fallbacks
//   - Token trees and element sequences are owned by a single call
//
// Example:
//
//	elements, err := mdpdf.Convert(mdpdf.ConvertRequest{
//		Source: "# Hello\n\nMarkdown in, styled elements out.\n",
//		Table:  mdpdf.DefaultStyleTable(),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, el := range elements {
//		// hand el to the page-layout renderer
//		_ = el
//	}
package mdpdf
