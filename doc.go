// Package fmvalidate validates the frontmatter of documents against a JSON
// Schema.
//
// A run loads one schema, expands a set of glob patterns into documents,
// extracts each document's frontmatter block and validates it. Every
// violation is collected (the run never stops at the first one), attributed
// to its document and handed to a Reporter.
//
// Design policy:
// - Keep the pipeline and its error model in the root package.
// - Schema compilation lives in jsonschema/, block extraction in frontmatter/,
//   the GitHub Actions surface in actions/ and the CLI in cmd/fmvalidate.
// - Collaborators (Locator, Reporter, the schema Compiler, the filesystem) are
//   passed in explicitly so runs do not share state.
//
// Typical usage:
//
//	p := &fmvalidate.Pipeline{Compiler: jsonschema.NewCompiler(), Reporter: rep}
//	res, err := p.Run(ctx, fmvalidate.Config{
//		SchemaPath: "schema.json",
//		Paths:      fmvalidate.SplitPatterns("content/**/*.md"),
//	})
package fmvalidate
