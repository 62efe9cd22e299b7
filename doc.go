// Package rql validates resource-query language (RQL) expressions: nested
// function calls such as
//
//	or(and(eq(name,John),eq(surname,Doe)),eq(surname,Smith))
//
// Validation runs three stages synchronously. CheckBalance verifies
// parentheses. ExtractNodes turns the query into operator nodes with their
// nesting level and optional literal payload. After AnnotateNestedCount,
// CheckGrammar checks each node against a fixed operator table and stops at
// the first violation.
//
// Most callers only need a Validator:
//
//	v := rql.NewValidator(rql.ValidatorConfig{
//		Diagnostic: func(msg string) { log.Println(msg) },
//	})
//	if !v.Validate(query) {
//		// reject
//	}
//
// A query containing no parentheses at all, such as "status,new", produces
// no nodes and is accepted.
package rql
