// Package pathexpr implements the property-path grammar used to address
// positions inside a generated object graph, plus the matching rules the
// sampling engine applies at generation time.
//
// Grammar:
//
//	path    := segment ('.' segment)*
//	segment := ident | ident '[' index ']'
//	index   := nonNegativeInteger | '*' | keyLiteral
//	ident   := [A-Za-z_][A-Za-z0-9_]*
//
// Integer indices address collection elements, '*' addresses every realized
// element or key of a collection/map, and key literals address map entries by
// the formatted form of their key. Key literals may contain any character
// except '.', '[' and ']'.
//
// Syntax is validated eagerly by Parse; whether a parsed path actually names
// an existing member, or indexes an indexable node, is a semantic question
// the engine answers later against a concrete TypeDescriptor tree.
//
// Errors:
//
//	ErrInvalidPath - malformed grammar (from Parse) or, downstream, a path
//	                 that does not resolve against the described type.
package pathexpr
