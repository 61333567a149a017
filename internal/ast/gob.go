package ast

import "encoding/gob"

// RegisterGob registers every concrete node type with encoding/gob so
// a *Program (held behind the Statement/Expression interfaces) can be
// round-tripped through gob.Encoder/Decoder — the serialization
// `numfu ast FILE -o OUT` uses to write a .nfut file (spec.md §6).
// encoding/gob, not a third-party serializer, because interface-typed
// AST fields need Go-native concrete-type registration regardless of
// wire format, and nothing in the pack reaches for a different AST
// serializer for this.
func RegisterGob() {
	gob.Register(&LetStatement{})
	gob.Register(&DelStatement{})
	gob.Register(&ImportStatement{})
	gob.Register(&ExportStatement{})
	gob.Register(&AssertStatement{})
	gob.Register(&ExpressionStatement{})

	gob.Register(&Identifier{})
	gob.Register(&DollarRef{})
	gob.Register(&NumberLiteral{})
	gob.Register(&StringLiteral{})
	gob.Register(&BoolLiteral{})
	gob.Register(&ListLiteral{})
	gob.Register(&Placeholder{})
	gob.Register(&SpreadExpr{})
	gob.Register(&Lambda{})
	gob.Register(&Call{})
	gob.Register(&IndexExpr{})
	gob.Register(&MemberExpr{})
	gob.Register(&UnaryExpr{})
	gob.Register(&BinaryExpr{})
	gob.Register(&ChainCompare{})
	gob.Register(&LogicalExpr{})
	gob.Register(&IfExpr{})
	gob.Register(&LetExpr{})
	gob.Register(&ComposeExpr{})
	gob.Register(&PipeExpr{})
}

func init() {
	RegisterGob()
}
