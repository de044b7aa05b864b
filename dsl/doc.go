// Package dsl declares record schemas and field types.
//
// A record type is declared once with the builder:
//
//	person := dsl.Record("Person").
//		Field("name", dsl.String()).
//		Field("nickname", dsl.String()).Optional().
//		Field("score", dsl.Int()).Default(100).
//		Field("id", dsl.Int()).ReadOnly().
//		MustBuild()
//
// Fields are required unless marked Optional, given a Default, or declared
// Constant. Field types carry their own constraints, chained the same way:
//
//	dsl.Int().Min(0).Max(150)
//	dsl.String().MinLen(1).MaxLen(80)
//	dsl.List(dsl.Ref("Person")).Unique()
package dsl
