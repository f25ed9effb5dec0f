// Package arrowtype maps logical type descriptors to Apache Arrow data types
// and moves converted values in and out of Arrow arrays.
//
//	d, _ := logical.DecimalType(10, 2)
//	field, _ := arrowtype.Field("price", d, true)
//
//	b := array.NewBuilder(memory.DefaultAllocator, field.Type)
//	defer b.Release()
//	_ = arrowtype.Append(b, d, "19.99")
//
// Fields carry the logical type in their metadata, so FromField recovers
// VARCHAR lengths and other details the Arrow type alone cannot express.
package arrowtype
