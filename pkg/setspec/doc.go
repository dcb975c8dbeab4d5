// Package setspec converts between persistent handles and the opaque set
// specs advertised to harvesters.
//
// A handle such as "123456789/2" identifies a community or a collection. The
// harvesting protocol only allows URL-safe set specs, so the handle separator
// is replaced and a kind prefix is prepended:
//
//	community "123456789/2"  ->  "com_123456789_2"
//	collection "123456789/7" ->  "col_123456789_7"
//
// # Usage Examples
//
//	spec, err := setspec.Encode(setspec.KindCollection, "123456789/7")
//	if err != nil {
//	    return err
//	}
//
//	// Best-effort decoding, used by existence checks.
//	handle := setspec.Decode(spec) // "123456789/7"
//
//	// Strict parsing, used when the caller needs the kind.
//	s, err := setspec.Parse(spec)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(s.Kind(), s.Handle())
//
// Specs produced by older releases used the kind-less "hdl_" prefix. Decode
// and Parse still accept it.
package setspec
