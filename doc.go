// Package mdto maps MDTO-XML documents (the Nationaal Archief metadata schema
// for digital archival objects) onto an in-memory record model and back,
// without information loss:
//
//   - Schema loading and compilation into ordered type descriptors (Load/TypeFor)
//   - Deserialization of conformant documents into Records (Parse/ParseWithMeta)
//   - Serialization preserving declared order, lexical forms and captured
//     namespace prefixes (Write/WritePreserving)
//   - Standalone document validation as an acceptance oracle (ValidateDocument)
//   - A stable error model via Issues (element path, code, message)
//
// Design policy:
//   - Keep only public APIs in the root package; put the raw XSD document model
//     under internal/.
//   - Place leaf-value codecs under codec/, the typed MDTO data groups under
//     gegevens/, and alternate intake drivers under source/.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	h, err := mdto.LoadFile("MDTO-XML1.0.1.xsd")
//	rec, err := mdto.Parse(h, "MDTO", data)
//	dec, err := mdto.ParseWithMeta(h, "MDTO", data)
//
//	out, err := mdto.Write(h, "MDTO", rec)
//	out2, err := mdto.WritePreserving(h, dec)
package mdto
