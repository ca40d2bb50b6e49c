// Package itemtypes provides typed data models for clinical health-record
// items and their XML wire projection.
//
// Each thing type (Height, Appointment, Procedure, ...) wraps one clinical
// concept, exposes validated fields, and converts to and from the platform
// XML format. Types are identified by a stable GUID that routes payloads to
// the right model.
//
// # Quick Start
//
//	import (
//	    it "github.com/gohealth/itemtypes"
//	    "github.com/gohealth/itemtypes/engine"
//	    "github.com/gohealth/itemtypes/types"
//	)
//
//	codec, err := engine.New(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	h, err := types.NewHeight(1.8)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, err := codec.Encode(h)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	value, result := codec.Decode(ctx, data)
//	for _, issue := range result.Errors() {
//	    fmt.Println(issue.Diagnostics)
//	}
//	result.Release()
//
// # Design
//
// The package is split along small, composable seams:
//
//   - xmlio: the XML navigation/writing abstraction every type consumes
//   - types: the thing-type models themselves
//   - registry: GUID-to-type routing for raw <thing> envelopes
//   - vocab: vocabulary lookups backing CodableValue code checks
//   - blob: out-of-band content for file-bearing types
//   - engine: decode/encode with structure, range, and vocabulary checks
//   - worker: parallel batch processing
//
// All validation is synchronous and immediate: constructors and setters
// reject bad values, WriteXML refuses to emit with a mandatory field unset,
// and ParseXML fails when the expected root element is absent.
//
// # Functional Options
//
//	codec, err := engine.New(ctx,
//	    it.WithStrictVocabulary(true),
//	    it.WithMaxErrors(100),
//	    it.WithIndent(true),
//	)
package itemtypes
