// Package types contains the thing-type data models: one Go type per
// clinical record kind, each identified by a stable GUID and convertible
// to and from the platform XML format.
//
// Every type follows the same contract (see itemtypes.TypeData):
// constructors validate mandatory arguments, ParseXML reads optional
// sub-elements leniently but fails hard on a missing root, WriteXML
// refuses to emit until mandatory fields are set and writes children in
// fixed schema order, and String summarizes the 1-3 most salient fields.
//
// Importing this package registers every type with the default registry,
// so raw <thing> envelopes can be routed by type-id.
package types
