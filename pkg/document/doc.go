// Package document provides an in-memory building-model document: objects,
// placements and relations indexed by identity, with the reverse-reference
// queries the placement engine needs to decide ownership.
//
// # Identity and references
//
// Every entity gets a positive [model.ID] from a single counter, so object
// and placement identities never collide. The document maintains two reverse
// indices per placement: the objects that hold it and the placements that are
// relative to it. [Document.ReferencesTo] answers "who still points at this
// entity" from those indices and [Document.Delete] refuses to remove a
// referenced placement with an IN_USE error.
//
// # Relations
//
// A relation of a given kind links one relating object to a related object.
// Each object may be the related side of at most one relation per kind;
// [Document.Relating] answers the get_relation query.
//
// # Integrity
//
// [Document.Validate] checks that references resolve, that relative-to
// chains are acyclic, and that every placement is reachable from some
// object's placement chain.
//
// A Document is not safe for concurrent use without external synchronization.
package document
